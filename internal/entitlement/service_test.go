package entitlement_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
	"github.com/planora-app/planora/internal/user"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &program.Program{}, &project.Project{}, &task.Task{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, tier user.Tier) *user.User {
	t.Helper()
	u := &user.User{
		ID:               uuid.New(),
		Username:         fmt.Sprintf("u-%s", uuid.New().String()[:8]),
		Email:            fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		SubscriptionTier: tier,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedProgram(t *testing.T, db *gorm.DB, userID uuid.UUID) *program.Program {
	t.Helper()
	p := &program.Program{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "program",
		Status: program.StatusPlanning,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed program: %v", err)
	}
	return p
}

func TestCheckCreate(t *testing.T) {
	svc := entitlement.NewService()

	t.Run("free tier denies second program", func(t *testing.T) {
		db := openDB(t)
		u := seedUser(t, db, user.TierFree)
		seedProgram(t, db, u.ID)

		err := svc.CheckCreate(db, u, entitlement.ResourcePrograms)
		var quotaErr *entitlement.QuotaError
		if !errors.As(err, &quotaErr) {
			t.Fatalf("CheckCreate = %v, want *QuotaError", err)
		}
		if quotaErr.Resource != entitlement.ResourcePrograms {
			t.Errorf("Resource = %q, want %q", quotaErr.Resource, entitlement.ResourcePrograms)
		}
		if quotaErr.Limit.Value() != 1 {
			t.Errorf("Limit = %s, want 1", quotaErr.Limit)
		}
	})

	t.Run("denial holds until a row is removed", func(t *testing.T) {
		db := openDB(t)
		u := seedUser(t, db, user.TierFree)
		p := seedProgram(t, db, u.ID)

		for i := 0; i < 3; i++ {
			if err := svc.CheckCreate(db, u, entitlement.ResourcePrograms); err == nil {
				t.Fatalf("attempt %d allowed over quota", i)
			}
		}

		if err := db.Delete(&program.Program{}, "id = ?", p.ID).Error; err != nil {
			t.Fatalf("failed to delete program: %v", err)
		}
		if err := svc.CheckCreate(db, u, entitlement.ResourcePrograms); err != nil {
			t.Errorf("CheckCreate after delete = %v, want nil", err)
		}
	})

	t.Run("business tier is never limited", func(t *testing.T) {
		db := openDB(t)
		u := seedUser(t, db, user.TierBusiness)
		for i := 0; i < 10; i++ {
			seedProgram(t, db, u.ID)
		}

		if err := svc.CheckCreate(db, u, entitlement.ResourcePrograms); err != nil {
			t.Errorf("CheckCreate = %v, want nil", err)
		}
	})

	t.Run("unknown tier uses free limits", func(t *testing.T) {
		db := openDB(t)
		u := seedUser(t, db, user.Tier("enterprise"))
		seedProgram(t, db, u.ID)

		if err := svc.CheckCreate(db, u, entitlement.ResourcePrograms); err == nil {
			t.Error("CheckCreate allowed second program for unknown tier")
		}
	})
}

func TestCheckTaskCreate(t *testing.T) {
	svc := entitlement.NewService()

	t.Run("free tier caps tasks per project", func(t *testing.T) {
		db := openDB(t)
		u := seedUser(t, db, user.TierFree)
		p := &project.Project{ID: uuid.New(), UserID: u.ID, Name: "p", Status: project.StatusPlanning}
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("failed to seed project: %v", err)
		}
		for i := 0; i < 10; i++ {
			tk := &task.Task{ID: uuid.New(), ProjectID: p.ID, Name: fmt.Sprintf("t%d", i), Status: task.StatusNotStarted, Priority: task.PriorityMedium}
			if err := db.Create(tk).Error; err != nil {
				t.Fatalf("failed to seed task: %v", err)
			}
		}

		err := svc.CheckTaskCreate(db, u, p.ID)
		var quotaErr *entitlement.QuotaError
		if !errors.As(err, &quotaErr) {
			t.Fatalf("CheckTaskCreate = %v, want *QuotaError", err)
		}
		if quotaErr.Resource != entitlement.ResourceTasks {
			t.Errorf("Resource = %q, want %q", quotaErr.Resource, entitlement.ResourceTasks)
		}
	})

	t.Run("pro tier has no task cap", func(t *testing.T) {
		db := openDB(t)
		u := seedUser(t, db, user.TierPro)
		if err := svc.CheckTaskCreate(db, u, uuid.New()); err != nil {
			t.Errorf("CheckTaskCreate = %v, want nil", err)
		}
	})
}
