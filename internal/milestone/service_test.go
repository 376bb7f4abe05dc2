package milestone_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/guard"
	"github.com/planora-app/planora/internal/milestone"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/user"
)

type fixture struct {
	db      *gorm.DB
	service milestone.MilestoneService
	owner   *user.User
	other   *user.User
	program *program.Program
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &program.Program{}, &project.Project{}, &milestone.Milestone{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	userRepo := user.NewRepository(db)
	entitlements := entitlement.NewService()
	programService := program.NewService(db, program.NewRepository(db), userRepo, entitlements)
	projectService := project.NewService(db, project.NewRepository(db), programService, userRepo, entitlements)
	service := milestone.NewService(milestone.NewRepository(db), programService, projectService)

	owner := &user.User{ID: uuid.New(), Username: "owner", Email: "owner@example.com", SubscriptionTier: user.TierBusiness}
	other := &user.User{ID: uuid.New(), Username: "other", Email: "other@example.com", SubscriptionTier: user.TierBusiness}
	for _, u := range []*user.User{owner, other} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("failed to seed user: %v", err)
		}
	}

	p := &program.Program{ID: uuid.New(), UserID: owner.ID, Name: "rollout", Status: program.StatusActive}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed program: %v", err)
	}

	return &fixture{db: db, service: service, owner: owner, other: other, program: p}
}

func TestToggle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.service.Create(ctx, parent.ForProgram(f.program.ID), f.owner.ID, milestone.MilestoneForm{Name: "beta"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Achieved || !m.AchievedDate.IsZero() {
		t.Fatal("new milestone must start unachieved with no date")
	}

	t.Run("toggle sets flag and date", func(t *testing.T) {
		got, err := f.service.Toggle(ctx, m.ID, f.owner.ID)
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if !got.Achieved {
			t.Error("Achieved = false after toggle")
		}
		if got.AchievedDate.IsZero() {
			t.Error("AchievedDate empty while achieved")
		}
	})

	t.Run("second toggle restores the original state", func(t *testing.T) {
		got, err := f.service.Toggle(ctx, m.ID, f.owner.ID)
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if got.Achieved {
			t.Error("Achieved = true after double toggle")
		}
		if !got.AchievedDate.IsZero() {
			t.Error("AchievedDate set while unachieved")
		}
	})
}

func TestCreateRejectsTaskParent(t *testing.T) {
	f := setup(t)

	_, err := f.service.Create(context.Background(), parent.ForTask(uuid.New()), f.owner.ID, milestone.MilestoneForm{Name: "bad"})
	if !errors.Is(err, milestone.ErrInvalidParent) {
		t.Errorf("Create = %v, want ErrInvalidParent", err)
	}
}

func TestOwnershipGuard(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.service.Create(ctx, parent.ForProgram(f.program.ID), f.owner.ID, milestone.MilestoneForm{Name: "beta"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := f.service.GetByID(ctx, m.ID, f.other.ID); !errors.Is(err, guard.ErrAccessDenied) {
		t.Errorf("GetByID as non-owner = %v, want ErrAccessDenied", err)
	}
	if _, err := f.service.Toggle(ctx, m.ID, f.other.ID); !errors.Is(err, guard.ErrAccessDenied) {
		t.Errorf("Toggle as non-owner = %v, want ErrAccessDenied", err)
	}
}

func TestDeleteReturnsParent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	m, err := f.service.Create(ctx, parent.ForProgram(f.program.ID), f.owner.ID, milestone.MilestoneForm{Name: "beta"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ref, err := f.service.Delete(ctx, m.ID, f.owner.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if ref.Kind() != parent.KindProgram || ref.ID() != f.program.ID {
		t.Errorf("redirect = %s, want program(%s)", ref, f.program.ID)
	}

	if _, err := f.service.GetByID(ctx, m.ID, f.owner.ID); !errors.Is(err, milestone.ErrMilestoneNotFound) {
		t.Errorf("GetByID after delete = %v, want ErrMilestoneNotFound", err)
	}
}
