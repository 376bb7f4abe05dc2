package material_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/material"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
	"github.com/planora-app/planora/internal/user"
)

type fixture struct {
	db      *gorm.DB
	service material.MaterialService
	owner   *user.User
	project *project.Project
	task    *task.Task
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &program.Program{}, &project.Project{}, &task.Task{}, &material.Material{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	userRepo := user.NewRepository(db)
	entitlements := entitlement.NewService()
	programService := program.NewService(db, program.NewRepository(db), userRepo, entitlements)
	projectService := project.NewService(db, project.NewRepository(db), programService, userRepo, entitlements)
	taskService := task.NewService(db, task.NewRepository(db), projectService, userRepo, entitlements)
	service := material.NewService(material.NewRepository(db), programService, projectService, taskService)

	owner := &user.User{ID: uuid.New(), Username: "owner", Email: "owner@example.com", SubscriptionTier: user.TierBusiness}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	p := &project.Project{ID: uuid.New(), UserID: owner.ID, Name: "build", Status: project.StatusActive}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	tk := &task.Task{ID: uuid.New(), ProjectID: p.ID, Name: "frame walls", Status: task.StatusNotStarted, Priority: task.PriorityHigh}
	if err := db.Create(tk).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	return &fixture{db: db, service: service, owner: owner, project: p, task: tk}
}

func TestCreateDefaults(t *testing.T) {
	f := setup(t)

	m, err := f.service.Create(context.Background(), parent.ForProject(f.project.ID), f.owner.ID, material.MaterialForm{Name: "lumber"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Quantity != 1.0 {
		t.Errorf("Quantity = %v, want 1.0", m.Quantity)
	}
	if m.CostPerUnit != nil {
		t.Errorf("CostPerUnit = %v, want nil", *m.CostPerUnit)
	}
}

func TestRedirectTarget(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	t.Run("project material redirects to its project", func(t *testing.T) {
		m, err := f.service.Create(ctx, parent.ForProject(f.project.ID), f.owner.ID, material.MaterialForm{Name: "paint"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ref, err := f.service.RedirectTarget(ctx, m)
		if err != nil {
			t.Fatalf("RedirectTarget: %v", err)
		}
		if ref.Kind() != parent.KindProject || ref.ID() != f.project.ID {
			t.Errorf("redirect = %s, want project(%s)", ref, f.project.ID)
		}
	})

	t.Run("task material walks up to the project", func(t *testing.T) {
		m, err := f.service.Create(ctx, parent.ForTask(f.task.ID), f.owner.ID, material.MaterialForm{Name: "nails"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ref, err := f.service.RedirectTarget(ctx, m)
		if err != nil {
			t.Fatalf("RedirectTarget: %v", err)
		}
		if ref.Kind() != parent.KindProject || ref.ID() != f.project.ID {
			t.Errorf("redirect = %s, want project(%s)", ref, f.project.ID)
		}
	})

	t.Run("delete reports the same target", func(t *testing.T) {
		m, err := f.service.Create(ctx, parent.ForTask(f.task.ID), f.owner.ID, material.MaterialForm{Name: "screws"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ref, err := f.service.Delete(ctx, m.ID, f.owner.ID)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ref.Kind() != parent.KindProject || ref.ID() != f.project.ID {
			t.Errorf("redirect = %s, want project(%s)", ref, f.project.ID)
		}
	})
}
