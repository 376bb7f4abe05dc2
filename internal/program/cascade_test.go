package program_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/attachment"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/material"
	"github.com/planora-app/planora/internal/milestone"
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
	err = db.AutoMigrate(
		&user.User{}, &contact.Contact{}, &program.Program{}, &project.Project{}, &task.Task{},
		&milestone.Milestone{}, &material.Material{},
		&attachment.ProgramContact{}, &attachment.ProjectContact{}, &attachment.TaskContact{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

// Builds a program with two projects of two tasks each, plus milestones,
// materials and contact links hanging off every level, then deletes the
// program and checks that nothing survives.
func TestDeleteCascade(t *testing.T) {
	db := openDB(t)

	owner := &user.User{ID: uuid.New(), Username: "owner", Email: "owner@example.com", SubscriptionTier: user.TierBusiness}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	c := &contact.Contact{ID: uuid.New(), UserID: owner.ID, Name: "Ana"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed contact: %v", err)
	}

	p := &program.Program{ID: uuid.New(), UserID: owner.ID, Name: "rollout", Status: program.StatusActive}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed program: %v", err)
	}
	if err := db.Create(&attachment.ProgramContact{ProgramID: p.ID, ContactID: c.ID}).Error; err != nil {
		t.Fatalf("seed program link: %v", err)
	}
	pid := p.ID
	if err := db.Create(&milestone.Milestone{ID: uuid.New(), ProgramID: &pid, Name: "kickoff"}).Error; err != nil {
		t.Fatalf("seed milestone: %v", err)
	}
	if err := db.Create(&material.Material{ID: uuid.New(), ProgramID: &pid, Name: "signage", Quantity: 1}).Error; err != nil {
		t.Fatalf("seed material: %v", err)
	}

	for i := 0; i < 2; i++ {
		proj := &project.Project{ID: uuid.New(), UserID: owner.ID, ProgramID: &pid, Name: fmt.Sprintf("proj-%d", i), Status: project.StatusActive}
		if err := db.Create(proj).Error; err != nil {
			t.Fatalf("seed project: %v", err)
		}
		projID := proj.ID
		if err := db.Create(&attachment.ProjectContact{ProjectID: projID, ContactID: c.ID}).Error; err != nil {
			t.Fatalf("seed project link: %v", err)
		}
		if err := db.Create(&milestone.Milestone{ID: uuid.New(), ProjectID: &projID, Name: "phase"}).Error; err != nil {
			t.Fatalf("seed project milestone: %v", err)
		}
		if err := db.Create(&material.Material{ID: uuid.New(), ProjectID: &projID, Name: "lumber", Quantity: 2}).Error; err != nil {
			t.Fatalf("seed project material: %v", err)
		}

		for j := 0; j < 2; j++ {
			tk := &task.Task{ID: uuid.New(), ProjectID: projID, Name: fmt.Sprintf("task-%d-%d", i, j), Status: task.StatusNotStarted, Priority: task.PriorityLow}
			if err := db.Create(tk).Error; err != nil {
				t.Fatalf("seed task: %v", err)
			}
			if err := db.Create(&attachment.TaskContact{TaskID: tk.ID, ContactID: c.ID}).Error; err != nil {
				t.Fatalf("seed task link: %v", err)
			}
			tkID := tk.ID
			if err := db.Create(&material.Material{ID: uuid.New(), TaskID: &tkID, Name: "nails", Quantity: 100}).Error; err != nil {
				t.Fatalf("seed task material: %v", err)
			}
		}
	}

	userRepo := user.NewRepository(db)
	service := program.NewService(db, program.NewRepository(db), userRepo, entitlement.NewService())

	if err := service.Delete(context.Background(), p.ID, owner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	remaining := map[string]any{
		"programs":         &program.Program{},
		"projects":         &project.Project{},
		"tasks":            &task.Task{},
		"milestones":       &milestone.Milestone{},
		"materials":        &material.Material{},
		"program_contacts": &attachment.ProgramContact{},
		"project_contacts": &attachment.ProjectContact{},
		"task_contacts":    &attachment.TaskContact{},
	}
	for table, model := range remaining {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s has %d orphan rows after cascade", table, count)
		}
	}

	// unrelated rows survive
	var contacts int64
	if err := db.Model(&contact.Contact{}).Count(&contacts).Error; err != nil {
		t.Fatalf("count contacts: %v", err)
	}
	if contacts != 1 {
		t.Errorf("contacts = %d, want 1 (cascade must not delete the address book)", contacts)
	}
}
