package attachment_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/planora-app/planora/internal/attachment"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/guard"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
	"github.com/planora-app/planora/internal/user"
)

type fixture struct {
	db      *gorm.DB
	service attachment.AttachmentService
	owner   *user.User
	other   *user.User
	program *program.Program
	contact *contact.Contact
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&user.User{}, &contact.Contact{}, &program.Program{}, &project.Project{}, &task.Task{},
		&attachment.ProgramContact{}, &attachment.ProjectContact{}, &attachment.TaskContact{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	userRepo := user.NewRepository(db)
	entitlements := entitlement.NewService()
	contactService := contact.NewService(db, contact.NewRepository(db), userRepo, entitlements)
	programService := program.NewService(db, program.NewRepository(db), userRepo, entitlements)
	projectService := project.NewService(db, project.NewRepository(db), programService, userRepo, entitlements)
	taskService := task.NewService(db, task.NewRepository(db), projectService, userRepo, entitlements)
	service := attachment.NewAttachmentService(
		attachment.NewAttachmentRepository(db),
		contactService, programService, projectService, taskService,
	)

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
	c := &contact.Contact{ID: uuid.New(), UserID: owner.ID, Name: "Ana", Email: "ana@example.com"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("failed to seed contact: %v", err)
	}

	return &fixture{db: db, service: service, owner: owner, other: other, program: p, contact: c}
}

func (f *fixture) linkCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	if err := f.db.Model(&attachment.ProgramContact{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count links: %v", err)
	}
	return count
}

func TestAssign(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ref := parent.ForProgram(f.program.ID)

	t.Run("creates the link once", func(t *testing.T) {
		if err := f.service.Assign(ctx, ref, f.contact.ID, f.owner.ID); err != nil {
			t.Fatalf("Assign: %v", err)
		}
		if got := f.linkCount(t); got != 1 {
			t.Errorf("link count = %d, want 1", got)
		}
	})

	t.Run("repeat assign is a no-op", func(t *testing.T) {
		if err := f.service.Assign(ctx, ref, f.contact.ID, f.owner.ID); err != nil {
			t.Fatalf("Assign replay: %v", err)
		}
		if got := f.linkCount(t); got != 1 {
			t.Errorf("link count = %d, want 1 after replay", got)
		}
	})

	t.Run("non-owner is denied", func(t *testing.T) {
		err := f.service.Assign(ctx, ref, f.contact.ID, f.other.ID)
		if !errors.Is(err, guard.ErrAccessDenied) {
			t.Errorf("Assign as non-owner = %v, want ErrAccessDenied", err)
		}
	})
}

func TestUnassign(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ref := parent.ForProgram(f.program.ID)

	if err := f.service.Assign(ctx, ref, f.contact.ID, f.owner.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	t.Run("removes the link", func(t *testing.T) {
		if err := f.service.Unassign(ctx, ref, f.contact.ID, f.owner.ID); err != nil {
			t.Fatalf("Unassign: %v", err)
		}
		if got := f.linkCount(t); got != 0 {
			t.Errorf("link count = %d, want 0", got)
		}
	})

	t.Run("unassigning a missing link is a no-op", func(t *testing.T) {
		if err := f.service.Unassign(ctx, ref, f.contact.ID, f.owner.ID); err != nil {
			t.Errorf("Unassign of missing link = %v, want nil", err)
		}
	})
}

func TestListContacts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	ref := parent.ForProgram(f.program.ID)

	if err := f.service.Assign(ctx, ref, f.contact.ID, f.owner.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	contacts, err := f.service.ListContacts(ctx, ref, f.owner.ID)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if len(contacts) != 1 || contacts[0].ID != f.contact.ID {
		t.Errorf("ListContacts = %v, want the one linked contact", contacts)
	}
}
