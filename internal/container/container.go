package container

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/planora-app/planora/internal/attachment"
	"github.com/planora-app/planora/internal/auth"
	"github.com/planora-app/planora/internal/billing"
	"github.com/planora-app/planora/internal/config"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/dashboard"
	"github.com/planora-app/planora/internal/entitlement"
	"github.com/planora-app/planora/internal/material"
	"github.com/planora-app/planora/internal/milestone"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/router"
	"github.com/planora-app/planora/internal/task"
	"github.com/planora-app/planora/internal/user"
)

type Container struct {
	Config              *config.Config
	UserContainer       *user.UserContainer
	ProgramContainer    *program.ProgramContainer
	ProjectContainer    *project.ProjectContainer
	TaskContainer       *task.TaskContainer
	ContactContainer    *contact.ContactContainer
	MilestoneContainer  *milestone.MilestoneContainer
	MaterialContainer   *material.MaterialContainer
	AttachmentContainer *attachment.AttachmentContainer
	BillingContainer    *billing.BillingContainer
	DashboardContainer  *dashboard.DashboardContainer
}

func New() *Container {
	config.Init()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	auth.Init(cfg.JWT.Secret)
	config.InitCrypto(cfg.Crypto.Key)

	if err := config.Connect(context.Background(), cfg.Database.DSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := Migrate(config.DB); err != nil {
		log.Fatalf("failed to migrate DB: %v", err)
	}

	entitlements := entitlement.NewService()

	userContainer := user.NewUserContainer(config.DB, cfg)
	programContainer := program.NewProgramContainer(config.DB, userContainer.Repo, entitlements)
	projectContainer := project.NewProjectContainer(config.DB, programContainer.Service, userContainer.Repo, entitlements)
	taskContainer := task.NewTaskContainer(config.DB, projectContainer.Service, userContainer.Repo, entitlements)
	contactContainer := contact.NewContactContainer(config.DB, userContainer.Repo, entitlements)
	milestoneContainer := milestone.NewMilestoneContainer(config.DB, programContainer.Service, projectContainer.Service)
	materialContainer := material.NewMaterialContainer(config.DB, programContainer.Service, projectContainer.Service, taskContainer.Service)
	attachmentContainer := attachment.NewAttachmentContainer(
		config.DB,
		contactContainer.Service,
		programContainer.Service,
		projectContainer.Service,
		taskContainer.Service,
	)
	billingContainer := billing.NewBillingContainer(cfg.Stripe, userContainer.Repo)
	dashboardContainer := dashboard.NewDashboardContainer(config.DB, programContainer.Repo, projectContainer.Repo)

	return &Container{
		Config:              cfg,
		UserContainer:       userContainer,
		ProgramContainer:    programContainer,
		ProjectContainer:    projectContainer,
		TaskContainer:       taskContainer,
		ContactContainer:    contactContainer,
		MilestoneContainer:  milestoneContainer,
		MaterialContainer:   materialContainer,
		AttachmentContainer: attachmentContainer,
		BillingContainer:    billingContainer,
		DashboardContainer:  dashboardContainer,
	}
}

// Router builds the HTTP handler from the wired feature handlers.
func (c *Container) Router() http.Handler {
	return router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		ProgramHandler:    c.ProgramContainer.Handler,
		ProjectHandler:    c.ProjectContainer.Handler,
		TaskHandler:       c.TaskContainer.Handler,
		ContactHandler:    c.ContactContainer.Handler,
		MilestoneHandler:  c.MilestoneContainer.Handler,
		MaterialHandler:   c.MaterialContainer.Handler,
		AttachmentHandler: c.AttachmentContainer.Handler,
		BillingHandler:    c.BillingContainer.Handler,
		DashboardHandler:  c.DashboardContainer.Handler,
		CORSOrigins:       c.Config.CORS.Origins,
	})
}
