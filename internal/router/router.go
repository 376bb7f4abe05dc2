package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planora-app/planora/internal/attachment"
	"github.com/planora-app/planora/internal/auth"
	"github.com/planora-app/planora/internal/billing"
	"github.com/planora-app/planora/internal/contact"
	"github.com/planora-app/planora/internal/dashboard"
	"github.com/planora-app/planora/internal/material"
	"github.com/planora-app/planora/internal/middlewares"
	"github.com/planora-app/planora/internal/milestone"
	"github.com/planora-app/planora/internal/parent"
	"github.com/planora-app/planora/internal/program"
	"github.com/planora-app/planora/internal/project"
	"github.com/planora-app/planora/internal/task"
	"github.com/planora-app/planora/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	ProgramHandler    *program.Handler
	ProjectHandler    *project.Handler
	TaskHandler       *task.Handler
	ContactHandler    *contact.Handler
	MilestoneHandler  *milestone.Handler
	MaterialHandler   *material.Handler
	AttachmentHandler *attachment.Handler
	BillingHandler    *billing.Handler
	DashboardHandler  *dashboard.Handler
	CORSOrigins       []string
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.NewCors(cfg.CORSOrigins))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", cfg.UserHandler.Register)
		r.Post("/login", cfg.UserHandler.Login)
		r.Post("/google", cfg.UserHandler.GoogleLogin)
		r.Post("/refresh", cfg.UserHandler.RefreshToken)
		r.Post("/logout", auth.NewHandler().Logout)
	})

	// the provider calls the webhook unauthenticated; the signature
	// check inside the handler is the gate
	r.Post("/billing/webhook", cfg.BillingHandler.Webhook)
	r.Get("/billing/plans", cfg.BillingHandler.Plans)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/programs", program.Routes(cfg.ProgramHandler))
		r.Mount("/projects", project.Routes(cfg.ProjectHandler))
		r.Mount("/tasks", task.Routes(cfg.TaskHandler))
		r.Mount("/contacts", contact.Routes(cfg.ContactHandler))
		r.Mount("/milestones", milestone.Routes(cfg.MilestoneHandler))
		r.Mount("/materials", material.Routes(cfg.MaterialHandler))
		r.Mount("/billing", billing.Routes(cfg.BillingHandler))
		r.Mount("/dashboard", dashboard.Routes(cfg.DashboardHandler))
		r.Mount("/users", user.Routes(cfg.UserHandler))

		r.Get("/programs/{programId}/projects", cfg.ProjectHandler.ListByProgram)
		r.Post("/projects/{projectId}/tasks", cfg.TaskHandler.CreateForProject)
		r.Get("/projects/{projectId}/tasks", cfg.TaskHandler.ListByProject)

		r.Get("/programs/{programId}/milestones", cfg.MilestoneHandler.ListForParent(parent.KindProgram, "programId"))
		r.Post("/programs/{programId}/milestones", cfg.MilestoneHandler.CreateForParent(parent.KindProgram, "programId"))
		r.Get("/projects/{projectId}/milestones", cfg.MilestoneHandler.ListForParent(parent.KindProject, "projectId"))
		r.Post("/projects/{projectId}/milestones", cfg.MilestoneHandler.CreateForParent(parent.KindProject, "projectId"))

		r.Get("/programs/{programId}/materials", cfg.MaterialHandler.ListForParent(parent.KindProgram, "programId"))
		r.Post("/programs/{programId}/materials", cfg.MaterialHandler.CreateForParent(parent.KindProgram, "programId"))
		r.Get("/projects/{projectId}/materials", cfg.MaterialHandler.ListForParent(parent.KindProject, "projectId"))
		r.Post("/projects/{projectId}/materials", cfg.MaterialHandler.CreateForParent(parent.KindProject, "projectId"))
		r.Get("/tasks/{taskId}/materials", cfg.MaterialHandler.ListForParent(parent.KindTask, "taskId"))
		r.Post("/tasks/{taskId}/materials", cfg.MaterialHandler.CreateForParent(parent.KindTask, "taskId"))

		r.Get("/programs/{programId}/contacts", cfg.AttachmentHandler.ListContacts(parent.KindProgram, "programId"))
		r.Post("/programs/{programId}/contacts", cfg.AttachmentHandler.Assign(parent.KindProgram, "programId"))
		r.Delete("/programs/{programId}/contacts/{contactId}", cfg.AttachmentHandler.Unassign(parent.KindProgram, "programId"))
		r.Get("/projects/{projectId}/contacts", cfg.AttachmentHandler.ListContacts(parent.KindProject, "projectId"))
		r.Post("/projects/{projectId}/contacts", cfg.AttachmentHandler.Assign(parent.KindProject, "projectId"))
		r.Delete("/projects/{projectId}/contacts/{contactId}", cfg.AttachmentHandler.Unassign(parent.KindProject, "projectId"))
		r.Get("/tasks/{taskId}/contacts", cfg.AttachmentHandler.ListContacts(parent.KindTask, "taskId"))
		r.Post("/tasks/{taskId}/contacts", cfg.AttachmentHandler.Assign(parent.KindTask, "taskId"))
		r.Delete("/tasks/{taskId}/contacts/{contactId}", cfg.AttachmentHandler.Unassign(parent.KindTask, "taskId"))
	})
	return r
}
