package user

import (
	"time"

	"github.com/planora-app/planora/internal/config"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type UserContainer struct {
	Handler *Handler
	Service UserService
	Repo    UserRepository
}

func NewUserContainer(db *gorm.DB, cfg *config.Config) *UserContainer {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
	}

	accessTTL := time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	refreshTTL := time.Duration(cfg.JWT.RefreshTTLMinutes) * time.Minute

	repo := NewRepository(db)
	service := NewService(repo, db, oauthConfig, accessTTL, refreshTTL)
	handler := NewHandler(service, accessTTL)

	return &UserContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
