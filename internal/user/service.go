package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/planora-app/planora/internal/auth"
	"github.com/planora-app/planora/internal/config"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*TokenPair, error)
	GoogleLogin(ctx context.Context, code string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo        UserRepository
	db          *gorm.DB
	oauthConfig *oauth2.Config
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewService(repo UserRepository, db *gorm.DB, oauthConfig *oauth2.Config, accessTTL, refreshTTL time.Duration) UserService {
	return &userService{
		repo:        repo,
		db:          db,
		oauthConfig: oauthConfig,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	if existing, err := s.repo.FindByUsername(dto.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}

	if existing, err := s.repo.FindByEmail(dto.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := User{
		ID:                 uuid.New(),
		Username:           dto.Username,
		Email:              dto.Email,
		PasswordHash:       string(hash),
		SubscriptionTier:   TierFree,
		SubscriptionStatus: StatusActive,
	}

	if err := s.repo.Create(&u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return toResponse(&u), nil
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*TokenPair, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByUsername(dto.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		log.WithField("user_id", u.ID).Warn("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(u)
}

func (s *userService) GoogleLogin(ctx context.Context, code string) (*TokenPair, error) {
	log := config.WithContext(ctx)

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		log.WithError(err).Warn("Google code exchange failed")
		return nil, fmt.Errorf("google code exchange failed: %w", err)
	}

	info, err := fetchGoogleUserInfo(ctx, s.oauthConfig, token)
	if err != nil {
		log.WithError(err).Error("Failed to fetch Google user info")
		return nil, err
	}

	u, err := s.repo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}

	if u == nil {
		u = &User{
			ID:                 uuid.New(),
			Username:           usernameFromEmail(info.Email),
			Email:              info.Email,
			SubscriptionTier:   TierFree,
			SubscriptionStatus: StatusActive,
		}
		if err := s.repo.Create(u); err != nil {
			log.WithError(err).Error("Failed to create user from Google login")
			return nil, err
		}
		log.WithField("user_id", u.ID).Info("User created from Google login")
	}

	if token.RefreshToken != "" {
		encrypted, err := config.Encrypt(token.RefreshToken)
		if err != nil {
			return nil, err
		}
		u.GoogleRefreshToken = encrypted
		if err := s.repo.Update(u); err != nil {
			return nil, err
		}
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return "", err
	}
	return auth.GenerateJWT(claims.UserID, claims.Role, s.accessTTL)
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return toResponse(u), nil
}

func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	log := config.WithContext(ctx)

	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(tx, id)
	})
	if err != nil {
		log.WithError(err).Error("Failed to delete account")
		return err
	}

	log.WithField("user_id", id).Info("Account deleted")
	return nil
}

func (s *userService) issueTokens(u *User) (*TokenPair, error) {
	access, err := auth.GenerateJWT(u.ID.String(), "user", s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateJWT(u.ID.String(), "user", s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func fetchGoogleUserInfo(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*googleUserInfo, error) {
	client := cfg.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("google userinfo missing email")
	}
	return &info, nil
}

func usernameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	return local + "-" + uuid.NewString()[:8]
}
