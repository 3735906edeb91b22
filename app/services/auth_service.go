package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// AuthConfig tunes password hashing and session length.
type AuthConfig struct {
	SessionLifetime time.Duration
	BcryptCost      int
}

// LoginResult is what a successful registration or login hands back.
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// AuthService handles registration, login and session lookup
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	signer      *TokenSigner
	config      AuthConfig
	now         func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, signer *TokenSigner, config AuthConfig) *AuthService {
	if config.SessionLifetime <= 0 {
		config.SessionLifetime = 24 * time.Hour
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		signer:      signer,
		config:      config,
		now:         time.Now,
	}
}

// Register creates an account and logs it in. The first account is an admin.
func (s *AuthService) Register(ctx context.Context, form models.RegisterForm) (*LoginResult, error) {
	form.Email = models.NormalizeEmail(form.Email)
	form.Name = models.NormalizeName(form.Name)
	if err := models.ValidateForm(form); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, form.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := HashPassword(form.Password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	// Anyone registered before us has a lower id, so only an empty table
	// leaves a chance of being first.
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	user := &models.User{
		Name:     form.Name,
		Email:    form.Email,
		Password: hash,
		Role:     models.RoleMember,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if count == 0 {
		first, err := s.userRepo.ClaimFirstAdmin(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to settle role of user %d: %w", user.ID, err)
		}
		if first {
			user.Role = models.RoleAdmin
		}
	}
	log.Printf("registered user %d (%s)", user.ID, user.Role)

	return s.openSession(user)
}

// Login checks credentials and opens a new session
func (s *AuthService) Login(ctx context.Context, form models.LoginForm) (*LoginResult, error) {
	form.Email = models.NormalizeEmail(form.Email)
	if err := models.ValidateForm(form); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, form.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUnknownEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	if err := CheckPassword(user.Password, form.Password); err != nil {
		if !errors.Is(err, ErrInvalidPassword) {
			log.Printf("password check for user %d failed: %v", user.ID, err)
		}
		return nil, ErrInvalidPassword
	}

	return s.openSession(user)
}

// Logout ends the session behind a token. A token that does not parse has
// nothing to end.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	sid, _, err := s.signer.Parse(token)
	if err != nil {
		return
	}
	if err := s.sessionRepo.Delete(sid); err != nil {
		log.Printf("failed to delete session %s: %v", sid, err)
	}
}

// Resolve maps a token onto the logged-in user and its session id.
// Every failure is reported as ErrInvalidSession.
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.User, string, error) {
	sid, uid, err := s.signer.Parse(token)
	if err != nil {
		return nil, "", err
	}

	session, err := s.sessionRepo.Get(sid)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if session.UserID != uid {
		return nil, "", fmt.Errorf("%w: session %s belongs to another user", ErrInvalidSession, sid)
	}

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	return user, sid, nil
}

func (s *AuthService) openSession(user *models.User) (*LoginResult, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.SessionLifetime),
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	token, err := s.signer.Sign(session)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}
