package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskan/internal/models"
	"taskan/internal/store"
)

// AuthService implements the identity surface: account creation, email
// sessions and the opaque federated-login capability. Sessions are plain
// bearer tokens held in memory; a restart logs everyone out, which the
// dashboard handles by routing back to login.
type AuthService struct {
	users     store.UserRepository
	providers map[string]string // provider -> authorize URL
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]string // token -> user id
}

// NewAuthService creates an AuthService. providers maps federated
// provider names ("google", "github") to their authorize URLs; an absent
// entry makes BeginFederatedLogin fail with ErrServiceUnavailable.
func NewAuthService(users store.UserRepository, providers map[string]string, logger *zap.Logger) *AuthService {
	if providers == nil {
		providers = map[string]string{}
	}
	return &AuthService{
		users:     users,
		providers: providers,
		logger:    logger,
		sessions:  make(map[string]string),
	}
}

// CreateAccount registers a new user and returns it.
func (s *AuthService) CreateAccount(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:    uuid.New().String(),
		Name:  name,
		Email: email,
	}
	if err := s.users.Create(ctx, user, string(hash)); err != nil {
		if errors.Is(err, models.ErrValidation) {
			return nil, fmt.Errorf("%w: email already registered", models.ErrValidation)
		}
		return nil, err
	}
	s.logger.Info("account created", zap.String("user_id", user.ID))
	return user, nil
}

// CreateSession checks credentials and returns a session token with the
// logged-in user. Wrong email and wrong password are indistinguishable.
func (s *AuthService) CreateSession(ctx context.Context, email, password string) (string, *models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, hash, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, models.ErrNotAuthenticated
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return "", nil, models.ErrNotAuthenticated
	}

	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = user.ID
	s.mu.Unlock()

	s.logger.Info("session created", zap.String("user_id", user.ID))
	return token, user, nil
}

// CurrentSession resolves a bearer token to its user.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (*models.User, error) {
	s.mu.RLock()
	userID, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return nil, models.ErrNotAuthenticated
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotAuthenticated
		}
		return nil, err
	}
	return user, nil
}

// EndSession invalidates a token. Unknown tokens are a no-op.
func (s *AuthService) EndSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// BeginFederatedLogin returns the authorize URL for a provider. The
// redirect flow itself is opaque to this service; it never inspects
// provider tokens.
func (s *AuthService) BeginFederatedLogin(provider string) (string, error) {
	url, ok := s.providers[provider]
	if !ok || url == "" {
		return "", fmt.Errorf("%w: provider %q not configured", models.ErrServiceUnavailable, provider)
	}
	return url, nil
}
