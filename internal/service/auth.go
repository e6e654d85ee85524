package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/car-registry/backend/internal/db"
	"github.com/car-registry/backend/internal/logging"
	"github.com/car-registry/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the repository the authenticator needs.
type UserStore interface {
	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, bool, error)
}

type AuthService struct {
	store  UserStore
	tokens *TokenService
	log    logging.Logger
}

// dummyHash keeps the unknown-email login path paying the same bcrypt cost
// as a real comparison, so the two failure causes stay indistinguishable.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("car-registry-dummy"), bcrypt.DefaultCost)

func NewAuthService(store UserStore, tokens *TokenService, log logging.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, log: log}
}

// Signup persists a new credential and issues a token for it. The raw
// password is bcrypt-hashed; plaintext never reaches the store.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if req.Role != model.RoleClient && req.Role != model.RoleVendor {
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	if req.Password == "" {
		return "", fmt.Errorf("%w: empty password", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user, err := s.store.CreateUser(ctx, model.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return "", fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return "", err
	}

	s.log.Info(ctx, "user signed up", "email", user.Email, "role", user.Role)
	return s.tokens.Issue(user.Email)
}

// Login verifies the credentials and issues a token. Unknown email and
// wrong password both come back as the same ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, found, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if !found {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrUnauthorized
	}

	s.log.Info(ctx, "user logged in", "email", user.Email)
	return s.tokens.Issue(user.Email)
}
