// Package services contains server-side business logic. This file implements
// UserService, which handles registration, credential checks, session token
// lifecycle, and account profile changes.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Shikhar-srivastav/task-manager/internal/common"
	"github.com/Shikhar-srivastav/task-manager/internal/dbx"
	"github.com/Shikhar-srivastav/task-manager/internal/logging"
	"github.com/Shikhar-srivastav/task-manager/internal/server/allowlist"
	"github.com/Shikhar-srivastav/task-manager/internal/server/auth"
	"github.com/Shikhar-srivastav/task-manager/internal/server/config"
	"github.com/Shikhar-srivastav/task-manager/internal/server/mail"
	"github.com/Shikhar-srivastav/task-manager/internal/server/models"
	"github.com/Shikhar-srivastav/task-manager/internal/server/repositories/repomanager"
)

// dummyPasswordHash is compared against when a login hits an unknown email,
// so both branches cost one bcrypt verification.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const minPasswordLength = 7

// Session bundles an authenticated user with the token that proves it.
type Session struct {
	User  *models.User
	Token string
}

// UserService provides account operations:
//   - Register / Login: create accounts and verify credentials
//   - Authenticate: resolve a bearer token to its live session
//   - Logout / LogoutAll: revoke session tokens
//   - Update / Delete: profile changes and account removal
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	allow           *allowlist.Registry
	mail            mail.Dispatcher
	logger          logging.Logger
	jwtSecret       []byte
	sessionValidity time.Duration
	bcryptCost      int
	mailTimeout     time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, allow *allowlist.Registry,
	dispatcher mail.Dispatcher, logger logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:              db,
		repomanager:     m,
		allow:           allow,
		mail:            dispatcher,
		logger:          logger,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionTokenValidity,
		bcryptCost:      cfg.BcryptCost,
		mailTimeout:     30 * time.Second,
	}
}

func validateRegistration(name string, email string, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", common.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
	}
	return nil
}

// Register creates an account and signs it in, issuing the first session
// token. The welcome email is sent in the background; delivery failure never
// fails the registration.
func (s *UserService) Register(ctx context.Context, name string, email string, password string, age *int64) (*Session, error) {
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Age:          age,
	}

	var session *Session
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}
		token, err := s.issueToken(ctx, created.ID, tx)
		if err != nil {
			return err
		}
		session = &Session{User: created, Token: token}
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: email is already registered", common.ErrValidation)
		}
		return nil, err
	}

	s.sendMailAsync("welcome", session.User.Email, session.User.Name, s.mail.SendWelcome)

	return session, nil
}

// Login verifies the credentials and issues a new session token. Unknown
// emails and wrong passwords are indistinguishable to the caller, and both
// paths perform a bcrypt comparison.
func (s *UserService) Login(ctx context.Context, email string, password string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID, s.db)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &Session{User: user, Token: token}, nil
}

// Authenticate resolves a bearer token to the account it belongs to. The
// token must verify cryptographically AND still be present in the live set;
// a Logout anywhere removes it from the set and invalidates it here.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	stored, err := s.repomanager.SessionTokens(s.db).Find(ctx, token)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	if stored.UserID != userID {
		return nil, common.ErrUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// Logout revokes a single session token. Revoking an already-revoked token
// succeeds.
func (s *UserService) Logout(ctx context.Context, userID string, token string) error {
	return s.repomanager.SessionTokens(s.db).Delete(ctx, userID, token)
}

// LogoutAll revokes every live session of the user.
func (s *UserService) LogoutAll(ctx context.Context, userID string) error {
	return s.repomanager.SessionTokens(s.db).DeleteAllForUser(ctx, userID)
}

// Get returns the account profile.
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// Update applies a partial profile update. Every key in the payload must be
// on the users allowlist; any unknown key rejects the whole request. A new
// password is validated and re-hashed before storage.
func (s *UserService) Update(ctx context.Context, userID string, payload map[string]json.RawMessage) (*models.User, error) {
	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	if err := s.allow.Validate("users", fields); err != nil {
		return nil, err
	}

	upd := &models.UserUpdate{}

	if raw, ok := payload["name"]; ok {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: name is invalid", common.ErrValidation)
		}
		name = strings.TrimSpace(name)
		upd.Name = &name
	}
	if raw, ok := payload["email"]; ok {
		var email string
		if err := json.Unmarshal(raw, &email); err != nil || !strings.Contains(email, "@") {
			return nil, fmt.Errorf("%w: email is invalid", common.ErrValidation)
		}
		email = strings.ToLower(strings.TrimSpace(email))
		upd.Email = &email
	}
	if raw, ok := payload["password"]; ok {
		var password string
		if err := json.Unmarshal(raw, &password); err != nil || len(password) < minPasswordLength {
			return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, minPasswordLength)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
		if err != nil {
			return nil, common.ErrInternal
		}
		hashStr := string(hash)
		upd.PasswordHash = &hashStr
	}
	if raw, ok := payload["age"]; ok {
		var age int64
		if err := json.Unmarshal(raw, &age); err != nil || age < 0 {
			return nil, fmt.Errorf("%w: age is invalid", common.ErrValidation)
		}
		upd.Age = &age
	}

	user, err := s.repomanager.Users(s.db).Update(ctx, userID, upd)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: email is already registered", common.ErrValidation)
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the account and returns the deleted profile. Tasks and
// session tokens cascade at the schema level. The farewell email is sent in
// the background.
func (s *UserService) Delete(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := repo.Delete(ctx, userID); err != nil {
		return nil, err
	}

	s.sendMailAsync("farewell", user.Email, user.Name, s.mail.SendFarewell)

	return user, nil
}

// sendMailAsync fires a lifecycle email without blocking the request; the
// outcome is only logged.
func (s *UserService) sendMailAsync(kind string, email string, name string,
	send func(ctx context.Context, email string, name string) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.mailTimeout)
		defer cancel()
		if err := send(ctx, email, name); err != nil {
			s.logger.Error(ctx, fmt.Sprintf("error sending %s email", kind), "email", email, "error", err)
		}
	}()
}

func (s *UserService) issueToken(ctx context.Context, userID string, db dbx.DBTX) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return "", err
	}
	if err := s.repomanager.SessionTokens(db).Create(ctx, userID, token); err != nil {
		return "", err
	}
	return token, nil
}
