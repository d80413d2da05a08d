package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	repo "github.com/oksasatya/relief-directory/internal/domain/repository"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

// RequestMeta carries caller details recorded in the audit trail
type RequestMeta struct {
	IP        string
	UserAgent string
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is the result of a successful login
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Identity is the verified caller behind a session token
type Identity struct {
	UserID string
	Email  string
}

type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Audit  repo.AuditRepository
	Logger *logrus.Logger

	cost      int
	dummyHash string
}

// NewAuthService builds the service. A dummy hash with the same cost is
// prepared up front so unknown-email logins pay for one bcrypt comparison.
func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, audit repo.AuditRepository, logger *logrus.Logger, cost int) (*AuthService, error) {
	cost = helpers.NormalizeCost(cost)
	dummy, err := helpers.HashPassword(uuid.NewString(), cost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		Users:     users,
		JWT:       jwt,
		Audit:     audit,
		Logger:    logger,
		cost:      cost,
		dummyHash: dummy,
	}, nil
}

// Register creates a user and returns its id.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta RequestMeta) (string, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" || strings.TrimSpace(in.Password) == "" {
		return "", invalid("Missing required fields.")
	}
	if len(in.Password) > helpers.MaxPasswordBytes {
		return "", invalid("Password must be at most 72 bytes.")
	}

	// early exit only; the unique index decides under concurrency
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return "", ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return "", internalErr("Internal server error during registration.", err)
	}

	hash, err := helpers.HashPassword(in.Password, s.cost)
	if err != nil {
		return "", internalErr("Internal server error during registration.", err)
	}

	u := &entity.User{Email: email, Name: name, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return "", ErrDuplicateEmail
		case errors.Is(err, repo.ErrConstraint):
			return "", invalid("Missing required fields.")
		}
		return "", internalErr("Internal server error during registration.", err)
	}

	s.record(ctx, entity.AuditEntry{UserID: u.ID, Email: email, Action: entity.AuditRegister, IP: meta.IP, UserAgent: meta.UserAgent})
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	return u.ID, nil
}

// Login checks credentials and mints a session token. Unknown email and wrong
// password return the same error after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, in LoginInput, meta RequestMeta) (*Session, error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, invalid("Missing email or password.")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, internalErr("Internal server error during login.", err)
	}

	hash := s.dummyHash
	if u != nil {
		hash = u.PasswordHash
	}
	match := helpers.CompareHashAndPassword(hash, in.Password)
	if u == nil || !match {
		entry := entity.AuditEntry{Email: email, Action: entity.AuditLoginFailure, IP: meta.IP, UserAgent: meta.UserAgent}
		if u != nil {
			entry.UserID = u.ID
		}
		s.record(ctx, entry)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.GenerateSessionToken(u.ID, u.Email)
	if err != nil {
		return nil, internalErr("Internal server error during login.", err)
	}

	s.record(ctx, entity.AuditEntry{UserID: u.ID, Email: u.Email, Action: entity.AuditLoginSuccess, IP: meta.IP, UserAgent: meta.UserAgent})
	return &Session{Token: token, UserID: u.ID, Email: u.Email, ExpiresAt: exp}, nil
}

// Verify resolves a session token. Every failure is ErrUnauthorized.
func (s *AuthService) Verify(token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	claims, err := s.JWT.ParseSessionToken(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return &Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// record writes an audit entry; failures are logged and swallowed
func (s *AuthService) record(ctx context.Context, e entity.AuditEntry) {
	recordAudit(ctx, s.Audit, s.Logger, e)
}

func recordAudit(ctx context.Context, audit repo.AuditRepository, logger *logrus.Logger, e entity.AuditEntry) {
	if audit == nil {
		return
	}
	if err := audit.Insert(ctx, e); err != nil {
		helpers.LogError(logger, "audit insert failed", err, logrus.Fields{"action": e.Action})
	}
}
