package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// AuthService handles signup, sign-in, and profile operations. Passwords
// are stored as bcrypt hashes; successful authentication yields a signed
// bearer token embedding the actor's id, role, and stay.
type AuthService struct {
	actors domain.ActorRepository
	tokens domain.TokenIssuer
}

// NewAuthService creates a service with the given adapters.
func NewAuthService(actors domain.ActorRepository, tokens domain.TokenIssuer) *AuthService {
	return &AuthService{actors: actors, tokens: tokens}
}

// Signup registers a new actor in a stay and returns a signed token.
// The first actor in a stay becomes its admin; later signups are tenants.
func (s *AuthService) Signup(ctx context.Context, username, email, password, stayID string) (string, domain.Actor, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	stayID = strings.TrimSpace(stayID)

	if username == "" {
		return "", domain.Actor{}, &domain.ValidationError{Field: "username", Message: "must not be empty"}
	}
	if email == "" || !strings.Contains(email, "@") {
		return "", domain.Actor{}, &domain.ValidationError{Field: "email", Message: "must be a valid email address"}
	}
	if len(password) < 8 {
		return "", domain.Actor{}, &domain.ValidationError{Field: "password", Message: "must be at least 8 characters"}
	}
	if stayID == "" {
		return "", domain.Actor{}, &domain.ValidationError{Field: "stayId", Message: "must not be empty"}
	}

	if _, err := s.actors.GetByEmail(ctx, stayID, email); err == nil {
		return "", domain.Actor{}, &domain.EmailConflictError{Email: email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Actor{}, fmt.Errorf("hashing password: %w", err)
	}

	count, err := s.actors.CountByStay(ctx, stayID)
	if err != nil {
		return "", domain.Actor{}, fmt.Errorf("counting stay actors: %w", err)
	}
	role := domain.RoleTenant
	if count == 0 {
		role = domain.RoleAdmin
	}

	id, err := generateID()
	if err != nil {
		return "", domain.Actor{}, fmt.Errorf("generating actor id: %w", err)
	}

	actor := domain.NewActor(id, stayID, username, email, string(hash), role)
	if err := s.actors.Create(ctx, actor); err != nil {
		return "", domain.Actor{}, fmt.Errorf("creating actor: %w", err)
	}

	tok, err := s.tokens.Issue(domain.Session{ActorID: actor.ID, Role: actor.Role, StayID: actor.StayID})
	if err != nil {
		return "", domain.Actor{}, fmt.Errorf("issuing token: %w", err)
	}

	return tok, actor, nil
}

// SignIn authenticates an actor within a stay. Every failure mode
// (unknown email, wrong stay, wrong password) collapses into
// ErrInvalidCredentials so the endpoint cannot be used to probe accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password, stayID string) (string, domain.Actor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	stayID = strings.TrimSpace(stayID)

	actor, err := s.actors.GetByEmail(ctx, stayID, email)
	if err != nil {
		if errors.Is(err, domain.ErrActorNotFound) {
			return "", domain.Actor{}, domain.ErrInvalidCredentials
		}
		return "", domain.Actor{}, fmt.Errorf("looking up actor: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(actor.PasswordHash), []byte(password)); err != nil {
		return "", domain.Actor{}, domain.ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(domain.Session{ActorID: actor.ID, Role: actor.Role, StayID: actor.StayID})
	if err != nil {
		return "", domain.Actor{}, fmt.Errorf("issuing token: %w", err)
	}

	return tok, actor, nil
}

// Profile returns the calling actor.
func (s *AuthService) Profile(ctx context.Context, sess domain.Session) (domain.Actor, error) {
	return s.actors.GetByID(ctx, sess.StayID, sess.ActorID)
}

// UpdateProfile changes the calling actor's display name and email.
func (s *AuthService) UpdateProfile(ctx context.Context, sess domain.Session, name, email string) (domain.Actor, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.Actor{}, &domain.ValidationError{Field: "email", Message: "must be a valid email address"}
	}

	actor, err := s.actors.GetByID(ctx, sess.StayID, sess.ActorID)
	if err != nil {
		return domain.Actor{}, err
	}

	if email != actor.Email {
		if _, err := s.actors.GetByEmail(ctx, sess.StayID, email); err == nil {
			return domain.Actor{}, &domain.EmailConflictError{Email: email}
		}
	}

	actor.Name = strings.TrimSpace(name)
	actor.Email = email

	if err := s.actors.UpdateProfile(ctx, actor); err != nil {
		return domain.Actor{}, fmt.Errorf("updating profile: %w", err)
	}

	return actor, nil
}

// ListTenants returns the tenant roster for the stay.
func (s *AuthService) ListTenants(ctx context.Context, sess domain.Session) ([]domain.Actor, error) {
	return s.actors.ListTenants(ctx, sess.StayID)
}
