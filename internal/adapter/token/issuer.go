package token

import (
	"fmt"
	"time"

	"github.com/cristalhq/jwt/v4"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

// Compile-time check: Issuer implements domain.TokenIssuer.
var _ domain.TokenIssuer = (*Issuer)(nil)

// claims is the JWT payload carried by every bearer token. The stay id
// travels with the token so every request is scoped server-side without
// trusting a client-submitted value.
type claims struct {
	ActorID   string    `json:"actor_id"`
	Role      string    `json:"role"`
	StayID    string    `json:"stay_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer mints and verifies HS256 bearer tokens.
type Issuer struct {
	signer   *jwt.HSAlg
	verifier *jwt.HSAlg
	ttl      time.Duration
}

// New creates an issuer with the given signing secret and token lifetime.
func New(secret []byte, ttl time.Duration) (*Issuer, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, secret)
	if err != nil {
		return nil, fmt.Errorf("creating jwt signer: %w", err)
	}

	verifier, err := jwt.NewVerifierHS(jwt.HS256, secret)
	if err != nil {
		return nil, fmt.Errorf("creating jwt verifier: %w", err)
	}

	return &Issuer{signer: signer, verifier: verifier, ttl: ttl}, nil
}

// Issue builds a signed token for the session. The session's expiry is
// ignored; the issuer stamps its own TTL.
func (i *Issuer) Issue(session domain.Session) (string, error) {
	builder := jwt.NewBuilder(i.signer)

	tok, err := builder.Build(claims{
		ActorID:   session.ActorID,
		Role:      string(session.Role),
		StayID:    session.StayID,
		ExpiresAt: time.Now().UTC().Add(i.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("building token: %w", err)
	}

	return tok.String(), nil
}

// Verify checks the signature and expiry and returns the embedded
// session. Any failure maps to domain.ErrUnauthenticated; callers learn
// nothing about why a token was rejected.
func (i *Issuer) Verify(raw string) (domain.Session, error) {
	var c claims
	if err := jwt.ParseClaims([]byte(raw), i.verifier, &c); err != nil {
		return domain.Session{}, domain.ErrUnauthenticated
	}

	session := domain.Session{
		ActorID:   c.ActorID,
		Role:      domain.Role(c.Role),
		StayID:    c.StayID,
		ExpiresAt: c.ExpiresAt,
	}

	if session.Expired(time.Now().UTC()) {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if !session.Role.Valid() || session.ActorID == "" || session.StayID == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}

	return session, nil
}
