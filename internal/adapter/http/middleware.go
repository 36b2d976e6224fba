package http

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/domain"
)

type sessionKeyType struct{}

var sessionKey sessionKeyType

// Auth builds per-operation middleware that verifies the bearer token and
// checks the caller's role before any handler runs.
type Auth struct {
	api    huma.API
	tokens domain.TokenIssuer
}

func NewAuth(api huma.API, tokens domain.TokenIssuer) *Auth {
	return &Auth{api: api, tokens: tokens}
}

// Require rejects requests without a valid session (401) or whose role is
// not in the allow-list (403). An empty allow-list admits any valid role.
func (a *Auth) Require(roles ...domain.Role) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || token == "" {
			huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "missing bearer token")
			return
		}

		sess, err := a.tokens.Verify(token)
		if err != nil {
			huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if len(roles) > 0 && !slices.Contains(roles, sess.Role) {
			huma.WriteErr(a.api, ctx, http.StatusForbidden, "insufficient role")
			return
		}

		next(huma.WithValue(ctx, sessionKey, sess))
	}
}

// SessionFromContext returns the session placed in the context by Require.
// Handlers behind Require can rely on it being present.
func SessionFromContext(ctx context.Context) domain.Session {
	sess, _ := ctx.Value(sessionKey).(domain.Session)
	return sess
}
