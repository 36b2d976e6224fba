package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/app"
)

// --- Signup ---

type SignupInput struct {
	Body struct {
		Username string `json:"username" minLength:"1" maxLength:"100" doc:"Display name"`
		Email    string `json:"email" format:"email" doc:"Email address, unique within the stay"`
		Password string `json:"password" minLength:"8" doc:"Password (min 8 characters)"`
		StayID   string `json:"stayId" minLength:"1" doc:"Property to join"`
	}
}

type AuthOutput struct {
	Body struct {
		Token string       `json:"token" doc:"Bearer token for subsequent requests"`
		User  UserResponse `json:"user"`
	}
}

// --- Sign in ---

type SignInInput struct {
	Body struct {
		Email    string `json:"email" doc:"Email address"`
		Password string `json:"password" doc:"Password"`
		StayID   string `json:"stayId" doc:"Property to sign in to"`
	}
}

type SignOutOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

// RegisterAuth adds the authentication routes. Signup and signin are the
// only unauthenticated operations in the API.
func RegisterAuth(api huma.API, auth *Auth, svc *app.AuthService) {
	huma.Register(api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/auth/signup",
		Summary:       "Create an account",
		Description:   "The first account in a stay becomes its admin; every later one is a tenant.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *SignupInput) (*AuthOutput, error) {
		token, actor, err := svc.Signup(ctx, input.Body.Username, input.Body.Email, input.Body.Password, input.Body.StayID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &AuthOutput{}
		out.Body.Token = token
		out.Body.User = toUserResponse(actor)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "signin",
		Method:      http.MethodPost,
		Path:        "/api/auth/signin",
		Summary:     "Sign in",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *SignInInput) (*AuthOutput, error) {
		token, actor, err := svc.SignIn(ctx, input.Body.Email, input.Body.Password, input.Body.StayID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &AuthOutput{}
		out.Body.Token = token
		out.Body.User = toUserResponse(actor)
		return out, nil
	})

	// Tokens are stateless; signout exists so clients have a uniform
	// endpoint to call before discarding the token locally.
	huma.Register(api, huma.Operation{
		OperationID: "signout",
		Method:      http.MethodPost,
		Path:        "/api/auth/signout",
		Summary:     "Sign out",
		Tags:        []string{"Auth"},
		Middlewares: huma.Middlewares{auth.Require()},
	}, func(ctx context.Context, _ *struct{}) (*SignOutOutput, error) {
		out := &SignOutOutput{}
		out.Body.Message = "signed out"
		return out, nil
	})
}
