package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

type UserOutput struct {
	Body UserResponse
}

type UserListOutput struct {
	Body []UserResponse
}

type UpdateProfileInput struct {
	Body struct {
		Name  string `json:"name,omitempty" maxLength:"255" doc:"Full name"`
		Email string `json:"email,omitempty" format:"email" doc:"New email address"`
	}
}

// RegisterUsers adds the user roster and profile routes.
func RegisterUsers(api huma.API, auth *Auth, svc *app.AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tenants",
		Method:      http.MethodGet,
		Path:        "/api/users/tenants",
		Summary:     "List tenants in the stay",
		Tags:        []string{"Users"},
		Middlewares: huma.Middlewares{auth.Require(domain.RoleAdmin)},
	}, func(ctx context.Context, _ *struct{}) (*UserListOutput, error) {
		tenants, err := svc.ListTenants(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]UserResponse, len(tenants))
		for i, t := range tenants {
			resp[i] = toUserResponse(t)
		}
		return &UserListOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/api/users/profile",
		Summary:     "Get the caller's profile",
		Tags:        []string{"Users"},
		Middlewares: huma.Middlewares{auth.Require()},
	}, func(ctx context.Context, _ *struct{}) (*UserOutput, error) {
		actor, err := svc.Profile(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UserOutput{Body: toUserResponse(actor)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPut,
		Path:        "/api/users/profile",
		Summary:     "Update the caller's profile",
		Tags:        []string{"Users"},
		Middlewares: huma.Middlewares{auth.Require()},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UserOutput, error) {
		actor, err := svc.UpdateProfile(ctx, SessionFromContext(ctx), input.Body.Name, input.Body.Email)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UserOutput{Body: toUserResponse(actor)}, nil
	})
}
