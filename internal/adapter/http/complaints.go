package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

type CreateComplaintInput struct {
	Body struct {
		Category    string `json:"category" minLength:"1" doc:"Complaint category"`
		Description string `json:"description" minLength:"1" doc:"Issue description"`
	}
}

type ComplaintOutput struct {
	Body ComplaintResponse
}

type ComplaintListOutput struct {
	Body []ComplaintResponse
}

type SetComplaintStatusInput struct {
	ID   string `path:"id" doc:"Complaint ID"`
	Body struct {
		Status string `json:"status" doc:"Target state" enum:"open,in_progress,resolved"`
	}
}

type CategoriesOutput struct {
	Body []string
}

// RegisterComplaints adds the complaint routes. Tenants raise and view
// their own complaints; admins view all of them and drive the status.
func RegisterComplaints(api huma.API, auth *Auth, svc *app.ComplaintService) {
	huma.Register(api, huma.Operation{
		OperationID: "list-complaints",
		Method:      http.MethodGet,
		Path:        "/api/complaints",
		Summary:     "List all complaints",
		Tags:        []string{"Complaints"},
		Middlewares: huma.Middlewares{auth.Require(domain.RoleAdmin)},
	}, func(ctx context.Context, _ *struct{}) (*ComplaintListOutput, error) {
		complaints, err := svc.List(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ComplaintListOutput{Body: toComplaintResponses(complaints)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-complaints",
		Method:      http.MethodGet,
		Path:        "/api/complaints/my",
		Summary:     "List the caller's complaints",
		Tags:        []string{"Complaints"},
		Middlewares: huma.Middlewares{auth.Require(domain.RoleTenant)},
	}, func(ctx context.Context, _ *struct{}) (*ComplaintListOutput, error) {
		complaints, err := svc.ListMine(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ComplaintListOutput{Body: toComplaintResponses(complaints)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-complaint-categories",
		Method:      http.MethodGet,
		Path:        "/api/complaints/categories",
		Summary:     "List accepted complaint categories",
		Tags:        []string{"Complaints"},
		Middlewares: huma.Middlewares{auth.Require()},
	}, func(ctx context.Context, _ *struct{}) (*CategoriesOutput, error) {
		return &CategoriesOutput{Body: svc.Categories()}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-complaint",
		Method:        http.MethodPost,
		Path:          "/api/complaints",
		Summary:       "Raise a complaint",
		Tags:          []string{"Complaints"},
		Middlewares:   huma.Middlewares{auth.Require(domain.RoleTenant)},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateComplaintInput) (*ComplaintOutput, error) {
		complaint, err := svc.Create(ctx, SessionFromContext(ctx), input.Body.Category, input.Body.Description)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ComplaintOutput{Body: toComplaintResponse(complaint)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-complaint-status",
		Method:      http.MethodPut,
		Path:        "/api/complaints/{id}/status",
		Summary:     "Move a complaint to a new status",
		Tags:        []string{"Complaints"},
		Middlewares: huma.Middlewares{auth.Require(domain.RoleAdmin)},
	}, func(ctx context.Context, input *SetComplaintStatusInput) (*ComplaintOutput, error) {
		complaint, err := svc.SetStatus(ctx, SessionFromContext(ctx), input.ID, domain.Status(input.Body.Status))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ComplaintOutput{Body: toComplaintResponse(complaint)}, nil
	})
}
