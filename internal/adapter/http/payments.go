package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

type CreatePaymentInput struct {
	Body struct {
		TenantID string `json:"tenantId" minLength:"1" doc:"Tenant to bill"`
		RoomID   string `json:"roomId" minLength:"1" doc:"Room billed against"`
		Amount   int64  `json:"amount" minimum:"1" doc:"Amount in minor currency units"`
		Month    int    `json:"month" minimum:"1" maximum:"12" doc:"Billing month"`
		Year     int    `json:"year" minimum:"2000" doc:"Billing year"`
	}
}

type PaymentOutput struct {
	Body PaymentResponse
}

type PaymentListOutput struct {
	Body []PaymentResponse
}

type PaymentIDInput struct {
	ID string `path:"id" doc:"Payment ID"`
}

type GatewayOrderOutput struct {
	Body struct {
		OrderID  string `json:"orderId" doc:"Gateway order reference"`
		Amount   int64  `json:"amount" doc:"Amount in minor currency units"`
		Currency string `json:"currency" doc:"ISO currency code"`
	}
}

type GatewayConfirmInput struct {
	Body struct {
		PaymentID   string `json:"paymentId" minLength:"1" doc:"Payment being settled"`
		ProviderRef string `json:"providerRef" minLength:"1" doc:"Gateway settlement reference"`
	}
}

// RegisterPayments adds the payment routes. Admins manage the ledger;
// tenants see and settle their own payments.
func RegisterPayments(api huma.API, auth *Auth, svc *app.PaymentService) {
	adminOnly := huma.Middlewares{auth.Require(domain.RoleAdmin)}
	tenantOnly := huma.Middlewares{auth.Require(domain.RoleTenant)}

	huma.Register(api, huma.Operation{
		OperationID: "list-payments",
		Method:      http.MethodGet,
		Path:        "/api/payments",
		Summary:     "List all payments",
		Tags:        []string{"Payments"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, _ *struct{}) (*PaymentListOutput, error) {
		payments, err := svc.List(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PaymentListOutput{Body: toPaymentResponses(payments)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-payments",
		Method:      http.MethodGet,
		Path:        "/api/payments/me",
		Summary:     "List the caller's payments",
		Tags:        []string{"Payments"},
		Middlewares: tenantOnly,
	}, func(ctx context.Context, _ *struct{}) (*PaymentListOutput, error) {
		payments, err := svc.ListMine(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PaymentListOutput{Body: toPaymentResponses(payments)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-payment",
		Method:        http.MethodPost,
		Path:          "/api/payments",
		Summary:       "Create a payment",
		Tags:          []string{"Payments"},
		Middlewares:   adminOnly,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreatePaymentInput) (*PaymentOutput, error) {
		payment, err := svc.Create(ctx, SessionFromContext(ctx), input.Body.TenantID, input.Body.RoomID, input.Body.Amount, input.Body.Month, input.Body.Year)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PaymentOutput{Body: toPaymentResponse(payment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "mark-payment-paid",
		Method:      http.MethodPatch,
		Path:        "/api/payments/{id}/pay",
		Summary:     "Mark a payment as paid",
		Tags:        []string{"Payments"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, input *PaymentIDInput) (*PaymentOutput, error) {
		payment, err := svc.MarkPaid(ctx, SessionFromContext(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PaymentOutput{Body: toPaymentResponse(payment)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-payment",
		Method:        http.MethodDelete,
		Path:          "/api/payments/{id}",
		Summary:       "Delete a pending payment",
		Tags:          []string{"Payments"},
		Middlewares:   adminOnly,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *PaymentIDInput) (*struct{}, error) {
		if err := svc.Delete(ctx, SessionFromContext(ctx), input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &struct{}{}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-gateway-order",
		Method:        http.MethodPost,
		Path:          "/api/payments/{id}/gateway/order",
		Summary:       "Open an external checkout for a payment",
		Tags:          []string{"Payments"},
		Middlewares:   tenantOnly,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *PaymentIDInput) (*GatewayOrderOutput, error) {
		order, err := svc.CreateGatewayOrder(ctx, SessionFromContext(ctx), input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &GatewayOrderOutput{}
		out.Body.OrderID = order.OrderID
		out.Body.Amount = order.Amount
		out.Body.Currency = order.Currency
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "confirm-gateway-payment",
		Method:      http.MethodPost,
		Path:        "/api/payments/gateway/confirm",
		Summary:     "Confirm an external settlement",
		Tags:        []string{"Payments"},
		Middlewares: tenantOnly,
	}, func(ctx context.Context, input *GatewayConfirmInput) (*PaymentOutput, error) {
		payment, err := svc.ConfirmExternal(ctx, SessionFromContext(ctx), input.Body.PaymentID, input.Body.ProviderRef)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PaymentOutput{Body: toPaymentResponse(payment)}, nil
	})
}
