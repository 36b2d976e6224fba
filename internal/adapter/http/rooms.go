package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/adamyatiwari12/staysync/internal/app"
	"github.com/adamyatiwari12/staysync/internal/domain"
)

type CreateRoomInput struct {
	Body struct {
		RoomNumber string `json:"roomNumber" minLength:"1" maxLength:"50" doc:"Room number, unique within the stay"`
		Floor      int    `json:"floor" minimum:"0" doc:"Floor number (0 = ground)"`
		Capacity   int    `json:"capacity" minimum:"1" doc:"Maximum tenants"`
		RentAmount int64  `json:"rentAmount" minimum:"0" doc:"Monthly rent in minor currency units"`
	}
}

type RoomOutput struct {
	Body RoomResponse
}

type RoomListOutput struct {
	Body []RoomResponse
}

type FloorGroupResponse struct {
	Floor int            `json:"floor" doc:"Floor number"`
	Label string         `json:"label" doc:"Human-readable floor name"`
	Rooms []RoomResponse `json:"rooms"`
}

type FloorListOutput struct {
	Body []FloorGroupResponse
}

type SummaryOutput struct {
	Body struct {
		TotalRooms     int `json:"totalRooms"`
		AvailableRooms int `json:"availableRooms"`
		OccupiedCount  int `json:"occupiedCount" doc:"Tenants currently assigned"`
		TotalCapacity  int `json:"totalCapacity"`
		OccupancyRate  int `json:"occupancyRate" doc:"Occupied share of capacity, rounded percent"`
	}
}

type AssignRoomInput struct {
	Body struct {
		RoomID   string `json:"roomId" minLength:"1" doc:"Room to assign into"`
		TenantID string `json:"tenantId" minLength:"1" doc:"Tenant to assign"`
	}
}

type RemoveTenantInput struct {
	Body struct {
		TenantID string `json:"tenantId" minLength:"1" doc:"Tenant to unassign"`
	}
}

type DeleteRoomInput struct {
	ID string `path:"id" doc:"Room ID"`
}

// RegisterRooms adds the room routes. Everything except the tenant's own
// room view is admin-only.
func RegisterRooms(api huma.API, auth *Auth, svc *app.RoomService) {
	adminOnly := huma.Middlewares{auth.Require(domain.RoleAdmin)}

	huma.Register(api, huma.Operation{
		OperationID: "list-rooms",
		Method:      http.MethodGet,
		Path:        "/api/rooms",
		Summary:     "List all rooms",
		Tags:        []string{"Rooms"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, _ *struct{}) (*RoomListOutput, error) {
		rooms, err := svc.List(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RoomListOutput{Body: toRoomResponses(rooms)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-available-rooms",
		Method:      http.MethodGet,
		Path:        "/api/rooms/available",
		Summary:     "List rooms with open slots",
		Tags:        []string{"Rooms"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, _ *struct{}) (*RoomListOutput, error) {
		rooms, err := svc.ListAvailable(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RoomListOutput{Body: toRoomResponses(rooms)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-rooms-by-floor",
		Method:      http.MethodGet,
		Path:        "/api/rooms/floors",
		Summary:     "List rooms grouped by floor",
		Tags:        []string{"Rooms"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, _ *struct{}) (*FloorListOutput, error) {
		groups, err := svc.FloorGroups(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		resp := make([]FloorGroupResponse, len(groups))
		for i, g := range groups {
			resp[i] = FloorGroupResponse{
				Floor: g.Floor,
				Label: g.Label,
				Rooms: toRoomResponses(g.Rooms),
			}
		}
		return &FloorListOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "occupancy-summary",
		Method:      http.MethodGet,
		Path:        "/api/rooms/summary",
		Summary:     "Stay-wide occupancy summary",
		Tags:        []string{"Rooms"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
		summary, err := svc.Summary(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		out := &SummaryOutput{}
		out.Body.TotalRooms = summary.TotalRooms
		out.Body.AvailableRooms = summary.AvailableRooms
		out.Body.OccupiedCount = summary.OccupiedCount
		out.Body.TotalCapacity = summary.TotalCapacity
		out.Body.OccupancyRate = summary.OccupancyRate
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "my-room",
		Method:      http.MethodGet,
		Path:        "/api/rooms/me",
		Summary:     "Get the caller's room",
		Tags:        []string{"Rooms"},
		Middlewares: huma.Middlewares{auth.Require(domain.RoleTenant)},
	}, func(ctx context.Context, _ *struct{}) (*RoomOutput, error) {
		room, err := svc.MyRoom(ctx, SessionFromContext(ctx))
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-room",
		Method:        http.MethodPost,
		Path:          "/api/rooms",
		Summary:       "Create a room",
		Tags:          []string{"Rooms"},
		Middlewares:   adminOnly,
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateRoomInput) (*RoomOutput, error) {
		room, err := svc.Create(ctx, SessionFromContext(ctx), input.Body.RoomNumber, input.Body.Floor, input.Body.Capacity, input.Body.RentAmount)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-room",
		Method:      http.MethodPost,
		Path:        "/api/rooms/assign",
		Summary:     "Assign a tenant to a room",
		Tags:        []string{"Rooms"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, input *AssignRoomInput) (*RoomOutput, error) {
		room, err := svc.Assign(ctx, SessionFromContext(ctx), input.Body.RoomID, input.Body.TenantID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-tenant",
		Method:      http.MethodPost,
		Path:        "/api/rooms/remove",
		Summary:     "Remove a tenant from their room",
		Tags:        []string{"Rooms"},
		Middlewares: adminOnly,
	}, func(ctx context.Context, input *RemoveTenantInput) (*RoomOutput, error) {
		room, err := svc.Remove(ctx, SessionFromContext(ctx), input.Body.TenantID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RoomOutput{Body: toRoomResponse(room)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-room",
		Method:        http.MethodDelete,
		Path:          "/api/rooms/{id}",
		Summary:       "Delete an empty room",
		Tags:          []string{"Rooms"},
		Middlewares:   adminOnly,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DeleteRoomInput) (*struct{}, error) {
		if err := svc.Delete(ctx, SessionFromContext(ctx), input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return &struct{}{}, nil
	})
}
