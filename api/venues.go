package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"venues-backend/common"
	"venues-backend/venues"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// VenueService is the set of venue operations the handlers call.
type VenueService interface {
	Create(ctx context.Context, in venues.Input) (venues.Venue, error)
	Get(ctx context.Context, id string) (venues.Venue, error)
	List(ctx context.Context) ([]venues.Venue, error)
	Update(ctx context.Context, id string, in venues.Input) (venues.Venue, error)
	Delete(ctx context.Context, id string) error
}

const venueIDParam = "venueID"

// VenueHandlers serves the /venues routes.
type VenueHandlers struct {
	service VenueService
	logger  *zap.Logger
}

// NewVenueHandlers creates the venue route handlers.
func NewVenueHandlers(service VenueService, logger *zap.Logger) *VenueHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &VenueHandlers{service: service, logger: logger}
}

// Register binds the health check and the venue routes to r.
func (h *VenueHandlers) Register(r *Router) {
	r.AddRoute(http.MethodGet, "/", h.Health)
	r.AddRoute(http.MethodPost, "/venues", h.CreateVenue)
	r.AddRoute(http.MethodGet, "/venues", h.ListVenues)
	r.AddRoute(http.MethodGet, "/venues/{venueID}", h.GetVenue)
	r.AddRoute(http.MethodPut, "/venues/{venueID}", h.UpdateVenue)
	r.AddRoute(http.MethodDelete, "/venues/{venueID}", h.DeleteVenue)
}

// Health handles GET /
func (h *VenueHandlers) Health(_ context.Context, _ Request) events.APIGatewayProxyResponse {
	return common.CreateJSONResponse(http.StatusOK, common.StatusResponse{
		Status:  "ok",
		Message: "Venues API is running",
	})
}

// CreateVenue handles POST /venues
func (h *VenueHandlers) CreateVenue(ctx context.Context, request Request) events.APIGatewayProxyResponse {
	in, resp, ok := decodeInput(request.Body)
	if !ok {
		return resp
	}

	venue, err := h.service.Create(ctx, in)
	if err != nil {
		return h.errorResponse(err)
	}

	h.logger.Info("Created venue", zap.String("venueID", venue.VenueID))
	return common.CreateJSONResponse(http.StatusCreated, venue)
}

// ListVenues handles GET /venues
func (h *VenueHandlers) ListVenues(ctx context.Context, _ Request) events.APIGatewayProxyResponse {
	list, err := h.service.List(ctx)
	if err != nil {
		return h.errorResponse(err)
	}
	return common.CreateJSONResponse(http.StatusOK, list)
}

// GetVenue handles GET /venues/{venueID}
func (h *VenueHandlers) GetVenue(ctx context.Context, request Request) events.APIGatewayProxyResponse {
	venue, err := h.service.Get(ctx, request.PathParameter(venueIDParam))
	if err != nil {
		return h.errorResponse(err)
	}
	return common.CreateJSONResponse(http.StatusOK, venue)
}

// UpdateVenue handles PUT /venues/{venueID}
func (h *VenueHandlers) UpdateVenue(ctx context.Context, request Request) events.APIGatewayProxyResponse {
	in, resp, ok := decodeInput(request.Body)
	if !ok {
		return resp
	}

	id := request.PathParameter(venueIDParam)
	venue, err := h.service.Update(ctx, id, in)
	if err != nil {
		return h.errorResponse(err)
	}

	h.logger.Info("Updated venue", zap.String("venueID", id))
	return common.CreateJSONResponse(http.StatusOK, venue)
}

// DeleteVenue handles DELETE /venues/{venueID}
func (h *VenueHandlers) DeleteVenue(ctx context.Context, request Request) events.APIGatewayProxyResponse {
	id := request.PathParameter(venueIDParam)
	if err := h.service.Delete(ctx, id); err != nil {
		return h.errorResponse(err)
	}

	h.logger.Info("Deleted venue", zap.String("venueID", id))
	return common.CreateJSONResponse(http.StatusOK, common.MessageResponse{
		Message: fmt.Sprintf("Venue with ID %s deleted successfully", id),
	})
}

// decodeInput parses and validates a create or update body. Keys must
// match the JSON field names exactly; other keys are ignored. When ok is
// false, resp is the client error to return.
func decodeInput(body string) (in venues.Input, resp events.APIGatewayProxyResponse, ok bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return in, common.CreateErrorResponse(http.StatusBadRequest, "Invalid request body"), false
	}

	fields := []struct {
		name string
		dst  **string
	}{
		{venues.AttrVenueDescription, &in.VenueDescription},
		{venues.AttrAccountID, &in.AccountID},
		{venues.AttrAccountDenomination, &in.AccountDenomination},
		{venues.AttrAccountDescription, &in.AccountDescription},
	}
	for _, f := range fields {
		value, present := raw[f.name]
		if !present {
			continue
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			return in, common.CreateErrorResponse(http.StatusUnprocessableEntity,
				fmt.Sprintf("%s must be a string", f.name)), false
		}
	}

	if err := in.Validate(); err != nil {
		return in, common.CreateErrorResponse(http.StatusUnprocessableEntity, err.Error()), false
	}
	return in, events.APIGatewayProxyResponse{}, true
}

// statusFromError maps a service failure to its HTTP status code.
func statusFromError(err error) int {
	switch venues.KindOf(err) {
	case venues.KindInvalidInput:
		return http.StatusUnprocessableEntity
	case venues.KindNotFound:
		return http.StatusNotFound
	case venues.KindStoreUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func (h *VenueHandlers) errorResponse(err error) events.APIGatewayProxyResponse {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Venue operation failed", zap.Error(err))
	}
	return common.CreateErrorResponse(status, err.Error())
}
