package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"venues-backend/common"
	"venues-backend/metrics"

	"github.com/aws/aws-lambda-go/events"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies read by the HTTP bridge. API Gateway
// enforces its own payload limit in Lambda mode.
const maxBodyBytes = 1 << 20

// Handler is the single entry point for every inbound request. It routes
// the request, recovers from handler panics, logs and records metrics.
type Handler struct {
	router    *Router
	logger    *zap.Logger
	collector *metrics.Collector
}

// NewHandler creates a Handler. collector may be nil.
func NewHandler(router *Router, logger *zap.Logger, collector *metrics.Collector) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		router:    router,
		logger:    logger,
		collector: collector,
	}
}

// Dispatch routes request and always returns a well formed response.
func (h *Handler) Dispatch(ctx context.Context, request Request) (resp events.APIGatewayProxyResponse) {
	start := time.Now()
	route := "unmatched"

	defer func() {
		if p := recover(); p != nil {
			h.logger.Error("Handler panicked",
				zap.Any("panic", p),
				zap.String("method", request.Method),
				zap.String("path", request.Path),
				zap.String("requestID", request.RequestID),
			)
			resp = common.CreateErrorResponse(http.StatusInternalServerError, "Internal server error")
		}
		h.finish(request, route, resp.StatusCode, time.Since(start))
	}()

	resp, route = h.router.Serve(ctx, request)
	return resp
}

func (h *Handler) finish(request Request, route string, status int, elapsed time.Duration) {
	if h.collector != nil {
		h.collector.ObserveRequest(request.Method, route, status, elapsed)
	}
	h.logger.Info("Handled request",
		zap.String("method", request.Method),
		zap.String("path", request.Path),
		zap.String("route", route),
		zap.Int("status", status),
		zap.Duration("duration", elapsed),
		zap.String("requestID", request.RequestID),
	)
}

// HandleV1 serves a REST API proxy event. The returned error is always nil
// so the Lambda runtime never sees a failed invocation.
func (h *Handler) HandleV1(ctx context.Context, e events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	request, err := FromV1(e)
	if err != nil {
		return common.CreateErrorResponse(http.StatusBadRequest, "Invalid request body"), nil
	}
	return h.Dispatch(ctx, request), nil
}

// HandleV2 serves an HTTP API event.
func (h *Handler) HandleV2(ctx context.Context, e events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	request, err := FromV2(e)
	if err != nil {
		return ToV2(common.CreateErrorResponse(http.StatusBadRequest, "Invalid request body")), nil
	}
	return ToV2(h.Dispatch(ctx, request)), nil
}

// HandleEvent accepts either payload version and answers in the same one.
// It is the function registered with lambda.Start.
func (h *Handler) HandleEvent(ctx context.Context, raw json.RawMessage) (any, error) {
	version, err := payloadVersion(raw)
	if err != nil {
		h.logger.Warn("Unreadable invocation payload", zap.Error(err))
		return common.CreateErrorResponse(http.StatusBadRequest, "Invalid event payload"), nil
	}

	if version == "2.0" {
		var e events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(raw, &e); err != nil {
			return ToV2(common.CreateErrorResponse(http.StatusBadRequest, "Invalid event payload")), nil
		}
		return h.HandleV2(ctx, e)
	}

	var e events.APIGatewayProxyRequest
	if err := json.Unmarshal(raw, &e); err != nil {
		return common.CreateErrorResponse(http.StatusBadRequest, "Invalid event payload"), nil
	}
	return h.HandleV1(ctx, e)
}

// ServeHTTP bridges a plain HTTP request into Dispatch.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeResponse(w, common.CreateErrorResponse(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err)))
		return
	}

	headers := make(map[string]string, len(r.Header))
	for name := range r.Header {
		headers[name] = r.Header.Get(name)
	}

	request := Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Headers:   headers,
		Body:      string(body),
		RequestID: chimiddleware.GetReqID(r.Context()),
	}
	writeResponse(w, h.Dispatch(r.Context(), request))
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	for name, values := range resp.MultiValueHeaders {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
