package common

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// ErrorResponse struct for JSON error messages
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of responses that only carry a message,
// such as a delete confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is the body of the health check.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

const internalErrorBody = `{"error":"Internal server error"}`

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// CreateJSONResponse marshals payload into a proxy response with the given
// status code. A payload that cannot be marshalled yields a 500.
func CreateJSONResponse(statusCode int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		// This should not happen, but if it does, log it and return a generic error
		zap.L().Error("Failed to marshal response", zap.Error(err))
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    jsonHeaders(),
			Body:       internalErrorBody,
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    jsonHeaders(),
		Body:       string(body),
	}
}

// CreateErrorResponse is a helper function to generate a JSON error response
func CreateErrorResponse(statusCode int, message string) events.APIGatewayProxyResponse {
	return CreateJSONResponse(statusCode, ErrorResponse{Error: message})
}
