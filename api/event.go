package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
)

// Request is the platform independent form of an inbound request, built
// from either API Gateway payload version or from an *http.Request.
type Request struct {
	Method         string
	Path           string
	PathParameters map[string]string
	Headers        map[string]string
	Body           string
	RequestID      string
}

// PathParameter returns the named path parameter.
func (r Request) PathParameter(name string) string {
	return r.PathParameters[name]
}

func decodeBody(body string, isBase64 bool) (string, error) {
	if !isBase64 {
		return body, nil
	}
	b, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", fmt.Errorf("decode base64 body: %w", err)
	}
	return string(b), nil
}

// FromV1 normalises a REST API (payload version 1.0) proxy event.
func FromV1(e events.APIGatewayProxyRequest) (Request, error) {
	body, err := decodeBody(e.Body, e.IsBase64Encoded)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Method:         e.HTTPMethod,
		Path:           e.Path,
		PathParameters: e.PathParameters,
		Headers:        e.Headers,
		Body:           body,
		RequestID:      e.RequestContext.RequestID,
	}, nil
}

// FromV2 normalises an HTTP API (payload version 2.0) event.
func FromV2(e events.APIGatewayV2HTTPRequest) (Request, error) {
	body, err := decodeBody(e.Body, e.IsBase64Encoded)
	if err != nil {
		return Request{}, err
	}
	path := e.RawPath
	if path == "" {
		path = e.RequestContext.HTTP.Path
	}
	return Request{
		Method:         e.RequestContext.HTTP.Method,
		Path:           path,
		PathParameters: e.PathParameters,
		Headers:        e.Headers,
		Body:           body,
		RequestID:      e.RequestContext.RequestID,
	}, nil
}

// ToV2 converts a proxy response to the HTTP API response shape.
func ToV2(resp events.APIGatewayProxyResponse) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode:        resp.StatusCode,
		Headers:           resp.Headers,
		MultiValueHeaders: resp.MultiValueHeaders,
		Body:              resp.Body,
		IsBase64Encoded:   resp.IsBase64Encoded,
	}
}

// payloadVersion peeks at the version field that HTTP API events carry.
// REST API events have none.
func payloadVersion(raw json.RawMessage) (string, error) {
	var probe struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", err
	}
	return probe.Version, nil
}
