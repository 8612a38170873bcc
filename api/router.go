// Package api adapts API Gateway proxy events and plain HTTP requests to
// the venue service.
package api

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"venues-backend/common"

	"github.com/aws/aws-lambda-go/events"
)

// HandlerFunc defines the function signature for route handlers. Handlers
// always produce a response; failures are encoded in it.
type HandlerFunc func(ctx context.Context, request Request) events.APIGatewayProxyResponse

// Route defines the structure for a single API route.
type Route struct {
	Method string
	// Pattern is the route template, e.g. /venues/{venueID}.
	Pattern string
	Path    *regexp.Regexp
	Handler HandlerFunc
}

// Router is a collection of routes that can be served.
type Router struct {
	routes   []Route
	basePath string
}

// NewRouter creates a new Router instance. basePath, when set, is removed
// from the front of every request path before matching.
func NewRouter(basePath string) *Router {
	return &Router{basePath: "/" + strings.Trim(basePath, "/")}
}

var placeholder = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// compilePattern turns /venues/{venueID} into ^/venues/(?P<venueID>[^/]+)/?$.
func compilePattern(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(strings.TrimSuffix(pattern, "/"))
	// QuoteMeta escapes the braces of the placeholders.
	quoted = strings.NewReplacer(`\{`, "{", `\}`, "}").Replace(quoted)
	expr := placeholder.ReplaceAllString(quoted, `(?P<$1>[^/]+)`)
	return regexp.MustCompile("^" + expr + "/?$")
}

// AddRoute adds a new route to the router.
func (r *Router) AddRoute(method, pattern string, handler HandlerFunc) {
	route := Route{
		Method:  method,
		Pattern: pattern,
		Path:    compilePattern(pattern),
		Handler: handler,
	}
	r.routes = append(r.routes, route)
}

// Routes returns the registered routes in registration order.
func (r *Router) Routes() []Route {
	return r.routes
}

func (r *Router) trimBase(path string) string {
	if r.basePath == "/" {
		return path
	}
	if path == r.basePath {
		return "/"
	}
	if strings.HasPrefix(path, r.basePath+"/") {
		return strings.TrimPrefix(path, r.basePath)
	}
	return path
}

// Serve handles the incoming request by finding the appropriate route.
// It also returns the matched route pattern, or "unmatched".
func (r *Router) Serve(ctx context.Context, request Request) (events.APIGatewayProxyResponse, string) {
	path := r.trimBase(request.Path)
	if path == "" {
		path = "/"
	}

	var allowed []string
	for _, route := range r.routes {
		matches := route.Path.FindStringSubmatch(path)
		if matches == nil {
			continue
		}
		if route.Method != request.Method {
			allowed = append(allowed, route.Method)
			continue
		}

		// Extract path parameters
		pathParams := make(map[string]string)
		for i, name := range route.Path.SubexpNames() {
			if i != 0 && name != "" {
				pathParams[name] = matches[i]
			}
		}
		request.PathParameters = pathParams
		return route.Handler(ctx, request), route.Pattern
	}

	if len(allowed) > 0 {
		resp := common.CreateErrorResponse(http.StatusMethodNotAllowed, "Method Not Allowed")
		resp.Headers["Allow"] = strings.Join(allowed, ", ")
		return resp, "unmatched"
	}
	// No matching route found
	return common.CreateErrorResponse(http.StatusNotFound, "Not Found"), "unmatched"
}
