package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/accounts/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// Router routes requests to the handler registered for them.
type Router struct {
	everyReqStack []middleware.Adapter
	h             http.Handler
	r             *mux.Router
}

// New constructs a [*Router].
func New() *Router {
	r := mux.NewRouter()
	return &Router{h: r, r: r}
}

// AuthedRoutes registers the set of Routes as those requiring a session.
// AuthedRoutes applies the given middlewares before guard,
// which rejects requests without a valid session.
func (r *Router) AuthedRoutes(guard middleware.Adapter, routes []Route, middlewares ...middleware.Adapter) {
	r.HandleRoutes(routes, append(middlewares, guard)...)
}

// Handle registers the [Route] on the [*Router], calling middlewares before the Route's own.
func (r *Router) Handle(route Route, middlewares ...middleware.Adapter) {
	mws := append(append([]middleware.Adapter{}, middlewares...), route.Middlewares...)
	r.r.Handle(route.Path, middleware.Chain(route.Handler, mws...)).Methods(route.Method)
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.r.NotFoundHandler = handler
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after them.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		r.Handle(route, middlewares...)
	}
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
	r.h = middleware.Chain(r.r, r.everyReqStack...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.h.ServeHTTP(w, req)
}
