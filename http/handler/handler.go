package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/http/middleware"
	"github.com/xy-planning-network/accounts/http/req"
	"github.com/xy-planning-network/accounts/http/resp"
	"github.com/xy-planning-network/accounts/http/router"
	"github.com/xy-planning-network/accounts/http/session"
)

const (
	msgEmailTaken   = "Email already in use."
	msgUserNotFound = "User not found"
)

// Handler shares the initialized Responder and the service's collaborators across all routes.
type Handler struct {
	*resp.Responder

	auth    *auth.Service
	parser  *req.Parser
	session session.Transport
	users   accounts.UserStore
}

// New constructs a *Handler.
func New(users accounts.UserStore, service *auth.Service, transport session.Transport, d *resp.Responder) *Handler {
	return &Handler{
		Responder: d,
		auth:      service,
		parser:    req.NewParser(),
		session:   transport,
		users:     users,
	}
}

// Register adds every route of the accounts API to r.
func (h *Handler) Register(r *router.Router) {
	r.HandleRoutes([]router.Route{
		{Path: "/", Method: http.MethodGet, Handler: h.home},
		{Path: "/error", Method: http.MethodGet, Handler: h.fail},

		{Path: "/users", Method: http.MethodGet, Handler: h.getUsers},
		{Path: "/users", Method: http.MethodPost, Handler: h.createUser},
		{Path: "/users/{id}", Method: http.MethodGet, Handler: h.getUser},
		{Path: "/users/{id}", Method: http.MethodPut, Handler: h.updateUser},
		{Path: "/users/{id}", Method: http.MethodDelete, Handler: h.deleteUser},

		{Path: "/login", Method: http.MethodPost, Handler: h.login},
		{Path: "/google-login", Method: http.MethodPost, Handler: h.googleLogin},
		{Path: "/signup", Method: http.MethodPost, Handler: h.signup},
		{Path: "/logout", Method: http.MethodGet, Handler: h.logout},
	})

	r.AuthedRoutes(
		middleware.RequireSession(h.session, h.auth, h.Responder),
		[]router.Route{{Path: "/myinfo", Method: http.MethodGet, Handler: h.myInfo}},
	)

	r.HandleNotFound(h.notFound)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.Text(w, r, "working")
}

// fail panics so the recovery middleware answers.
func (h *Handler) fail(_ http.ResponseWriter, _ *http.Request) {
	panic(errors.New("Async error"))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.Json(w, r, resp.Code(http.StatusNotFound), resp.Msg("Not found"))
}

// parseID reads the {id} route variable.
func (h *Handler) parseID(r *http.Request) (uint, error) {
	var p idParam
	if err := h.parser.ParsePathParams(mux.Vars(r), &p); err != nil {
		return 0, err
	}

	return p.ID, nil
}

// respondErr answers a failed request.
//
// ValidationErrors answer 400 with their own body.
// Any other error answers {"msg": msg, "error": err} with the status matching its accounts.Kind.
// Additional opts apply afterwards, e.g. overriding the status code.
func (h *Handler) respondErr(w http.ResponseWriter, r *http.Request, msg string, err error, opts ...resp.Fn) {
	var verrs req.ValidationErrors
	if errors.As(err, &verrs) {
		h.Json(w, r, resp.Code(http.StatusBadRequest), resp.Data(verrs))
		return
	}

	fns := []resp.Fn{
		resp.KindCode(err),
		resp.Data(map[string]any{"error": err.Error()}),
		resp.Msg(msg),
	}
	h.Json(w, r, append(fns, opts...)...)
}

// userList answers with every User under key alongside msg.
func (h *Handler) userList(w http.ResponseWriter, r *http.Request, code int, key, msg string) {
	users, err := h.users.All(r.Context())
	if err != nil {
		h.respondErr(w, r, "Error retrieving users", err)
		return
	}

	h.Json(w, r, resp.Code(code), resp.Data(map[string]any{key: users}), resp.Msg(msg))
}
