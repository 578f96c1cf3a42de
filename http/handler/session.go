package handler

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/auth"
	"github.com/xy-planning-network/accounts/http/req"
	"github.com/xy-planning-network/accounts/http/resp"
)

const msgCredentials = "Username or password incorrect."

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var lr loginReq
	if err := h.parser.ParseBody(r.Body, &lr); err != nil {
		h.respondErr(w, r, "Error log in user", err)
		return
	}

	s, err := h.auth.Login(r.Context(), lr.Email, lr.Password)
	if errors.Is(err, auth.ErrCredentials) {
		h.Json(w, r, resp.Code(http.StatusBadRequest), resp.Msg(msgCredentials))
		return
	}

	if err != nil {
		h.respondErr(w, r, "Error log in user", err)
		return
	}

	h.session.Set(w, s.Token)
	h.Json(w, r, resp.Data(identityOf(s.Claims)))
}

// googleLogin answers every failure 400, logging those of the service's own infrastructure.
func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	var gr googleLoginReq
	err := h.parser.ParseBody(r.Body, &gr)

	var verrs req.ValidationErrors
	if errors.As(err, &verrs) {
		h.respondErr(w, r, "Google login error", err)
		return
	}

	var s auth.Session
	if err == nil {
		s, err = h.auth.FederatedLogin(r.Context(), gr.Token)
	}

	if err != nil {
		h.respondErr(w, r, "Google login error", err, resp.Code(http.StatusBadRequest))
		return
	}

	h.session.Set(w, s.Token)
	h.Json(w, r, resp.Data(identityOf(s.Claims)))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var nu newUserReq
	if err := h.parser.ParseBody(r.Body, &nu); err != nil {
		h.respondErr(w, r, "Error sign user up.", err)
		return
	}

	u, err := h.auth.Signup(r.Context(), nu.newUser())
	if errors.Is(err, accounts.ErrExists) {
		h.Json(w, r, resp.Code(http.StatusConflict), resp.Msg(msgEmailTaken))
		return
	}

	if err != nil {
		h.respondErr(w, r, "Error sign user up.", err)
		return
	}

	h.Json(
		w,
		r,
		resp.Code(http.StatusCreated),
		resp.Data(map[string]any{"id": u.ID}),
		resp.Msg("User create successfully."),
	)
}

// myInfo answers with the claims middleware.RequireSession verified.
func (h *Handler) myInfo(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(accounts.ClaimsKey).(auth.Claims)
	if !ok {
		h.Json(w, r, resp.Code(http.StatusUnauthorized), resp.Msg("No token found"))
		return
	}

	h.Json(w, r, resp.Data(map[string]any{"decoded": claims}), resp.Msg("Token retrieved successfully"))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.session.Clear(w)
	h.Json(w, r, resp.Msg("Logout successful"))
}
