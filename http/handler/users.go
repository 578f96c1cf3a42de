package handler

import (
	"errors"
	"net/http"

	"github.com/xy-planning-network/accounts"
	"github.com/xy-planning-network/accounts/http/resp"
)

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.All(r.Context())
	if err != nil {
		h.respondErr(w, r, "Error retrieving users", err)
		return
	}

	h.Json(w, r, resp.Data(users))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.respondErr(w, r, "Error retrieving user", err)
		return
	}

	u, err := h.users.ByID(r.Context(), id)
	if errors.Is(err, accounts.ErrNotFound) {
		h.Json(w, r, resp.Code(http.StatusNotFound), resp.Msg(msgUserNotFound))
		return
	}

	if err != nil {
		h.respondErr(w, r, "Error retrieving user", err)
		return
	}

	h.Json(w, r, resp.Data(u))
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var nu newUserReq
	if err := h.parser.ParseBody(r.Body, &nu); err != nil {
		h.respondErr(w, r, "Error creating user", err)
		return
	}

	_, err := h.auth.Signup(r.Context(), nu.newUser())
	if errors.Is(err, accounts.ErrExists) {
		h.Json(w, r, resp.Code(http.StatusConflict), resp.Msg(msgEmailTaken))
		return
	}

	if err != nil {
		h.respondErr(w, r, "Error creating user", err)
		return
	}

	h.userList(w, r, http.StatusCreated, "usersList", "New user created!")
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.respondErr(w, r, "Error updating user", err)
		return
	}

	var creds credentialsReq
	if err := h.parser.ParseBody(r.Body, &creds); err != nil {
		h.respondErr(w, r, "Error updating user", err)
		return
	}

	err = h.auth.ChangeCredentials(r.Context(), id, creds.Email, creds.Password)
	switch {
	case errors.Is(err, accounts.ErrNotFound):
		h.Json(w, r, resp.Code(http.StatusNotFound), resp.Msg(msgUserNotFound))
		return

	case errors.Is(err, accounts.ErrExists):
		h.Json(w, r, resp.Code(http.StatusConflict), resp.Msg(msgEmailTaken))
		return

	case err != nil:
		h.respondErr(w, r, "Error updating user", err)
		return
	}

	h.userList(w, r, http.StatusOK, "userList", "Success!")
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.parseID(r)
	if err != nil {
		h.respondErr(w, r, "Error deleting user", err)
		return
	}

	err = h.users.Delete(r.Context(), id)
	if errors.Is(err, accounts.ErrNotFound) {
		h.Json(w, r, resp.Code(http.StatusNotFound), resp.Msg(msgUserNotFound))
		return
	}

	if err != nil {
		h.respondErr(w, r, "Error deleting user", err)
		return
	}

	h.userList(w, r, http.StatusOK, "userList", "user deleted successfully")
}
