/*
The resp package provides a high-level API for responding to HTTP requests
with JSON bodies, configured once application-wide.

Handlers compose a response out of Fn options:

	d.Json(w, r, resp.Code(http.StatusCreated), resp.Data(user), resp.Msg("User create successfully."))

Bodies are flat JSON objects; Msg merges a "msg" key into map data.
Failures map onto status codes through KindCode, following accounts.KindOf.
*/
package resp
