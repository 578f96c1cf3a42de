/*
Package handler answers the routes of the accounts API.

Sessions:

	POST /login         local login, sets the token cookie
	POST /google-login  federated login, sets the token cookie
	POST /signup        registers a user
	GET  /myinfo        reads the session
	GET  /logout        clears the token cookie

Users:

	GET    /users
	GET    /users/{id}
	POST   /users
	PUT    /users/{id}
	DELETE /users/{id}

GET / answers "working" and GET /error panics, exercising recovery.
*/
package handler
