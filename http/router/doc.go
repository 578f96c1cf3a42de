/*
Package router routes requests for the accounts API to their handlers.

[*Router] is a thin wrapper around [mux.Router].
A [Route] pairs a path and an HTTP method with an [http.HandlerFunc]
and any middlewares only that Route runs.

Middlewares registered through OnEveryRequest wrap the whole router,
so they also run for unknown paths and for CORS preflight requests no Route matches.
*/
package router
