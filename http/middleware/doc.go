/*
The middleware package defines what a middleware is in accounts and the set of middlewares the service runs.

The available middlewares are:
- CORS
- InjectIPAddress
- LogRequest
- Recover
- ReportPanic
- RequestID
- RequireSession

The stack every request passes through, in order:

	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(ipHeaders...),
		middleware.LogRequest(httpLog),
		middleware.CORS(clientURL),
		middleware.Recover(responder),
		middleware.ReportPanic(sentryDSN),
	}

Routes reading the session add middleware.RequireSession.
*/
package middleware
