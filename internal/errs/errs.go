// Package errs defines the error shapes the API sends back to clients.
//
// Every failure that leaves a handler ends up as an *HTTPError, either
// because the handler returned one directly (validation, not found,
// conflict) or because the global error handler converted it (database
// errors, echo routing errors, unknown failures).
package errs
