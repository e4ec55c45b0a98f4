// Package handler is the HTTP layer.
//
// Every endpoint is a typed function wrapped by Handle, which binds and
// validates the request through the validation package, calls the service
// and writes the JSON response. Errors are returned untouched and rendered
// by the global error handler.
package handler
