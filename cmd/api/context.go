package main

import (
	"context"
	"net/http"
)

// Define a custom contextKey type, with the underlying type string.
type contextKey string

// requestIDContextKey is the key the logRequest middleware stores the request id under.
const requestIDContextKey = contextKey("request_id")

// contextSetRequestID returns a new copy of the request with the id added to its context.
func (app *application) contextSetRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), requestIDContextKey, id)
	return r.WithContext(ctx)
}

// contextGetRequestID returns the empty string for requests that did not pass through logRequest.
func (app *application) contextGetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDContextKey).(string)
	return id
}
