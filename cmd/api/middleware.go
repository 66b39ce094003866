package main

import (
	"expvar"
	"fmt"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/tomasen/realip"
)

// The expvar counters are package level because expvar panics if a name is published twice.
var (
	totalRequestsReceived           = expvar.NewInt("total_requests_received")
	totalResponsesSent              = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicroseconds = expvar.NewInt("total_processing_time_μs")
	totalResponsesSentByStatus      = expvar.NewMap("total_responses_sent_by_status")
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Create a deferred function which will always be run in the event of a panic as Go unwinds the stack.
		defer func() {
			if err := recover(); err != nil {
				// Make Go's HTTP server close the current connection after the response has been sent.
				w.Header().Set("Connection", "close")

				// recover() returns an any, so normalize it into an error. serverErrorResponse logs it at the
				// ERROR level and sends the generic failure envelope.
				app.serverErrorResponse(w, r, fmt.Errorf("%v", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// logRequest gives every request an id, stored in the request context and echoed in the X-Request-Id
// header, and writes one INFO entry per request once the response has been sent.
func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		r = app.contextSetRequestID(r, id)
		w.Header().Set("X-Request-Id", id)

		metrics := httpsnoop.CaptureMetrics(next, w, r)

		app.logger.PrintInfo("request", map[string]string{
			"request_id":     id,
			"request_method": r.Method,
			"request_url":    r.URL.String(),
			"client_ip":      realip.FromRequest(r),
			"status":         strconv.Itoa(metrics.Code),
			"duration":       metrics.Duration.String(),
		})
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")

		// Only run this if there's an Origin request header present AND at least one trusted origin is configured.
		if origin != "" && len(app.config.cors.trustedOrigins) != 0 {
			for _, trusted := range app.config.cors.trustedOrigins {
				if trusted != "*" && trusted != origin {
					continue
				}

				w.Header().Set("Access-Control-Allow-Origin", origin)

				// An OPTIONS request carrying Access-Control-Request-Method is a preflight request.
				if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
					w.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET, POST, PUT, DELETE")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

					w.WriteHeader(http.StatusOK)
					return
				}

				break
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		totalRequestsReceived.Add(1)

		// CaptureMetrics runs the next handler and reports the status code and duration of the response.
		metrics := httpsnoop.CaptureMetrics(next, w, r)

		totalResponsesSent.Add(1)
		totalProcessingTimeMicroseconds.Add(metrics.Duration.Microseconds())

		// The expvar map is string-keyed, so convert the status code to a string.
		totalResponsesSentByStatus.Add(strconv.Itoa(metrics.Code), 1)
	})
}
