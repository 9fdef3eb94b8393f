/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

//go:generate mockgen -source=api_client.go -destination=mock/interfaces.go -package=mock

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDecode           = errors.New("response decode failed")
)

// UnexpectedStatusError is returned when the API answers with a status other
// than the one the call expects.
type UnexpectedStatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status code: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Authenticator decorates a mutating request with a credential.
type Authenticator interface {
	Apply(req *http.Request)
}

// TokenAuth presents a session token as the token cookie.
type TokenAuth struct {
	Token string
}

func (a TokenAuth) Apply(req *http.Request) {
	req.Header.Set("Cookie", "token="+a.Token)
}

// BasicAuth presents the account credentials directly.
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Apply(req *http.Request) {
	req.SetBasicAuth(a.Username, a.Password)
}

// RequestSpec describes a single call: where it goes, what it carries and
// which status it must answer with.  An ExpectedStatus of zero accepts any
// status.
type RequestSpec struct {
	Method         string
	Path           string
	Headers        map[string]string
	Auth           Authenticator
	Body           any
	ExpectedStatus int
}

// Response is a decoded API response.  Body keeps the raw bytes so callers
// can make exact comparisons that the typed Value would hide.
type Response[T any] struct {
	StatusCode int
	Body       []byte
	TraceID    string
	Value      T
}

// BookingClient is the set of calls the booking scenarios need.
type BookingClient interface {
	Ping(ctx context.Context) error
	CreateToken(ctx context.Context, credentials Credentials) (*Response[AuthResponse], error)
	ListBookings(ctx context.Context, filter BookingFilter) (*Response[[]BookingRef], error)
	GetBooking(ctx context.Context, bookingID int) (*Response[Booking], error)
	CreateBooking(ctx context.Context, booking Booking) (*Response[CreatedBooking], error)
	UpdateBooking(ctx context.Context, auth Authenticator, bookingID int, booking Booking) (*Response[Booking], error)
	PartialUpdateBooking(ctx context.Context, auth Authenticator, bookingID int, booking PartialBooking) (*Response[Booking], error)
	DeleteBooking(ctx context.Context, auth Authenticator, bookingID int) error
}

type APIClient struct {
	baseURL   string
	client    *http.Client
	config    *TestConfig
	endpoints *Endpoints
	validator *SchemaValidator
	log       logr.Logger
}

var _ BookingClient = &APIClient{}

// ClientOption customises an APIClient.
type ClientOption func(*APIClient)

// WithLogger sends request logs to the given logger, by default they are
// discarded.
func WithLogger(log logr.Logger) ClientOption {
	return func(c *APIClient) {
		c.log = log
	}
}

// WithHTTPClient replaces the default HTTP client, whose timeout is taken
// from the configuration.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *APIClient) {
		c.client = client
	}
}

func NewAPIClientWithConfig(config *TestConfig, options ...ClientOption) (*APIClient, error) {
	c := &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		endpoints: NewEndpoints(),
		log:       logr.Discard(),
	}

	for _, o := range options {
		o(c)
	}

	if config.ValidateSchema {
		validator, err := NewSchemaValidator(c.baseURL)
		if err != nil {
			return nil, err
		}

		c.validator = validator
	}

	return c, nil
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	c.log.Error(err, context, "method", method, "path", path, "duration", duration, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	c.log.Info("UNEXPECTED STATUS", "method", method, "path", path, "expected", expectedStatus, "got", actualStatus, "body", body, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.log.Info(fmt.Sprintf("TRACE CONTEXT: Use trace ID '%s' to search logs for this request", extractTraceID(traceParent)))
}

// withRequestSpan returns a context carrying a fresh span.  The trace ID is
// inherited when the caller already started one, so every call of a run can
// be correlated.
func withRequestSpan(ctx context.Context) context.Context {
	parent := trace.SpanContextFromContext(ctx)

	config := trace.SpanContextConfig{
		TraceID:    parent.TraceID(),
		TraceFlags: trace.FlagsSampled,
		TraceState: parent.TraceState(),
	}

	if !parent.IsValid() {
		_, _ = rand.Read(config.TraceID[:])

		if state, err := trace.ParseTraceState("test-automation=ginkgo"); err == nil {
			config.TraceState = state
		}
	}

	_, _ = rand.Read(config.SpanID[:])

	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(config))
}

// redactedHeaders returns the request headers with credentials masked.
func redactedHeaders(header http.Header) http.Header {
	redacted := header.Clone()

	for _, key := range []string{"Authorization", "Cookie"} {
		if redacted.Get(key) != "" {
			redacted.Set(key, "[redacted]")
		}
	}

	return redacted
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

//nolint:cyclop // test code complexity is acceptable
func (c *APIClient) doRequest(ctx context.Context, spec RequestSpec) (*http.Response, []byte, error) {
	var body io.Reader

	if spec.Body != nil {
		data, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = bytes.NewReader(data)
	}

	ctx = withRequestSpan(ctx)

	req, err := http.NewRequestWithContext(ctx, spec.Method, c.baseURL+spec.Path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	// Add W3C Trace Context headers
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))
	traceParent := req.Header.Get("Traceparent")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}

	if spec.Auth != nil {
		spec.Auth.Apply(req)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(spec.Method, spec.Path, duration, traceParent, err, "http request failed")
		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(spec.Method, spec.Path, duration, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.DebugLogging {
		c.log.V(1).Info("request headers", "method", spec.Method, "path", spec.Path, "headers", redactedHeaders(req.Header))
	}

	if c.config.LogRequests {
		c.log.Info("request", "method", spec.Method, "path", spec.Path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.log.Info("response body", "method", spec.Method, "path", spec.Path, "body", string(respBody))
	}

	if spec.ExpectedStatus > 0 && resp.StatusCode != spec.ExpectedStatus {
		c.logUnexpectedStatus(spec.Method, spec.Path, spec.ExpectedStatus, resp.StatusCode, string(respBody), traceParent)

		return resp, respBody, &UnexpectedStatusError{
			Method:   spec.Method,
			Path:     spec.Path,
			Expected: spec.ExpectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  extractTraceID(traceParent),
		}
	}

	if c.validator != nil {
		if err := c.validator.ValidateResponse(ctx, req, resp, respBody); err != nil {
			c.logError(spec.Method, spec.Path, duration, traceParent, err, "schema validation")
			return resp, respBody, err
		}
	}

	return resp, respBody, nil
}

// do performs the call and decodes a JSON body into T.
func do[T any](ctx context.Context, c *APIClient, spec RequestSpec) (*Response[T], error) {
	//nolint:bodyclose // response body is closed in doRequest
	resp, respBody, err := c.doRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	result := &Response[T]{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		TraceID:    extractTraceID(resp.Request.Header.Get("Traceparent")),
	}

	if err := json.Unmarshal(respBody, &result.Value); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrDecode, spec.Method, spec.Path, err)
	}

	return result, nil
}

// Do performs an arbitrary call and returns the raw body.
func (c *APIClient) Do(ctx context.Context, spec RequestSpec) (*Response[[]byte], error) {
	//nolint:bodyclose // response body is closed in doRequest
	resp, respBody, err := c.doRequest(ctx, spec)
	if err != nil {
		return nil, err
	}

	return &Response[[]byte]{
		StatusCode: resp.StatusCode,
		Body:       respBody,
		TraceID:    extractTraceID(resp.Request.Header.Get("Traceparent")),
		Value:      respBody,
	}, nil
}

// Ping checks the liveness endpoint, which answers 201 Created.
func (c *APIClient) Ping(ctx context.Context) error {
	if _, err := c.Do(ctx, RequestSpec{
		Method:         http.MethodGet,
		Path:           c.endpoints.Ping(),
		ExpectedStatus: http.StatusCreated,
	}); err != nil {
		return fmt.Errorf("checking health: %w", err)
	}

	return nil
}

// CreateToken exchanges credentials for a session token.  The API answers
// 200 for bad credentials too, so callers must check the token.
func (c *APIClient) CreateToken(ctx context.Context, credentials Credentials) (*Response[AuthResponse], error) {
	resp, err := do[AuthResponse](ctx, c, RequestSpec{
		Method:         http.MethodPost,
		Path:           c.endpoints.CreateToken(),
		Body:           credentials,
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("creating token: %w", err)
	}

	return resp, nil
}

func (c *APIClient) ListBookings(ctx context.Context, filter BookingFilter) (*Response[[]BookingRef], error) {
	path, err := c.endpoints.ListBookings(filter)
	if err != nil {
		return nil, err
	}

	resp, err := do[[]BookingRef](ctx, c, RequestSpec{
		Method:         http.MethodGet,
		Path:           path,
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("listing bookings: %w", err)
	}

	return resp, nil
}

// GetBooking retrieves a specific booking.
func (c *APIClient) GetBooking(ctx context.Context, bookingID int) (*Response[Booking], error) {
	resp, err := do[Booking](ctx, c, RequestSpec{
		Method:         http.MethodGet,
		Path:           c.endpoints.GetBooking(bookingID),
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("getting booking %d: %w", bookingID, err)
	}

	return resp, nil
}

// CreateBooking creates a new booking, no credentials are required.
func (c *APIClient) CreateBooking(ctx context.Context, booking Booking) (*Response[CreatedBooking], error) {
	resp, err := do[CreatedBooking](ctx, c, RequestSpec{
		Method:         http.MethodPost,
		Path:           c.endpoints.CreateBooking(),
		Body:           booking,
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("creating booking: %w", err)
	}

	return resp, nil
}

func (c *APIClient) UpdateBooking(ctx context.Context, auth Authenticator, bookingID int, booking Booking) (*Response[Booking], error) {
	resp, err := do[Booking](ctx, c, RequestSpec{
		Method:         http.MethodPut,
		Path:           c.endpoints.UpdateBooking(bookingID),
		Auth:           auth,
		Body:           booking,
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("updating booking %d: %w", bookingID, err)
	}

	return resp, nil
}

func (c *APIClient) PartialUpdateBooking(ctx context.Context, auth Authenticator, bookingID int, booking PartialBooking) (*Response[Booking], error) {
	resp, err := do[Booking](ctx, c, RequestSpec{
		Method:         http.MethodPatch,
		Path:           c.endpoints.PartialUpdateBooking(bookingID),
		Auth:           auth,
		Body:           booking,
		ExpectedStatus: http.StatusOK,
	})
	if err != nil {
		return nil, fmt.Errorf("partially updating booking %d: %w", bookingID, err)
	}

	return resp, nil
}

// DeleteBooking deletes a booking, which answers 201 Created on success.
func (c *APIClient) DeleteBooking(ctx context.Context, auth Authenticator, bookingID int) error {
	if _, err := c.Do(ctx, RequestSpec{
		Method:         http.MethodDelete,
		Path:           c.endpoints.DeleteBooking(bookingID),
		Auth:           auth,
		ExpectedStatus: http.StatusCreated,
	}); err != nil {
		return fmt.Errorf("deleting booking %d: %w", bookingID, err)
	}

	return nil
}
