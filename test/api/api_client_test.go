/*
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

//nolint:revive // dot imports are standard for Ginkgo/Gomega test code
package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.opentelemetry.io/otel/trace"

	"github.com/unikorn-cloud/booker-e2e/test/api"
)

var traceParentPattern = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)

var _ = Describe("APIClient", func() {
	var (
		fake   *fakeBooker
		server *httptest.Server
		client *api.APIClient
		ctx    context.Context
	)

	BeforeEach(func() {
		fake = newFakeBooker()
		server = fake.Server()
		DeferCleanup(server.Close)

		var err error
		client, err = api.NewAPIClientWithConfig(fakeConfig(server.URL), api.WithLogger(GinkgoLogr))
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
	})

	Context("When checking health", func() {
		It("should accept the 201 liveness answer", func() {
			Expect(client.Ping(ctx)).To(Succeed())
		})

		It("should reject any other status", func() {
			other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeText(w, http.StatusOK, "OK")
			}))
			DeferCleanup(other.Close)

			otherClient, err := api.NewAPIClientWithConfig(fakeConfig(other.URL))
			Expect(err).NotTo(HaveOccurred())

			err = otherClient.Ping(ctx)
			Expect(err).To(MatchError(api.ErrUnexpectedStatus))

			var statusErr *api.UnexpectedStatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.Expected).To(Equal(http.StatusCreated))
			Expect(statusErr.Actual).To(Equal(http.StatusOK))
			Expect(statusErr.TraceID).To(HaveLen(32))
		})

		It("should surface transport failures", func() {
			server.Close()

			err := client.Ping(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err).NotTo(MatchError(api.ErrUnexpectedStatus))
			Expect(err.Error()).To(ContainSubstring("http request failed"))
		})
	})

	Context("When authenticating", func() {
		It("should return a token for valid credentials", func() {
			resp, err := client.CreateToken(ctx, api.Credentials{Username: "admin", Password: "password123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Value.Token).To(Equal(fakeToken))
		})

		It("should return a reason for bad credentials", func() {
			resp, err := client.CreateToken(ctx, api.Credentials{Username: "admin", Password: "wrong"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value.Token).To(BeEmpty())
			Expect(resp.Value.Reason).To(Equal("Bad credentials"))
		})
	})

	Context("When listing bookings", func() {
		It("should send filters as query parameters", func() {
			resp, err := client.ListBookings(ctx, api.BookingFilter{Firstname: "John"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value).To(ConsistOf(api.BookingRef{BookingID: fakeSeededJohn}))
			Expect(fake.Requests()).To(ContainElement("GET /booking?firstname=John"))
		})

		It("should send no query without a filter", func() {
			resp, err := client.ListBookings(ctx, api.BookingFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value).To(HaveLen(2))
			Expect(fake.Requests()).To(ContainElement("GET /booking"))
		})
	})

	Context("When managing a booking", func() {
		var bookingID int

		BeforeEach(func() {
			resp, err := client.CreateBooking(ctx, api.NewBookingPayload().Build())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value.Booking).To(Equal(api.NewBookingPayload().Build()))

			bookingID = resp.Value.BookingID
		})

		It("should update with a token cookie", func() {
			resp, err := client.UpdateBooking(ctx, api.TokenAuth{Token: fakeToken}, bookingID, api.UpdatedBookingPayload())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value).To(Equal(api.UpdatedBookingPayload()))
			Expect(fake.Cookies()).To(ConsistOf("token=" + fakeToken))
		})

		It("should partially update only the given fields", func() {
			resp, err := client.PartialUpdateBooking(ctx, api.TokenAuth{Token: fakeToken}, bookingID, api.PartialBookingPayload())
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value.Firstname).To(Equal("Auto"))
			Expect(resp.Value.Lastname).To(Equal("Tester"))
			Expect(resp.Value.TotalPrice).To(Equal(500))
		})

		It("should delete with basic credentials", func() {
			Expect(client.DeleteBooking(ctx, api.BasicAuth{Username: "admin", Password: "password123"}, bookingID)).To(Succeed())
			Expect(fake.Has(bookingID)).To(BeFalse())

			_, err := client.GetBooking(ctx, bookingID)
			Expect(err).To(MatchError(api.ErrUnexpectedStatus))
			Expect(err.Error()).To(ContainSubstring("404"))
		})

		It("should be forbidden without credentials", func() {
			_, err := client.UpdateBooking(ctx, nil, bookingID, api.UpdatedBookingPayload())
			Expect(err).To(MatchError(api.ErrUnexpectedStatus))
			Expect(err.Error()).To(ContainSubstring("403"))
		})
	})

	Context("When tracing requests", func() {
		It("should send a W3C traceparent header", func() {
			headers := make(chan http.Header, 1)

			traced := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				headers <- r.Header.Clone()
				writeText(w, http.StatusCreated, "Created")
			}))
			DeferCleanup(traced.Close)

			tracedClient, err := api.NewAPIClientWithConfig(fakeConfig(traced.URL))
			Expect(err).NotTo(HaveOccurred())
			Expect(tracedClient.Ping(ctx)).To(Succeed())

			var header http.Header
			Expect(headers).To(Receive(&header))
			Expect(header.Get("Traceparent")).To(MatchRegexp(traceParentPattern.String()))
			Expect(header.Get("Tracestate")).To(Equal("test-automation=ginkgo"))
		})

		It("should inherit a trace ID from the context", func() {
			traceID := trace.TraceID{0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x10}
			spanID := trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

			parent := trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
				TraceID:    traceID,
				SpanID:     spanID,
				TraceFlags: trace.FlagsSampled,
			}))

			resp, err := client.Do(parent, api.RequestSpec{
				Method:         http.MethodGet,
				Path:           "/ping",
				ExpectedStatus: http.StatusCreated,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.TraceID).To(Equal(traceID.String()))
			Expect(string(resp.Body)).To(Equal("Created"))
		})
	})

	Context("When validating responses against the schema", func() {
		It("should reject a malformed body", func() {
			broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"bookingid": "not-a-number"})
			}))
			DeferCleanup(broken.Close)

			brokenClient, err := api.NewAPIClientWithConfig(fakeConfig(broken.URL))
			Expect(err).NotTo(HaveOccurred())

			_, err = brokenClient.CreateBooking(ctx, api.NewBookingPayload().Build())
			Expect(err).To(MatchError(api.ErrSchemaValidation))
		})

		It("should reject an undeclared content type", func() {
			broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(`[{"bookingid":1}]`))
			}))
			DeferCleanup(broken.Close)

			brokenClient, err := api.NewAPIClientWithConfig(fakeConfig(broken.URL))
			Expect(err).NotTo(HaveOccurred())

			_, err = brokenClient.ListBookings(ctx, api.BookingFilter{})
			Expect(err).To(MatchError(api.ErrSchemaValidation))
		})

		It("should accept an undeclared content type when validation is disabled", func() {
			broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				_, _ = w.Write([]byte(`[{"bookingid":1}]`))
			}))
			DeferCleanup(broken.Close)

			config := fakeConfig(broken.URL)
			config.ValidateSchema = false

			lenientClient, err := api.NewAPIClientWithConfig(config)
			Expect(err).NotTo(HaveOccurred())

			resp, err := lenientClient.ListBookings(ctx, api.BookingFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Value).To(ConsistOf(api.BookingRef{BookingID: 1}))
		})
	})
})
