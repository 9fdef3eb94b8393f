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
	"encoding/json"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.uber.org/mock/gomock"

	"github.com/unikorn-cloud/booker-e2e/test/api"
	"github.com/unikorn-cloud/booker-e2e/test/api/mock"
)

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	Expect(err).NotTo(HaveOccurred())

	return data
}

func stepNames(result *api.Result) []string {
	names := make([]string, 0, len(result.Steps))

	for _, step := range result.Steps {
		names = append(names, step.Name)
	}

	return names
}

var _ = Describe("Booking steps", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Context("When the captured state is handed between steps", func() {
		const (
			token     = "tok-5d41402abc4b"
			bookingID = 4242
		)

		var (
			client *mock.MockBookingClient
			env    *api.Env
		)

		BeforeEach(func() {
			ctrl := gomock.NewController(GinkgoT())
			client = mock.NewMockBookingClient(ctrl)
			env = api.NewEnv(client, fakeConfig("http://booker.invalid"), GinkgoLogr)
		})

		It("should reuse the token and booking ID verbatim", func() {
			auth := api.TokenAuth{Token: token}
			refs := &api.Response[[]api.BookingRef]{Value: []api.BookingRef{{BookingID: 1}}}

			created := api.CreatedBooking{BookingID: bookingID, Booking: api.NewBookingPayload().Build()}

			patched := api.UpdatedBookingPayload()
			patched.Firstname = "Auto"
			patched.Lastname = "Tester"
			patched.DepositPaid = true

			gomock.InOrder(
				client.EXPECT().Ping(gomock.Any()).Return(nil),
				client.EXPECT().CreateToken(gomock.Any(), api.Credentials{Username: "admin", Password: "password123"}).
					Return(&api.Response[api.AuthResponse]{Body: []byte(`{"token":"` + token + `"}`), Value: api.AuthResponse{Token: token}}, nil),
				client.EXPECT().ListBookings(gomock.Any(), api.BookingFilter{}).Return(refs, nil),
				client.EXPECT().ListBookings(gomock.Any(), api.BookingFilter{Firstname: api.FilterFirstname}).Return(refs, nil),
				client.EXPECT().ListBookings(gomock.Any(), api.BookingFilter{Checkin: api.FilterCheckin}).Return(refs, nil),
				client.EXPECT().GetBooking(gomock.Any(), 1030).
					Return(&api.Response[api.Booking]{Body: mustJSON(api.KnownBooking()), Value: api.KnownBooking()}, nil),
				client.EXPECT().CreateBooking(gomock.Any(), api.NewBookingPayload().Build()).
					Return(&api.Response[api.CreatedBooking]{Body: mustJSON(created), Value: created}, nil),
				client.EXPECT().UpdateBooking(gomock.Any(), auth, bookingID, api.UpdatedBookingPayload()).
					Return(&api.Response[api.Booking]{Body: mustJSON(api.UpdatedBookingPayload()), Value: api.UpdatedBookingPayload()}, nil),
				client.EXPECT().PartialUpdateBooking(gomock.Any(), auth, bookingID, api.PartialBookingPayload()).
					Return(&api.Response[api.Booking]{Body: mustJSON(patched), Value: patched}, nil),
				client.EXPECT().DeleteBooking(gomock.Any(), auth, bookingID).Return(nil),
			)

			result := api.RunSteps(ctx, env, api.BookingSteps())
			Expect(result.Passed).To(BeTrue(), "%+v", result.Steps)
			Expect(result.Failed()).To(BeZero())

			Expect(env.State.Token).To(Equal(token))
			Expect(env.State.BookingID).To(Equal(bookingID))
			Expect(env.State.Deleted).To(BeTrue())
			Expect(env.Tracker.Live()).To(BeEmpty())
		})

		It("should reject a known booking with an extra field", func() {
			var body map[string]any
			Expect(json.Unmarshal(mustJSON(api.KnownBooking()), &body)).To(Succeed())

			body["extra"] = 1

			client.EXPECT().GetBooking(gomock.Any(), 1030).
				Return(&api.Response[api.Booking]{Body: mustJSON(body), Value: api.KnownBooking()}, nil)

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "get booking by id", Run: api.GetKnownBooking},
			})
			Expect(result.Passed).To(BeFalse())
			Expect(result.Steps[0].Error).To(ContainSubstring("extra"))
		})

		It("should reject a known booking with a differing field", func() {
			known := api.KnownBooking()
			known.TotalPrice = 918

			client.EXPECT().GetBooking(gomock.Any(), 1030).
				Return(&api.Response[api.Booking]{Body: mustJSON(known), Value: known}, nil)

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "get booking by id", Run: api.GetKnownBooking},
			})
			Expect(result.Passed).To(BeFalse())
		})

		It("should reject an update answered with a changed field", func() {
			env.State.Token = token
			env.State.BookingID = bookingID

			updated := api.UpdatedBookingPayload()
			updated.Lastname = "Someone"

			client.EXPECT().UpdateBooking(gomock.Any(), api.TokenAuth{Token: token}, bookingID, api.UpdatedBookingPayload()).
				Return(&api.Response[api.Booking]{Body: mustJSON(updated), Value: updated}, nil)

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "update booking", Run: api.UpdateBooking},
			})
			Expect(result.Passed).To(BeFalse())
			Expect(result.Steps[0].Error).To(ContainSubstring("Someone"))
		})

		It("should accept a partial update answered with extra fields", func() {
			env.State.Token = token
			env.State.BookingID = bookingID

			body := []byte(`{"firstname":"Auto","lastname":"Tester","depositpaid":true,"totalprice":1000,"extra":1}`)

			client.EXPECT().PartialUpdateBooking(gomock.Any(), api.TokenAuth{Token: token}, bookingID, api.PartialBookingPayload()).
				Return(&api.Response[api.Booking]{Body: body}, nil)

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "partially update booking", Run: api.PartialUpdateBooking},
			})
			Expect(result.Passed).To(BeTrue(), "%+v", result.Steps)
		})

		It("should track a created booking whose body does not match", func() {
			client.EXPECT().CreateBooking(gomock.Any(), api.NewBookingPayload().Build()).
				Return(&api.Response[api.CreatedBooking]{
					Body:  []byte(`{"bookingid":7,"booking":{"firstname":"X"}}`),
					Value: api.CreatedBooking{BookingID: 7, Booking: api.Booking{Firstname: "X"}},
				}, nil)

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "create booking", Run: api.CreateBooking},
			})
			Expect(result.Passed).To(BeFalse())
			Expect(env.State.BookingID).To(Equal(7))
			Expect(env.Tracker.Live()).To(Equal([]int{7}))
		})

		It("should fail a step that needs a token nobody captured", func() {
			env.State.BookingID = bookingID

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "update booking", Run: api.UpdateBooking},
			})
			Expect(result.Passed).To(BeFalse())
			Expect(result.Steps).To(HaveLen(1))
			Expect(result.Steps[0].Error).To(ContainSubstring(api.ErrMissingToken.Error()))
		})

		It("should fail a step that needs a booking nobody created", func() {
			env.State.Token = token

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "delete booking", Run: api.DeleteBooking},
			})
			Expect(result.Passed).To(BeFalse())
			Expect(result.Steps[0].Error).To(ContainSubstring(api.ErrMissingBookingID.Error()))
		})

		It("should keep running after a failed step", func() {
			client.EXPECT().Ping(gomock.Any()).Return(api.ErrUnexpectedStatus)
			client.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
				Return(&api.Response[api.AuthResponse]{Body: []byte(`{"token":"` + token + `"}`), Value: api.AuthResponse{Token: token}}, nil)

			result := api.RunSteps(ctx, env, api.BookingSteps()[:2])
			Expect(result.Passed).To(BeFalse())
			Expect(result.Failed()).To(Equal(1))
			Expect(stepNames(result)).To(Equal([]string{"check health", "create token"}))
			Expect(result.Steps[1].Passed).To(BeTrue())
		})

		It("should reject a token response without a token", func() {
			client.EXPECT().CreateToken(gomock.Any(), gomock.Any()).
				Return(&api.Response[api.AuthResponse]{Body: []byte(`{"reason":"Bad credentials"}`), Value: api.AuthResponse{Reason: "Bad credentials"}}, nil)

			result := api.RunSteps(ctx, env, []api.Step{
				{Name: "create token", Run: api.CreateToken},
			})
			Expect(result.Passed).To(BeFalse())
			Expect(env.State.Token).To(BeEmpty())
		})
	})

	Context("When run against the booking service", func() {
		var (
			fake   *fakeBooker
			server *httptest.Server
			env    *api.Env
		)

		BeforeEach(func() {
			fake = newFakeBooker()
			server = fake.Server()
			DeferCleanup(server.Close)

			config := fakeConfig(server.URL)

			client, err := api.NewAPIClientWithConfig(config, api.WithLogger(GinkgoLogr))
			Expect(err).NotTo(HaveOccurred())

			env = api.NewEnv(client, config, GinkgoLogr)
		})

		It("should pass every step in order", func() {
			result := api.RunSteps(ctx, env, api.BookingSteps())
			Expect(result.Passed).To(BeTrue(), "%+v", result.Steps)
			Expect(stepNames(result)).To(Equal([]string{
				"check health",
				"create token",
				"list bookings",
				"list bookings by first name",
				"list bookings by check in date",
				"get booking by id",
				"create booking",
				"update booking",
				"partially update booking",
				"delete booking",
			}))

			Expect(env.State.Token).To(Equal(fakeToken))
			Expect(fake.Has(env.State.BookingID)).To(BeFalse())
			Expect(fake.Cookies()).To(HaveEach("token=" + fakeToken))

			Expect(env.Cleanup(ctx)).To(Succeed())
		})

		It("should clean up a booking a failed delete left behind", func() {
			fake.SetFailDelete(true)

			result := api.RunSteps(ctx, env, api.BookingSteps())
			Expect(result.Passed).To(BeFalse())
			Expect(result.Failed()).To(Equal(1))
			Expect(result.Steps[len(result.Steps)-1].Passed).To(BeFalse())

			bookingID := env.State.BookingID
			Expect(env.Tracker.Live()).To(ConsistOf(bookingID))

			Expect(env.Cleanup(ctx)).To(MatchError(api.ErrUnexpectedStatus))
			Expect(fake.Has(bookingID)).To(BeTrue())

			fake.SetFailDelete(false)

			Expect(env.Cleanup(ctx)).To(Succeed())
			Expect(fake.Has(bookingID)).To(BeFalse())
			Expect(env.Tracker.Live()).To(BeEmpty())
		})

		It("should fall back to account credentials without a token", func() {
			resp, err := env.Client.CreateBooking(ctx, api.NewBookingPayload().Build())
			Expect(err).NotTo(HaveOccurred())

			env.Tracker.Created(resp.Value.BookingID)

			Expect(env.Cleanup(ctx)).To(Succeed())
			Expect(fake.Has(resp.Value.BookingID)).To(BeFalse())
			Expect(fake.Cookies()).To(ConsistOf(""))
		})

		It("should leave bookings alone when cleanup is disabled", func() {
			env.Config.CleanupOnFailure = false

			resp, err := env.Client.CreateBooking(ctx, api.NewBookingPayload().Build())
			Expect(err).NotTo(HaveOccurred())

			env.Tracker.Created(resp.Value.BookingID)

			Expect(env.Cleanup(ctx)).To(Succeed())
			Expect(fake.Has(resp.Value.BookingID)).To(BeTrue())
		})
	})
})
