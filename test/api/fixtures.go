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

package api

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/onsi/ginkgo/v2"
	"github.com/spjmurray/go-util/pkg/set"
)

// KnownBooking is the seeded record the public deployment serves as
// TEST_KNOWN_BOOKING_ID.
func KnownBooking() Booking {
	return NewBookingPayload().
		WithFirstname("Lilja").
		WithLastname("Seppala").
		WithTotalPrice(917).
		WithDepositPaid(false).
		WithDates("2022-06-28", "2022-07-08").
		WithAdditionalNeeds("Dinner").
		Build()
}

// UpdatedBookingPayload is the full replacement sent by the update step.
func UpdatedBookingPayload() Booking {
	return NewBookingPayload().
		WithFirstname("Tester").
		WithTotalPrice(1000).
		WithDepositPaid(false).
		WithAdditionalNeeds("Something").
		Build()
}

// PartialBookingPayload is the subset of fields sent by the partial update step.
func PartialBookingPayload() PartialBooking {
	return NewPartialBookingPayload().
		WithFirstname("Auto").
		WithLastname("Tester").
		WithDepositPaid(true).
		Build()
}

// BookingTracker remembers bookings created during a run so anything left
// behind by a failed run can be removed.
type BookingTracker struct {
	lock    sync.Mutex
	created []int
	deleted []int
}

func NewBookingTracker() *BookingTracker {
	return &BookingTracker{}
}

func (t *BookingTracker) Created(bookingID int) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.created = append(t.created, bookingID)
}

func (t *BookingTracker) Deleted(bookingID int) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.deleted = append(t.deleted, bookingID)
}

// Live returns the bookings that were created and not yet deleted, in
// ascending order.
func (t *BookingTracker) Live() []int {
	t.lock.Lock()
	defer t.lock.Unlock()

	live := set.New[int](t.created...).Difference(set.New[int](t.deleted...))

	return slices.Sorted(live.All())
}

// Cleanup deletes every live booking.  All deletions are attempted, failures
// are joined.
func (t *BookingTracker) Cleanup(ctx context.Context, client BookingClient, auth Authenticator) error {
	var errs error

	for _, bookingID := range t.Live() {
		if err := client.DeleteBooking(ctx, auth, bookingID); err != nil {
			errs = errors.Join(errs, fmt.Errorf("cleaning up booking %d: %w", bookingID, err))
			continue
		}

		t.Deleted(bookingID)
	}

	return errs
}

// CreateBookingWithCleanup creates a booking and schedules its deletion with
// the configured account credentials when the spec ends.
func CreateBookingWithCleanup(client BookingClient, ctx context.Context, config *TestConfig, booking Booking) (Booking, int) {
	resp, err := client.CreateBooking(ctx, booking)
	if err != nil {
		panic(err)
	}

	bookingID := resp.Value.BookingID

	ginkgo.GinkgoWriter.Printf("Created booking with ID: %d\n", bookingID)

	// Runs whether the spec passes or fails, a spec that deletes the booking
	// itself just sees a warning here.
	ginkgo.DeferCleanup(func(ctx context.Context) {
		ginkgo.GinkgoWriter.Printf("Cleaning up booking: %d\n", bookingID)

		auth := BasicAuth{
			Username: config.Username,
			Password: config.Password,
		}

		if err := client.DeleteBooking(ctx, auth, bookingID); err != nil {
			ginkgo.GinkgoWriter.Printf("Warning: Failed to delete booking %d: %v\n", bookingID, err)
		} else {
			ginkgo.GinkgoWriter.Printf("Successfully deleted booking: %d\n", bookingID)
		}
	})

	return resp.Value.Booking, bookingID
}
