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

package api

import (
	"k8s.io/utils/ptr"
)

// BookingPayloadBuilder builds booking payloads for testing.
type BookingPayloadBuilder struct {
	payload Booking
}

// NewBookingPayload creates a new booking payload builder with the defaults
// used by the create step.
func NewBookingPayload() *BookingPayloadBuilder {
	return &BookingPayloadBuilder{
		payload: Booking{
			Firstname:   "Test",
			Lastname:    "User",
			TotalPrice:  500,
			DepositPaid: true,
			BookingDates: BookingDates{
				Checkin:  "2022-07-01",
				Checkout: "2022-07-30",
			},
			AdditionalNeeds: "Nothing",
		},
	}
}

func (b *BookingPayloadBuilder) WithFirstname(name string) *BookingPayloadBuilder {
	b.payload.Firstname = name
	return b
}

func (b *BookingPayloadBuilder) WithLastname(name string) *BookingPayloadBuilder {
	b.payload.Lastname = name
	return b
}

func (b *BookingPayloadBuilder) WithTotalPrice(price int) *BookingPayloadBuilder {
	b.payload.TotalPrice = price
	return b
}

func (b *BookingPayloadBuilder) WithDepositPaid(paid bool) *BookingPayloadBuilder {
	b.payload.DepositPaid = paid
	return b
}

// WithDates sets the check in and check out dates, formatted YYYY-MM-DD.
func (b *BookingPayloadBuilder) WithDates(checkin, checkout string) *BookingPayloadBuilder {
	b.payload.BookingDates = BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	return b
}

func (b *BookingPayloadBuilder) WithAdditionalNeeds(needs string) *BookingPayloadBuilder {
	b.payload.AdditionalNeeds = needs
	return b
}

// Build returns the completed booking payload.
func (b *BookingPayloadBuilder) Build() Booking {
	return b.payload
}

// PartialBookingBuilder builds partial update payloads, only fields that
// were set are sent.
type PartialBookingBuilder struct {
	payload PartialBooking
}

func NewPartialBookingPayload() *PartialBookingBuilder {
	return &PartialBookingBuilder{}
}

func (b *PartialBookingBuilder) WithFirstname(name string) *PartialBookingBuilder {
	b.payload.Firstname = ptr.To(name)
	return b
}

func (b *PartialBookingBuilder) WithLastname(name string) *PartialBookingBuilder {
	b.payload.Lastname = ptr.To(name)
	return b
}

func (b *PartialBookingBuilder) WithTotalPrice(price int) *PartialBookingBuilder {
	b.payload.TotalPrice = ptr.To(price)
	return b
}

func (b *PartialBookingBuilder) WithDepositPaid(paid bool) *PartialBookingBuilder {
	b.payload.DepositPaid = ptr.To(paid)
	return b
}

func (b *PartialBookingBuilder) WithDates(checkin, checkout string) *PartialBookingBuilder {
	b.payload.BookingDates = &BookingDates{
		Checkin:  checkin,
		Checkout: checkout,
	}

	return b
}

func (b *PartialBookingBuilder) WithAdditionalNeeds(needs string) *PartialBookingBuilder {
	b.payload.AdditionalNeeds = ptr.To(needs)
	return b
}

// Build returns the completed partial payload.
func (b *PartialBookingBuilder) Build() PartialBooking {
	return b.payload
}
