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

// Credentials is the body of an auth request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by the auth endpoint.  Bad credentials still
// yield a 200, with Reason set and no Token.
type AuthResponse struct {
	Token  string `json:"token,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type BookingDates struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
}

// Booking is a complete booking record, as accepted by create and full
// update and as returned by fetch.
type Booking struct {
	Firstname       string       `json:"firstname"`
	Lastname        string       `json:"lastname"`
	TotalPrice      int          `json:"totalprice"`
	DepositPaid     bool         `json:"depositpaid"`
	BookingDates    BookingDates `json:"bookingdates"`
	AdditionalNeeds string       `json:"additionalneeds,omitempty"`
}

// PartialBooking is the body of a partial update, only set fields are sent.
type PartialBooking struct {
	Firstname       *string       `json:"firstname,omitempty"`
	Lastname        *string       `json:"lastname,omitempty"`
	TotalPrice      *int          `json:"totalprice,omitempty"`
	DepositPaid     *bool         `json:"depositpaid,omitempty"`
	BookingDates    *BookingDates `json:"bookingdates,omitempty"`
	AdditionalNeeds *string       `json:"additionalneeds,omitempty"`
}

// CreatedBooking is returned when a booking is created.
type CreatedBooking struct {
	BookingID int     `json:"bookingid"`
	Booking   Booking `json:"booking"`
}

// BookingRef is a single entry of a booking listing.
type BookingRef struct {
	BookingID int `json:"bookingid"`
}

// BookingFilter narrows a booking listing, empty fields are not sent.
type BookingFilter struct {
	Firstname string
	Lastname  string
	Checkin   string
	Checkout  string
}
