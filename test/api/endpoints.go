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
	"fmt"
	"net/url"
	"strconv"

	"github.com/oapi-codegen/runtime"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Health endpoints.
func (e *Endpoints) Ping() string {
	return "/ping"
}

// Authentication endpoints.
func (e *Endpoints) CreateToken() string {
	return "/auth"
}

// Booking endpoints.
func (e *Endpoints) CreateBooking() string {
	return "/booking"
}

func (e *Endpoints) GetBooking(bookingID int) string {
	return fmt.Sprintf("/booking/%s", url.PathEscape(strconv.Itoa(bookingID)))
}

func (e *Endpoints) UpdateBooking(bookingID int) string {
	return e.GetBooking(bookingID)
}

func (e *Endpoints) PartialUpdateBooking(bookingID int) string {
	return e.GetBooking(bookingID)
}

func (e *Endpoints) DeleteBooking(bookingID int) string {
	return e.GetBooking(bookingID)
}

// ListBookings returns the listing path with any filter encoded as form
// style query parameters, the same way generated clients do.
func (e *Endpoints) ListBookings(filter BookingFilter) (string, error) {
	params := []struct {
		name  string
		value string
	}{
		{"firstname", filter.Firstname},
		{"lastname", filter.Lastname},
		{"checkin", filter.Checkin},
		{"checkout", filter.Checkout},
	}

	query := url.Values{}

	for _, param := range params {
		if param.value == "" {
			continue
		}

		fragment, err := runtime.StyleParamWithLocation("form", true, param.name, runtime.ParamLocationQuery, param.value)
		if err != nil {
			return "", fmt.Errorf("styling query parameter %s: %w", param.name, err)
		}

		parsed, err := url.ParseQuery(fragment)
		if err != nil {
			return "", fmt.Errorf("parsing query parameter %s: %w", param.name, err)
		}

		for k, values := range parsed {
			for _, v := range values {
				query.Add(k, v)
			}
		}
	}

	if len(query) == 0 {
		return "/booking", nil
	}

	return "/booking?" + query.Encode(), nil
}
