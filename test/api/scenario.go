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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-logr/logr"
	"github.com/onsi/gomega"
)

const (
	// FilterFirstname is a first name the public deployment always has
	// bookings for.
	FilterFirstname = "John"

	// FilterCheckin is a check in date with bookings on or after it.
	FilterCheckin = "2022-06-28"
)

var (
	ErrMissingToken     = errors.New("no session token has been captured")
	ErrMissingBookingID = errors.New("no booking ID has been captured")
)

// State holds the values captured by earlier steps for use by later ones.
// Once set they are reused verbatim.
type State struct {
	Token     string
	BookingID int
	Deleted   bool
}

// TokenAuth returns the captured session token as a credential.
func (s *State) TokenAuth() (Authenticator, error) {
	if s.Token == "" {
		return nil, ErrMissingToken
	}

	return TokenAuth{Token: s.Token}, nil
}

// Booking returns the captured booking ID.
func (s *State) Booking() (int, error) {
	if s.BookingID == 0 {
		return 0, ErrMissingBookingID
	}

	return s.BookingID, nil
}

// Env is everything a step needs: the client, configuration and the state
// carried between steps.
type Env struct {
	Client  BookingClient
	Config  *TestConfig
	State   *State
	Tracker *BookingTracker
	Log     logr.Logger
}

func NewEnv(client BookingClient, config *TestConfig, log logr.Logger) *Env {
	return &Env{
		Client:  client,
		Config:  config,
		State:   &State{},
		Tracker: NewBookingTracker(),
		Log:     log,
	}
}

// Cleanup deletes any booking the run created but did not delete.  The
// captured token is used when there is one, otherwise the configured account
// credentials.
func (e *Env) Cleanup(ctx context.Context) error {
	if !e.Config.CleanupOnFailure {
		return nil
	}

	live := e.Tracker.Live()
	if len(live) == 0 {
		return nil
	}

	auth, err := e.State.TokenAuth()
	if err != nil {
		auth = BasicAuth{
			Username: e.Config.Username,
			Password: e.Config.Password,
		}
	}

	e.Log.Info("cleaning up bookings", "bookingIDs", live)

	if err := e.Tracker.Cleanup(ctx, e.Client, auth); err != nil {
		e.Log.Error(err, "cleanup incomplete")
		return err
	}

	return nil
}

// StepFunc performs a single call and asserts on its result with g.  A
// failed assertion stops the step.
type StepFunc func(ctx context.Context, g gomega.Gomega, env *Env)

type Step struct {
	Name string
	Run  StepFunc
}

// BookingSteps returns the booking lifecycle in the order it must run.
func BookingSteps() []Step {
	return []Step{
		{Name: "check health", Run: CheckHealth},
		{Name: "create token", Run: CreateToken},
		{Name: "list bookings", Run: ListBookings},
		{Name: "list bookings by first name", Run: ListBookingsByFirstname},
		{Name: "list bookings by check in date", Run: ListBookingsByCheckin},
		{Name: "get booking by id", Run: GetKnownBooking},
		{Name: "create booking", Run: CreateBooking},
		{Name: "update booking", Run: UpdateBooking},
		{Name: "partially update booking", Run: PartialUpdateBooking},
		{Name: "delete booking", Run: DeleteBooking},
	}
}

func CheckHealth(ctx context.Context, g gomega.Gomega, env *Env) {
	g.Expect(env.Client.Ping(ctx)).To(gomega.Succeed())

	env.Log.Info("API Health OK!")
}

func CreateToken(ctx context.Context, g gomega.Gomega, env *Env) {
	resp, err := env.Client.CreateToken(ctx, env.Config.Credentials())
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(resp.Body).To(MatchJSONSubset(map[string]any{
		"token": regexp.MustCompile(".+"),
	}))

	env.State.Token = resp.Value.Token

	env.Log.Info("Authentication Token: " + env.State.Token)
}

func listBookings(ctx context.Context, g gomega.Gomega, env *Env, filter BookingFilter, description string) {
	resp, err := env.Client.ListBookings(ctx, filter)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(resp.Value).NotTo(gomega.BeEmpty(), "expected bookings %s", description)

	env.Log.Info(fmt.Sprintf("Total Records %s: %d", description, len(resp.Value)))
}

func ListBookings(ctx context.Context, g gomega.Gomega, env *Env) {
	listBookings(ctx, g, env, BookingFilter{}, "(unfiltered)")
}

func ListBookingsByFirstname(ctx context.Context, g gomega.Gomega, env *Env) {
	listBookings(ctx, g, env, BookingFilter{Firstname: FilterFirstname}, "(with firstname "+FilterFirstname+")")
}

func ListBookingsByCheckin(ctx context.Context, g gomega.Gomega, env *Env) {
	listBookings(ctx, g, env, BookingFilter{Checkin: FilterCheckin}, "(checkin on or after "+FilterCheckin+")")
}

func GetKnownBooking(ctx context.Context, g gomega.Gomega, env *Env) {
	expected, err := json.Marshal(KnownBooking())
	g.Expect(err).NotTo(gomega.HaveOccurred())

	resp, err := env.Client.GetBooking(ctx, env.Config.KnownBookingID)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(resp.Body).To(gomega.MatchJSON(expected))

	env.Log.Info(fmt.Sprintf("Booking detail with id: %d", env.Config.KnownBookingID), "booking", string(resp.Body))
}

func CreateBooking(ctx context.Context, g gomega.Gomega, env *Env) {
	payload := NewBookingPayload().Build()

	resp, err := env.Client.CreateBooking(ctx, payload)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(resp.Value.BookingID).To(gomega.BeNumerically(">", 0))

	// Track before asserting on the body so a mismatch still gets cleaned up.
	env.State.BookingID = resp.Value.BookingID
	env.Tracker.Created(resp.Value.BookingID)

	g.Expect(resp.Body).To(MatchJSONSubset(map[string]any{
		"booking": payload,
	}))

	env.Log.Info(fmt.Sprintf("Created following record with %d", resp.Value.BookingID), "booking", string(resp.Body))
}

// capturedBooking returns the credential and booking ID captured by earlier
// steps, failing the step naming whichever is missing.
func capturedBooking(g gomega.Gomega, env *Env) (Authenticator, int) {
	auth, err := env.State.TokenAuth()
	g.Expect(err).NotTo(gomega.HaveOccurred())

	bookingID, err := env.State.Booking()
	g.Expect(err).NotTo(gomega.HaveOccurred())

	return auth, bookingID
}

func UpdateBooking(ctx context.Context, g gomega.Gomega, env *Env) {
	auth, bookingID := capturedBooking(g, env)

	payload := UpdatedBookingPayload()

	expected, err := json.Marshal(payload)
	g.Expect(err).NotTo(gomega.HaveOccurred())

	resp, err := env.Client.UpdateBooking(ctx, auth, bookingID, payload)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(resp.Body).To(gomega.MatchJSON(expected))

	env.Log.Info("Updated booking", "bookingID", bookingID, "booking", string(resp.Body))
}

func PartialUpdateBooking(ctx context.Context, g gomega.Gomega, env *Env) {
	auth, bookingID := capturedBooking(g, env)

	payload := PartialBookingPayload()

	resp, err := env.Client.PartialUpdateBooking(ctx, auth, bookingID, payload)
	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(resp.Body).To(MatchJSONSubset(payload))

	env.Log.Info("Partially updated booking", "bookingID", bookingID, "booking", string(resp.Body))
}

func DeleteBooking(ctx context.Context, g gomega.Gomega, env *Env) {
	auth, bookingID := capturedBooking(g, env)

	g.Expect(env.Client.DeleteBooking(ctx, auth, bookingID)).To(gomega.Succeed())

	env.State.Deleted = true
	env.Tracker.Deleted(bookingID)

	env.Log.Info("Deleted booking", "bookingID", bookingID)
}

// StepResult records the outcome of a single step.
type StepResult struct {
	Name     string
	Passed   bool
	Duration time.Duration
	Error    string // empty when passed
}

// Result records the outcome of a sequence of steps.
type Result struct {
	Passed   bool
	Steps    []StepResult
	Duration time.Duration
}

// Failed returns the number of failed steps.
func (r *Result) Failed() int {
	failed := 0

	for _, step := range r.Steps {
		if !step.Passed {
			failed++
		}
	}

	return failed
}

// RunSteps runs every step in order outside of a Ginkgo suite.  A failed
// step does not stop the sequence, later steps that depend on its captured
// values fail on their own.
func RunSteps(ctx context.Context, env *Env, steps []Step) *Result {
	start := time.Now()

	result := &Result{
		Passed: true,
	}

	for _, step := range steps {
		sr := runStep(ctx, env, step)
		result.Steps = append(result.Steps, sr)

		if !sr.Passed {
			result.Passed = false

			env.Log.Info("step failed", "step", step.Name, "error", sr.Error)
		}
	}

	result.Duration = time.Since(start)

	return result
}

// stepFailure carries a failed assertion out of a step.
type stepFailure string

func runStep(ctx context.Context, env *Env, step Step) (result StepResult) {
	start := time.Now()

	result.Name = step.Name

	defer func() {
		result.Duration = time.Since(start)

		r := recover()
		if r == nil {
			return
		}

		result.Passed = false

		if failure, ok := r.(stepFailure); ok {
			result.Error = string(failure)
			return
		}

		result.Error = fmt.Sprintf("panic: %v", r)
	}()

	g := gomega.NewGomega(func(message string, _ ...int) {
		panic(stepFailure(message))
	})

	step.Run(ctx, g, env)

	result.Passed = true

	return result
}
