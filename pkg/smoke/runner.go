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

package smoke

import (
	"context"
	"errors"
	"io"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/unikorn-cloud/booker-e2e/test/api"
)

var ErrStepsFailed = errors.New("booking lifecycle failed")

// Runner runs the booking lifecycle once and reports on it.
type Runner struct {
	config  *api.TestConfig
	options *Options
	log     logr.Logger
	out     io.Writer
	metrics *Metrics

	// client is created from config when nil.
	client api.BookingClient
}

const (
	tracerName = "github.com/unikorn-cloud/booker-e2e/pkg/smoke"
)

// NewRunner creates a runner, nil options run without a Pushgateway.
func NewRunner(config *api.TestConfig, options *Options, log logr.Logger, out io.Writer) *Runner {
	if options == nil {
		options = &Options{}
	}

	return &Runner{
		config:  config,
		options: options,
		log:     log,
		out:     out,
		metrics: NewMetrics(),
	}
}

// Metrics returns the metrics recorded by Run.
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// withRunTrace seeds a trace whose ID is the run ID, the run span and every
// request of the run inherit it.
func withRunTrace(ctx context.Context, runID uuid.UUID) context.Context {
	spanID := uuid.New()

	return trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID(runID),
		SpanID:     trace.SpanID(spanID[:8]),
		TraceFlags: trace.FlagsSampled,
	}))
}

// Run executes every step, cleans up after a failure, prints the summary and
// pushes metrics when a Pushgateway is configured.  It returns ErrStepsFailed
// when any step failed.
func (r *Runner) Run(ctx context.Context) (*api.Result, error) {
	runID := uuid.New()

	log := r.log.WithValues("runID", runID.String())

	client := r.client
	if client == nil {
		apiClient, err := api.NewAPIClientWithConfig(r.config, api.WithLogger(log))
		if err != nil {
			return nil, err
		}

		client = apiClient
	}

	ctx, span := otel.Tracer(tracerName).Start(withRunTrace(ctx, runID), "booking lifecycle",
		trace.WithAttributes(
			attribute.String("booker.run_id", runID.String()),
			attribute.String("booker.base_url", r.config.BaseURL),
		),
	)
	defer span.End()

	env := api.NewEnv(client, r.config, log)

	log.Info("running booking lifecycle", "baseURL", r.config.BaseURL, "traceID", trace.TraceID(runID).String())

	runCtx, cancel := context.WithTimeout(ctx, r.config.TestTimeout)
	defer cancel()

	result := api.RunSteps(runCtx, env, api.BookingSteps())

	// Cleanup still runs when the run timed out.
	cleanupCtx, cleanupCancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.RequestTimeout)
	defer cleanupCancel()

	var errs error

	if err := env.Cleanup(cleanupCtx); err != nil {
		errs = errors.Join(errs, err)
	}

	PrintResults(r.out, runID.String(), result)

	r.metrics.Record(result)

	if r.options.PushgatewayURL != "" {
		if err := r.metrics.Push(cleanupCtx, r.options.PushgatewayURL, r.options.Job, runID.String()); err != nil {
			log.Error(err, "metrics push failed")
			errs = errors.Join(errs, err)
		}
	}

	if !result.Passed {
		errs = errors.Join(ErrStepsFailed, errs)
	}

	span.SetAttributes(attribute.Int("booker.steps_failed", result.Failed()))

	if errs != nil {
		span.SetStatus(codes.Error, errs.Error())
	}

	return result, errs
}
