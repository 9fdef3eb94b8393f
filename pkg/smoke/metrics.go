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
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/unikorn-cloud/booker-e2e/test/api"
)

const (
	MetricsNamespace = "booker_smoke"

	resultPass = "pass"
	resultFail = "fail"
)

// Metrics are the per step outcomes of a run.  They live in their own
// registry as a run is pushed, not scraped.
type Metrics struct {
	registry *prometheus.Registry

	stepsTotal   *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	runPassed    prometheus.Gauge
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		stepsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "steps_total",
			Help:      "Count of steps run",
		}, []string{
			"step",
			"result",
		}),
		stepDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "step_duration_seconds",
			Help:      "Duration of steps",
			Buckets:   prometheus.DefBuckets,
		}, []string{
			"step",
		}),
		runPassed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "run_passed",
			Help:      "Whether the last run passed",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Record adds the outcome of every step of result.
func (m *Metrics) Record(result *api.Result) {
	for _, step := range result.Steps {
		outcome := resultPass
		if !step.Passed {
			outcome = resultFail
		}

		m.stepsTotal.WithLabelValues(step.Name, outcome).Inc()
		m.stepDuration.WithLabelValues(step.Name).Observe(step.Duration.Seconds())
	}

	if result.Passed {
		m.runPassed.Set(1)
	} else {
		m.runPassed.Set(0)
	}
}

// Push sends the registry to a Pushgateway grouped by run ID.
func (m *Metrics) Push(ctx context.Context, url, job, runID string) error {
	if err := push.New(url, job).Gatherer(m.registry).Grouping("run_id", runID).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}

	return nil
}
