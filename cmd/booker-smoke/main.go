/*
Copyright 2025 the Unikorn Authors.
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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"

	"github.com/unikorn-cloud/booker-e2e/pkg/constants"
	"github.com/unikorn-cloud/booker-e2e/pkg/smoke"
	"github.com/unikorn-cloud/booker-e2e/test/api"
	"github.com/unikorn-cloud/core/pkg/options"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

func main() {
	var coreOptions options.CoreOptions

	var smokeOptions smoke.Options

	coreOptions.AddFlags(pflag.CommandLine)
	smokeOptions.AddFlags(pflag.CommandLine)

	pflag.Parse()

	coreOptions.SetupLogging()

	logger := log.Log.WithName("init")
	logger.Info("smoke test starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx := cr.SetupSignalHandler()

	if err := coreOptions.SetupOpenTelemetry(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	config, err := api.LoadTestConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := smokeOptions.Apply(config); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	runner := smoke.NewRunner(config, &smokeOptions, log.Log.WithName("booker-smoke"), os.Stdout)

	_, err = runner.Run(ctx)

	shutdownTracing()

	if err != nil {
		if !errors.Is(err, smoke.ErrStepsFailed) {
			fmt.Println(err)
		}

		os.Exit(1)
	}
}

// shutdownTracing flushes spans still queued for the OTLP exporter.
func shutdownTracing() {
	if provider, ok := otel.GetTracerProvider().(interface{ Shutdown(ctx context.Context) error }); ok {
		if err := provider.Shutdown(context.Background()); err != nil {
			fmt.Println(err)
		}
	}
}
