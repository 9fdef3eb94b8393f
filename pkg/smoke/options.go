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
	"time"

	"github.com/spf13/pflag"

	"github.com/unikorn-cloud/booker-e2e/test/api"
)

const (
	defaultJob = "booker_smoke"
)

// Options are the command line overrides of the environment configuration.
type Options struct {
	BaseURL        string
	Username       string
	Password       string
	RequestTimeout time.Duration
	Cleanup        bool
	NoSchema       bool
	PushgatewayURL string
	Job            string

	flags *pflag.FlagSet
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.flags = f

	f.StringVar(&o.BaseURL, "base-url", api.DefaultBaseURL, "Booking API base URL, overrides API_BASE_URL.")
	f.StringVar(&o.Username, "username", "", "Account used to create a session token, overrides API_USERNAME.")
	f.StringVar(&o.Password, "password", "", "Password of the account, overrides API_PASSWORD.")
	f.DurationVar(&o.RequestTimeout, "request-timeout", 30*time.Second, "Timeout of a single request, overrides REQUEST_TIMEOUT.")
	f.BoolVar(&o.Cleanup, "cleanup", true, "Delete bookings a failed run leaves behind, overrides CLEANUP_ON_FAILURE.")
	f.BoolVar(&o.NoSchema, "no-schema", false, "Do not validate responses against the OpenAPI document.")
	f.StringVar(&o.PushgatewayURL, "pushgateway-url", "", "Prometheus Pushgateway to push run metrics to.")
	f.StringVar(&o.Job, "job", defaultJob, "Pushgateway job name.")
}

// changed reports whether a flag was given explicitly.  Flags that were never
// registered count as unset.
func (o *Options) changed(name string) bool {
	return o.flags != nil && o.flags.Changed(name)
}

// Apply overrides config with every flag given on the command line and
// validates the result.
func (o *Options) Apply(config *api.TestConfig) error {
	if o.changed("base-url") {
		config.BaseURL = o.BaseURL
	}

	if o.changed("username") {
		config.Username = o.Username
	}

	if o.changed("password") {
		config.Password = o.Password
	}

	if o.changed("request-timeout") {
		config.RequestTimeout = o.RequestTimeout
	}

	if o.changed("cleanup") {
		config.CleanupOnFailure = o.Cleanup
	}

	if o.NoSchema {
		config.ValidateSchema = false
	}

	return config.Validate()
}
