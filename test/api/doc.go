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

// Package api provides end-to-end test utilities for the Restful Booker API.
//
// # Client
//
// APIClient is a small hand written HTTP client rather than a generated one.
// Every call states the status code it expects, so a response that drifts
// from the published contract surfaces as an UnexpectedStatusError carrying
// the response body and the trace ID of the request. Responses are also
// checked against the embedded OpenAPI document (openapi/booker.yaml) unless
// schema validation is disabled.
//
// # Scenarios
//
// The booking lifecycle is expressed as an ordered list of Steps. Values
// captured by one step (the session token, the created booking ID) live in a
// State that is handed to every later step through an Env, never in package
// level variables. The same steps back the Ginkgo suites under suites/ and the
// booker-smoke command.
//
// # Configuration
//
// Configuration comes from the environment, optionally seeded from test/.env.
// See LoadTestConfig for the recognised variables.
package api
