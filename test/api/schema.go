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
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

var ErrSchemaValidation = errors.New("response does not match schema")

//go:embed openapi/booker.yaml
var bookerSchema []byte

// SchemaValidator checks responses against the embedded OpenAPI document.
type SchemaValidator struct {
	router routers.Router
}

// NewSchemaValidator loads the embedded document and binds it to the given
// base URL so routes resolve against whichever deployment is under test.
func NewSchemaValidator(baseURL string) (*SchemaValidator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(bookerSchema)
	if err != nil {
		return nil, fmt.Errorf("loading booker schema: %w", err)
	}

	doc.Servers = openapi3.Servers{
		&openapi3.Server{URL: baseURL},
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating booker schema: %w", err)
	}

	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("creating schema router: %w", err)
	}

	return &SchemaValidator{
		router: router,
	}, nil
}

// ValidateResponse checks the status, content type and body of a response
// against the operation the request was routed to.
func (v *SchemaValidator) ValidateResponse(ctx context.Context, req *http.Request, resp *http.Response, body []byte) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("%w: no route for %s %s: %w", ErrSchemaValidation, req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   io.NopCloser(bytes.NewReader(body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s status %d: %w", ErrSchemaValidation, req.Method, req.URL.Path, resp.StatusCode, err)
	}

	return nil
}
