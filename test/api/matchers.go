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
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
)

// MatchJSONSubset succeeds when the actual JSON document contains at least
// the expected one: every expected object key must be present with a
// matching value, and every expected array element must match a distinct
// actual element.  Leaves may be a *regexp.Regexp, which must match the
// string form of the actual value.
//
// Actual may be a []byte, a string, a json.RawMessage or any value that
// marshals to JSON.  Expected may be any value that marshals to JSON, with
// regular expressions allowed in maps and slices.
func MatchJSONSubset(expected any) types.GomegaMatcher {
	return &jsonSubsetMatcher{
		expected: expected,
	}
}

type jsonSubsetMatcher struct {
	expected any
	path     string
	reason   string
}

func (m *jsonSubsetMatcher) Match(actual any) (bool, error) {
	actualValue, err := decodeActual(actual)
	if err != nil {
		return false, err
	}

	expectedValue, err := normalizeExpected(m.expected)
	if err != nil {
		return false, err
	}

	m.path, m.reason = subsetMismatch("$", expectedValue, actualValue)

	return m.reason == "", nil
}

func (m *jsonSubsetMatcher) FailureMessage(actual any) string {
	return format.Message(actualForDisplay(actual), fmt.Sprintf("to contain JSON subset (mismatch at %s: %s)", m.path, m.reason), m.expectedForDisplay())
}

func (m *jsonSubsetMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actualForDisplay(actual), "not to contain JSON subset", m.expectedForDisplay())
}

// expectedForDisplay returns the expected document with regular expression
// leaves shown as /pattern/.
func (m *jsonSubsetMatcher) expectedForDisplay() any {
	expected, err := normalizeExpected(m.expected)
	if err != nil {
		return m.expected
	}

	return patternsForDisplay(expected)
}

func patternsForDisplay(value any) any {
	switch t := value.(type) {
	case *regexp.Regexp:
		return "/" + t.String() + "/"
	case map[string]any:
		out := make(map[string]any, len(t))

		for k, v := range t {
			out[k] = patternsForDisplay(v)
		}

		return out
	case []any:
		out := make([]any, len(t))

		for i, v := range t {
			out[i] = patternsForDisplay(v)
		}

		return out
	}

	return value
}

func actualForDisplay(actual any) any {
	switch t := actual.(type) {
	case []byte:
		return string(t)
	case json.RawMessage:
		return string(t)
	}

	return actual
}

// decodeActual turns the actual value into its generic JSON form.
func decodeActual(actual any) (any, error) {
	var data []byte

	switch t := actual.(type) {
	case []byte:
		data = t
	case json.RawMessage:
		data = t
	case string:
		data = []byte(t)
	default:
		marshaled, err := json.Marshal(actual)
		if err != nil {
			return nil, fmt.Errorf("MatchJSONSubset cannot marshal actual value: %w", err)
		}

		data = marshaled
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("MatchJSONSubset actual value is not valid JSON: %w", err)
	}

	return value, nil
}

// normalizeExpected converts the expected value to its generic JSON form,
// keeping any regular expressions in place.
func normalizeExpected(expected any) (any, error) {
	switch t := expected.(type) {
	case *regexp.Regexp:
		return t, nil
	case map[string]any:
		out := make(map[string]any, len(t))

		for k, v := range t {
			n, err := normalizeExpected(v)
			if err != nil {
				return nil, err
			}

			out[k] = n
		}

		return out, nil
	case []any:
		out := make([]any, len(t))

		for i, v := range t {
			n, err := normalizeExpected(v)
			if err != nil {
				return nil, err
			}

			out[i] = n
		}

		return out, nil
	}

	data, err := json.Marshal(expected)
	if err != nil {
		return nil, fmt.Errorf("MatchJSONSubset cannot marshal expected value: %w", err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("MatchJSONSubset cannot decode expected value: %w", err)
	}

	return value, nil
}

// subsetMismatch returns the path and reason of the first place actual fails
// to contain expected, or an empty reason when it does.
func subsetMismatch(path string, expected, actual any) (string, string) {
	switch e := expected.(type) {
	case *regexp.Regexp:
		var s string

		switch a := actual.(type) {
		case string:
			s = a
		case nil:
			return path, "value is missing or null"
		default:
			s = fmt.Sprint(a)
		}

		if !e.MatchString(s) {
			return path, fmt.Sprintf("%q does not match /%s/", s, e.String())
		}

		return "", ""
	case map[string]any:
		a, ok := actual.(map[string]any)
		if !ok {
			return path, fmt.Sprintf("expected an object, got %T", actual)
		}

		for k, v := range e {
			av, ok := a[k]
			if !ok {
				return path + "." + k, "key is missing"
			}

			if p, reason := subsetMismatch(path+"."+k, v, av); reason != "" {
				return p, reason
			}
		}

		return "", ""
	case []any:
		a, ok := actual.([]any)
		if !ok {
			return path, fmt.Sprintf("expected an array, got %T", actual)
		}

		used := make([]bool, len(a))

		for i, v := range e {
			found := false

			for j, av := range a {
				if used[j] {
					continue
				}

				if _, reason := subsetMismatch(path, v, av); reason == "" {
					used[j] = true
					found = true

					break
				}
			}

			if !found {
				return fmt.Sprintf("%s[%d]", path, i), "no matching element"
			}
		}

		return "", ""
	}

	if !reflect.DeepEqual(expected, actual) {
		return path, fmt.Sprintf("expected %v, got %v", expected, actual)
	}

	return "", ""
}
