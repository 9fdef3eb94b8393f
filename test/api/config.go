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
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public Restful Booker deployment.
	DefaultBaseURL = "https://restful-booker.herokuapp.com"

	defaultUsername       = "admin"
	defaultPassword       = "password123"
	defaultKnownBookingID = 1030
)

var ErrInvalidConfig = errors.New("invalid configuration")

type TestConfig struct {
	BaseURL          string
	Username         string
	Password         string
	KnownBookingID   int
	RequestTimeout   time.Duration
	TestTimeout      time.Duration
	SkipIntegration  bool
	DebugLogging     bool
	LogRequests      bool
	LogResponses     bool
	ValidateSchema   bool
	CleanupOnFailure bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Every value has a default that targets the public deployment, so an empty
// environment is a valid configuration.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:          getStringWithDefault("API_BASE_URL", DefaultBaseURL),
		Username:         getStringWithDefault("API_USERNAME", defaultUsername),
		Password:         getStringWithDefault("API_PASSWORD", defaultPassword),
		KnownBookingID:   getIntWithDefault("TEST_KNOWN_BOOKING_ID", defaultKnownBookingID),
		RequestTimeout:   getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:      getDurationWithDefault("TEST_TIMEOUT", 2*time.Minute),
		SkipIntegration:  getBoolWithDefault("SKIP_INTEGRATION", false),
		DebugLogging:     getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:      getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:     getBoolWithDefault("LOG_RESPONSES", false),
		ValidateSchema:   getBoolWithDefault("VALIDATE_SCHEMA", true),
		CleanupOnFailure: getBoolWithDefault("CLEANUP_ON_FAILURE", true),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Credentials returns the auth request body for the configured user.
func (c *TestConfig) Credentials() Credentials {
	return Credentials{
		Username: c.Username,
		Password: c.Password,
	}
}

// Validate checks that the configuration can be used to reach the API.
func (c *TestConfig) Validate() error {
	var problems []string

	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("API_BASE_URL %q is not an absolute http(s) URL", c.BaseURL))
	}

	if c.Username == "" {
		problems = append(problems, "API_USERNAME is empty")
	}

	if c.Password == "" {
		problems = append(problems, "API_PASSWORD is empty")
	}

	if c.KnownBookingID <= 0 {
		problems = append(problems, fmt.Sprintf("TEST_KNOWN_BOOKING_ID must be positive, got %d", c.KnownBookingID))
	}

	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getIntWithDefault gets an integer from environment variable or returns default.
func getIntWithDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites
		"../../test/.env",    // From test/api
		"test/.env",          // From the repository root (booker-smoke)
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// godotenv.Load never overrides variables already set in the environment.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
