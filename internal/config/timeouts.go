package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Provision         time.Duration // Timeout for long-running resource creation (registry, cluster)
	PollFrequency     time.Duration // Polling frequency for resource creation operations
	Build             time.Duration // Timeout for remote image builds
	BuildPoll         time.Duration // Interval between build run status checks
	AddressAttempts   int           // Maximum service address poll attempts
	AddressDelay      time.Duration // Delay between service address polls
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - HEARTOPS_TIMEOUT_PROVISION (default: 30m)
//   - HEARTOPS_POLL_FREQUENCY (default: 10s)
//   - HEARTOPS_TIMEOUT_BUILD (default: 20m)
//   - HEARTOPS_BUILD_POLL_INTERVAL (default: 10s)
//   - HEARTOPS_ADDRESS_ATTEMPTS (default: 30)
//   - HEARTOPS_ADDRESS_DELAY (default: 10s)
//   - HEARTOPS_RETRY_MAX_ATTEMPTS (default: 5)
//   - HEARTOPS_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Provision:         parseDuration("HEARTOPS_TIMEOUT_PROVISION", 30*time.Minute),
		PollFrequency:     parseDuration("HEARTOPS_POLL_FREQUENCY", 10*time.Second),
		Build:             parseDuration("HEARTOPS_TIMEOUT_BUILD", 20*time.Minute),
		BuildPoll:         parseDuration("HEARTOPS_BUILD_POLL_INTERVAL", 10*time.Second),
		AddressAttempts:   parseInt("HEARTOPS_ADDRESS_ATTEMPTS", 30),
		AddressDelay:      parseDuration("HEARTOPS_ADDRESS_DELAY", 10*time.Second),
		RetryMaxAttempts:  parseInt("HEARTOPS_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("HEARTOPS_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// TestTimeouts returns short values suitable for tests.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		Provision:         100 * time.Millisecond,
		PollFrequency:     time.Millisecond,
		Build:             100 * time.Millisecond,
		BuildPoll:         time.Millisecond,
		AddressAttempts:   3,
		AddressDelay:      time.Millisecond,
		RetryMaxAttempts:  2,
		RetryInitialDelay: 10 * time.Millisecond,
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
