// Package retry provides bounded retry logic for transient failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay, and maximum delay. [WithConstantBackoff] retries
// at a fixed interval; it backs the polling loops for build runs and service
// addresses. Errors wrapped with [Fatal] short-circuit both.
package retry
