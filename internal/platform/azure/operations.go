package azure

import (
	"context"
	"fmt"
)

// EnsureOperation reconciles a single resource: observe first, create only
// when the observation reports not found. Any other observation error aborts
// without mutating anything.
type EnsureOperation[T any] struct {
	// ResourceType names the resource kind for error messages.
	ResourceType string
	// Name identifies the resource instance for error messages.
	Name string

	Get    func(ctx context.Context) (T, error)
	Create func(ctx context.Context) (T, error)
}

// Execute runs the ensure sequence. The returned bool reports whether the
// resource was created on this call.
func (op *EnsureOperation[T]) Execute(ctx context.Context) (T, bool, error) {
	var zero T

	existing, err := op.Get(ctx)
	if err == nil {
		return existing, false, nil
	}
	if !IsNotFound(err) {
		return zero, false, fmt.Errorf("failed to get %s %q: %w", op.ResourceType, op.Name, err)
	}

	created, err := op.Create(ctx)
	if err != nil {
		return zero, false, fmt.Errorf("failed to create %s %q: %w", op.ResourceType, op.Name, err)
	}
	return created, true, nil
}

// UpsertOutcome classifies how an upsert settled.
type UpsertOutcome string

const (
	// UpsertCreated means the conditional create won and no prior value existed.
	UpsertCreated UpsertOutcome = "created"
	// UpsertReplaced means a prior value existed and was overwritten.
	UpsertReplaced UpsertOutcome = "replaced"
	// UpsertFailed means neither path succeeded.
	UpsertFailed UpsertOutcome = "failed"
)

// RecordUpsert writes a value that may already exist: a conditional
// create-if-absent first, then an unconditional replace when the create
// lost against an existing value.
type RecordUpsert struct {
	// Name identifies the record for error messages.
	Name string

	CreateIfAbsent func(ctx context.Context) error
	Replace        func(ctx context.Context) error
}

// Execute runs the two-path upsert and reports which path settled it.
func (u *RecordUpsert) Execute(ctx context.Context) (UpsertOutcome, error) {
	err := u.CreateIfAbsent(ctx)
	if err == nil {
		return UpsertCreated, nil
	}
	if !IsConflict(err) && !IsPreconditionFailed(err) {
		return UpsertFailed, fmt.Errorf("failed to create %s: %w", u.Name, err)
	}

	if err := u.Replace(ctx); err != nil {
		return UpsertFailed, fmt.Errorf("failed to replace %s: %w", u.Name, err)
	}
	return UpsertReplaced, nil
}
