package service_interfaces

import "context"

// CheckpointService pushes the full in-memory state through the snapshot store
// and restores it at startup. Checkpointing is caller-triggered; a checkpoint
// always reflects a fully-consistent state, never a partially-applied
// operation.
type CheckpointService interface {
	Checkpoint(ctx context.Context) error
	Restore(ctx context.Context) error
}
