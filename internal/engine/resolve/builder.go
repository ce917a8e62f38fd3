package resolve

import (
	"go.trai.ch/relock/internal/core/ports"
)

// Builder constructs per-invocation orchestrators from long-lived adapters.
// The adapters are stateless or internally synchronized, so orchestrators
// built from one Builder may run concurrently in separate sandboxes.
type Builder struct {
	workspaces ports.WorkspaceFactory
	runtime    ports.RuntimeManager
	runner     ports.CommandRunner
	logger     ports.Logger
}

// NewBuilder creates an orchestrator builder.
func NewBuilder(
	workspaces ports.WorkspaceFactory,
	runtime ports.RuntimeManager,
	runner ports.CommandRunner,
	logger ports.Logger,
) *Builder {
	return &Builder{
		workspaces: workspaces,
		runtime:    runtime,
		runner:     runner,
		logger:     logger,
	}
}

// Orchestrator builds an orchestrator for one dependency within one project
// snapshot.
func (b *Builder) Orchestrator(opts Options) (*Orchestrator, error) {
	return NewOrchestrator(opts, b.workspaces, b.runtime, b.runner, b.logger)
}
