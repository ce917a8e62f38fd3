package resolve

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/adapters/fs"
	"go.trai.ch/relock/internal/adapters/logger"
	"go.trai.ch/relock/internal/adapters/pyruntime"
	"go.trai.ch/relock/internal/adapters/shell"
	"go.trai.ch/relock/internal/core/ports"
)

// NodeID is the unique identifier for the resolve builder Graft node.
const NodeID graft.ID = "engine.resolve"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID, pyruntime.NodeID, shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			workspaces, err := graft.Dep[ports.WorkspaceFactory](ctx)
			if err != nil {
				return nil, err
			}
			runtime, err := graft.Dep[ports.RuntimeManager](ctx)
			if err != nil {
				return nil, err
			}
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(workspaces, runtime, runner, log), nil
		},
	})
}
