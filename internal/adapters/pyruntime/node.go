package pyruntime

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/adapters/logger"
	"go.trai.ch/relock/internal/adapters/shell"
	"go.trai.ch/relock/internal/core/ports"
)

// NodeID is the unique identifier for the runtime manager Graft node.
const NodeID graft.ID = "adapter.pyruntime"

// defaultManifestName matches the resolve engine's default manifest.
const defaultManifestName = "pyproject.toml"

func init() {
	graft.Register(graft.Node[ports.RuntimeManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeManager, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(runner, log, defaultManifestName), nil
		},
	})
}
