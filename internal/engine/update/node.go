package update

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relock/internal/adapters/declaration"
	"go.trai.ch/relock/internal/core/ports"
)

// NodeID is the unique identifier for the update engine Graft node.
const NodeID graft.ID = "engine.update"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{declaration.NodeID},
		Run: func(ctx context.Context) (*Engine, error) {
			finder, err := graft.Dep[ports.DeclarationFinder](ctx)
			if err != nil {
				return nil, err
			}
			return NewEngine(finder), nil
		},
	})
}
