package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/breakdown/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the file walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// StoreFactoryNodeID is the unique identifier for the content store factory Graft node.
	StoreFactoryNodeID graft.ID = "adapter.fs.store_factory"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.ContentStoreFactory]{
		ID:        StoreFactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.ContentStoreFactory, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return func(root string) ports.ContentStore {
				return NewStore(root, walker)
			}, nil
		},
	})
}
