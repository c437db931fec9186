package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/breakdown/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/breakdown/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds everything the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			fs.StoreFactoryNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	newStore, err := graft.Dep[ports.ContentStoreFactory](ctx)
	if err != nil {
		return nil, err
	}

	newWatcher, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, tracer, newStore, newWatcher), nil
}
