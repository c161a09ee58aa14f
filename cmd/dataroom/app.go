package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MadMax2121/dataroom-client/internal/api"
	"github.com/MadMax2121/dataroom-client/internal/config"
	"github.com/MadMax2121/dataroom-client/internal/dataroom"
	"github.com/MadMax2121/dataroom-client/internal/logging"
	"github.com/MadMax2121/dataroom-client/internal/search"
	"github.com/MadMax2121/dataroom-client/internal/state"
)

// app wires configuration, logging, the remote store client, persistent
// state and the synchronization engine for one CLI invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	state  *state.State
	engine *dataroom.Engine
}

// newApp builds the full stack and loads the tree from the remote store.
// The previous session (active folder and sort preference) is restored
// before the load so it survives across invocations.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.Environment)

	st, err := state.Load(cfg.StateDBPath)
	if err != nil {
		return nil, err
	}

	client := api.NewClientWithTimeout(cfg.APIBaseURL, cfg.APIToken, cfg.RequestTimeout)

	engine := dataroom.NewEngine(client, logger)

	if err := engine.Load(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("loading data room: %w", err)
	}

	sess, err := st.Session()
	if err != nil {
		logger.Warn("reading saved session failed", slog.String("error", err.Error()))
	} else if sess != (state.Session{}) {
		engine.RestoreSession(dataroom.Session{
			ActiveFolderID: sess.ActiveFolderID,
			SortKey:        search.SortKey(sess.SortKey),
			SortDir:        search.Direction(sess.SortDir),
		})
	}

	if err := st.SetSnapshot(engine.Folders()); err != nil {
		logger.Warn("saving tree snapshot failed", slog.String("error", err.Error()))
	}

	return &app{cfg: cfg, logger: logger, state: st, engine: engine}, nil
}

// close persists the session and releases the state database.
func (a *app) close() {
	sess := a.engine.Session()

	err := a.state.SetSession(state.Session{
		ActiveFolderID: sess.ActiveFolderID,
		SortKey:        string(sess.SortKey),
		SortDir:        string(sess.SortDir),
	})
	if err != nil {
		a.logger.Warn("saving session failed", slog.String("error", err.Error()))
	}

	if err := a.state.Close(); err != nil {
		a.logger.Warn("closing state db failed", slog.String("error", err.Error()))
	}
}
