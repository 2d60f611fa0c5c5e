// Package cli wires the cobra command tree over the session service and the
// typed API clients. Every command builds the same dependency graph: config,
// logger, file-backed session store, shared transport, session service.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/service"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/api"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/store"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/pkg/config"
	"github.com/ABDELMSK/projet-si-management-sub000/pkg/logger"
)

// app is the explicit dependency graph handed to commands. It replaces any
// ambient/global session lookup: constructed at command start, torn down when
// the process exits.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   *store.FileStore
	client  *api.Client
	auth    *api.AuthClient
	session *service.SessionService
	refs    *api.ReferenceClient
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	st := store.NewFileStore(cfg.SessionFile)
	client := api.NewClient(cfg.APIBaseURL, st, log, api.WithTimeout(cfg.HTTPTimeout))
	auth := api.NewAuthClient(client)
	session := service.NewSessionService(auth, st, log)

	// Any mid-session 401 funnels into the session service, which tears the
	// session down once and notifies its observer.
	client.OnAuthLost(session.Invalidate)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   st,
		client:  client,
		auth:    auth,
		session: session,
		refs:    api.NewReferenceClient(client),
	}, nil
}

// requireAuth replays the stored session and fails with a login hint when the
// user ends up anonymous.
func (a *app) requireAuth(ctx context.Context) error {
	if err := a.session.Bootstrap(ctx); err != nil {
		return err
	}
	if a.session.State() != service.StateAuthenticated {
		return fmt.Errorf("non connecté : lancez `psim login` d'abord")
	}
	return nil
}

func (a *app) permissions() domain.PermissionSet {
	return a.session.Permissions()
}
