package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vodila/vodila/internal/api"
	"github.com/vodila/vodila/internal/async"
	"github.com/vodila/vodila/internal/config"
	"github.com/vodila/vodila/internal/identity"
	"github.com/vodila/vodila/internal/logging"
	"github.com/vodila/vodila/internal/progress"
	"github.com/vodila/vodila/internal/store"
)

// env is everything a command needs to talk to the backend and the local
// journal.
type env struct {
	cfg      *config.Config
	log      *logrus.Logger
	store    *store.Store
	client   *api.Client
	tasks    *async.Group
	sync     *progress.Synchronizer
	resolver *identity.Resolver

	closers []io.Closer
}

// setup builds an env. Interactive commands log to a file because the
// terminal UI owns the screen; the others log to stderr.
func setup(cmd *cobra.Command, interactive bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if interactive {
		dataDir, err := store.DataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		logger, closer, err := logging.NewFile(cfg.Log, dataDir)
		if err != nil {
			return nil, err
		}
		e.log = logger
		e.closers = append(e.closers, closer)
	} else {
		e.log, err = logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return nil, err
		}
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	e.store, err = store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.closers = append(e.closers, e.store)

	e.client, err = api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
	}, e.log)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.tasks = async.NewGroup(e.log)
	e.sync = progress.NewSynchronizer(e.client, e.tasks, e.log, progress.WithJournal(e.store))
	e.resolver = identity.NewResolver(
		identity.StaticPlatform{Raw: cfg.Identity.InitData},
		e.client,
		e.store.DeviceID,
		cfg.Identity.Header,
		e.log,
	)
	return e, nil
}

// identify resolves who is studying and attaches it to every later
// request. The returned identity is usable even when err is not nil.
func (e *env) identify(ctx context.Context) (identity.Identity, error) {
	id, err := e.resolver.Resolve(ctx)
	e.client.SetIdentity(id)
	return id, err
}

// user names the attached identity for the header.
func (e *env) user() string {
	id, ok := e.client.Identity()
	if !ok {
		return ""
	}
	return id.DisplayName()
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		errs = append(errs, e.closers[i].Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}
