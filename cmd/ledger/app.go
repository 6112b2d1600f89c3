package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ledger/internal/backend"
	"ledger/internal/cli"
	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/storage"
)

// Exit codes
const (
	exitOK         = 0
	exitInternal   = 1
	exitValidation = 2
	exitNotFound   = 3
)

var errMissingOwner = errors.New("no owner: pass --owner or set LEDGER_OWNER")

type app struct {
	out   io.Writer
	owner string

	logger       *log.Logger
	categories   *services.CategoryService
	transactions *services.TransactionService
	summary      *services.SummaryService
	cleanup      backend.CleanupFunc
}

// wire builds the services over store. now may be nil.
func (a *app) wire(store storage.Store, pub services.EventPublisher, now func() time.Time, recentLimit int) {
	a.categories = services.NewCategoryService(store, pub)
	a.transactions = services.NewTransactionService(store, pub, now)
	a.summary = services.NewSummaryService(store, now, recentLimit)
}

// setup loads .env and configuration and opens the backend. It is a no-op
// when the services were wired beforehand.
func (a *app) setup(ctx context.Context) error {
	if a.summary != nil {
		return nil
	}
	if err := cli.LoadEnvFile(); err != nil {
		return err
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}
	a.logger = logger

	res, err := cli.InitBackend(ctx, logger, cfg)
	if err != nil {
		return err
	}
	a.cleanup = res.Cleanup
	a.wire(res.Store, res.Publisher, nil, cfg.RecentLimit)

	if a.owner == "" {
		a.owner = cfg.Owner
	}
	return nil
}

func (a *app) close() error {
	if a.cleanup == nil {
		return nil
	}
	err := a.cleanup()
	a.cleanup = nil
	return err
}

func (a *app) context(ctx context.Context) context.Context {
	if a.logger == nil {
		return ctx
	}
	return log.WithContext(ctx, a.logger)
}

func (a *app) requireOwner() (string, error) {
	if a.owner == "" {
		return "", errMissingOwner
	}
	return a.owner, nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ledger",
		Short:         "Personal income and expense ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd.Context()); err != nil {
				return err
			}
			cmd.SetContext(a.context(cmd.Context()))
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&a.owner, "owner", "", "owner id (defaults to LEDGER_OWNER)")

	root.AddCommand(
		newCategoryCmd(a),
		newTxCmd(a),
		newDashboardCmd(a),
		newListCmd(a),
	)
	return root
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, s)
	}
	return id, nil
}

var errInvalidID = errors.New("invalid id")

// exitCode maps domain errors to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, core.ErrNotFound):
		return exitNotFound
	case core.IsValidation(err), errors.Is(err, errInvalidID), errors.Is(err, errMissingOwner):
		return exitValidation
	default:
		return exitInternal
	}
}
