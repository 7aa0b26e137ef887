package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"steamqueue/internal/catalog"
	"steamqueue/internal/classify"
	"steamqueue/internal/config"
	"steamqueue/internal/gameslog"
	"steamqueue/internal/history"
	"steamqueue/internal/logging"
	"steamqueue/internal/pipeline"
	"steamqueue/internal/ratelimit"
	"steamqueue/internal/steam"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool
	var testMode bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch, classify, and queue new games",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if testMode {
				cfg.Operation.TestMode = true
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return executeRun(runCtx, cmd, cfg, assumeYes)
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().BoolVar(&testMode, "test", false, "Stop after the configured test limit")
	return cmd
}

func executeRun(ctx context.Context, cmd *cobra.Command, cfg *config.Config, assumeYes bool) error {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	// One run at a time: the pacing contract is per process group, not
	// per process.
	lock := flock.New(lockPath(cfg))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another run is already active (lock %s)", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderBanner(cfg))

	limiter := ratelimit.New(cfg.RateLimitInterval())
	client, err := steam.New(cfg.Steam.APIKey, cfg.Steam.SteamID, limiter,
		steam.WithBaseURLs(cfg.API.StoreBaseURL, cfg.API.WebAPIBaseURL, cfg.API.CommunityBaseURL),
		steam.WithDetailTimeout(cfg.RequestTimeout()),
	)
	if err != nil {
		return err
	}

	classifier := classify.New(client, classify.Options{
		Windows:       cfg.Platforms.Windows,
		Mac:           cfg.Platforms.Mac,
		Linux:         cfg.Platforms.Linux,
		FilterDenuvo:  cfg.Operation.FilterDenuvo,
		DenuvoStrings: cfg.DRM.DenuvoStrings,
	}, logger)

	var confirmer pipeline.Confirmer
	if assumeYes {
		confirmer = pipeline.AutoConfirm(true)
	} else {
		confirmer = &terminalConfirmer{in: cmd.InOrStdin(), out: out}
	}

	p, err := pipeline.New(pipeline.Options{
		Library:       client,
		Catalog:       catalog.NewFetcher(client, catalog.NewStore(cfg.Files.SoftwareFile), logger),
		Classifier:    classifier,
		GamesLog:      gameslog.NewStore(cfg.Files.GamesFile),
		QueuePath:     cfg.Files.QueueFile,
		Confirmer:     confirmer,
		QueueFromFile: cfg.Operation.QueueFromFile,
		InputPath:     cfg.Files.InputFile,
		TestMode:      cfg.Operation.TestMode,
		TestLimit:     cfg.Operation.TestLimit,
		RateInterval:  limiter.Interval(),
		Logger:        logger,
		Progress:      out,
		IsTTY:         isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	})
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.Files.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Begin(ctx, string(p.Mode()), cfg.Operation.TestMode)
	if err != nil {
		return err
	}

	result, runErr := p.Run(ctx)
	if runErr != nil {
		run.Outcome = "error"
		run.ErrorMessage = runErr.Error()
		if err := store.Finish(context.WithoutCancel(ctx), run); err != nil {
			logger.Warn("record run failure", "error", err)
		}
		return runErr
	}

	run.Outcome = string(result.Outcome)
	run.WorkListSize = result.WorkListSize
	run.Processed = result.Processed
	run.QueueEntries = result.QueueEntries
	run.DenuvoSkipped = result.DenuvoSeen
	if err := store.Finish(ctx, run); err != nil {
		logger.Warn("record run result", "error", err)
	}
	return nil
}

func lockPath(cfg *config.Config) string {
	return filepath.Join(filepath.Dir(cfg.Files.HistoryDB), "steamqueue.lock")
}
