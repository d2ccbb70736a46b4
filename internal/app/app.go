package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mkonda/sqtui/internal/config"
	"github.com/mkonda/sqtui/internal/logging"
	"github.com/mkonda/sqtui/internal/logpath"
	"github.com/mkonda/sqtui/internal/remote"
	"github.com/mkonda/sqtui/internal/slurm"
	"github.com/mkonda/sqtui/internal/ui"
)

// Options configure the sqtui application.
type Options struct {
	ConfigPath string
	AllUsers   bool // overrides the config when set
	PollMS     int  // milliseconds; zero uses the config value
	DebugLog   string
}

// Run boots the TUI until the context is cancelled. An unreachable
// scheduler on the very first poll is fatal; later failures only mark the
// data stale.
func Run(ctx context.Context, opts Options) error {
	cfg, warnings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "sqtui: config: %s\n", w)
	}

	logger, err := logging.New(opts.DebugLog)
	if err != nil {
		return err
	}
	defer logger.Sync()

	source := slurm.NewClient(slurm.Options{
		AllUsers:   cfg.General.AllUsers || opts.AllUsers,
		SqueueArgs: cfg.General.SqueueArgs,
		Logger:     logger,
	})

	initialJobs, err := source.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("initial squeue poll: %w", err)
	}
	logger.Info("initial poll complete", zap.Int("jobs", len(initialJobs)))

	var sshClient *remote.Client
	if cfg.Remote.SSHEnabled {
		sshClient = remote.NewClient(cfg.SSHTimeout(), logger)
	}
	resolver := logpath.NewResolver(cfg.Mappings(), cfg.Remote.SSHEnabled, remoteProber(sshClient))

	interval := cfg.RefreshInterval()
	if opts.PollMS > 0 {
		interval = time.Duration(opts.PollMS) * time.Millisecond
	}

	uiOpts := ui.Options{
		Context:     ctx,
		Source:      source,
		Resolver:    resolver,
		Logger:      logger,
		PollTick:    interval,
		TailLines:   cfg.General.LogTailLines,
		InitialJobs: initialJobs,
	}
	if sshClient != nil {
		uiOpts.Remote = sshClient
	}
	return ui.Run(uiOpts)
}

// remoteProber avoids handing a typed nil to the resolver interface.
func remoteProber(c *remote.Client) logpath.RemoteProber {
	if c == nil {
		return nil
	}
	return c
}
