package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bamsammich/sweep/internal/config"
	"github.com/bamsammich/sweep/internal/engine"
	"github.com/bamsammich/sweep/internal/stats"
	"github.com/bamsammich/sweep/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run())
}

//nolint:gocyclo // main CLI entry point orchestrates all flag parsing
func run() int {
	var (
		moveFlag       bool
		emptyFlag      bool
		temporaryFlag  bool
		trickyFlag     bool
		sameNameFlag   bool
		duplicatesFlag bool
		accessStr      string
		verifyFlag     bool
		verbose        bool
		quiet          bool
		showVersion    bool
	)

	rootCmd := &cobra.Command{
		Use:   "sweep [flags] <source>... <destination>",
		Short: "Reconcile source trees into a destination with cleanup and conflict policies",
		Args: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			return cobra.MinimumNArgs(2)(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "sweep %s\n", version)
				return nil
			}

			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			} else if quiet {
				logLevel = slog.LevelWarn
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})))

			values, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config file", "path", config.Path(), "error", err)
			}

			sources := args[:len(args)-1]
			dst := args[len(args)-1]

			engCfg := engine.Config{
				Sources:     sources,
				Dst:         dst,
				RemoveEmpty: emptyFlag,
				Move:        moveFlag,
				Verify:      verifyFlag,
			}

			if temporaryFlag {
				engCfg.TempPattern = config.CompilePattern(values.TempPattern)
			}
			if trickyFlag {
				letters := values.TrickyLetters
				if letters == "" {
					letters = config.DefaultTrickyLetters
				}
				engCfg.TrickyLetters = letters
				engCfg.TrickySubstitute = config.CheckSubstitute(values.TrickySubstitute)
			}
			// The flag wins over the config file; either enables normalization.
			if accessStr == "" {
				accessStr = values.Access
			}
			if accessStr != "" {
				engCfg.Access = config.AccessMode(accessStr)
				engCfg.NormalizeAccess = true
			}
			switch {
			case sameNameFlag:
				engCfg.Strategy = engine.StrategyRename
			case duplicatesFlag:
				engCfg.Strategy = engine.StrategyReplace
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// The staging area is acquired before the walk and released on
			// every exit path: normal return, fault, or signal-triggered
			// cancellation all pass through the deferred release.
			stager, err := engine.NewStager(engine.DefaultStagingPath())
			if err != nil {
				slog.Error("staging area unavailable", "error", err)
				return &exitError{code: 2}
			}
			defer stager.Release()
			engCfg.Stager = stager

			collector := stats.NewCollector()
			engCfg.Stats = collector
			engCfg.Reporter = ui.NewReporter(ui.Config{
				Writer:    os.Stdout,
				ErrWriter: os.Stderr,
				Quiet:     quiet,
			})

			result := engine.Run(ctx, engCfg)

			if !quiet && (verbose || ui.IsTTY(os.Stderr.Fd())) {
				fmt.Fprintln(os.Stderr, ui.Summary(result.Stats))
			}

			if result.Err != nil {
				slog.Error("run failed", "error", result.Err)
				return &exitError{code: 2}
			}
			if result.Stats.FilesFailed > 0 || result.Stats.VerifyFailed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVar(&moveFlag, "move", false, "remove source files after successful placement")
	rootCmd.Flags().BoolVar(&emptyFlag, "empty", false, "remove empty files instead of copying them")
	rootCmd.Flags().BoolVar(&temporaryFlag, "temporary", false, "remove temporary files matching the configured pattern")
	rootCmd.Flags().BoolVar(&trickyFlag, "tricky", false, "replace tricky letters in file names")
	rootCmd.Flags().BoolVar(&sameNameFlag, "same-name", false, "resolve conflicts by copying under an indexed name")
	rootCmd.Flags().BoolVar(&duplicatesFlag, "duplicates", false, "resolve conflicts by recency, keeping newer content")
	rootCmd.Flags().StringVar(&accessStr, "access", "", "normalize permissions to a 3-digit octal value (default from config)")
	rootCmd.Flags().BoolVar(&verifyFlag, "verify", false, "verify placed files against their staged snapshot (BLAKE3)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except failures")

	rootCmd.MarkFlagsMutuallyExclusive("same-name", "duplicates")

	if err := rootCmd.Execute(); err != nil {
		if exitErr, ok := err.(*exitError); ok {
			return exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
