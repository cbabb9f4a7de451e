package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kasupel/internal/game"
	"kasupel/internal/httpx"
	"kasupel/internal/render"
)

// fileConfig mirrors the optional JSON config file under the XDG config
// directory. Flags override anything set here.
type fileConfig struct {
	Addr             string `json:"addr"`
	Files            int    `json:"files"`
	Ranks            int    `json:"ranks"`
	InitialSeconds   int64  `json:"initialSeconds"`
	IncrementSeconds int64  `json:"incrementSeconds"`
	ExtraSeconds     int64  `json:"extraSeconds"`
}

const configFile = "kasupel/config.json"

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
	})

	if err := rootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr      string
		files     int
		ranks     int
		initial   time.Duration
		increment time.Duration
		extra     time.Duration
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "kasupel-server",
		Short: "kasupel chess server",
		Long: heredoc.Doc(`
			kasupel-server hosts chess games over a JSON HTTP API.

			Games are created with POST /api/games and played with POST
			/api/games/{id}/move. Boards may be any size from 4x4 up to 26
			files wide, and each game carries its own clock with increment
			and a fixed per-turn allowance.

			Defaults for new games come from flags, the KASUPEL_* environment
			variables, or the config file under the XDG config directory, in
			that order of precedence.
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}

			cfg := game.Config{
				Files:          files,
				Ranks:          ranks,
				InitialTime:    initial,
				Increment:      increment,
				FixedExtraTime: extra,
			}
			applyFileConfig(cmd, &addr, &cfg)

			srv := httpx.NewServer(cfg, logrus.StandardLogger())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Listen(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logrus.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Close(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return <-errCh
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", getenv("KASUPEL_ADDR", ":8080"), "listen address")
	flags.IntVar(&files, "files", getenvInt("KASUPEL_FILES", 8), "default board width")
	flags.IntVar(&ranks, "ranks", getenvInt("KASUPEL_RANKS", 8), "default board height")
	flags.DurationVar(&initial, "initial", 10*time.Minute, "default time per side")
	flags.DurationVar(&increment, "increment", 5*time.Second, "default increment per move")
	flags.DurationVar(&extra, "extra", 0, "default fixed extra time per turn")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(boardCmd())
	return cmd
}

// applyFileConfig folds the XDG config file into the defaults, keeping any
// value the user set explicitly on the command line.
func applyFileConfig(cmd *cobra.Command, addr *string, cfg *game.Config) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Warn("config file unreadable")
		return
	}
	var fc fileConfig
	if err := json.Unmarshal(raw, &fc); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("config file invalid")
		return
	}

	flags := cmd.Flags()
	if fc.Addr != "" && !flags.Changed("addr") {
		*addr = fc.Addr
	}
	if fc.Files != 0 && !flags.Changed("files") {
		cfg.Files = fc.Files
	}
	if fc.Ranks != 0 && !flags.Changed("ranks") {
		cfg.Ranks = fc.Ranks
	}
	if fc.InitialSeconds != 0 && !flags.Changed("initial") {
		cfg.InitialTime = time.Duration(fc.InitialSeconds) * time.Second
	}
	if fc.IncrementSeconds != 0 && !flags.Changed("increment") {
		cfg.Increment = time.Duration(fc.IncrementSeconds) * time.Second
	}
	if fc.ExtraSeconds != 0 && !flags.Changed("extra") {
		cfg.FixedExtraTime = time.Duration(fc.ExtraSeconds) * time.Second
	}
	logrus.WithField("path", path).Debug("loaded config file")
}

// boardCmd prints the starting position for a board size, for previewing
// variant layouts without starting the server.
func boardCmd() *cobra.Command {
	var (
		files int
		ranks int
	)
	cmd := &cobra.Command{
		Use:   "board",
		Short: "print the starting position for a board size",
		Long: heredoc.Doc(`
			Prints the generated starting position for the given board size
			as colored terminal art. Useful for checking what a nonstandard
			width does to the back rank before hosting games on it.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := game.New(game.Config{
				Files:       files,
				Ranks:       ranks,
				InitialTime: time.Minute,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Art(g.Snapshot()))
			return nil
		},
	}
	cmd.Flags().IntVar(&files, "files", 8, "board width")
	cmd.Flags().IntVar(&ranks, "ranks", 8, "board height")
	return cmd
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
