package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-firefly-simulation/pkg/simulation"
)

type options struct {
	configFile string
	schemaFile string
	headless   bool
	frames     int
	seed       uint64
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "fireflies",
		Short: "Fireflies drift toward brighter neighbours in a 3D volume.",
		Long: `Fireflies simulates a swarm of agents that are attracted to brighter
neighbours and take on some of their brightness. A red beacon, or the
swarm's running average, serves as the reference agent.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("seed") {
				return run(cmd, opts, &opts.seed)
			}
			return run(cmd, opts, nil)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configFile, "config", "c", "", "JSON config file (defaults are used when empty)")
	f.StringVar(&opts.schemaFile, "schema", "", "JSON schema for the config file (the built-in schema when empty)")
	f.BoolVar(&opts.headless, "headless", false, "run without a window and print the final frame")
	f.IntVar(&opts.frames, "frames", 600, "number of frames to simulate in headless mode")
	f.Uint64Var(&opts.seed, "seed", 0, "override the configured random seed")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func run(cmd *cobra.Command, opts *options, seed *uint64) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := simulation.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := simulation.LoadConfig(opts.configFile, opts.schemaFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if seed != nil {
		cfg.Seed = *seed
	}

	level := golog.InfoLevel
	if opts.verbose {
		level = golog.DebugLevel
	}
	logger := golog.New(level, cmd.OutOrStdout())

	system, err := actor.NewActorSystem("FireflySwarm", actor.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return fmt.Errorf("failed to start actor system: %w", err)
	}
	defer func() { _ = system.Stop(context.Background()) }()

	if opts.headless {
		return runHeadless(ctx, cmd, system, cfg, opts.frames, logger)
	}

	game, err := simulation.NewGame(ctx, cfg, system)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Fireflies")
	ebiten.SetVsyncEnabled(true)
	return ebiten.RunGame(game)
}

func runHeadless(ctx context.Context, cmd *cobra.Command, system actor.ActorSystem, cfg *simulation.Config, frames int, logger golog.Logger) error {
	snap, err := simulation.RunHeadless(ctx, system, cfg, frames, logger)
	if err != nil {
		return err
	}
	if snap == nil {
		return errors.New("no frame was simulated")
	}
	s := snap.Stats
	_, err = fmt.Fprintf(cmd.OutOrStdout(),
		"frame %d: %d fireflies, %s rule, %s reference, wanderers %d, recovered %d, brightness mean %.2f min %.0f max %.0f\n",
		snap.Frame, len(snap.Agents), snap.Rule, snap.Mode, s.Wanderers, s.Recovered,
		s.MeanBrightness, s.MinBrightness, s.MaxBrightness)
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fireflies:", err)
		os.Exit(1)
	}
}
