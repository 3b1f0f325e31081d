// Package main is the entry point for tunnelnet.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/samdwyer/tunnelnet/internal/game"
	"github.com/samdwyer/tunnelnet/internal/gamedata"
	"github.com/samdwyer/tunnelnet/internal/telemetry"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	// A local .env may provide TUNNELNET_* settings; the real
	// environment wins.
	if err := godotenv.Load(); err != nil {
		klog.V(1).Infof(".env not loaded: %v", err)
	}

	cfg, err := game.ConfigFromEnv(os.LookupEnv)
	if err != nil {
		klog.Exitf("Invalid environment: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		klog.Exitf("%+v", err)
	}
}

func newRootCmd(cfg *game.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "tunnelnet",
		Short: "Dig tunnels through the earth while guards patrol them",
		Long: "tunnelnet simulates diggers carving tunnels into solid ground. Every tunnel\n" +
			"becomes a waypoint; guards find their way between waypoints and patrol them.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), *cfg)
		},
	}
	f := root.Flags()
	f.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "Scenario that sets up the world (env "+game.EnvScenario+")")
	f.IntVar(&cfg.FPS, "fps", cfg.FPS, "Simulation ticks per second (env "+game.EnvFPS+")")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Start with the waypoint overlay shown (env "+game.EnvDebug+")")
	f.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a terminal and log a summary")
	f.IntVar(&cfg.Ticks, "ticks", cfg.Ticks, "Number of ticks to run in headless mode")
	f.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "Export traces over OTLP")
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	root.AddCommand(&cobra.Command{
		Use:   "scenarios",
		Short: "List the available scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := gamedata.LoadScenarioRegistry()
			if err != nil {
				return err
			}
			for _, sc := range registry.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s: %s\n", sc.ID, sc.Name, sc.Description)
			}
			return nil
		},
	})
	return root
}

func run(ctx context.Context, cfg game.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	registry := gamedata.MustLoadScenarioRegistry()

	if cfg.Telemetry {
		tcfg, err := telemetry.ConfigFromEnv(os.LookupEnv)
		if err != nil {
			return err
		}
		shutdown, err := telemetry.Setup(ctx, tcfg)
		if err != nil {
			klog.Warningf("Telemetry setup failed, running without it: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					klog.Warningf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}
	klog.V(1).Infof("Run %s: %+v", telemetry.RunID, cfg)

	if cfg.Headless {
		_, err := game.RunHeadless(ctx, cfg, registry)
		return err
	}
	g, err := game.New(cfg, registry)
	if err != nil {
		return err
	}
	return g.Run(ctx)
}
