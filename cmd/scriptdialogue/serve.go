package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/core"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/appconfig"
	"pkt.systems/scriptdialogue/internal/demo"
	"pkt.systems/scriptdialogue/internal/eventbus"
	"pkt.systems/scriptdialogue/internal/format"
	"pkt.systems/scriptdialogue/schema"
	"pkt.systems/scriptdialogue/wshost"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var flowName string
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the websocket host bridge and run a demo flow for every client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Bridge.Addr = addr
			}
			logger, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}
			flow, ok := demo.Lookup(flowName)
			if !ok {
				return fmt.Errorf("unknown flow %q (available: %s)", flowName, strings.Join(demo.Names(), ", "))
			}

			ctx := pslog.ContextWithLogger(cmd.Context(), logger)
			sched := host.NewTickScheduler(cfg.Tick())
			defer sched.Stop()

			bus := eventbus.New(logger)
			events, unsubscribe := bus.SubscribeAll()
			defer unsubscribe()
			go traceEvents(logger, events)

			var rt *core.Runtime
			bridge := wshost.New(wshost.Config{
				Path:           cfg.Bridge.Path,
				CommandTimeout: cfg.CommandTimeout(),
				FormTimeout:    cfg.FormTimeout(),
				AllowedOrigins: cfg.Bridge.AllowedOrigins,
			}, func(ctx context.Context, conn *wshost.Conn) {
				runConnectedFlow(ctx, flowName, flow, demo.Env{Runtime: rt, Scheduler: sched, Player: conn})
			})
			rt, err = core.NewRuntime(cfg.DialogueDefaults(), core.RuntimeDeps{
				Forms:     bridge,
				Scheduler: sched,
				EventSink: bus,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			logger.Info("dialogue bridge listening", "addr", cfg.Bridge.Addr, "path", cfg.Bridge.Path, "flow", flowName)
			return wshost.ListenAndServe(ctx, cfg.Bridge.Addr, bridge.Handler())
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config path (default ~/.scriptdialogue/config.yaml)")
	cmd.Flags().StringVarP(&flowName, "flow", "f", demo.FlowMenu, "demo flow to run for every client")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides bridge.addr)")
	return cmd
}

func runConnectedFlow(ctx context.Context, name string, flow demo.Flow, env demo.Env) {
	log := pslog.Ctx(ctx).With("flow", name)
	log.Info("flow start")
	result := flow(ctx, env)
	if result == nil {
		log.Info("flow finished without result")
		return
	}
	log.Info("flow finished", "outcome", result.Outcome(), "summary", summarize(result))
}

func summarize(result schema.Result) string {
	lines := format.NewPlainRenderer().FormatResult(result)
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), format.ResultMarker))
	}
	return strings.Join(lines, "; ")
}

func traceEvents(logger pslog.Logger, events <-chan schema.DialogueEvent) {
	for ev := range events {
		logger.Trace("dialogue event", "player", ev.Player, "dialogue", ev.DialogueID, "kind", ev.Kind, "phase", ev.Phase, "attempt", ev.Attempt)
	}
}
