package main

import (
	"embed"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/scriptdialogue/core"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/appconfig"
	"pkt.systems/scriptdialogue/internal/demo"
	"pkt.systems/scriptdialogue/internal/eventbus"
	"pkt.systems/scriptdialogue/internal/simhost"
)

//go:embed scenarios/*.yaml
var builtinScenarios embed.FS

func builtinScenario(flow string) (simhost.Scenario, error) {
	data, err := builtinScenarios.ReadFile("scenarios/" + flow + ".yaml")
	if err != nil {
		return simhost.Scenario{}, fmt.Errorf("no built-in scenario for flow %q", flow)
	}
	return simhost.ParseScenario(data)
}

func newSimulateCmd() *cobra.Command {
	var cfgPath string
	var flowName string
	var scenarioPath string
	var player string
	var showCommands bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a demo flow against a scripted player",
		Long: "Run a demo flow against the in-process simulated host. Forms are answered from a yaml\n" +
			"scenario; without --scenario the built-in scenario of the flow is used.\n\n" +
			"Flows: " + strings.Join(demo.Names(), ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			logger, err := commandLogger(cmd, cfg)
			if err != nil {
				return err
			}

			var sc simhost.Scenario
			if scenarioPath != "" {
				sc, err = simhost.LoadScenario(scenarioPath)
			} else {
				name := flowName
				if name == "" {
					name = demo.FlowMenu
				}
				sc, err = builtinScenario(name)
			}
			if err != nil {
				return err
			}
			if flowName == "" {
				flowName = sc.Flow
			}
			if flowName == "" {
				flowName = demo.FlowMenu
			}
			if player != "" {
				sc.Player = player
			}
			flow, ok := demo.Lookup(flowName)
			if !ok {
				return fmt.Errorf("unknown flow %q (available: %s)", flowName, strings.Join(demo.Names(), ", "))
			}

			printer := newTracePrinter(cmd.OutOrStdout())
			bus := eventbus.New(logger)
			events, unsubscribe := bus.Subscribe(sc.Player)
			counted := make(chan int, 1)
			go func() {
				n := 0
				for range events {
					n++
				}
				counted <- n
			}()

			sched := host.NewTickScheduler(cfg.Tick())
			defer sched.Stop()
			simHost, simPlayer := simhost.NewFromScenario(sc, simhost.Options{Logger: logger, OnShow: printer.Shown})
			rt, err := core.NewRuntime(cfg.DialogueDefaults(), core.RuntimeDeps{
				Forms:     simHost,
				Scheduler: sched,
				EventSink: core.FanoutSink{printer, bus},
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			title := flowName
			if sc.Name != "" && sc.Name != flowName {
				title = fmt.Sprintf("%s (%s)", flowName, sc.Name)
			}
			printer.Title(fmt.Sprintf("flow %s as %s", title, sc.Player))
			result := flow(cmd.Context(), demo.Env{Runtime: rt, Scheduler: sched, Player: simPlayer})
			printer.Result(result)
			if showCommands {
				printer.Commands(simPlayer.Commands())
			}

			unsubscribe()
			total := <-counted
			logger.Debug("simulate finished", "flow", flowName, "events", total, "dropped", bus.Dropped(), "unused_steps", simHost.Remaining())
			if remaining := simHost.Remaining(); remaining > 0 {
				printer.Title(fmt.Sprintf("%d scenario answers unused", remaining))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "config path (default ~/.scriptdialogue/config.yaml)")
	cmd.Flags().StringVarP(&flowName, "flow", "f", "", "demo flow to run")
	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "yaml scenario answering the forms")
	cmd.Flags().StringVar(&player, "player", "", "override the scenario player name")
	cmd.Flags().BoolVar(&showCommands, "commands", false, "print the commands run against the player")
	return cmd
}
