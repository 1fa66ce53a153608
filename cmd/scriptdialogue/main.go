package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/internal/appconfig"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("scriptdialogue command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scriptdialogue",
		Short:         "Run scripted game dialogues against a simulated or remote host",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(newSimulateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// commandLogger keeps the environment logger when LOG_LEVEL or LOG_MODE is
// set and builds one from the logging section otherwise.
func commandLogger(cmd *cobra.Command, cfg appconfig.Config) (pslog.Logger, error) {
	if os.Getenv("LOG_LEVEL") != "" || os.Getenv("LOG_MODE") != "" {
		return pslog.Ctx(cmd.Context()), nil
	}
	opts, err := cfg.Logging.Options()
	if err != nil {
		return nil, err
	}
	return pslog.NewWithOptions(cmd.ErrOrStderr(), opts), nil
}
