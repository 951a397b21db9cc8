package main

import (
	"os"

	"webstore/internal/config"
	"webstore/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const serviceName = "webstore"

// BuildVersion is set at link time.
var BuildVersion = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliState struct {
	cfg config.Config
	log *zap.Logger
}

func newRootCommand() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Storefront backend serving a product catalog and user accounts",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log, err := logging.New(logging.Config{
				ServiceName: serviceName,
				Env:         cfg.Env,
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
			})
			if err != nil {
				return err
			}
			st.cfg, st.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.log != nil {
				logging.Sync(st.log)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), st.cfg, st.log)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe(cmd.Context(), st.cfg, st.log)
			},
		},
		newHashPasswordCommand(st),
		newUsersCommand(st),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Args:  cobra.NoArgs,
			PersistentPreRun: func(cmd *cobra.Command, args []string) {},
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Printf("%s\n", BuildVersion)
			},
		},
	)
	return root
}
