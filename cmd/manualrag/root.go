package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"manualrag/internal/config"
	"manualrag/internal/logger"
)

// app carries what the persistent pre-run resolved for the subcommands.
type app struct {
	cfgPath string
	verbose bool
	cfg     *config.AppConfig
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "manualrag",
		Short:         "Search support manuals for passages to put into a chat prompt",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to YAML config file (default ./config.yaml or ~/.config/manualrag/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSearchCmd(a), newTUICmd(a))
	return root
}

func (a *app) init() error {
	var err error
	if a.cfgPath == "" {
		a.cfg, _, err = config.LoadDefault()
	} else {
		a.cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return err
	}
	logCfg := a.cfg.Logger()
	if a.verbose {
		logCfg.Level = "debug"
	}
	a.logger, err = logger.New(logCfg)
	return err
}
