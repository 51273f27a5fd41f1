// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/epexport/epexport/pkg/eventportal"
	"github.com/epexport/epexport/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	appName    = "epexport"
	configName = ".epexport"
	envPrefix  = "epexport"
	rootLabel  = "cli"
)

const (
	optionNameConfig     = "config"
	optionNameVerbose    = "verbose"
	optionNameSilent     = "silent"
	optionNameToken      = "solace-cloud-token"
	optionNameSecretFile = "secret-file"
	optionNameAPIURL     = "api-url"
)

// tokenEnvVars are read, in order, when no token option is given.
var tokenEnvVars = []string{"SOLACE_CLOUD_TOKEN", "CLI_SOLACE_CLOUD_TOKEN"}

func init() {
	cobra.EnableCommandSorting = false
}

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	cfgFile string
	homeDir string
	fs      afero.Fs

	logger    *log.Logger
	sdkLogger *eventportal.ConsoleLogger
	levels    *levelGuard
	registry  *prometheus.Registry
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           appName,
			Short:         "Export AsyncAPI documents from the Solace Event Portal",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				if err := c.initConfig(); err != nil {
					return err
				}
				c.levels.configure(c.config.GetBool(optionNameVerbose), c.config.GetBool(optionNameSilent))
				return nil
			},
			PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
				c.logMetrics()
				c.levels.restore()
				return nil
			},
		},
	}

	for _, o := range opts {
		o(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}

	// Find home directory.
	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initLoggers()
	c.initGlobalFlags()
	c.initExportCmd()
	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute() (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Post-run hooks are skipped when a command fails.
	defer c.levels.restore()

	return c.root.ExecuteContext(ctx)
}

// Execute parses command line arguments and runs appropriate functions.
func Execute() (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute()
}

// initLoggers creates the root logger, the client logger and the
// counters of emitted log messages. Both loggers start at the default
// level; levelGuard moves them for the duration of a command.
func (c *command) initLoggers() {
	metrics := log.NewMetrics()
	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(metrics.Metrics()...)

	c.logger = log.New(
		log.WithLabel(rootLabel),
		log.WithLevel(defaultLogLevel),
		log.WithOutput(log.Lock(c.root.OutOrStdout()), log.Lock(c.root.ErrOrStderr())),
		log.WithHooks(metrics),
	)
	c.sdkLogger = eventportal.NewConsoleLogger(appName, mapToSDKLevel(defaultLogLevel), c.root.ErrOrStderr())
	c.levels = &levelGuard{
		logger:       c.logger,
		sdk:          c.sdkLogger,
		defaultLevel: defaultLogLevel,
	}
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, optionNameConfig, "", "config file (default is $HOME/.epexport.yaml)")
	globalFlags.Bool(optionNameVerbose, false, "enable verbose output")
	globalFlags.Bool(optionNameSilent, false, "enable silent mode, overrules verbose")
	globalFlags.String(optionNameToken, "", "Solace Cloud token")
	globalFlags.String(optionNameSecretFile, "", "path to a file which contains the Solace Cloud token")
	globalFlags.String(optionNameAPIURL, eventportal.DefaultBaseURL, "Event Portal API base URL")
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	if c.cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(c.cfgFile)
	} else {
		// Search config in home directory with name ".epexport" (without extension).
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	// Environment
	config.SetEnvPrefix(envPrefix)
	config.AutomaticEnv() // read in environment variables that match
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := config.BindEnv(append([]string{optionNameToken}, tokenEnvVars...)...); err != nil {
		return err
	}

	if c.homeDir != "" && c.cfgFile == "" {
		c.cfgFile = filepath.Join(c.homeDir, configName+".yaml")
	}

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if err := config.BindPFlags(c.root.PersistentFlags()); err != nil {
		return err
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = dir
	return nil
}

// logMetrics reports the number of messages emitted per level.
func (c *command) logMetrics() {
	families, err := c.registry.Gather()
	if err != nil {
		c.logger.Debug("Failed to gather log metrics", err)
		return
	}
	counts := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			counts[strings.TrimPrefix(mf.GetName(), log.Namespace+"_log_")] += m.GetCounter().GetValue()
		}
	}
	c.logger.Debug("Log messages emitted", counts)
}
