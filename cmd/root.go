// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/luxfi/deployer/cmd/deploycmd"
	"github.com/luxfi/deployer/cmd/flags"
	"github.com/luxfi/deployer/cmd/keycmd"
	"github.com/luxfi/deployer/cmd/networkcmd"
	"github.com/luxfi/deployer/cmd/plancmd"
	"github.com/luxfi/deployer/cmd/statuscmd"
	"github.com/luxfi/deployer/pkg/application"
	"github.com/luxfi/deployer/pkg/config"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/deployer"
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/prompts"
	"github.com/luxfi/deployer/pkg/ux"
	"github.com/luxfi/filesystem/perms"
	luxlog "github.com/luxfi/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	exitFailure    = 1
	exitValidation = 2
)

var (
	app        *application.Deployer
	logFactory luxlog.Factory

	logLevel       string
	Version        = "0.1.0"
	cfgFile        string
	nonInteractive bool
)

func NewRootCmd() *cobra.Command {
	// rootCmd represents the base command when called without any subcommands
	rootCmd := &cobra.Command{
		Use: "deployer",
		Long: `deployer - dependency ordered, resumable contract deployment.

A deployment plan lists the contracts to deploy, their constructor arguments
and the calls to make once they exist. Arguments may refer to accounts of
the target network or to the address of a contract deployed by an earlier
step; deployer works out the order and runs the steps one at a time,
recording every outcome so an interrupted run can be resumed without
deploying anything twice.

COMMAND OVERVIEW:

  deploy      Execute a plan against a network
  plan        Validate a plan and show its execution order
  status      Show the execution log of a plan on a network
  accounts    List the signing accounts of a network
  network     List configured networks

QUICK START:

  # Check the plan
  deployer plan validate migrations.yaml

  # Deploy to a local dev node on 127.0.0.1:8545
  deployer deploy migrations.yaml

  # Deploy to a configured network, resuming an interrupted run
  deployer deploy migrations.yaml --network testnet --resume`,
		PersistentPreRunE: createApp,
		Version:           Version,
		SilenceErrors:     true,
	}

	// Disable printing the completion command
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.deployer/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level for the application")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false,
		"Disable prompts; fail if required values are missing (also enabled when stdin is not a TTY or CI=1)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Show verbose output (info level logs)")
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output (debug level logs)")
	rootCmd.PersistentFlags().Bool("quiet", false, "Show only errors (quiet mode)")

	// add sub commands
	rootCmd.AddCommand(deploycmd.NewCmd(app))
	rootCmd.AddCommand(plancmd.NewCmd(app))
	rootCmd.AddCommand(statuscmd.NewCmd(app))
	rootCmd.AddCommand(keycmd.NewCmd(app))
	rootCmd.AddCommand(networkcmd.NewCmd(app))

	rootCmd.SetGlobalNormalizationFunc(flags.NormalizeName)
	flags.MarkUsageErrors(rootCmd)
	return rootCmd
}

func createApp(cmd *cobra.Command, _ []string) error {
	baseDir, err := setupEnv()
	if err != nil {
		return err
	}
	log, err := setupLogging(baseDir)
	if err != nil {
		return err
	}

	// Adjust log level based on flags BEFORE any logging happens
	levelName := logLevel
	switch {
	case flagSet(cmd, "debug"):
		levelName = "DEBUG"
	case flagSet(cmd, "verbose"):
		levelName = "INFO"
	case flagSet(cmd, "quiet"):
		levelName = "ERROR"
	}
	if lvl, err := luxlog.ToLevel(levelName); err == nil {
		logFactory.SetDisplayLevel(constants.LoggerName, lvl)
	} else {
		return &flags.UsageError{Err: fmt.Errorf("invalid --log-level %q: %w", logLevel, err)}
	}

	// If --non-interactive flag is set, propagate to env so IsInteractive() sees it
	if nonInteractive {
		_ = os.Setenv(prompts.EnvNonInteractive, "1")
	}
	prompter := prompts.NewPrompterForMode(nonInteractive)

	if err := initConfig(); err != nil {
		return err
	}
	app.Setup(baseDir, log, config.New(), prompter)
	if path := app.Conf.GetConfigPath(); path != "" {
		app.Log.Debug("using config file", zap.String("config-file", path))
	}
	return nil
}

func flagSet(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed && f.Value.String() == "true"
}

func setupEnv() (string, error) {
	// Set base dir
	usr, err := user.Current()
	if err != nil {
		// no logger here yet
		fmt.Printf("unable to get system user %s\n", err)
		return "", err
	}
	baseDir := filepath.Join(usr.HomeDir, constants.BaseDirName)

	// Create base dir if it doesn't exist
	err = os.MkdirAll(baseDir, perms.ReadWriteExecute)
	if err != nil {
		// no logger here yet
		fmt.Printf("failed creating the basedir %s: %s\n", baseDir, err)
		return "", err
	}

	// Create runs dir if it doesn't exist
	runsDir := filepath.Join(baseDir, constants.RunsDir)
	if err = os.MkdirAll(runsDir, perms.ReadWriteExecute); err != nil {
		fmt.Printf("failed creating the runs dir %s: %s\n", runsDir, err)
		return "", err
	}

	return baseDir, nil
}

func setupLogging(baseDir string) (luxlog.Logger, error) {
	config := luxlog.Config{}
	config.LogLevel, _ = luxlog.ToLevel("INFO")

	// Set default display level to WARN (quiet by default)
	config.DisplayLevel, _ = luxlog.ToLevel("WARN")

	config.Directory = filepath.Join(baseDir, constants.LogDir)
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, fmt.Errorf("failed creating log directory: %w", err)
	}

	// some logging config params
	config.LogFormat = luxlog.Colors
	config.MaxSize = constants.MaxLogFileSize
	config.MaxFiles = constants.MaxNumOfLogFiles
	config.MaxAge = constants.RetainOldFiles

	// Register ux package as internal so caller tracking shows actual source, not the wrapper
	luxlog.RegisterInternalPackages("github.com/luxfi/deployer/pkg/ux")

	factory := luxlog.NewFactoryWithConfig(config)
	log, err := factory.Make(constants.LoggerName)
	if err != nil {
		factory.Close()
		return nil, fmt.Errorf("failed setting up logging, exiting: %w", err)
	}
	// Store factory globally so we can adjust levels later
	logFactory = factory
	// create the user facing logger as a global var
	// User output goes to stdout, logs go to stderr
	ux.NewUserLog(log, os.Stdout)
	return log, nil
}

// initConfig reads in config file and ENV variables if set.
// Priority: flags > env vars > config file > defaults
func initConfig() error {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in ~/.deployer/ directory
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(filepath.Join(home, constants.BaseDirName))
		viper.SetConfigType(constants.DefaultConfigFileType)
		viper.SetConfigName(constants.DefaultConfigFileName) // config.yaml
	}

	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// No config file is normal, the local network needs none
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// exitCode maps an error to the process exit status: 2 when the plan or the
// command line is invalid and nothing was sent to the network, 1 otherwise.
func exitCode(err error) int {
	var (
		validationErr *plan.ValidationError
		cycleErr      *plan.CyclicDependencyError
		accountErr    *deployer.AccountIndexOutOfRangeError
		usageErr      *flags.UsageError
	)
	switch {
	case err == nil:
		return 0
	case errors.As(err, &validationErr),
		errors.As(err, &cycleErr),
		errors.As(err, &accountErr),
		errors.As(err, &usageErr),
		errors.Is(err, constants.ErrExistingExecutionLog),
		errors.Is(err, constants.ErrUnknownNetwork):
		return exitValidation
	}
	return exitFailure
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	app = application.New()
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nERROR: %s\n", err)
		os.Exit(exitCode(err))
	}
}
