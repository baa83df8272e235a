package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"parmend/pkg/parmend/config"
	"parmend/pkg/parmend/logging"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "parmend",
		Short: "Verify and repair downloads with PAR2 recovery data",
		Long: `Parmend drives an external PAR2 repair engine over downloaded file sets.

It finds every candidate file in a set's directory (even misnamed or
obfuscated ones), calibrates memory and thread budgets from the host, and
reports live progress while the engine verifies or repairs the set.

Examples:
  parmend verify movie.par2          # Verify a set
  parmend repair movie.par2          # Repair a set
  parmend repair --purge movie.par2  # Repair, then delete recovery files
  parmend find ~/downloads           # List recovery sets under a directory
  parmend watch ~/downloads          # Repair sets as they arrive`,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/parmend/config.yaml)")
	rootCmd.PersistentFlags().String("engine", "", "repair engine binary (default: par2 on PATH)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	_ = viper.BindPFlag("engine.binary", rootCmd.PersistentFlags().Lookup("engine"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if err := config.Setup(viper.GetViper(), cfgFile); err != nil {
		printError("reading config: %v", err)
	}
}

// initLogging sets up the log file; called by commands that do real work.
func initLogging() {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		printError("logging disabled: %v", err)
		return
	}

	path := cfg.Logging.Path
	if path != "" {
		if expanded, err := config.ExpandPath(path); err == nil {
			path = expanded
		}
	}

	logCfg := logging.Config{
		Level:      cfg.Logging.Level,
		Path:       path,
		Components: cfg.Logging.Components,
	}
	if getVerbose() {
		// Component overrides would pin their levels back up.
		logCfg.Components = nil
		logCfg.Level = "debug"
		logCfg.ConsoleLevel = "debug"
	}
	if err := logging.Init(logCfg); err != nil {
		printError("logging disabled: %v", err)
	}
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = logging.Close() }()
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
