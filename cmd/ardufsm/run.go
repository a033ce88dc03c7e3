package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/ardufsm/internal/cli"
	"github.com/aretw0/ardufsm/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the trial controller",
	Long: `Starts the controller. Without --simulate it waits for SET and RELEASE_TRL
commands from the host on stdin (or --port) and writes protocol lines back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}
		metricsOut, _ := cmd.Flags().GetString("metrics-out")
		return cli.RunSession(context.Background(), cli.SessionOptions{
			Config:     cfg,
			Stdin:      cmd.InOrStdin(),
			Stdout:     cmd.OutOrStdout(),
			Stderr:     cmd.ErrOrStderr(),
			MetricsOut: metricsOut,
			Banner:     true,
		})
	},
}

// loadConfig layers .env files, config files and ARDUFSM_* variables, then
// applies the flags the user set explicitly.
func loadConfig(flags *pflag.FlagSet) (config.Config, error) {
	envFiles, _ := flags.GetStringArray("env-file")
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return config.Config{}, err
	}
	files, _ := flags.GetStringArray("config")
	cfg, err := config.Load(files, os.Environ())
	if err != nil {
		return config.Config{}, err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetString("port")
	}
	if flags.Changed("simulate") {
		cfg.Simulate, _ = flags.GetBool("simulate")
	}
	if flags.Changed("fake-responses") {
		cfg.FakeResponses, _ = flags.GetBool("fake-responses")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("trials") {
		cfg.Trials, _ = flags.GetInt("trials")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("config", "c", nil, "YAML config file, repeatable; later files override earlier ones")
	runCmd.Flags().StringArray("env-file", []string{".env"}, "dotenv file loaded before reading ARDUFSM_* variables")
	runCmd.Flags().String("port", "", "Host link device (default stdin/stdout)")
	runCmd.Flags().Bool("simulate", false, "Run with simulated hardware and an automatic host")
	runCmd.Flags().Bool("fake-responses", false, "Replace response-window licks with random ones")
	runCmd.Flags().Uint64("seed", 1, "Seed for simulation and fake responses")
	runCmd.Flags().Int("trials", 0, "Stop after this many trials (0 runs until interrupted)")
	runCmd.Flags().String("metrics-out", "", "Write Prometheus metrics to this file at exit")
}
