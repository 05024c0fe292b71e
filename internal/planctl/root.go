// Package planctl implements the terminal client for the travel planner
// server. It drives the same request lifecycle as the web UI: one
// in-flight request per action, a hard deadline per call, and rendered
// HTML output.
package planctl

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Terminal client for the travel planner server",
	Long: `planctl talks to a running travel planner server. It can request a
full itinerary or run a standalone destination search, and prints the
rendered plan as HTML.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("server", "s", "http://localhost:8091", "base URL of the planner server")
	rootCmd.PersistentFlags().Duration("timeout", 0, "per-request deadline (default 60s, 120s when the server searches the web)")
	rootCmd.PersistentFlags().Bool("debug", false, "log request internals to stderr")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	viper.SetEnvPrefix("PLANCTL")
	viper.AutomaticEnv()
}

// cliLogger returns a stderr logger when --debug is set, otherwise a
// no-op logger. Internals such as raw errors and detail fields only ever
// reach this logger, never the rendered output.
func cliLogger() *zap.Logger {
	if !viper.GetBool("debug") {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func requestTimeout() time.Duration {
	return viper.GetDuration("timeout")
}
