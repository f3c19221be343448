package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "leafcheck",
	Short: "Run the daily LeafLow check-in for all configured accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		r := NewCheckinRunner(ctx)
		return r.Run()
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Probe each account's session cookies without checking in",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		r := NewCheckinRunner(ctx)
		return r.Verify()
	},
}

var notifyTestCmd = &cobra.Command{
	Use:   "notify-test",
	Short: "Send a test notification through the configured channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		r := NewCheckinRunner(ctx)
		return r.NotifyTest()
	},
}

func init() {
	// Defaults
	v := viper.GetViper()
	v.SetDefault("config", "")
	v.SetDefault("cookies", "")

	// Environment variables support: LEAFCHECK_CONFIG, LEAFCHECK_COOKIES, ...
	v.SetEnvPrefix("LEAFCHECK")
	v.AutomaticEnv()
	// Bind flags via Cobra and then bind to Viper
	rootCmd.PersistentFlags().String("config", v.GetString("config"), "path to a config yaml (endpoints, keyword sets, notify channels)")
	rootCmd.PersistentFlags().String("cookies", v.GetString("cookies"), "credential source: raw cookie strings delimited by & or newlines")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("cookies", rootCmd.PersistentFlags().Lookup("cookies"))

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(notifyTestCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exitHandler.LogFatalError(err, "command execution failed")
	}
}
