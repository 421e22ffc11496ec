package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cvterm/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "cvterm",
	Short: "cvterm is an interactive résumé in a simulated terminal",
	Long: `cvterm presents a résumé as a shell session: visitors type commands such as
whoami, skills or contact and get pre-authored answers. The same résumé can be
served as a JSON API or to AI agents over MCP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML settings file")
	flags.String("env-file", ".env", "Env file loaded before CVTERM_* variables are read")
	flags.String("content", "", "Résumé YAML document (defaults to the embedded one)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.Bool("debug", false, "Enable debug logging and lifecycle hooks")
	flags.String("redis-addr", "", "Redis address for shared usage counters")
	flags.String("usage-file", "", "JSON file for local usage counters")
	flags.Bool("skip-boot", false, "Show the banner without the typing animation")
}

// sharedOptions reads the persistent flags.
func sharedOptions(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")
	contentPath, _ := flags.GetString("content")
	logLevel, _ := flags.GetString("log-level")
	logFile, _ := flags.GetString("log-file")
	debug, _ := flags.GetBool("debug")
	redisAddr, _ := flags.GetString("redis-addr")
	usageFile, _ := flags.GetString("usage-file")
	skipBoot, _ := flags.GetBool("skip-boot")

	return cli.Options{
		ConfigPath:  configPath,
		EnvFile:     envFile,
		ContentPath: contentPath,
		LogLevel:    logLevel,
		LogFile:     logFile,
		Debug:       debug,
		RedisAddr:   redisAddr,
		UsageFile:   usageFile,
		SkipBoot:    skipBoot,
	}
}
