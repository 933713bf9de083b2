package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "synergyApi/docs"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "synergy-api",
	Short: "REST facade over a district's Synergy/StudentVUE service",
	Long: `synergy-api exposes a student's gradebook, attendance, mail, documents
and course history from a Synergy/StudentVUE district as JSON, and
recomputes course grades from individual assignments.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(envFile)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(conf)
		logger, err := newLogger(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync()

		server := NewServer(cfg, logger)
		logger.Info("server listening", zap.String("addr", ":"+cfg.Port))
		return server.Router().Run(":" + cfg.Port)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading SYNERGY_* variables")

	flags := serveCmd.Flags()
	flags.String("port", "8080", "port to listen on")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.Duration("request-timeout", conf.GetDuration("request_timeout"), "deadline for each request to the district")
	flags.StringSlice("allowed-origins", conf.GetStringSlice("allowed_origins"), "CORS origins allowed to call the API")
	flags.Int("login-retries", 3, "retries for /login on connection failures")
	bindFlags(flags, map[string]string{
		"port":            "port",
		"log_level":       "log-level",
		"request_timeout": "request-timeout",
		"allowed_origins": "allowed-origins",
		"login_retries":   "login-retries",
	})

	rootCmd.AddCommand(serveCmd)
}

// bindFlags maps viper keys to serve flags, so a flag set on the command
// line wins over SYNERGY_* variables and defaults.
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := conf.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

// @title Synergy API
// @version 1.0
// @description REST facade over Synergy/StudentVUE: gradebook, attendance, mail, documents, course history and recomputed grades.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
