// Package main is the entry point for the wrtplan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wrtplan/wrtplan/internal/config"
	"github.com/wrtplan/wrtplan/internal/domain"
	"github.com/wrtplan/wrtplan/internal/orchestrator"
	"github.com/wrtplan/wrtplan/internal/uci"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	planPath   string
	configPath string
	dryRun     bool
	exportPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "wrtplan",
	Short: "Declarative VLAN/network configuration for OpenWrt routers",
	Long: `wrtplan turns a small YAML network plan into concrete switch/bridge
configuration. The bridge paradigm (DSA or legacy swconfig) and the physical
port layout are detected from the running device; plans never declare
hardware.

Examples:
  wrtplan --plan network_plan.yaml              # configure the local device
  wrtplan --plan network_plan.yaml --dry-run    # print commands only
  wrtplan --plan network_plan.yaml --export deploy.sh`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate)
	rootCmd.Flags().StringVar(&planPath, "plan", "network_plan.yaml", "Path to the network plan")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to the tool config file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print uci commands without executing them")
	rootCmd.Flags().StringVar(&exportPath, "export", "", "Write a deploy script instead of executing")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

func run() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger := setupLogger(cfg.Logging)
	defer logger.Sync()

	logger.Info("starting wrtplan",
		zap.String("version", version),
		zap.Bool("dry_run", dryRun),
		zap.String("export", exportPath),
	)

	var (
		exec     uci.Executor
		exporter *uci.ScriptExporter
	)
	switch {
	case exportPath != "":
		exporter = uci.NewScriptExporter(uuid.New().String(), logger)
		exec = exporter
	case dryRun:
		exec = uci.NewRecorder(logger)
	default:
		exec = uci.NewShellExecutor(cfg.Detect.UciBin, cfg.Detect.CommandTimeout, logger)
	}

	orch := orchestrator.New(exec, cfg, logger)
	credentials, err := orch.Run(planPath)
	if err != nil {
		return err
	}

	if exporter != nil {
		if err := exporter.WriteScript(exportPath); err != nil {
			return err
		}
		logger.Info("deploy script written", zap.String("path", exportPath))
	}

	printSummary(credentials)
	return nil
}

// printSummary echoes the WiFi credentials so auto-generated passwords are
// not lost.
func printSummary(credentials []domain.WifiCredential) {
	fmt.Println()
	fmt.Println("Configuration complete. Restart the network service or reboot.")
	if len(credentials) == 0 {
		return
	}
	fmt.Println("WiFi credentials:")
	fmt.Printf("  %-20s | %-15s | %-10s\n", "SSID", "Password", "Role")
	fmt.Println("  " + "--------------------------------------------------")
	for _, c := range credentials {
		fmt.Printf("  %-20s | %-15s | %-10s\n", c.SSID, c.Password, c.Role)
	}
}

// setupLogger configures the zap logger based on configuration.
func setupLogger(cfg config.LoggingConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build logger:", err)
		os.Exit(1)
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
