package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/suite"
	"github.com/qemu-wasm/buildcheck/validate"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"

	verbose bool
	cfgFile string
	format  string

	cfg = viper.New()

	rootCmd = &cobra.Command{
		Use:   "buildcheck",
		Short: "Validate and benchmark qemu-wasm build trees",
		Long: `buildcheck inspects the artifact tree an emscripten build leaves
behind: one directory per emulation target, each holding compiled
wasm modules, JavaScript glue and a packaging descriptor.

validate runs the full check suite over every target and exits
non-zero when any case fails. bench collects size and load metrics
without judging them.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./buildcheck.yaml)")
	rootCmd.PersistentFlags().String("root", buildcheck.DefaultRoot, "build tree root, one target per subdirectory")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "report format: text or json")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(benchCmd)
}

// initConfig layers configuration: explicit flags beat BUILDCHECK_*
// environment variables, which beat the optional YAML config file.
func initConfig() {
	cfg.SetDefault("root", buildcheck.DefaultRoot)
	cfg.SetDefault("thresholds.total_bytes", bench.TotalSizeThreshold)
	cfg.SetDefault("thresholds.binary_bytes", bench.BinarySizeThreshold)
	cfg.SetDefault("thresholds.script_bytes", bench.ScriptSizeThreshold)

	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else {
		cfg.SetConfigName("buildcheck")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")
	}

	cfg.SetEnvPrefix("BUILDCHECK")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Warning:", err)
		}
	}

	_ = cfg.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))

	bench.TotalSizeThreshold = cfg.GetInt64("thresholds.total_bytes")
	bench.BinarySizeThreshold = cfg.GetInt64("thresholds.binary_bytes")
	bench.ScriptSizeThreshold = cfg.GetInt64("thresholds.script_bytes")

	if verbose {
		setupLoggers()
	}
}

func setupLoggers() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		return
	}
	validate.SetLogger(logger.Named("validate"))
	bench.SetLogger(logger.Named("bench"))
	suite.SetLogger(logger.Named("suite"))
}

func checkFormat() error {
	switch format {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}
}

func colorFor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Execute runs the root command through fang. It only returns on
// success; failures exit the process with the carried code.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
