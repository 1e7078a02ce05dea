package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/opd-ai/videnhance/config"
	"github.com/opd-ai/videnhance/limits"
)

// errHelp is returned by parseCLIFlags when usage was requested.
var errHelp = pflag.ErrHelp

// CLI configuration
type CLIConfig struct {
	width      int
	height     int
	configPath string
	outputDir  string
	suffix     string

	analyze    bool
	overlay    bool
	snapshot   bool
	thumbWidth int
	sceneReset bool
	auto       bool

	parallel   int
	logLevel   string
	progress   bool
	saveConfig string
	cpuProfile string

	inputs []string
}

// parseCLIFlags parses args (without the program name).
func parseCLIFlags(args []string, output io.Writer) (*CLIConfig, error) {
	cfg := &CLIConfig{}
	fs := pflag.NewFlagSet("videnhance", pflag.ContinueOnError)
	fs.SetOutput(output)

	// Frame geometry
	fs.IntVar(&cfg.width, "width", 0, "Frame width in pixels (required)")
	fs.IntVar(&cfg.height, "height", 0, "Frame height in pixels (required)")

	// Files
	fs.StringVarP(&cfg.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&cfg.outputDir, "output-dir", "o", ".", "Directory for enhanced output files")
	fs.StringVar(&cfg.suffix, "suffix", "_enhanced", "Suffix added to output file names")

	// Per-frame features
	fs.BoolVar(&cfg.analyze, "analyze", false, "Log a quality analysis for every frame")
	fs.BoolVar(&cfg.overlay, "overlay", false, "Stamp the quality analysis onto each output frame")
	fs.BoolVar(&cfg.snapshot, "snapshot", false, "Write a PNG of the last output frame of each file")
	fs.IntVar(&cfg.thumbWidth, "snapshot-width", 640, "Maximum snapshot width (0 keeps full size)")
	fs.BoolVar(&cfg.sceneReset, "scene-reset", false, "Reset the stabilizer on detected scene cuts")
	fs.BoolVar(&cfg.auto, "auto", false, "Derive settings from each frame's quality analysis")

	// Execution
	fs.IntVarP(&cfg.parallel, "parallel", "j", 1, "Number of files processed concurrently")
	fs.StringVar(&cfg.logLevel, "log-level", "", "Log level override (trace, debug, info, warn, error)")
	fs.BoolVar(&cfg.progress, "progress", false, "Show a progress bar")
	fs.StringVar(&cfg.saveConfig, "save-config", "", "Write the effective configuration to this path and exit")
	fs.StringVar(&cfg.cpuProfile, "cpuprofile", "", "Write a CPU profile to this path")

	fs.Usage = func() {
		printUsage(output, fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.inputs = fs.Args()
	return cfg, nil
}

// printUsage prints the usage information.
func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "videnhance - enhance raw I420 video frames")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  videnhance --width W --height H [options] input...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs are raw planar YUV 4:2:0 files. Files ending in .zst are")
	fmt.Fprintln(w, "zstd-compressed and the output is compressed as well.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  # Denoise and sharpen with settings from a file")
	fmt.Fprintln(w, "  videnhance --width 1280 --height 720 -c enhance.yaml clip.yuv")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  # Adaptive settings, overlay and snapshots for several files")
	fmt.Fprintln(w, "  videnhance --width 640 --height 360 --auto --overlay --snapshot -j 4 *.yuv.zst")
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(cfg *CLIConfig) error {
	if cfg.saveConfig != "" {
		return nil
	}

	if cfg.width <= 0 || cfg.height <= 0 {
		return fmt.Errorf("--width and --height must be positive")
	}

	if err := limits.ValidateDimensions(cfg.width, cfg.height); err != nil {
		return fmt.Errorf("--width and --height: %w", err)
	}

	if len(cfg.inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	if cfg.parallel < 1 {
		return fmt.Errorf("--parallel must be at least 1")
	}

	if cfg.thumbWidth < 0 {
		return fmt.Errorf("--snapshot-width cannot be negative")
	}

	if cfg.outputDir == "" {
		return fmt.Errorf("--output-dir cannot be empty")
	}

	return nil
}

// loadConfig reads the configuration file, or the defaults when none is
// given, and applies the command-line log level override.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.Default()
	if cli.configPath != "" {
		loaded, err := config.Load(cli.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.logLevel != "" {
		cfg.Logging.Level = cli.logLevel
	}
	if err := cfg.Logging.Apply(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupSignalHandling cancels ctx on interrupt.
func setupSignalHandling(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	go func() {
		sig := <-sigChan
		logrus.WithFields(logrus.Fields{
			"function": "setupSignalHandling",
			"signal":   sig.String(),
		}).Warn("Received signal, stopping after the current frame")
		cancel()
	}()
}

// startCPUProfile starts profiling into path and returns the stop function.
func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "startCPUProfile",
		"path":     path,
	}).Info("CPU profiling started")

	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	cli, err := parseCLIFlags(args, stderr)
	if errors.Is(err, errHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if err := validateCLIConfig(cli); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		fmt.Fprintln(stderr, "Use --help for usage information.")
		return 2
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	if cli.saveConfig != "" {
		if err := config.Save(cli.saveConfig, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Configuration written to %s\n", cli.saveConfig)
		return 0
	}

	if cli.cpuProfile != "" {
		stop, err := startCPUProfile(cli.cpuProfile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer stop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandling(cancel)

	logrus.WithFields(logrus.Fields{
		"function": "run",
		"inputs":   len(cli.inputs),
		"parallel": cli.parallel,
		"cpus":     runtime.NumCPU(),
	}).Info("Starting enhancement")

	results, err := processAll(ctx, cli, cfg, stderr)
	for _, r := range results {
		if r != nil {
			fmt.Fprintln(stdout, r.String())
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Enhancement failed: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
