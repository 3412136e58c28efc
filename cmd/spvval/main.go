// Command spvval validates SPIR-V modules.
//
// Usage:
//
//	spvval [options] <input>...
//
// Examples:
//
//	spvval shader.spv                         # Validate for universal SPIR-V 1.6
//	spvval -env vulkan1.1 shader.spv          # Validate for Vulkan 1.1
//	spvval -text shader.spvasm                # Validate assembly text
//	spvval -config spvval.yaml -v shader.spv  # Options from a file, debug logging
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gogpu/spvval"
	"github.com/gogpu/spvval/validate"
)

const spvvalVersion = "0.1.0-dev"

type cliFlags struct {
	env                 string
	configPath          string
	relaxStructStore    bool
	relaxLogicalPointer bool
	allowLocalSizeID    bool
	text                bool
	verbose             bool
	version             bool
}

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	f, opts, inputs, err := parseArgs(args, stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return 0
	case err != nil:
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 2
	}
	if f.version {
		fmt.Fprintf(stdout, "spvval version %s\n", spvvalVersion)
		return 0
	}

	logger, err := newLogger(f.verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	opts.Logger = logger

	status := 0
	for _, path := range inputs {
		if err := validateFile(path, f.text, opts); err != nil {
			logger.Debug("validation failed", zap.String("file", path), zap.Error(err))
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s: valid (%s)\n", path, opts.Env)
	}
	return status
}

// parseArgs resolves the flags, the optional config file and the input list.
func parseArgs(args []string, stderr io.Writer) (cliFlags, validate.Options, []string, error) {
	var f cliFlags
	fs := flag.NewFlagSet("spvval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.env, "env", validate.DefaultOptions().Env.String(), "target environment (e.g. universal1.5, vulkan1.1, webgpu0)")
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.BoolVar(&f.relaxStructStore, "relax-struct-store", false, "allow OpStore between layout-compatible structs")
	fs.BoolVar(&f.relaxLogicalPointer, "relax-logical-pointer", false, "allow pointers from any instruction under Logical addressing")
	fs.BoolVar(&f.allowLocalSizeID, "allow-localsizeid", false, "accept the LocalSizeId execution mode")
	fs.BoolVar(&f.text, "text", false, "treat inputs as assembly text (implied by the .spvasm extension)")
	fs.BoolVar(&f.verbose, "v", false, "enable debug logging")
	fs.BoolVar(&f.version, "version", false, "print version")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return f, validate.Options{}, nil, err
	}
	if f.version {
		return f, validate.Options{}, nil, nil
	}
	if fs.NArg() < 1 {
		fmt.Fprintln(stderr, "Error: no input file specified")
		fs.Usage()
		return f, validate.Options{}, nil, errUsage
	}

	cfg := defaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = loadConfig(f.configPath); err != nil {
			return f, validate.Options{}, nil, err
		}
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "env":
			cfg.Env = f.env
		case "relax-struct-store":
			cfg.RelaxStructStore = f.relaxStructStore
		case "relax-logical-pointer":
			cfg.RelaxLogicalPointer = f.relaxLogicalPointer
		case "allow-localsizeid":
			cfg.AllowLocalSizeID = f.allowLocalSizeID
		}
	})
	opts, err := cfg.options()
	if err != nil {
		return f, validate.Options{}, nil, err
	}
	return f, opts, fs.Args(), nil
}

func validateFile(path string, text bool, opts validate.Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if text || strings.HasSuffix(path, ".spvasm") {
		return spvval.ValidateText(string(data), opts)
	}
	return spvval.ValidateBinary(data, opts)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: spvval [options] <input.spv>...\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  spvval shader.spv                 Validate for universal SPIR-V\n")
	fmt.Fprintf(out, "  spvval -env vulkan1.1 shader.spv  Validate for Vulkan 1.1\n")
	fmt.Fprintf(out, "  spvval -text shader.spvasm        Validate assembly text\n")
}
