// Package cmd implements the motion CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (play, trace, check).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/motion/cmd/motion/internal/config"
	motionerrors "github.com/go-drift/motion/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "motion",
	Short: "Motion - animated shapes in the terminal",
	Long: `Motion plays scenes of animated shapes described in YAML files.
Shapes move, fade, recolour and spin on a shared scheduler that
repaints the terminal once per tick.

Use "motion <command> --help" for more information about a command.`,
	Usage: "motion <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// globals holds the flags accepted before or after any command.
var globals struct {
	configPath string
	overrides  config.Overrides
}

// stdout is swapped by tests.
var stdout io.Writer = os.Stdout

// Execute runs the CLI with the process arguments.
func Execute() error {
	return execute(os.Args[1:])
}

func execute(args []string) error {
	globals.configPath = ""
	globals.overrides = config.Overrides{}

	// Handle no arguments
	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "motion version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--config", "--log-level":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", arg)
			}
			setGlobal(arg, args[i+1])
			i++
		case "--sound":
			on := true
			globals.overrides.Sound = &on
		case "--no-sound":
			off := false
			globals.overrides.Sound = &off
		default:
			if name, value, ok := strings.Cut(arg, "="); ok && (name == "--config" || name == "--log-level") {
				setGlobal(name, value)
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

func setGlobal(flag, value string) {
	switch flag {
	case "--config":
		globals.configPath = value
	case "--log-level":
		globals.overrides.LogLevel = value
	}
}

// loadConfig resolves motion.yaml and the global flags, then installs the
// logger they describe.
func loadConfig() (*config.Resolved, error) {
	cfg, err := config.LoadOptional(globals.configPath)
	if err != nil {
		return nil, err
	}
	resolved, err := config.Resolve(cfg, globals.overrides)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: resolved.LogLevel}))
	motionerrors.SetLogger(logger)
	motionerrors.SetHandler(&motionerrors.LogHandler{Verbose: resolved.LogLevel <= slog.LevelDebug})
	return resolved, nil
}

func printHelp(cmd *Command) {
	w := stdout
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --config FILE        Configuration file (default: ./motion.yaml)")
	fmt.Fprintln(w, "  --log-level LEVEL    debug, info, warn or error (default: warn)")
	fmt.Fprintln(w, "  --sound, --no-sound  Play tones when animations repeat or end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  motion play demo.yaml            Play a scene in the terminal")
	fmt.Fprintln(w, "  motion trace demo.yaml --frames 10")
	fmt.Fprintln(w, "  motion check demo.yaml           Validate a scene")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
