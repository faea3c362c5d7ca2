// Package cli parses the command line into an app.Config and defines the
// exit-code contract of the scaffgo binary.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vk/scaffgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes for the taxonomy's error kinds. 0 is success, 2 a usage error.
var kindExitCodes = map[string]int{
	"validation_error":  3,
	"consistency_error": 4,
	"render_error":      5,
	"io_error":          6,
}

// ExitCodeForKind maps an error kind to the documented process exit code.
func ExitCodeForKind(kind string) int {
	if code, ok := kindExitCodes[kind]; ok {
		return code
	}
	return 1
}

// stringList is a repeatable string flag (for -set key=value).
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments for the `generate` operation. It
// returns a populated app.Config, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	// A .env next to the invocation can seed SCAFFGO_* defaults.
	_ = godotenv.Load()

	flagSet := flag.NewFlagSet("scaffgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
scaffgo - a declarative project scaffolding engine.

Usage:
  scaffgo generate [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	blueprintFlag := flagSet.String("blueprint", "", "Path to the blueprint file or directory (.hcl).")
	templatesFlag := flagSet.String("templates", "", "Path to the template root directory.")
	outFlag := flagSet.String("out", "", "Output directory for the generated project.")
	answersFlag := flagSet.String("answers", "", "Path to the answers document (YAML, JSON or TOML).")
	workersFlag := flagSet.Int("workers", 8, "Number of concurrent render workers.")
	logFormatFlag := flagSet.String("log-format", envDefault("SCAFFGO_LOG_FORMAT", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envDefault("SCAFFGO_LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	var setPairs stringList
	flagSet.Var(&setPairs, "set", "Override a single answer as key=value (repeatable).")

	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if args[0] != "generate" {
		if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
			flagSet.Usage()
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q, expected \"generate\"", args[0])}
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		BlueprintPath: *blueprintFlag,
		TemplateRoot:  *templatesFlag,
		OutputPath:    *outFlag,
		AnswersPath:   *answersFlag,
		SetPairs:      setPairs,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		Workers:       *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
