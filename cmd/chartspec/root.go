package main

import (
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-chartspec/internal/logging"
	"github.com/goliatone/go-chartspec/internal/prompt"
	"github.com/goliatone/go-chartspec/pkg/validators"
)

const (
	docTitle   = "chartspec"
	docVersion = "0.1.0"
)

// errInvalid marks a validate run that reported issues. The issues themselves
// are already printed.
var errInvalid = errors.New("chartspec: document has validation issues")

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	verbose     bool
	jsonLogs    bool
	policy      string
	httpFetch   bool
	httpTimeout time.Duration

	logger *zap.SugaredLogger
	driver prompt.Driver
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return newApp(stdin, stdout, stderr).rootCommand()
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr, logger: logging.Nop()}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "chartspec",
		Short: "Inspect and validate chart attribute containers",
		Long: `chartspec works with schema-backed chart attributes.

Examples:
  chartspec describe                 # Print mesh3d.lighting documentation
  chartspec schema --policy store    # Export the OpenAPI components
  chartspec validate chart.yaml      # Report every invalid value
  chartspec prompt -o lighting.yaml  # Fill mesh3d.lighting interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.jsonLogs {
				a.logger = logging.NewJSON(a.stderr, a.verbose)
			} else {
				a.logger = logging.New(a.stderr, a.verbose)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&a.jsonLogs, "log-json", false, "emit logs as JSON")
	flags.StringVar(&a.policy, "policy", "", "extension policy override: reject, skip, or store")

	root.AddCommand(
		a.describeCommand(),
		a.schemaCommand(),
		a.validateCommand(),
		a.promptCommand(),
	)
	return root
}

func (a *app) extensionPolicy() (validators.ExtensionPolicy, error) {
	if a.policy == "" {
		return "", nil
	}
	return validators.ParseExtensionPolicy(a.policy)
}

func exitCode(err error) int {
	if errors.Is(err, errInvalid) {
		return 1
	}
	return 2
}
