// Package commands implements the CLI commands for breakdown.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/breakdown/internal/adapters/logger"
	"go.trai.ch/breakdown/internal/app"
	"go.trai.ch/breakdown/internal/build"
	"go.trai.ch/breakdown/internal/core/domain"
	"go.trai.ch/breakdown/internal/core/ports"
)

// Application represents the application logic interface.
type Application interface {
	Config(cwd string) (*domain.Config, error)
	Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResponse
	ListTemplates(ctx context.Context, cwd string, opts domain.ListOptions) (*domain.Manifest, error)
	ListSchemas(ctx context.Context, cwd string, opts domain.ListOptions) (*domain.Manifest, error)
	ListAll(ctx context.Context, cwd string, opts domain.ListOptions) (*app.Catalog, error)
	LoadSchema(ctx context.Context, cwd, path string) (domain.Schema, error)
	Save(ctx context.Context, cwd string, kind domain.DocumentKind, items []domain.SaveItem) (domain.BatchResult, error)
	Watch(ctx context.Context, cwd string, onRefresh app.RefreshFunc) error
}

// configurableLogger is implemented by loggers whose format and level can change at runtime.
type configurableLogger interface {
	SetJSON(enable bool)
	SetLevel(level slog.Level)
}

// CLI represents the command line interface for breakdown.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
	stdin   io.Reader

	dir     string
	verbose bool
	jsonOut bool
}

// New creates a new CLI instance with the given app.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "breakdown",
		Short:         "Generate prompts from directive and layer templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(build.Info() + "\n")
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
		stdin:   os.Stdin,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.dir, "dir", "C", "", "Run as if started in this directory")
	flags.BoolVar(&c.verbose, "verbose", false, "Log debug output")
	flags.BoolVar(&c.jsonOut, "json", false, "Print results and logs as JSON")

	rootCmd.AddCommand(c.newGenerateCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newSchemaCmd())
	rootCmd.AddCommand(c.newSaveCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetInput sets the stream read when --from is "-". Used for testing.
func (c *CLI) SetInput(in io.Reader) {
	c.stdin = in
}

// workspace resolves the working directory, loads its configuration, and
// applies the configured log settings. Flags win over the file.
func (c *CLI) workspace() (string, *domain.Config, error) {
	dir := c.dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, err
		}
		dir = wd
	}

	cfg, err := c.app.Config(dir)
	if err != nil {
		return "", nil, err
	}

	if l, ok := c.logger.(configurableLogger); ok {
		l.SetJSON(c.jsonOut || cfg.Logging.JSON)
		level, err := logger.ParseLevel(cfg.Logging.Level)
		if err != nil {
			level = slog.LevelInfo
		}
		if c.verbose {
			level = slog.LevelDebug
		}
		l.SetLevel(level)
	}

	return dir, cfg, nil
}
