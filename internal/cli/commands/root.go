package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pranavbafna586/MediMind/internal/cli/client"
	"github.com/pranavbafna586/MediMind/internal/cli/config"
	"github.com/pranavbafna586/MediMind/internal/cli/ui"
	"github.com/pranavbafna586/MediMind/internal/session"
	"github.com/pranavbafna586/MediMind/pkg/logger"
)

const version = "0.1.0"

var (
	configFile string
	serverAddr string
	logLevel   string
	cfg        *config.Config
	logCloser  io.Closer
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "medimind",
	Short:   "MediMind health assistant client",
	Version: version,
	Long: `A terminal client for the MediMind health assistant. Ask health questions,
attach medical images for analysis, and replay scripted conversations against
a MediMind backend.`,
	Example: `  # Point the client at a backend
  $ medimind configure

  # Start interactive chat
  $ medimind chat

  # Ask a single question
  $ medimind ask "What are common symptoms of anemia?"

  # Analyze an image
  $ medimind ask --image rash.jpg "Should I be worried about this?"

  # Replay a scripted conversation
  $ medimind run consult.yaml`,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file (default ~/.medimind/config.json)")
	rootCmd.PersistentFlags().StringVarP(&serverAddr, "server", "s", "", "Backend address, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configureCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// setup loads the configuration and installs the loggers
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}

	if serverAddr != "" {
		loaded.Server = serverAddr
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	if err := loaded.Validate(); err != nil {
		ui.PrintError("invalid option: %v", err)
		return fmt.Errorf("invalid option")
	}

	closer, err := logger.Setup(loaded.Log)
	if err != nil {
		ui.PrintError("failed to set up logging: %v", err)
		return fmt.Errorf("logger setup failed")
	}
	logger.InstallHertzLogger(slog.Default())

	cfg = loaded
	logCloser = closer

	log := slog.Default().With("command", cmd.Name())
	cmd.SetContext(logger.WithContext(cmd.Context(), log))
	log.Debug("command started", "server", cfg.Server)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFrom(configFile)
	}
	return config.Load()
}

// newSession builds a chat session talking to the configured backend
func newSession(ctx context.Context) (*session.Session, error) {
	log := logger.FromContext(ctx)

	apiClient, err := client.NewAPIClient(cfg.Server, client.Options{
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	sess := session.New(apiClient, session.Options{
		RequestTimeout:          cfg.RequestTimeout,
		KeepAttachmentOnFailure: cfg.KeepAttachmentOnFailure,
		MaxImageBytes:           cfg.MaxImageBytes,
		Logger:                  log,
	})
	log.Info("session created", "session_id", sess.ID(), "server", apiClient.Server())
	return sess, nil
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}` + ui.Styles.Bold.Render("GLOBAL OPTIONS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("medimind version %s\n", version)
}
