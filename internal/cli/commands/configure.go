package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/pranavbafna586/MediMind/internal/cli/config"
	"github.com/pranavbafna586/MediMind/internal/cli/ui"
)

// configureCmd is the configure command
var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "set the backend address and client options",
	Long: `Interactively set the MediMind backend address and client options, and
save them to ~/.medimind/config.json (or the file given with --config).

Values can also be overridden per run with MEDIMIND_* environment variables,
e.g. MEDIMIND_SERVER or MEDIMIND_LOG_LEVEL.`,
	Example: `  # Configure interactively
  $ medimind configure

  # Write to a custom file
  $ medimind configure --config ./medimind.json`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	configureCmd.SilenceUsage = true
}

func runConfigure(cmd *cobra.Command, args []string) error {
	path, err := savePath()
	if err != nil {
		ui.PrintError("failed to locate config file: %v", err)
		return fmt.Errorf("config save failed")
	}

	// start from the file itself so flag and environment overrides are not persisted
	current, err := config.LoadFile(path)
	if err != nil {
		ui.PrintError("failed to read config file: %v", err)
		return fmt.Errorf("config load failed")
	}

	var answers configureAnswers

	timeout := "0s"
	if current.RequestTimeout > 0 {
		timeout = current.RequestTimeout.String()
	}

	level := strings.ToLower(current.Log.Level)
	if level == "warning" {
		level = "warn"
	}

	questions := []*survey.Question{
		{
			Name:     "server",
			Prompt:   &survey.Input{Message: "Backend address:", Default: current.Server},
			Validate: survey.Required,
		},
		{
			Name: "timeout",
			Prompt: &survey.Input{
				Message: "Request timeout (0s waits indefinitely):",
				Default: timeout,
			},
			Validate: validateDuration,
		},
		{
			Name: "keep_image",
			Prompt: &survey.Confirm{
				Message: "Keep the image attached when an analysis fails?",
				Default: current.KeepAttachmentOnFailure,
			},
		},
		{
			Name: "log_level",
			Prompt: &survey.Select{
				Message: "Log level:",
				Options: []string{"debug", "info", "warn", "error"},
				Default: level,
			},
		},
	}

	if err := survey.Ask(questions, &answers); err != nil {
		ui.PrintError("failed to read answers: %v", err)
		return fmt.Errorf("input failed")
	}

	updated, err := answers.apply(*current)
	if err != nil {
		ui.PrintError("invalid configuration: %v", err)
		return fmt.Errorf("validation failed")
	}

	if err := updated.SaveTo(path); err != nil {
		ui.PrintError("failed to save config: %v", err)
		return fmt.Errorf("config save failed")
	}

	ui.PrintSuccessBox("Configuration saved", fmt.Sprintf("Server: %s\nFile:   %s", updated.Server, path))
	return nil
}

// configureAnswers are the values collected by the configure prompts
type configureAnswers struct {
	Server         string `survey:"server"`
	RequestTimeout string `survey:"timeout"`
	KeepImage      bool   `survey:"keep_image"`
	LogLevel       string `survey:"log_level"`
}

// apply copies the answers onto base and validates the result
func (a configureAnswers) apply(base config.Config) (config.Config, error) {
	base.Server = strings.TrimSpace(a.Server)
	timeout, err := time.ParseDuration(strings.TrimSpace(a.RequestTimeout))
	if err != nil {
		return base, fmt.Errorf("invalid timeout %q: %w", a.RequestTimeout, err)
	}
	base.RequestTimeout = timeout
	base.KeepAttachmentOnFailure = a.KeepImage
	base.Log.Level = a.LogLevel

	if err := base.Validate(); err != nil {
		return base, err
	}
	return base, nil
}

func savePath() (string, error) {
	if configFile != "" {
		return configFile, nil
	}
	return config.GetConfigPath()
}

func validateDuration(ans interface{}) error {
	s, _ := ans.(string)
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a duration, try 30s or 2m")
	}
	if d < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
