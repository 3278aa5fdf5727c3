package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranavbafna586/MediMind/internal/cli/tui"
	"github.com/pranavbafna586/MediMind/internal/cli/ui"
)

// chatCmd is the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "start interactive chat with MediMind",
	Long: `Start an interactive chat session with the MediMind health assistant.

Features:
  • Text questions and image analysis in one conversation
  • Attach images with the file picker or /attach <path>
  • One request at a time, cancellable with ctrl+x`,
	Example: `  # Start interactive chat
  $ medimind chat

  # Keyboard controls:
  • Enter          send the message
  • ctrl+o         choose an image to attach
  • ctrl+r, /clear remove the attached image
  • ctrl+x         cancel the request in flight
  • Esc            quit`,
	RunE: runChat,
}

var pickerDir string

func init() {
	chatCmd.Flags().StringVar(&pickerDir, "dir", "", "Start directory for the image picker")
	chatCmd.SilenceUsage = true
}

func runChat(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Println("\nRun 'medimind chat' to start interactive session.")
		return fmt.Errorf("invalid arguments")
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	program := tui.NewChatProgram(cmd.Context(), sess, tui.Options{
		TimeFormat: cfg.TimeFormat,
		StartDir:   pickerDir,
	})
	if err := program.Run(); err != nil {
		return fmt.Errorf("failed to run chat TUI: %w", err)
	}

	ui.PrintSuccess("Session ended after %d messages", sess.Transcript().Len())
	return nil
}
