package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranavbafna586/MediMind/internal/cli/loader"
	"github.com/pranavbafna586/MediMind/internal/cli/ui"
	"github.com/pranavbafna586/MediMind/internal/domain"
	"github.com/pranavbafna586/MediMind/internal/session"
)

var (
	runKeepGoing bool
	runSummary   bool
	runWidth     int
)

// runCmd is the run command
var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "replay a scripted conversation",
	Long: `Replay the turns of a YAML chat script against the backend, one at a time,
and print the resulting transcript.

A script looks like:

  kind: ChatScript
  spec:
    name: skin check
    turns:
      - text: I have a rash on my arm
      - image: rash.jpg
        text: Does this look like eczema?

Image paths are relative to the script file.`,
	Example: `  # Replay a script
  $ medimind run consult.yaml

  # Keep going after a failed turn and print only a summary
  $ medimind run consult.yaml --keep-going --summary`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	runCmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false, "Continue after a failed turn")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "Print a compact summary instead of the full transcript")
	runCmd.Flags().IntVarP(&runWidth, "width", "w", 80, "Output width in columns")
	runCmd.SilenceUsage = true
}

func runScript(cmd *cobra.Command, args []string) error {
	script, err := loader.LoadFromFile(args[0])
	if err != nil {
		ui.PrintError("failed to load script: %v", err)
		return fmt.Errorf("script load failed")
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	name := script.Spec.Name
	if name == "" {
		name = args[0]
	}
	ui.PrintBold("Running %s (%d turns)", name, len(script.Spec.Turns))

	failed := replay(ctx, sess, script.Spec.Turns, runKeepGoing, func(i int, err error) {
		ui.PrintWarning("turn %d: %s", i+1, domain.UserMessage(err))
	})

	if runSummary {
		fmt.Println(ui.RenderTranscriptTree(sess.ID(), sess.Transcript().Messages(), cfg.TimeFormat))
	} else {
		fmt.Println(ui.RenderTranscript(sess.Transcript().Messages(), ui.RenderOptions{
			Width:      runWidth,
			TimeFormat: cfg.TimeFormat,
		}))
	}

	if failed > 0 {
		ui.PrintErrorBox("Script finished with errors", fmt.Sprintf("%d of %d turns failed", failed, len(script.Spec.Turns)))
		return fmt.Errorf("%d turns failed", failed)
	}

	ui.PrintSuccessBox("Script finished", fmt.Sprintf("%s: %d turns", name, len(script.Spec.Turns)))
	return nil
}

// replay submits turns in order and returns how many failed. It stops at
// the first failure unless keepGoing is set. Turns left unsent after ctx is
// done count as failed.
func replay(ctx context.Context, sess *session.Session, turns []loader.Turn, keepGoing bool, report func(i int, err error)) int {
	failed := 0
	for i, turn := range turns {
		if ctx.Err() != nil {
			return failed + len(turns) - i
		}

		// a turn only carries the image it names
		sess.ClearAttachment()
		if turn.HasImage() {
			if _, err := sess.Attach(ctx, turn.Image); err != nil {
				report(i, err)
				failed++
				if !keepGoing {
					return failed
				}
				continue
			}
		}

		if err := sess.SubmitText(ctx, strings.TrimSpace(turn.Text)); err != nil {
			report(i, err)
			failed++
			if !keepGoing {
				return failed
			}
		}
	}
	return failed
}
