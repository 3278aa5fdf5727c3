package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranavbafna586/MediMind/internal/cli/ui"
	"github.com/pranavbafna586/MediMind/internal/domain"
)

var (
	askImage string
	askWidth int
)

// askCmd is the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "ask a single question or analyze an image",
	Long: `Send one message to MediMind and print the exchange.

With --image the image is analyzed; the question is optional and defaults
to "Please analyze this image". Press ctrl+c to cancel the request.`,
	Example: `  # Ask a question
  $ medimind ask "How much water should I drink per day?"

  # Analyze an image
  $ medimind ask --image xray.png

  # Analyze an image with a question
  $ medimind ask --image mole.jpg "Has this changed shape?"`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askImage, "image", "i", "", "Image file to analyze")
	askCmd.Flags().IntVarP(&askWidth, "width", "w", 80, "Output width in columns")
	askCmd.SilenceUsage = true
}

func runAsk(cmd *cobra.Command, args []string) error {
	question, err := askQuestion(args, askImage)
	if err != nil {
		ui.PrintError("%s", domain.UserMessage(err))
		return err
	}

	sess, err := newSession(cmd.Context())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if askImage != "" {
		att, err := sess.Attach(ctx, askImage)
		if err != nil {
			ui.PrintError("failed to attach image: %s", domain.UserMessage(err))
			return fmt.Errorf("attach failed")
		}
		ui.PrintInfo("Attached %s (%s)", att.Name, ui.ImageLabel(att.DataURL))
	}

	submitErr := sess.SubmitText(ctx, question)

	fmt.Println(ui.RenderTranscript(sess.Transcript().Entries(), ui.RenderOptions{
		Width:      askWidth,
		TimeFormat: cfg.TimeFormat,
	}))

	if submitErr != nil {
		return fmt.Errorf("request failed: %w", submitErr)
	}
	return nil
}

// askQuestion joins the question words; an image alone is enough to send
func askQuestion(args []string, image string) (string, error) {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" && strings.TrimSpace(image) == "" {
		return "", domain.NewInvalidInputError("nothing to send: provide a question or --image")
	}
	return question, nil
}
