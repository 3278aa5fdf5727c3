package commands

import (
	"testing"

	"github.com/pranavbafna586/MediMind/internal/domain"
)

func TestAskQuestion(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		image   string
		want    string
		wantErr bool
	}{
		{name: "question words are joined", args: []string{"is", "this", "normal?"}, want: "is this normal?"},
		{name: "question is trimmed", args: []string{"  fever? "}, want: "fever?"},
		{name: "image without question", image: "mole.jpg", want: ""},
		{name: "image with question", args: []string{"changed?"}, image: "mole.jpg", want: "changed?"},
		{name: "nothing to send", wantErr: true},
		{name: "blank question without image", args: []string{" ", "\t"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := askQuestion(tt.args, tt.image)
			if (err != nil) != tt.wantErr {
				t.Fatalf("askQuestion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !domain.IsInvalidInput(err) {
					t.Errorf("askQuestion() error = %v, want invalid input", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("askQuestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunAsk_RejectsEmptyQuestion(t *testing.T) {
	askImage = ""
	if err := runAsk(askCmd, nil); !domain.IsInvalidInput(err) {
		t.Errorf("runAsk() error = %v, want invalid input", err)
	}
}
