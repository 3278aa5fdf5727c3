package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavbafna586/MediMind/internal/cli/config"
)

func TestConfigureAnswers_Apply(t *testing.T) {
	tests := []struct {
		name    string
		answers configureAnswers
		wantErr bool
	}{
		{
			name:    "valid answers",
			answers: configureAnswers{Server: " http://medimind:5000 ", RequestTimeout: "30s", KeepImage: true, LogLevel: "debug"},
		},
		{
			name:    "zero timeout",
			answers: configureAnswers{Server: "localhost:5000", RequestTimeout: "0s", LogLevel: "info"},
		},
		{
			name:    "bad timeout",
			answers: configureAnswers{Server: "localhost:5000", RequestTimeout: "soon", LogLevel: "info"},
			wantErr: true,
		},
		{
			name:    "empty server",
			answers: configureAnswers{Server: " ", RequestTimeout: "0s", LogLevel: "info"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.answers.apply(*config.Default())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigureAnswers_ApplyKeepsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"time_format": "15:04:05"}`), 0600))
	t.Setenv("MEDIMIND_MAX_IMAGE_BYTES", "1024")
	t.Setenv("MEDIMIND_LOG_OUTPUT", "stderr")

	current, err := config.LoadFile(path)
	require.NoError(t, err)

	answers := configureAnswers{Server: "http://medimind:5000", RequestTimeout: "45s", LogLevel: "warn"}
	updated, err := answers.apply(*current)
	require.NoError(t, err)
	require.NoError(t, updated.SaveTo(path))

	saved, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://medimind:5000", saved.Server)
	assert.Equal(t, 45*time.Second, saved.RequestTimeout)
	assert.Equal(t, "warn", saved.Log.Level)
	assert.Equal(t, "15:04:05", saved.TimeFormat)
	// environment overrides never reach the file
	assert.Equal(t, config.Default().MaxImageBytes, saved.MaxImageBytes)
	assert.Equal(t, "file", saved.Log.Output)
}
