package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"
)

// ScriptKind is the only kind a script file may declare
const ScriptKind = "ChatScript"

// Script is a scripted conversation loaded from a YAML file
type Script struct {
	// Kind must be "ChatScript"
	Kind string `json:"kind"`
	// Spec holds the turns to replay
	Spec ScriptSpec `json:"spec"`
}

// ScriptSpec lists the turns of a script
type ScriptSpec struct {
	Name  string `json:"name,omitempty"`
	Turns []Turn `json:"turns"`
}

// Turn is one submission. Image, when set, is attached before the text is
// submitted; relative paths resolve against the script's directory.
type Turn struct {
	Text  string `json:"text,omitempty"`
	Image string `json:"image,omitempty"`
}

// HasImage reports whether the turn carries an image
func (t Turn) HasImage() bool {
	return t.Image != ""
}

// LoadFromFile loads and validates a script
func LoadFromFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	script, err := Parse(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	for i := range script.Spec.Turns {
		img := script.Spec.Turns[i].Image
		if img != "" && !filepath.IsAbs(img) {
			script.Spec.Turns[i].Image = filepath.Join(base, img)
		}
	}

	return script, nil
}

// Parse decodes and validates script YAML
func Parse(data []byte) (*Script, error) {
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if script.Kind == "" {
		return nil, fmt.Errorf("'kind' field is required")
	}
	if script.Kind != ScriptKind {
		return nil, fmt.Errorf("invalid kind '%s', must be '%s'", script.Kind, ScriptKind)
	}

	if len(script.Spec.Turns) == 0 {
		return nil, fmt.Errorf("spec.turns must contain at least one turn")
	}
	for i, turn := range script.Spec.Turns {
		if strings.TrimSpace(turn.Text) == "" && !turn.HasImage() {
			return nil, fmt.Errorf("spec.turns[%d]: text or image is required", i)
		}
	}

	return &script, nil
}
