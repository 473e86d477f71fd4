// Package scene persists and restores the two-bank Scene to the single
// JSON file format described in §6 of the engine specification.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/retrocoderamen/grain-bank-dx/internal/kit"
)

// Save serializes scene to path as JSON.
func Save(s *kit.Scene, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("scene: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}

// Load deserializes a Scene from path. A missing file is reported as a
// plain error; callers that want "missing scene is fine, start blank"
// behavior should check errors.Is(err, os.ErrNotExist) themselves — the
// command-dispatch layer retains the current scene on any load failure,
// per §7.
func Load(path string) (*kit.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("scene: %s does not exist: %w", path, err)
		}
		return nil, fmt.Errorf("scene: read %s: %w", path, err)
	}
	var s kit.Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: decode %s: %w", path, err)
	}
	return &s, nil
}
