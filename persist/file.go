package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the state to path as indented JSON, creating parent
// directories as needed.
func Save(path string, st State) error {
	doc := Capture(st)
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}

// Load reads a save file and restores the full state. Only unreadable files
// and invalid JSON fail; malformed entity data degrades to defaults.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("read map: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("decode map: %w", err)
	}
	return Restore(&doc), nil
}
