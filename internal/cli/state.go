package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/newsroom-tools/doppel/internal/suppress"
)

// loadState restores suppression memory from a state file. A missing
// file is not an error: the first run starts with an empty memory.
func loadState(path string, memory *suppress.Memory) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read state %s: %w", path, err)
	}

	var entries map[string]suppress.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse state %s: %w", path, err)
	}

	memory.Restore(entries)
	return nil
}

// saveState persists the live suppression entries for the next run.
func saveState(path string, memory *suppress.Memory) error {
	data, err := json.MarshalIndent(memory.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", path, err)
	}
	return nil
}
