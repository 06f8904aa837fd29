package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newsroom-tools/doppel/internal/model"
)

// LoadItems reads content items from a JSON or YAML file, keyed off the
// file extension. Items with no id are rejected: every downstream
// decision references the id.
func LoadItems(path string) ([]model.ContentItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}

	var items []model.ContentItem
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported items file extension %q (want .json, .yaml or .yml)", ext)
	}

	for i, item := range items {
		if item.ID == "" {
			return nil, fmt.Errorf("item %d in %s has no id", i, path)
		}
	}

	return items, nil
}
