package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/newsroom-tools/doppel/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadItems_JSON(t *testing.T) {
	path := writeFile(t, "items.json", `[
		{"id": "a", "title": "Flooding Closes Bridge", "body": "Flooding closed the bridge.", "status": "new"},
		{"id": "b", "title": "Council Approves Budget", "status": "discarded"}
	]`)

	items, err := LoadItems(path)
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Status != model.StatusNew {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Status != model.StatusDiscarded {
		t.Errorf("expected discarded status, got %q", items[1].Status)
	}
}

func TestLoadItems_YAML(t *testing.T) {
	path := writeFile(t, "items.yaml", `
- id: a
  title: Flooding Closes Bridge
  body: Flooding closed the bridge.
  sourceUrl: https://example.com/flood
  status: new
`)

	items, err := LoadItems(path)
	if err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}

	if len(items) != 1 || items[0].SourceURL != "https://example.com/flood" {
		t.Errorf("unexpected items: %+v", items)
	}
}

func TestLoadItems_MissingID(t *testing.T) {
	path := writeFile(t, "items.json", `[{"title": "No ID"}]`)

	if _, err := LoadItems(path); err == nil {
		t.Error("expected error for item without id")
	}
}

func TestLoadItems_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "items.txt", "not structured")

	if _, err := LoadItems(path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoadItems_MissingFile(t *testing.T) {
	if _, err := LoadItems(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
