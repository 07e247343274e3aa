package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadComponentsDefault(t *testing.T) {
	components, err := loadComponents("")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(components) != 3 {
		t.Fatalf("Expected 3 built-in components, got %d", len(components))
	}
	if components[2].Label != "Workroom UI" || components[2].ID != "dd51de8b-6f12-47a4-94a8-73b090b0303e" {
		t.Errorf("Unexpected built-in component: %+v", components[2])
	}
}

func TestLoadComponentsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.yaml")
	content := `components:
  - label: Billing
    id: 11111111-2222-3333-4444-555555555555
  - label: Search
    id: 66666666-7777-8888-9999-000000000000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	components, err := loadComponents(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(components) != 2 {
		t.Fatalf("Expected 2 components, got %d", len(components))
	}
	if components[0].Label != "Billing" || components[0].ID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("Unexpected first component: %+v", components[0])
	}
}

func TestLoadComponentsInvalidEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.yaml")
	if err := os.WriteFile(path, []byte("components:\n  - label: Billing\n"), 0o644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	if _, err := loadComponents(path); err == nil {
		t.Error("Expected error for entry without id")
	}
}

func TestLoadComponentsMissingFile(t *testing.T) {
	if _, err := loadComponents(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestGetEnvAsIntSeconds(t *testing.T) {
	t.Setenv("TEST_TTL", "90m")
	if got := getEnvAsIntSeconds("TEST_TTL", "48h"); got != 5400 {
		t.Errorf("Expected 5400 seconds for 90m, got %d", got)
	}

	t.Setenv("TEST_TTL", "120")
	if got := getEnvAsIntSeconds("TEST_TTL", "48h"); got != 120 {
		t.Errorf("Expected plain integer passthrough, got %d", got)
	}

	os.Unsetenv("TEST_TTL")
	if got := getEnvAsIntSeconds("TEST_TTL", "48h"); got != 172800 {
		t.Errorf("Expected default 48h as 172800 seconds, got %d", got)
	}
}
