package capsule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "capsule.yaml")
	yamlDoc := `
version: "2.0.0"
governance:
  RFE:
    requiredHeaders: ["Plan", "Action"]
  SEG:
    driftKeywords: ["delete"]
  FOP:
    escalationTriggers: ["legal sign-off"]
    requiredForHighRisk: true
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := FileSource{Path: path}.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", c.Version)
	}
	if len(c.Governance.RFE.RequiredHeaders) != 2 {
		t.Errorf("RequiredHeaders = %v", c.Governance.RFE.RequiredHeaders)
	}
	if !c.Governance.FOP.RequiredForHighRisk {
		t.Errorf("expected RequiredForHighRisk true")
	}
}

func TestFileSourceLoadMissing(t *testing.T) {
	_, err := FileSource{Path: "/nonexistent/capsule.yaml"}.Load()
	if !errors.Is(err, ErrCapsuleNotFound) {
		t.Errorf("expected ErrCapsuleNotFound, got %v", err)
	}
}

func TestDefaultCapsule(t *testing.T) {
	c := DefaultCapsule()
	if len(c.Governance.RFE.RequiredHeaders) != 0 {
		t.Errorf("expected no required headers, got %v", c.Governance.RFE.RequiredHeaders)
	}
	if len(c.Governance.SEG.DriftKeywords) != 0 {
		t.Errorf("expected no drift keywords, got %v", c.Governance.SEG.DriftKeywords)
	}
	if c.Governance.FOP.RequiredForHighRisk {
		t.Errorf("expected RequiredForHighRisk false")
	}
}

func TestFileSourceLoadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("not: [valid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := FileSource{Path: path}.Load()
	if err == nil {
		t.Fatal("expected a parse error")
	}
}
