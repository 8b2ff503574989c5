package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dgp-systems/compliance-kernel/pkg/capsule"
	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
	"github.com/dgp-systems/compliance-kernel/pkg/store"
)

var errUnreachableRegistry = errors.New("stub: registry unreachable")

// stubCapsuleSource lets tests avoid touching the filesystem.
type stubCapsuleSource struct {
	capsule *dgp.Capsule
	err     error
}

func (s stubCapsuleSource) Load() (*dgp.Capsule, error) {
	return s.capsule, s.err
}

func testCapsule() *dgp.Capsule {
	return &dgp.Capsule{
		Version: "1.0.0",
		Governance: dgp.Governance{
			RFE: dgp.RFEPolicy{RequiredHeaders: []string{"Summary"}},
			SEG: dgp.SEGPolicy{DriftKeywords: []string{"unrelated"}},
			FOP: dgp.FOPPolicy{EscalationTriggers: []string{"delete production"}},
		},
	}
}

func newTestServer() *Server {
	return NewServer(ServerConfig{
		CapsuleSource: stubCapsuleSource{capsule: testCapsule()},
		Store:         store.NewMemoryStore(),
		Cache:         nil,
	})
}

func TestHandleHealthz(t *testing.T) {
	app := newTestServer().App()

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body healthzResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %q, want ok", body.Status)
	}
}

func TestHandleEvaluateCompliant(t *testing.T) {
	app := newTestServer().App()

	reqBody := evaluateRequest{
		Capsule: testCapsule(),
		Task:    dgp.Task{ID: "t1", Risk: dgp.RiskLow},
		Output:  "## Summary\nAll good here.",
	}
	data, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var report dgp.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if !report.Verdict.Compliant {
		t.Errorf("expected compliant verdict, got %+v", report.Verdict)
	}
}

func TestHandleEvaluateMissingTaskID(t *testing.T) {
	app := newTestServer().App()

	reqBody := evaluateRequest{
		Capsule: testCapsule(),
		Task:    dgp.Task{},
		Output:  "## Summary\nfine",
	}
	data, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Error == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestHandleEvaluateUsesDefaultCapsule(t *testing.T) {
	app := newTestServer().App()

	reqBody := evaluateRequest{
		Task:   dgp.Task{ID: "t1", Risk: dgp.RiskLow},
		Output: "## Summary\nfine",
	}
	data, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHandleEvaluateSubstitutesBuiltinDefaultOnMissingCapsule(t *testing.T) {
	srv := NewServer(ServerConfig{
		CapsuleSource: stubCapsuleSource{err: capsule.ErrCapsuleNotFound},
		Store:         store.NewMemoryStore(),
	})
	app := srv.App()

	reqBody := evaluateRequest{
		Task:   dgp.Task{ID: "t1", Risk: dgp.RiskLow},
		Output: "whatever the caller sent",
	}
	data, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (ErrCapsuleNotFound should substitute DefaultCapsule, not fail)", resp.StatusCode)
	}

	var report dgp.Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("decoding report: %v", err)
	}
	if report.Metadata.CapsuleVersion != capsule.DefaultCapsule().Version {
		t.Errorf("CapsuleVersion = %q, want the built-in default's version", report.Metadata.CapsuleVersion)
	}
}

func TestHandleEvaluatePropagatesOtherLoadErrors(t *testing.T) {
	srv := NewServer(ServerConfig{
		CapsuleSource: stubCapsuleSource{err: errUnreachableRegistry},
		Store:         store.NewMemoryStore(),
	})
	app := srv.App()

	reqBody := evaluateRequest{
		Task:   dgp.Task{ID: "t1", Risk: dgp.RiskLow},
		Output: "whatever the caller sent",
	}
	data, _ := json.Marshal(reqBody)

	req, _ := http.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
