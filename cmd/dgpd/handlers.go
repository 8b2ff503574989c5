package main

import (
	"errors"
	"log"

	"github.com/dgp-systems/compliance-kernel/pkg/cache"
	"github.com/dgp-systems/compliance-kernel/pkg/dgp"
	"github.com/dgp-systems/compliance-kernel/pkg/ingress"
	"github.com/dgp-systems/compliance-kernel/pkg/store"
	"github.com/dgp-systems/compliance-kernel/pkg/taxonomy"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// evaluateRequest is the POST /v1/evaluate body (SPEC_FULL.md §6).
type evaluateRequest struct {
	Capsule  *dgp.Capsule `json:"capsule"`
	Task     dgp.Task     `json:"task"`
	Output   string       `json:"output"`
	Baseline *string      `json:"baseline,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthzResponse struct {
	Status        string `json:"status"`
	EngineVersion string `json:"engineVersion"`
}

func (s *Server) handleHealthz(c fiber.Ctx) error {
	return c.JSON(healthzResponse{Status: "ok", EngineVersion: dgp.DefaultEngineVersion})
}

func (s *Server) handleEvaluate(c fiber.Ctx) error {
	var req evaluateRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "malformed request body: " + err.Error()})
	}

	ctx := c.Context()

	capsule := req.Capsule
	if capsule == nil {
		loaded, err := s.loadCapsule()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "loading default capsule: " + err.Error()})
		}
		capsule = loaded
	}

	logIngressFindings(req.Output)
	if req.Baseline != nil {
		logIngressFindings(*req.Baseline)
	}

	key := cache.Key(capsule.Version, req.Task.ID, req.Output, req.Baseline)
	if s.cfg.Cache != nil {
		if report, found, err := s.cfg.Cache.Get(ctx, key); err == nil && found {
			return writeReport(c, report)
		}
	}

	report, err := dgp.Evaluate(capsule, req.Task, req.Output, req.Baseline)
	if err != nil {
		var kerr *dgp.KernelError
		if errors.As(err, &kerr) {
			return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: kerr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
	}

	if s.cfg.Cache != nil {
		if err := s.cfg.Cache.Set(ctx, key, report, s.cfg.CacheTTL); err != nil {
			log.Printf("dgpd: cache set failed: %v", err)
		}
	}

	if s.cfg.Store != nil {
		rec, err := store.NewRecord(uuid.New(), report)
		if err != nil {
			log.Printf("dgpd: building store record failed: %v", err)
		} else if err := s.cfg.Store.Save(ctx, rec); err != nil {
			log.Printf("dgpd: saving report failed: %v", err)
		}
	}

	return writeReport(c, report)
}

// writeReport sets X-DGP-OWASP from the report's first violation, if any,
// then writes the frozen Report JSON body unchanged.
func writeReport(c fiber.Ctx, report *dgp.Report) error {
	if len(report.Verdict.Violations) > 0 {
		if owasp := taxonomy.OWASP(report.Verdict.Violations[0].Code); owasp != "" {
			c.Set("X-DGP-OWASP", owasp)
		}
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

func logIngressFindings(text string) {
	for _, f := range ingress.Scan(text) {
		log.Printf("dgpd: ingress finding: %s (score %.2f)", f.Description, f.Score)
	}
}
