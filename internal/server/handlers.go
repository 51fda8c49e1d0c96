package server

import (
	"errors"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/compare"
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/rgehrsitz/paycalc/internal/goalseek"
	"github.com/rgehrsitz/paycalc/internal/transform"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// SystemInfo summarises one configured tax system
type SystemInfo struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	Currency      string `json:"currency"`
	FinancialYear string `json:"financialYear,omitempty"`
	Brackets      int    `json:"brackets"`
	Default       bool   `json:"default"`
}

// CalculateRequest is a salary form plus the system to evaluate it under
type CalculateRequest struct {
	System string `json:"system"`
	calculation.SalaryForm
}

// EstimateRequest is a return estimate plus the system to evaluate it under
type EstimateRequest struct {
	System string `json:"system"`
	calculation.EstimateInput
}

// CompareRequest evaluates one form under a base system and alternatives
type CompareRequest struct {
	Base string                 `json:"base"`
	With []string               `json:"with"`
	Form calculation.SalaryForm `json:"form"`
}

// WhatIfRequest evaluates one form against what-if scenarios, each a
// built-in template name or a "name:key=value" transform spec
type WhatIfRequest struct {
	System    string                 `json:"system"`
	Scenarios []string               `json:"scenarios"`
	Form      calculation.SalaryForm `json:"form"`
}

// SolveRequest asks for the salary that reaches a target take-home pay
type SolveRequest struct {
	System          string                 `json:"system"`
	TargetNet       decimal.Decimal        `json:"targetNet"`
	TargetFrequency domain.Frequency       `json:"targetFrequency"`
	MinSalary       *decimal.Decimal       `json:"minSalary,omitempty"`
	MaxSalary       *decimal.Decimal       `json:"maxSalary,omitempty"`
	Form            calculation.SalaryForm `json:"form"`
}

// Handler serves the calculation endpoints. Engines are cached per system by
// the compare engine, so every endpoint shares one memo per system.
type Handler struct {
	regulatory *domain.RegulatoryConfig
	engines    *compare.CompareEngine
	templates  *transform.TemplateRegistry
	transforms *transform.TransformRegistry
}

func NewHandler(regulatory *domain.RegulatoryConfig, logger calculation.Logger) *Handler {
	engines := compare.NewCompareEngine(regulatory)
	if logger != nil {
		engines.Logger = logger
	}
	return &Handler{
		regulatory: regulatory,
		engines:    engines,
		templates:  transform.CreateBuiltInTemplates(),
		transforms: transform.NewTransformRegistry(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSystems(w http.ResponseWriter, r *http.Request) {
	response := make([]SystemInfo, 0, len(h.regulatory.Systems))
	for _, code := range h.regulatory.Codes() {
		s, _ := h.regulatory.System(code)
		response = append(response, SystemInfo{
			Code:          s.Code,
			Name:          s.Name,
			Currency:      s.Currency,
			FinancialYear: s.FinancialYear,
			Brackets:      len(s.Brackets),
			Default:       s.Code == h.regulatory.DefaultSystem,
		})
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) CalculateSalary(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var req CalculateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, err := h.engines.Engine(req.System)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	calc := engine.Calculate(req.SalaryForm.Input())
	logger.Debug().
		Str("system", calc.TaxSystem).
		Str("net_income", calc.Annual.NetIncome.StringFixed(2)).
		Msg("salary calculated")

	writeJSON(w, r, http.StatusOK, calc)
}

func (h *Handler) EstimateTax(w http.ResponseWriter, r *http.Request) {
	var req EstimateRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := req.EstimateInput.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	system, err := calculation.ResolveEstimateSystem(h.regulatory, req.System, req.FinancialYear)
	if err != nil {
		status := http.StatusBadRequest
		var unknown *domain.UnknownSystemError
		if errors.As(err, &unknown) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}

	est, err := calculation.EstimateTax(system, req.EstimateInput)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to estimate tax")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, est)
}

func (h *Handler) CompareSystems(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.With) == 0 {
		writeError(w, http.StatusBadRequest, "at least one alternative system is required")
		return
	}

	set, err := h.engines.CompareSystems(r.Context(), req.Form.Input(), req.Base, req.With)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, set)
}

func (h *Handler) CompareWhatIf(w http.ResponseWriter, r *http.Request) {
	var req WhatIfRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Scenarios) == 0 {
		writeError(w, http.StatusBadRequest, "at least one scenario is required")
		return
	}
	if _, err := h.engines.Engine(req.System); err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	templates := make([]transform.Template, 0, len(req.Scenarios))
	for _, name := range req.Scenarios {
		template, err := h.templates.Resolve(name, h.transforms)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		templates = append(templates, template)
	}

	cfg := &domain.Configuration{TaxSystem: req.System, Income: req.Form.Input()}
	set, err := h.engines.CompareTemplates(r.Context(), cfg, req.System, templates)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, set)
}

func (h *Handler) SolveSalary(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	engine, err := h.engines.Engine(req.System)
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}

	result, err := goalseek.NewDefaultSolver(engine).Solve(r.Context(), goalseek.Request{
		Input:           req.Form.Input(),
		TargetNet:       req.TargetNet,
		TargetFrequency: req.TargetFrequency,
		Constraints:     goalseek.Constraints{MinSalary: req.MinSalary, MaxSalary: req.MaxSalary},
	})
	if err != nil {
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// errorStatus maps a calculation error to a response status. Anything not
// caused by the request itself is a server error.
func errorStatus(err error) int {
	var unknown *domain.UnknownSystemError
	var solveErr *goalseek.SolveError
	var transformErr *transform.TransformError
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &solveErr), errors.As(err, &transformErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Status: status, Message: message})
}
