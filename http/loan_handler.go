package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"loan-amortization/domain"
	"loan-amortization/input"
	"loan-amortization/service"
)

// maxBodyBytes bounds request bodies; a loan request is three numbers.
const maxBodyBytes = 1 << 16

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// CalculateLoan handles POST /loan/amortization with a JSON LoanParameters body.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		writeError(w, r, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var params domain.LoanParameters
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&params); err != nil {
		loggerFrom(r).DebugContext(r.Context(), "invalid request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	h.respond(w, r, params)
}

// CalculateFromQuery handles GET /loan/amortization?principal=10,000&rate=5&term=60.
// Values go through the same parsing as form input.
func (h *LoanHandler) CalculateFromQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := input.ParseLoanParameters(q.Get("principal"), q.Get("rate"), q.Get("term"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	h.respond(w, r, params)
}

func (h *LoanHandler) respond(w http.ResponseWriter, r *http.Request, params domain.LoanParameters) {
	result, err := h.service.Calculate(r.Context(), params)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if !includeSchedule(r) {
		result.Schedule = nil
	}
	writeJSON(w, r, http.StatusOK, result)
}

func includeSchedule(r *http.Request) bool {
	raw := r.URL.Query().Get("schedule")
	if raw == "" {
		return true
	}
	include, err := strconv.ParseBool(raw)
	return err != nil || include
}

// Health handles GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// CompareTerms handles GET /loan/terms?principal=10,000&rate=5&term=36&term=60.
func (h *LoanHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	principal, err := input.ParseAmount(q.Get("principal"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rate, err := input.ParseRate(q.Get("rate"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	terms := make([]int, 0, len(q["term"]))
	for _, raw := range q["term"] {
		term, err := input.ParseTerm(raw)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		terms = append(terms, term)
	}

	result, err := h.service.CompareTerms(r.Context(), principal, rate, terms)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}
