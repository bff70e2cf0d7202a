package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/abelbrown/nibble/internal/api"
	"github.com/abelbrown/nibble/internal/api/middleware"
	"github.com/abelbrown/nibble/internal/llm"
	"github.com/abelbrown/nibble/internal/logging"
	"github.com/abelbrown/nibble/internal/telemetry"
)

// MinInputLen is the shortest input worth a provider call.
const MinInputLen = 2

// SuggestService is the subset of *llm.Manager the handlers use.
type SuggestService interface {
	Suggest(ctx context.Context, input string) ([]string, error)
	Probe(ctx context.Context) (string, error)
	Active() llm.Provider
}

type SuggestHandler struct {
	svc SuggestService
}

func NewSuggestHandler(svc SuggestService) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

// Suggest handles POST /suggest.
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	input, err := decodeInputText(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.BodyTooLarge(w, tooLarge.Limit)
			return
		}
		api.Error(w, http.StatusBadRequest, "inputText is required")
		return
	}

	if utf8.RuneCountInString(input) < MinInputLen {
		api.JSON(w, http.StatusOK, api.SuggestResponse{Suggestions: []string{}})
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "llm.suggest")
	defer span.End()

	suggestions, err := h.svc.Suggest(ctx, input)
	if err != nil {
		span.SetError(err)
		logging.Error("suggest failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"input_len", len(input),
			"err", err)
		api.Error(w, http.StatusInternalServerError, llm.UserMessage(err))
		return
	}

	if suggestions == nil {
		suggestions = []string{}
	}
	if len(suggestions) > llm.MaxSuggestions {
		suggestions = suggestions[:llm.MaxSuggestions]
	}
	api.JSON(w, http.StatusOK, api.SuggestResponse{Suggestions: suggestions})
}

// Health handles GET /health.
func (h *SuggestHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:     "OK",
		Message:    "Server is running",
		AIProvider: "none",
	}
	if p := h.svc.Active(); p != nil {
		resp.AIProvider = p.Name()
		resp.Model = p.Model()
	}
	api.JSON(w, http.StatusOK, resp)
}

// TestAI handles GET /test-ai with one small completion.
func (h *SuggestHandler) TestAI(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Probe(r.Context())
	if err != nil {
		logging.Error("provider probe failed",
			"request_id", middleware.GetRequestID(r.Context()),
			"err", err)
		api.JSON(w, http.StatusInternalServerError, api.ProbeResponse{Status: "ERROR", Error: err.Error()})
		return
	}
	api.JSON(w, http.StatusOK, api.ProbeResponse{Status: "SUCCESS", Response: strings.TrimSpace(out)})
}

type suggestRequest struct {
	InputText *string `json:"inputText"`
}

var errMissingInput = errors.New("inputText is required")

// decodeInputText requires a JSON object with a string inputText. Null and
// absent are both missing; an empty string is present and therefore valid.
func decodeInputText(r *http.Request) (string, error) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", err
	}
	if req.InputText == nil {
		return "", errMissingInput
	}
	return *req.InputText, nil
}
