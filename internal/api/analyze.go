package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/querydeck/querydeck/internal/explain"
	"github.com/querydeck/querydeck/internal/observability"
)

type analyzeRequest struct {
	Query string `json:"query"`
}

func handleAnalyze(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "nenhuma query foi fornecida para análise")
		return
	}

	// Checked before any network call: a missing key disables this route
	// without affecting the card routes.
	if deps.Explainer == nil {
		writeError(r.Context(), w, http.StatusInternalServerError, "a chave da API de IA não foi configurada no servidor")
		return
	}

	observability.RecordAnalyzeRequest()
	start := time.Now()
	result, err := deps.Explainer.Explain(r.Context(), explain.Request{SQL: req.Query})
	observability.ObserveAnalyzeLatency(time.Since(start))
	if err != nil {
		observability.RecordAnalyzeFailure()
		logError(deps, r, "ai analysis failed", err)
		writeError(r.Context(), w, http.StatusInternalServerError, "erro ao contatar a API de IA: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"explicacao": result.Explanation})
}
