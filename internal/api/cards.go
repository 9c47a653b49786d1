package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/querydeck/querydeck/internal/cards"
	"github.com/querydeck/querydeck/internal/observability"
)

// Wire field names follow the frontend contract, not the Go names.
type cardCreateRequest struct {
	Cliente string `json:"cliente"`
	Obs     string `json:"obs"`
	Query   string `json:"query"`
}

type cardResponse struct {
	ID      int64  `json:"id"`
	Cliente string `json:"cliente"`
	Obs     string `json:"obs"`
	Query   string `json:"query"`
}

func cardToResponse(card cards.Card) cardResponse {
	return cardResponse{
		ID:      card.ID,
		Cliente: card.Client,
		Obs:     card.Note,
		Query:   card.SQLText,
	}
}

func handleListCards(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Cards == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "o armazenamento de cards não foi configurado")
		return
	}
	items, err := deps.Cards.ListAll(r.Context())
	if err != nil {
		logError(deps, r, "failed to list cards", err)
		writeError(r.Context(), w, http.StatusInternalServerError, "erro ao buscar os cards")
		return
	}
	response := make([]cardResponse, 0, len(items))
	for _, card := range items {
		response = append(response, cardToResponse(card))
	}
	writeJSON(w, http.StatusOK, response)
}

func handleCreateCard(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Cards == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "o armazenamento de cards não foi configurado")
		return
	}

	var req cardCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}
	if strings.TrimSpace(req.Cliente) == "" || strings.TrimSpace(req.Query) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "cliente e query são campos obrigatórios")
		return
	}

	card, err := deps.Cards.Create(r.Context(), cards.CreateCardInput{
		Client:  req.Cliente,
		Note:    req.Obs,
		SQLText: req.Query,
	})
	if err != nil {
		logError(deps, r, "failed to create card", err)
		writeError(r.Context(), w, http.StatusInternalServerError, "erro ao salvar o card")
		return
	}
	observability.RecordCardCreated()
	writeJSON(w, http.StatusCreated, cardToResponse(card))
}

func handleDeleteCard(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Cards == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "o armazenamento de cards não foi configurado")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "id do card inválido")
		return
	}

	deleted, err := deps.Cards.DeleteByID(r.Context(), id)
	if err != nil {
		logError(deps, r, "failed to delete card", err)
		writeError(r.Context(), w, http.StatusInternalServerError, "erro ao excluir o card")
		return
	}
	if !deleted {
		writeError(r.Context(), w, http.StatusNotFound, "card não encontrado")
		return
	}
	observability.RecordCardDeleted()
	writeJSON(w, http.StatusOK, map[string]any{"message": "Card excluído com sucesso!"})
}

func logError(deps Dependencies, r *http.Request, message string, err error) {
	if deps.Logger == nil {
		return
	}
	deps.Logger.ErrorContext(r.Context(), message,
		slog.Any("error", err),
		slog.String("trace_id", observability.TraceIDFromContext(r.Context())),
	)
}
