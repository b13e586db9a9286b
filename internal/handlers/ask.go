package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// maxQuestionLength caps question size; anything longer is almost certainly
// not a question.
const maxQuestionLength = 2000

// AskRequest represents the question request body.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse represents the answer response body.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Ask handles a natural-language question about the member population.
// It always answers with 200 for a well-formed question; internal failures
// resolve to fallback answer text, never to an error status.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		h.Error(w, http.StatusBadRequest, "question is required")
		return
	}
	if len(question) > maxQuestionLength {
		h.Error(w, http.StatusBadRequest, "question too long (max 2000 characters)")
		return
	}

	answer := h.answers.Answer(r.Context(), question)
	h.JSON(w, http.StatusOK, AskResponse{Answer: answer})
}
