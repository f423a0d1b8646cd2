package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/rishiv/portfolio-api/internal/pkg/httputil"
)

type askRequest struct {
	Question string `json:"question"`
}

// AskAssistant answers a visitor question with the local model,
// optionally grounded on snippets retrieved from the knowledge index.
// Retrieval failures degrade to an uncontexted answer; a model failure
// is a 503, since there is nothing useful to return without it.
func (h *Handlers) AskAssistant(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}

	var req askRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		httputil.BadRequest(w, "question is required")
		return
	}

	systemPrompt := "You are a helpful assistant on a personal portfolio site. " +
		"Answer questions about the site owner's work and background concisely."
	sources := 0
	if h.knowledge != nil {
		matches, err := h.knowledge.Search(r.Context(), question)
		if err != nil {
			log.Printf("[assistant] retrieval failed, answering without context: %v", err)
		} else if len(matches) > 0 {
			var sb strings.Builder
			sb.WriteString(systemPrompt)
			sb.WriteString(" Use the following context when relevant:\n")
			for _, m := range matches {
				sb.WriteString("- ")
				sb.WriteString(m.Text)
				sb.WriteString("\n")
			}
			systemPrompt = sb.String()
			sources = len(matches)
		}
	}

	answer, err := h.assistant.Generate(r.Context(), question, systemPrompt)
	if err != nil {
		log.Printf("[assistant] generation failed: %v", err)
		httputil.Error(w, http.StatusServiceUnavailable, "assistant is unavailable right now")
		return
	}

	httputil.OK(w, map[string]any{
		"answer":  answer,
		"sources": sources,
	})
}

// AssistantStatus reports whether the local model is reachable and which
// models it has pulled.
func (h *Handlers) AssistantStatus(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		httputil.OK(w, map[string]any{"running": false, "models": []string{}})
		return
	}

	running := h.assistant.Status(r.Context())
	models := []string{}
	if running {
		if names, err := h.assistant.ListModels(r.Context()); err == nil {
			models = names
		}
	}
	httputil.OK(w, map[string]any{"running": running, "models": models})
}
