package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/pkg/httputil"
	"github.com/rishiv/portfolio-api/internal/pkg/logger"
)

// softCallTimeout bounds each best-effort downstream call (persistence,
// notification) so a hung dependency cannot stall the response.
const softCallTimeout = 10 * time.Second

// SubmitContact handles the public contact form. Validation, rate
// limiting and spam filtering are hard failures; once a request clears
// them the caller gets a 200 even if persistence or notification fails.
// Those failures are logged and swallowed deliberately: the user-visible
// contract is "your input was well-formed and not blocked".
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var fields contact.Fields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	if err := contact.Validate(fields); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	clientID := clientIP(r)
	allowed, err := h.limiter.Admit(r.Context(), clientID)
	if err != nil {
		logger.Warn("rate limiter error", "client_ip", clientID, "error", err)
	}
	if !allowed {
		httputil.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	if contact.IsSpam(fields) {
		httputil.BadRequest(w, "Your message was flagged and could not be sent.")
		return
	}

	sub := &contact.Submission{
		FullName:  fields.FullName,
		Email:     fields.Email,
		Subject:   fields.Subject,
		Message:   fields.Message,
		ClientIP:  clientID,
		UserAgent: r.UserAgent(),
		Status:    contact.StatusNew,
		CreatedAt: time.Now().UTC(),
	}

	// Detached from the request context so a client disconnect after this
	// point cannot cancel persistence or notification.
	ctx, cancel := context.WithTimeout(context.Background(), softCallTimeout)
	if err := h.store.CreateSubmission(ctx, sub); err != nil {
		logger.Error("failed to persist submission",
			"email", sub.Email, "client_ip", sub.ClientIP, "error", err)
	}
	cancel()

	if h.notifier != nil {
		ctx, cancel := context.WithTimeout(context.Background(), softCallTimeout)
		if err := h.notifier.Notify(ctx, sub); err != nil {
			logger.Error("failed to send submission notification",
				"email", sub.Email, "error", err)
		}
		cancel()
	}

	httputil.OK(w, map[string]any{
		"ok":      true,
		"message": "Thanks for reaching out. I'll get back to you soon.",
	})
}
