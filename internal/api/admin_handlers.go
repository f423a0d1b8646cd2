package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rishiv/portfolio-api/internal/contact"
	"github.com/rishiv/portfolio-api/internal/pkg/httputil"
	"github.com/rishiv/portfolio-api/internal/storage"
)

// defaultListLimit caps the admin contact listing at the 50 most recent.
const defaultListLimit = 50

// requireAdmin guards the admin surface with the shared bearer secret.
func (h *Handlers) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.adminSecret == "" {
			httputil.Error(w, http.StatusUnauthorized, "admin access not configured")
			return
		}
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(h.adminSecret)) != 1 {
			httputil.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListContacts returns submissions, newest first.
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	subs, err := h.store.ListSubmissions(r.Context(), defaultListLimit)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if subs == nil {
		subs = []contact.Submission{}
	}
	httputil.OK(w, map[string]any{"contacts": subs})
}

type updateStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UpdateContactStatus sets the review status of one submission. Any
// known status can be set from any other; the workflow is the operator's.
func (h *Handlers) UpdateContactStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.ID == "" || req.Status == "" {
		httputil.BadRequest(w, "id and status are required")
		return
	}
	if !contact.IsKnownStatus(req.Status) {
		httputil.BadRequest(w, "unknown status: "+req.Status)
		return
	}

	if err := h.store.UpdateSubmissionStatus(r.Context(), req.ID, req.Status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.BadRequest(w, "unknown submission id")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{"success": true})
}

// SyncBlog pulls the configured RSS feed into the post collection. A
// sync lock keeps overlapping triggers from racing each other over the
// same posts.
func (h *Handlers) SyncBlog(w http.ResponseWriter, r *http.Request) {
	if h.syncer == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "blog feed not configured")
		return
	}

	acquired, err := h.syncLock.Acquire(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if !acquired {
		httputil.Error(w, http.StatusConflict, "a sync is already running")
		return
	}
	defer func() {
		// Fresh context: the request context may already be canceled.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.syncLock.Release(ctx); err != nil {
			log.Printf("[admin] releasing sync lock: %v", err)
		}
	}()

	count, err := h.syncer.Sync(r.Context(), h.store)
	if err != nil {
		log.Printf("[admin] blog sync failed: %v", err)
		httputil.Error(w, http.StatusBadGateway, "feed sync failed")
		return
	}
	httputil.OK(w, map[string]any{"synced": count})
}
