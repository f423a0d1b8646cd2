// Package api exposes the public site endpoints and the operator's admin
// surface over chi. Handlers hold their dependencies behind small
// interfaces so tests can swap in fakes.
package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/rishiv/portfolio-api/internal/assistant"
	"github.com/rishiv/portfolio-api/internal/knowledge"
	"github.com/rishiv/portfolio-api/internal/notify"
	"github.com/rishiv/portfolio-api/internal/pkg/distlock"
	"github.com/rishiv/portfolio-api/internal/ratelimit"
	"github.com/rishiv/portfolio-api/internal/site"
	"github.com/rishiv/portfolio-api/internal/storage"
)

// Handlers holds the wired dependencies for all HTTP handlers. The
// notifier, assistant, knowledge and syncer fields may be nil when the
// corresponding integration is not configured.
type Handlers struct {
	store       storage.Store
	limiter     ratelimit.Limiter
	notifier    notify.Notifier
	assistant   *assistant.Client
	knowledge   *knowledge.Client
	syncer      *site.FeedSyncer
	syncLock    distlock.DistLock
	adminSecret string
	storageType string
}

// NewHandlers creates the handler set.
func NewHandlers(store storage.Store, limiter ratelimit.Limiter, adminSecret string) *Handlers {
	return &Handlers{
		store:       store,
		limiter:     limiter,
		syncLock:    distlock.NewLocalLock(),
		adminSecret: adminSecret,
	}
}

// WithNotifier attaches the submission notifier.
func (h *Handlers) WithNotifier(n notify.Notifier) *Handlers {
	h.notifier = n
	return h
}

// WithAssistant attaches the local model client and optional retrieval index.
func (h *Handlers) WithAssistant(a *assistant.Client, k *knowledge.Client) *Handlers {
	h.assistant = a
	h.knowledge = k
	return h
}

// WithFeedSyncer attaches the blog feed syncer.
func (h *Handlers) WithFeedSyncer(s *site.FeedSyncer) *Handlers {
	h.syncer = s
	return h
}

// WithSyncLock replaces the default in-process sync lock. Multi-instance
// deployments pass a Redis-backed lock so only one instance syncs.
func (h *Handlers) WithSyncLock(l distlock.DistLock) *Handlers {
	h.syncLock = l
	return h
}

// WithStorageType records the backend name reported by the health endpoint.
func (h *Handlers) WithStorageType(t string) *Handlers {
	h.storageType = t
	return h
}

// clientIP identifies the caller for rate limiting. The first address in
// X-Forwarded-For wins (the service runs behind a load balancer); without
// the header the connection address is used, port stripped.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first, _, ok := strings.Cut(fwd, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
