package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rishiv/portfolio-api/internal/pkg/httputil"
	"github.com/rishiv/portfolio-api/internal/site"
	"github.com/rishiv/portfolio-api/internal/storage"
)

// GetSiteConfig returns the site header, taglines and navigation config.
func (h *Handlers) GetSiteConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.SiteConfig(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "site config not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, cfg)
}

// GetProjects returns the portfolio project list.
func (h *Handlers) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if projects == nil {
		projects = []site.Project{}
	}
	httputil.OK(w, map[string]any{"projects": projects})
}

// GetSocials returns the social link list.
func (h *Handlers) GetSocials(w http.ResponseWriter, r *http.Request) {
	socials, err := h.store.ListSocials(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if socials == nil {
		socials = []site.Social{}
	}
	httputil.OK(w, map[string]any{"socials": socials})
}

// GetServices returns the offered services list.
func (h *Handlers) GetServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.store.ListServices(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if services == nil {
		services = []site.Service{}
	}
	httputil.OK(w, map[string]any{"services": services})
}

// GetResume returns the resume document.
func (h *Handlers) GetResume(w http.ResponseWriter, r *http.Request) {
	resume, err := h.store.Resume(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "resume not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, resume)
}

// ListPosts returns blog posts, newest first.
func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if posts == nil {
		posts = []site.Post{}
	}
	httputil.OK(w, map[string]any{"posts": posts})
}

// GetPost returns one blog post by its slug id.
func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			httputil.NotFound(w, "post not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, post)
}
