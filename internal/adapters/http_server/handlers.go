package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"listing_portal/internal/domain"
)

type Handlers struct{ Repo domain.PropertyRepository }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api/property", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.listProperties)
		r.Get("/{id}", h.getProperty)
	})
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	render.Status(r, status)
	render.JSON(w, r, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

type ownerKey struct{}

func ownerFrom(ctx context.Context) string {
	s, _ := ctx.Value(ownerKey{}).(string)
	return s
}

// auth resolves the bearer token to an owner; missing or unknown tokens get 401.
func (h *Handlers) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			writeProblem(w, r, http.StatusUnauthorized, "Unauthorized", "bearer token required")
			return
		}
		owner, err := h.Repo.OwnerForToken(r.Context(), token)
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, r, http.StatusUnauthorized, "Unauthorized", "unknown token")
			return
		}
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			writeProblem(w, r, http.StatusInternalServerError, "Internal Error", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, owner)))
	})
}

func (h *Handlers) listProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.Repo.ListByOwner(r.Context(), ownerFrom(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("list properties failed")
		writeProblem(w, r, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	render.JSON(w, r, map[string]any{"properties": props})
}

func (h *Handlers) getProperty(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	if u, err := url.PathUnescape(raw); err == nil {
		raw = u
	}
	id := domain.PropertyID(raw)
	// another owner's listing is indistinguishable from a missing one
	p, err := h.Repo.GetProperty(r.Context(), ownerFrom(r.Context()), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, r, http.StatusNotFound, "Not Found", "property not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id.String()).Msg("get property failed")
		writeProblem(w, r, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	etag, body := calcETagAndBody(map[string]any{"property": p})
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getProperty body")
	}
}
