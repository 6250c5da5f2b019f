// Package chi is the HTTP transport over the note and search services.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/domain"
	domidx "github.com/kailas-cloud/notedex/internal/domain/noteindex"
	"github.com/kailas-cloud/notedex/internal/domain/search/condition"
	"github.com/kailas-cloud/notedex/internal/domain/search/facet"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
	noteuc "github.com/kailas-cloud/notedex/internal/usecase/note"
	noteindexuc "github.com/kailas-cloud/notedex/internal/usecase/noteindex"
)

// defaultHighlightTag marks matched spans when the client asks for
// highlighting without naming a tag.
const defaultHighlightTag = "em"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Pinger is the health-check surface of the store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type searchSlice = page.Slice[domidx.NoteIndex]

// Server exposes note CRUD and index search over HTTP.
type Server struct {
	notes         *noteuc.Service
	index         *noteindexuc.Service
	pinger        Pinger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	notes *noteuc.Service,
	index *noteindexuc.Service,
	pinger Pinger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		notes:  notes,
		index:  index,
		pinger: pinger,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNoteNotFound, http.StatusNotFound, codeNoteNotFound),
		sentinelHandler(domain.ErrIndexNotFound, http.StatusNotFound, codeNoteNotFound),
		sentinelHandler(domain.ErrForbidden, http.StatusForbidden, codeForbidden),
		sentinelHandler(domain.ErrInvalidCondition, http.StatusBadRequest, codeInvalidCondition),
	}
	return s
}

// Routes mounts every endpoint on a fresh sub-router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.healthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/notes", func(r chi.Router) {
			r.Post("/", s.createNote)
			r.Get("/", s.listNotes)
			r.Get("/{id}", s.getNote)
			r.Put("/{id}", s.updateNote)
			r.Delete("/{id}", s.deleteNote)
		})
		r.Route("/search", func(r chi.Router) {
			r.Get("/", s.searchNotes)
			r.Post("/filter", s.filterNotes)
			r.Get("/facets/fields", s.fieldNameFacets)
			r.Get("/facets/values", s.fieldValueFacets)
		})
	})

	return r
}

// createNote handles POST /api/v1/notes.
func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	n, err := s.notes.Create(r.Context(), owner, noteInputFromRequest(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/notes/"+n.ExternalID())
	writeJSON(w, http.StatusCreated, noteToResponse(n))
}

// getNote handles GET /api/v1/notes/{id}.
func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	n, err := s.notes.Get(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(n))
}

// updateNote handles PUT /api/v1/notes/{id}.
func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	n, err := s.notes.Update(r.Context(), owner, chi.URLParam(r, "id"), noteInputFromRequest(req))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(n))
}

// deleteNote handles DELETE /api/v1/notes/{id}.
func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := s.notes.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listNotes handles GET /api/v1/notes.
func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	p, err := pageableFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	slice, err := s.notes.List(r.Context(), owner, p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]noteResponse, len(slice.Items))
	for i, n := range slice.Items {
		items[i] = noteToResponse(n)
	}
	writeJSON(w, http.StatusOK, noteListResponse{Items: items, HasNext: slice.HasNext})
}

// searchNotes handles GET /api/v1/search.
func (s *Server) searchNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	p, err := pageableFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	cond, err := condition.NewSearch(
		owner, r.URL.Query().Get("query"), p, highlightFromQuery(r),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	slice, err := s.index.SearchByCondition(r.Context(), cond)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSearchSlice(w, slice)
}

// filterNotes handles POST /api/v1/search/filter.
func (s *Server) filterNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	p, err := page.New(req.Page, req.Size, req.Sort, page.Direction(req.Direction))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	cond, err := condition.NewFilter(
		owner, req.Fields, p, req.Highlight,
		dateRangeFromPayload(req.Created), dateRangeFromPayload(req.Modified),
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	slice, err := s.index.FilterByCondition(r.Context(), cond)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeSearchSlice(w, slice)
}

// fieldNameFacets handles GET /api/v1/search/facets/fields.
func (s *Server) fieldNameFacets(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	q, err := facet.NewNameQuery(owner, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	facets, err := s.index.CountFieldNames(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, facetsToResponse(facets))
}

// fieldValueFacets handles GET /api/v1/search/facets/values.
func (s *Server) fieldValueFacets(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	q, err := facet.NewValueQuery(owner, r.URL.Query().Get("field"), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidCondition, err.Error())
		return
	}

	facets, err := s.index.CountFieldValues(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, facetsToResponse(facets))
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	status, httpStatus := "ok", http.StatusOK
	checks := map[string]string{"database": "ok"}

	if err := s.pinger.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		status, httpStatus = "degraded", http.StatusServiceUnavailable
		checks["database"] = "down"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": status,
		"checks": checks,
	})
}

func writeSearchSlice(w http.ResponseWriter, slice searchSlice) {
	items := make([]searchResultItem, len(slice.Items))
	for i, idx := range slice.Items {
		items[i] = indexToResultItem(idx)
	}
	writeJSON(w, http.StatusOK, searchListResponse{Items: items, HasNext: slice.HasNext})
}

// pageableFromQuery parses page, size, sort and direction query parameters.
func pageableFromQuery(r *http.Request) (page.Pageable, error) {
	q := r.URL.Query()

	number := 0
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page.Pageable{}, errors.New("page must be an integer")
		}
		number = n
	}

	size := 0
	if raw := q.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page.Pageable{}, errors.New("size must be an integer")
		}
		size = n
	}

	return page.New(number, size, q.Get("sort"), page.Direction(q.Get("direction")))
}

// highlightFromQuery resolves the highlight tag: absent means no highlighting,
// highlight=true means the default tag, anything else names the tag itself.
func highlightFromQuery(r *http.Request) string {
	raw := r.URL.Query().Get("highlight")
	switch raw {
	case "", "false":
		return ""
	case "true":
		return defaultHighlightTag
	default:
		return raw
	}
}

func dateRangeFromPayload(p *dateRangePayload) condition.DateRange {
	if p == nil {
		return condition.DateRange{}
	}
	return condition.NewDateRange(p.Start, p.End)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNoteNotFound,
		domain.ErrIndexNotFound,
		domain.ErrValidationFailed,
		domain.ErrInvalidCondition,
		domain.ErrForbidden,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler renders the per-field reasons of a validation failure.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidationFailed) {
		return false
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeValidationFailed,
			Message: msg,
			Field:   verr.Field,
			Reasons: verr.Reasons,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
