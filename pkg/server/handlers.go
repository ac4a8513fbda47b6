package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/buildinfo"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/pipeline"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConceptSummary is an entry of the /concepts listing.
type ConceptSummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ConceptDetail is the /concepts/{id} response.
type ConceptDetail struct {
	taxonomy.Concept
	Parents     []string `json:"parents"`
	Children    []string `json:"children"`
	Descendants int      `json:"descendants"`
}

// Descendants is the /concepts/{id}/descendants response.
type Descendants struct {
	ID    string   `json:"id"`
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
}

var contentTypes = map[string]string{
	nodelink.FormatSVG: "image/svg+xml",
	nodelink.FormatPNG: "image/png",
	nodelink.FormatJPG: "image/jpeg",
	nodelink.FormatDOT: "text/vnd.graphviz; charset=utf-8",
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := demerr.HTTPStatus(err)
	code := string(demerr.GetCode(err))
	if code == "" {
		code = string(demerr.ErrCodeInternal)
	}
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	respondJSON(w, status, apiError{Code: code, Message: demerr.UserMessage(err)})
}

// lookup resolves the {id} URL parameter to a concept.
func (s *Server) lookup(r *http.Request) (taxonomy.Concept, error) {
	id := strings.TrimPrefix(chi.URLParam(r, "id"), ":")
	if err := demerr.ValidateConceptID(id); err != nil {
		return taxonomy.Concept{}, err
	}
	c, ok := s.src.Concepts().Get(id)
	if !ok {
		return taxonomy.Concept{}, demerr.New(demerr.ErrCodeUnknownRoot, "concept %q not found", id)
	}
	return c, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"concepts": len(s.src.Concepts()),
	})
}

func (s *Server) handleConcepts(w http.ResponseWriter, r *http.Request) {
	sorted := s.src.Concepts().Sorted()
	out := make([]ConceptSummary, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, ConceptSummary{ID: c.ID, Label: c.DisplayLabel()})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleConcept(w http.ResponseWriter, r *http.Request) {
	c, err := s.lookup(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	cat := s.src.Concepts()
	detail := ConceptDetail{
		Concept:     c,
		Parents:     taxonomy.Parents(cat, c.ID),
		Children:    s.children[c.ID],
		Descendants: taxonomy.CountDescendants(cat, c.ID),
	}
	if detail.Parents == nil {
		detail.Parents = []string{}
	}
	if detail.Children == nil {
		detail.Children = []string{}
	}
	respondJSON(w, http.StatusOK, detail)
}

func (s *Server) handleDescendants(w http.ResponseWriter, r *http.Request) {
	c, err := s.lookup(r)
	if err != nil {
		s.respondError(w, err)
		return
	}
	ids := taxonomy.Descendants(s.src.Concepts(), c.ID).Sorted()
	if ids == nil {
		ids = []string{}
	}
	respondJSON(w, http.StatusOK, Descendants{ID: c.ID, IDs: ids, Count: len(ids)})
}

func (s *Server) handlePage(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := pipeline.PageOptions{
			Kind:   kind,
			Root:   r.URL.Query().Get("root"),
			RootID: s.rootID,
			Title:  r.URL.Query().Get("title"),
		}
		page, _, err := s.runner.Page(r.Context(), s.src, opts)
		if err != nil {
			s.respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	dot := strings.LastIndexByte(file, '.')
	if dot <= 0 {
		s.respondError(w, demerr.New(demerr.ErrCodeInvalidFormat, "render path must be <id>.<format>, got %q", file))
		return
	}

	opts := s.render
	opts.Root = file[:dot]
	opts.Format = file[dot+1:]
	if rd := r.URL.Query().Get("rankdir"); rd != "" {
		opts.RankDir = rd
	}
	if r.URL.Query().Has("detailed") {
		opts.Detailed = true
	}

	art, err := s.runner.Visualize(r.Context(), s.src, opts)
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[art.Format])
	if art.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	_, _ = w.Write(art.Data)
}
