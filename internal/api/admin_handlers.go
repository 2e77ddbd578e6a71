package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/httputil"
)

func urlParamInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	return id, err == nil
}

func (s *Server) listBaits(w http.ResponseWriter, r *http.Request) {
	baits, err := s.svc.ListBaits(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if baits == nil {
		baits = []domain.Bait{}
	}
	httputil.OK(w, map[string]any{"baits": baits, "total": len(baits)})
}

func (s *Server) createBait(w http.ResponseWriter, r *http.Request) {
	var b domain.Bait
	if !httputil.Decode(w, r, &b) {
		return
	}
	b.Active = true
	if err := s.svc.CreateBait(r.Context(), &b); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, b)
}

func (s *Server) toggleBait(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "id")
	if !ok {
		httputil.BadRequest(w, "invalid bait id")
		return
	}
	var req struct {
		Active bool `json:"active"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}
	if err := s.svc.SetBaitActive(r.Context(), id, req.Active); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"id": id, "active": req.Active})
}

func (s *Server) deleteBait(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "id")
	if !ok {
		httputil.BadRequest(w, "invalid bait id")
		return
	}
	if err := s.svc.DeleteBait(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (s *Server) listMappings(w http.ResponseWriter, r *http.Request) {
	mappings, err := s.svc.ListMappings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if mappings == nil {
		mappings = []domain.IDMapping{}
	}
	httputil.OK(w, map[string]any{"mappings": mappings, "total": len(mappings)})
}

func (s *Server) saveMapping(w http.ResponseWriter, r *http.Request) {
	var m domain.IDMapping
	if !httputil.Decode(w, r, &m) {
		return
	}
	m.Active = true
	if err := s.svc.SaveMapping(r.Context(), &m); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, m)
}

func (s *Server) deleteMapping(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "id")
	if !ok {
		httputil.BadRequest(w, "invalid mapping id")
		return
	}
	if err := s.svc.DeleteMapping(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}
