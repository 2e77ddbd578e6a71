package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/domain"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/httputil"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/segment"
)

// filterRequest is the shared body of count and bait-preview calls.
type filterRequest struct {
	Filters []domain.FilterSpec `json:"filters"`
}

// listFilterableColumns returns the filter catalog of one source table.
func (s *Server) listFilterableColumns(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	cols, err := s.catalog.ListFilterableColumns(r.Context(), table)
	if err != nil {
		if errors.Is(err, segment.ErrNoColumnsFound) {
			httputil.NotFound(w, "table not found or has no columns")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"table": table, "columns": cols})
}

// countAudience returns how many rows match the posted filters.
func (s *Server) countAudience(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	var req filterRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	res, err := s.svc.CountAudience(r.Context(), table, req.Filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, res)
}

// previewBaits returns the baits that would ride along with this audience.
func (s *Server) previewBaits(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	var req filterRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	baits, err := s.svc.PreviewBaits(r.Context(), table, req.Filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if baits == nil {
		baits = []domain.Bait{}
	}
	httputil.OK(w, map[string]any{"baits": baits, "count": len(baits)})
}
