package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/httputil"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// writeExecutionResult handles the shared outcome shape of one-shot and
// recurring executions. An empty audience is reported as 422 but still
// carries the scan counters so the operator can see what was skipped.
func writeExecutionResult(w http.ResponseWriter, res *campaign.ExecutionResult, err error) {
	if err == nil {
		httputil.OK(w, res)
		return
	}
	if errors.Is(err, campaign.ErrNoEligibleRecipients) && res != nil {
		httputil.JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "no eligible recipients",
			"code":   "no_eligible_recipients",
			"result": res,
		})
		return
	}
	writeServiceError(w, err)
}

func (s *Server) executeOneShot(w http.ResponseWriter, r *http.Request) {
	var in campaign.OneShotInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	res, err := s.svc.ExecuteOneShot(r.Context(), in)
	writeExecutionResult(w, res, err)
}

func (s *Server) createRecurring(w http.ResponseWriter, r *http.Request) {
	var in campaign.RecurringInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	c, err := s.svc.SaveRecurring(r.Context(), "", in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, c)
}

func (s *Server) updateRecurring(w http.ResponseWriter, r *http.Request) {
	var in campaign.RecurringInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	c, err := s.svc.SaveRecurring(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) listRecurring(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.ListRecurring(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"campaigns": list, "total": len(list)})
}

func (s *Server) getRecurring(w http.ResponseWriter, r *http.Request) {
	c, err := s.svc.GetRecurring(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) deleteRecurring(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteRecurring(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (s *Server) toggleRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Active bool `json:"active"`
	}
	if !httputil.Decode(w, r, &req) {
		return
	}
	if err := s.svc.ToggleRecurring(r.Context(), chi.URLParam(r, "id"), req.Active); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"id": chi.URLParam(r, "id"), "active": req.Active})
}

func (s *Server) executeRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExcludeRecent *bool `json:"exclude_recent,omitempty"`
	}
	// Body is optional for execute; an empty body means defaults.
	if r.ContentLength > 0 {
		if !httputil.Decode(w, r, &req) {
			return
		}
	}
	res, err := s.svc.ExecuteRecurring(r.Context(), chi.URLParam(r, "id"), req.ExcludeRecent)
	writeExecutionResult(w, res, err)
}
