package api

import (
	"errors"
	"net/http"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/httputil"
	"github.com/DanielCayresFilho/midpainel-sub000/internal/service/campaign"
)

// writeServiceError maps campaign service errors onto HTTP statuses. Every
// handler funnels its service errors through here so the mapping stays in
// one place.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *campaign.ValidationError
	if errors.As(err, &vErr) {
		httputil.JSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: vErr.Error(),
			Code:  "validation",
		})
		return
	}

	var pErr *campaign.PersistenceError
	if errors.As(err, &pErr) {
		httputil.JSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error:   "failed to persist dispatch records",
			Code:    "persistence",
			Details: map[string]int{"inserted": pErr.Inserted},
		})
		return
	}

	switch {
	case errors.Is(err, campaign.ErrNotFound):
		httputil.NotFound(w, "campaign not found")
	case errors.Is(err, campaign.ErrTemplateNotFound):
		httputil.NotFound(w, "template not found")
	case errors.Is(err, campaign.ErrNoEligibleRecipients):
		httputil.Error(w, http.StatusUnprocessableEntity, "no eligible recipients")
	case errors.Is(err, campaign.ErrCampaignInactive):
		httputil.Error(w, http.StatusConflict, "campaign is inactive")
	case errors.Is(err, campaign.ErrExecutionInProgress):
		httputil.Error(w, http.StatusConflict, "execution already in progress")
	default:
		httputil.InternalError(w, err)
	}
}
