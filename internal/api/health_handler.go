package api

import (
	"net/http"

	"github.com/DanielCayresFilho/midpainel-sub000/internal/pkg/httputil"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.healthFn != nil {
		if err := s.healthFn(); err != nil {
			httputil.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}
	httputil.OK(w, map[string]string{"status": "ok"})
}
