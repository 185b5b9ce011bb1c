package endpoints

import (
	"net/http"
	"time"
)

// UtilsEndpoints serves the liveness probe shared by all three servers.
type UtilsEndpoints interface {
	Health(http.ResponseWriter, *http.Request) error
}

type utilsEndpoints struct {
	started time.Time
}

func NewUtilsEndpoints() UtilsEndpoints {
	return &utilsEndpoints{started: time.Now()}
}

func (h *utilsEndpoints) Health(w http.ResponseWriter, r *http.Request) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(h.started).Truncate(time.Second).String(),
	})
}
