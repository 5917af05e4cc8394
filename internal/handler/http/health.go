package http

import (
	"context"
	"net/http"
	"time"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/handler/http/response"
)

// UpstreamChecker reports whether the upstream API answers
type UpstreamChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	service  string
	upstream UpstreamChecker
}

func NewHealthHandler(service string, upstream UpstreamChecker) HealthHandler {
	return &healthHandlerImpl{service: service, upstream: upstream}
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Upstream string `json:"upstream,omitempty"`
}

// Health handles GET /health. An unreachable upstream does not make this
// service unhealthy; it is reported alongside.
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	result := healthResponse{Status: "healthy", Service: h.service}

	if h.upstream != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		result.Upstream = "ok"
		if err := h.upstream.Health(ctx); err != nil {
			result.Upstream = "unreachable"
		}
	}

	response.Success(w, result)
}
