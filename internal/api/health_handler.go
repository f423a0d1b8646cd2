package api

import (
	"net/http"
	"time"

	"github.com/rishiv/portfolio-api/internal/pkg/httputil"
)

var startTime = time.Now()

// HealthCheck reports service liveness. Kept dependency-free so the load
// balancer check never fans out to DynamoDB or the mail relay; the
// in-memory limiter's client count is in-process and safe to report.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":  "ok",
		"storage": h.storageType,
		"uptime":  time.Since(startTime).Round(time.Second).String(),
	}
	if l, ok := h.limiter.(interface{ Len() int }); ok {
		body["rate_limited_clients"] = l.Len()
	}
	httputil.OK(w, body)
}
