package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// HealthChecker is satisfied by any infrastructure dependency that exposes
// a Ping method (database.Database, RedisClient, EventBus all qualify).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one named dependency probed by the health endpoint.
// A failing optional dependency degrades the service without failing it:
// the bale listing cache, for example, can be bypassed.
type HealthCheck struct {
	Name     string
	Checker  HealthChecker
	Optional bool
}

// Health statuses reported by HealthHandler.
const (
	HealthOK          = "ok"
	HealthDegraded    = "degraded"
	HealthUnavailable = "unavailable"
	checkUnreachable  = "unreachable"
)

const healthTimeout = 2 * time.Second

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler returns an http.HandlerFunc that probes all checks in parallel.
// Any required failure answers 503 "unavailable"; optional failures only mark
// the status "degraded".
func HealthHandler(checks ...HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		results := make([]error, len(checks))
		var wg sync.WaitGroup
		for i, c := range checks {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = c.Checker.Ping(ctx)
			}()
		}
		wg.Wait()

		resp := healthResponse{Status: HealthOK, Checks: make(map[string]string, len(checks))}
		for i, c := range checks {
			if results[i] == nil {
				resp.Checks[c.Name] = HealthOK
				continue
			}
			resp.Checks[c.Name] = checkUnreachable
			switch {
			case !c.Optional:
				resp.Status = HealthUnavailable
			case resp.Status == HealthOK:
				resp.Status = HealthDegraded
			}
		}

		status := http.StatusOK
		if resp.Status == HealthUnavailable {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}
