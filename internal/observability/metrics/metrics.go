// Package metrics turns backend calls and session transitions into StatsD
// counters and timings.
package metrics

import (
	"context"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/gigglit/gigglit-web/internal/errors"
	"github.com/gigglit/gigglit-web/internal/observability/statsd"
	"github.com/gigglit/gigglit-web/internal/service"
)

const (
	metricAPIRequest = "api.request"
	metricAPIError   = "api.error"
	metricSession    = "session"
)

// Recorder is nil-safe: a nil *Recorder or a nil sink records nothing.
type Recorder struct {
	sink statsd.Sink
}

var _ service.SessionListener = (*Recorder)(nil)

// NewRecorder wraps sink.
func NewRecorder(sink statsd.Sink) *Recorder {
	return &Recorder{sink: sink}
}

// ObserveCall records the latency of one backend call and, on failure, an
// error counter tagged with the error code. status is 0 when no response
// arrived.
func (r *Recorder) ObserveCall(op string, status int, err error, d time.Duration) {
	if r == nil || r.sink == nil {
		return
	}
	op = strings.ReplaceAll(strings.TrimSpace(op), " ", "_")
	tags := map[string]string{"op": op, "status": statusClass(status)}
	r.sink.Timing(metricAPIRequest, d, tags)

	if err == nil {
		return
	}
	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	r.sink.Count(metricAPIError, 1, map[string]string{"op": op, "code": code})
}

// SessionChanged counts session lifecycle transitions by event and role.
func (r *Recorder) SessionChanged(_ context.Context, tr service.SessionTransition) {
	if r == nil || r.sink == nil {
		return
	}
	role := string(tr.Session.Role)
	if role == "" {
		role = "unknown"
	}
	r.sink.Count(metricSession+"."+string(tr.Event), 1, map[string]string{"role": role})
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "none"
	}
	return strconv.Itoa(status/100) + "xx"
}
