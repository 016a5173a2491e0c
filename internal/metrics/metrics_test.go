package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder()

	r.Frame(0.016, 3.5)
	r.Frame(0.017, 2)
	r.FrameSkipped()
	r.HoverChanged("malta")
	r.HoverChanged("")
	r.HoverChanged("malta")
	r.Teleport(true)
	r.Teleport(false)
	r.LookEngaged(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.skipped))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.speed))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.hoverChanges.WithLabelValues("malta")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.hoverChanges.WithLabelValues("")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.teleports.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.teleports.WithLabelValues("invalid_zone")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.lookEngaged))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.Frame(1, 1)
	r.FrameSkipped()
	r.HoverChanged("x")
	r.Teleport(true)
	r.LookEngaged(true)
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.Frame(0.016, 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "galleria_frames_total 1"), body)
	assert.Contains(t, body, "galleria_frame_delta_seconds_bucket")
}
