package progress

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/kmmndr/autotrim/internal/motion"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressEstimates(t *testing.T) {
	p := motion.Progress{Frame: 30, Total: 300, Elapsed: 3 * time.Second}
	assert.InDelta(t, 10.0, p.Percent(), 1e-9)
	assert.Equal(t, 27*time.Second, p.Remaining())

	zero := motion.Progress{Frame: 0, Total: 0, Elapsed: time.Second}
	assert.Zero(t, zero.Percent())
	assert.Zero(t, zero.Remaining())
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := NewLog(logger, "flight.mp4")
	r.Report(motion.Progress{Frame: 60, Total: 120, Elapsed: 2 * time.Second})
	r.Done()

	out := buf.String()
	assert.Contains(t, out, "file=flight.mp4")
	assert.Contains(t, out, "frame=60")
	assert.Contains(t, out, "percent=50.0")
}

func TestBarReporter(t *testing.T) {
	var buf bytes.Buffer

	r := NewBar(&buf, "flight.mp4", 300)
	r.Report(motion.Progress{Frame: 150, Total: 300, Elapsed: time.Second})
	r.Done()

	assert.Contains(t, buf.String(), "150/300")
}

func TestNewFactory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tests := []struct {
		mode    string
		want    any
		wantErr bool
	}{
		{mode: ModeBar, want: &Bar{}},
		{mode: "", want: &Bar{}},
		{mode: ModeLog, want: &Log{}},
		{mode: ModeNone, want: Nop{}},
		{mode: "fancy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			factory, err := NewFactory(tt.mode, &bytes.Buffer{}, logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, factory("a.mp4", 10))
		})
	}
}
