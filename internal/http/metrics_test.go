package http_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	lfhttp "github.com/fivetwenty-io/lostfound-e2e/internal/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		url    string
		want   string
	}{
		{"get", "http://localhost:8080/api/v1/lost-items", "GET /api/v1/lost-items"},
		{"PATCH", "/api/v1/admin/items/17", "PATCH /api/v1/admin/items/{id}"},
		{"GET", "/api/v1/found-items?search=wallet", "GET /api/v1/found-items"},
		{"DELETE", "http://h/api/v1/found-items/3/photos/9", "DELETE /api/v1/found-items/{id}/photos/{id}"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, lfhttp.EndpointKey(tt.method, tt.url))
	}
}

func TestMetricsCollector_Record(t *testing.T) {
	t.Parallel()

	collector := lfhttp.NewMetricsCollector()
	collector.Record("GET", "/a", 10*time.Millisecond, false)
	collector.Record("GET", "/a", 30*time.Millisecond, true)
	collector.Record("GET", "/a", 20*time.Millisecond, false)

	snapshot := collector.Snapshot()
	require.Len(t, snapshot, 1)

	stats := snapshot[0]
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 10*time.Millisecond, stats.Min)
	assert.Equal(t, 30*time.Millisecond, stats.Max)
	assert.Equal(t, 20*time.Millisecond, stats.Average())

	collector.Reset()
	assert.Empty(t, collector.Snapshot())
	assert.Equal(t, time.Duration(0), lfhttp.EndpointStats{}.Average())
}

func TestMetricsCollector_Concurrent(t *testing.T) {
	t.Parallel()

	collector := lfhttp.NewMetricsCollector()

	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			collector.Record("POST", "/api/v1/auth/signin", time.Millisecond, false)
		}()
	}

	wg.Wait()

	snapshot := collector.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, 50, snapshot[0].Count)
}

func TestMetricsCollector_Render(t *testing.T) {
	t.Parallel()

	collector := lfhttp.NewMetricsCollector()
	collector.Record("GET", "/api/v1/admin/reports", 1500*time.Microsecond, false)

	var buf bytes.Buffer
	require.NoError(t, collector.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "GET /api/v1/admin/reports")
	assert.Contains(t, out, "1.50ms")
}
