package http

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
)

// EndpointStats aggregates the calls made to one endpoint.
type EndpointStats struct {
	Endpoint string
	Count    int
	Errors   int
	Total    time.Duration
	Min      time.Duration
	Max      time.Duration
}

// Average returns the mean latency.
func (s EndpointStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}

	return s.Total / time.Duration(s.Count)
}

// MetricsCollector records response times keyed by "METHOD path".
type MetricsCollector struct {
	mu    sync.Mutex
	stats map[string]*EndpointStats
}

// NewMetricsCollector creates an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{stats: make(map[string]*EndpointStats)}
}

// EndpointKey normalizes a call into its metrics key: the query string and
// host are dropped and numeric path segments become {id}.
func EndpointKey(method, rawURL string) string {
	path := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		path = parsed.Path
	}

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = "{id}"
		}
	}

	return strings.ToUpper(method) + " " + strings.Join(segments, "/")
}

// Record adds one observation. failed marks a transport failure.
func (m *MetricsCollector) Record(method, rawURL string, elapsed time.Duration, failed bool) {
	key := EndpointKey(method, rawURL)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats, ok := m.stats[key]
	if !ok {
		stats = &EndpointStats{Endpoint: key, Min: elapsed, Max: elapsed}
		m.stats[key] = stats
	}

	stats.Count++
	stats.Total += elapsed

	if failed {
		stats.Errors++
	}

	if elapsed < stats.Min {
		stats.Min = elapsed
	}

	if elapsed > stats.Max {
		stats.Max = elapsed
	}
}

// Snapshot returns a copy of the stats sorted by endpoint.
func (m *MetricsCollector) Snapshot() []EndpointStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]EndpointStats, 0, len(m.stats))
	for _, stats := range m.stats {
		out = append(out, *stats)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Endpoint < out[j].Endpoint })

	return out
}

// Reset discards every observation.
func (m *MetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats = make(map[string]*EndpointStats)
}

// Render writes the stats as a table.
func (m *MetricsCollector) Render(w io.Writer) error {
	snapshot := m.Snapshot()

	table := tablewriter.NewWriter(w)
	table.Header("Endpoint", "Calls", "Errors", "Avg", "Min", "Max")

	for _, stats := range snapshot {
		_ = table.Append(
			stats.Endpoint,
			strconv.Itoa(stats.Count),
			strconv.Itoa(stats.Errors),
			formatMillis(stats.Average()),
			formatMillis(stats.Min),
			formatMillis(stats.Max),
		)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render metrics: %w", err)
	}

	return nil
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
