// Package output renders the serve command's console output: the
// startup banner and the shutdown metrics summary.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wesleyorama2/ferry/internal/metrics"
)

// Route is one line of the startup banner's route table.
type Route struct {
	Method string
	Path   string
	Desc   string
}

// Console writes human-facing output for the serve command.
type Console struct {
	w      io.Writer
	scheme *ColorScheme
}

// NewConsole creates a console writing to w. Colors are disabled when
// noColor is set or when w is not a terminal.
func NewConsole(w io.Writer, noColor bool) *Console {
	if !noColor {
		if f, ok := w.(*os.File); !ok || !isTerminal(f) {
			noColor = true
		}
	}

	scheme := DefaultColorScheme()
	if noColor {
		scheme = NoColorScheme()
	}

	return &Console{w: w, scheme: scheme}
}

// Banner prints the startup banner with the listen address, upstream
// settings and the route table.
func (c *Console) Banner(addr, upstreamURL, proxyURL string, insecureTLS bool, routes []Route) {
	fmt.Fprintf(c.w, "%s listening on %s\n", c.scheme.Banner.Sprint("ferry"), c.scheme.URL.Sprint(addr))
	fmt.Fprintf(c.w, "  %s %s\n", c.scheme.Label.Sprint("upstream:"), upstreamURL)

	if proxyURL != "" {
		fmt.Fprintf(c.w, "  %s %s\n", c.scheme.Label.Sprint("proxy:"), proxyURL)
	}
	if insecureTLS {
		fmt.Fprintf(c.w, "  %s\n", c.scheme.Error.Sprint("TLS verification disabled"))
	}

	fmt.Fprintln(c.w, "  routes:")
	for _, route := range routes {
		fmt.Fprintf(c.w, "    %s %s  %s\n",
			c.scheme.Method.Sprintf("%-4s", route.Method),
			c.scheme.URL.Sprintf("%-22s", route.Path),
			route.Desc)
	}
}

// Summary prints the outbound call statistics collected during the run.
func (c *Console) Summary(snap metrics.Snapshot) {
	fmt.Fprintf(c.w, "\n%s\n", c.scheme.Banner.Sprint("outbound call summary"))

	if snap.TotalCalls == 0 {
		fmt.Fprintln(c.w, "  no outbound calls made")
		return
	}

	fmt.Fprintf(c.w, "  total: %d, errors: %s\n",
		snap.TotalCalls,
		c.formatErrorCount(snap.TotalErrors))

	header := fmt.Sprintf("  %-14s %8s %8s %10s %10s %10s %10s",
		"endpoint", "calls", "errors", "p50", "p95", "p99", "max")
	fmt.Fprintln(c.w, c.scheme.Label.Sprint(header))

	for _, ep := range snap.Endpoints {
		fmt.Fprintf(c.w, "  %-14s %8d %8d %10s %10s %10s %10s\n",
			ep.Endpoint, ep.Calls, ep.Errors,
			formatLatency(ep.P50), formatLatency(ep.P95),
			formatLatency(ep.P99), formatLatency(ep.Max))
	}
}

func (c *Console) formatErrorCount(errors int64) string {
	s := fmt.Sprintf("%d", errors)
	if errors > 0 {
		return c.scheme.Error.Sprint(s)
	}
	return c.scheme.Success.Sprint(s)
}

// formatLatency renders a duration compactly, trimming sub-millisecond
// noise for readability.
func formatLatency(d time.Duration) string {
	s := d.String()
	// 1.234567ms -> 1.23ms
	if i := strings.IndexByte(s, '.'); i > 0 && strings.HasSuffix(s, "ms") && len(s) > i+5 {
		return s[:i+3] + "ms"
	}
	return s
}
