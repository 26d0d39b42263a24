package cli

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/ferry/internal/config"
)

func TestApplyFlagOverrides(t *testing.T) {
	cfg := config.DefaultConfig()

	require.NoError(t, serveCmd.Flags().Set("addr", ":9999"))
	require.NoError(t, serveCmd.Flags().Set("upstream", "http://localhost:4000"))
	require.NoError(t, serveCmd.Flags().Set("proxy", "http://127.0.0.1:8888"))
	require.NoError(t, serveCmd.Flags().Set("insecure", "true"))
	require.NoError(t, serveCmd.Flags().Set("timeout", "12s"))
	defer resetServeFlags(t)

	applyFlagOverrides(serveCmd, cfg)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:4000", cfg.Upstream.BaseURL)
	assert.Equal(t, "http://127.0.0.1:8888", cfg.Upstream.ProxyURL)
	assert.True(t, cfg.Upstream.InsecureTLS)
	assert.Equal(t, 12*time.Second, cfg.Upstream.Timeout.GetDuration(0))
}

func TestApplyFlagOverrides_UnchangedFlagsKeepConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.Addr = ":7777"

	applyFlagOverrides(serveCmd, cfg)

	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, config.DefaultUpstreamURL, cfg.Upstream.BaseURL)
}

// resetServeFlags clears Changed state so tests don't leak into each other.
func resetServeFlags(t *testing.T) {
	t.Helper()
	serveCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		}
	})
}
