package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wesleyorama2/ferry/internal/config"
	"github.com/wesleyorama2/ferry/internal/httpc"
	"github.com/wesleyorama2/ferry/internal/logger"
	"github.com/wesleyorama2/ferry/internal/metrics"
	"github.com/wesleyorama2/ferry/internal/output"
	"github.com/wesleyorama2/ferry/internal/server"
	"github.com/wesleyorama2/ferry/internal/upstream"
)

const shutdownGrace = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the aggregation service",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		applyFlagOverrides(cmd, cfg)
		if err := config.Validate(cfg); err != nil {
			return err
		}

		noColor, _ := cmd.Flags().GetBool("no-color")

		return runServe(cfg, noColor)
	},
}

// applyFlagOverrides lets command line flags win over config file values.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
		cfg.Server.Addr = addr
	}
	if upstreamURL, _ := cmd.Flags().GetString("upstream"); cmd.Flags().Changed("upstream") {
		cfg.Upstream.BaseURL = upstreamURL
	}
	if proxyURL, _ := cmd.Flags().GetString("proxy"); cmd.Flags().Changed("proxy") {
		cfg.Upstream.ProxyURL = proxyURL
	}
	if insecure, _ := cmd.Flags().GetBool("insecure"); cmd.Flags().Changed("insecure") {
		cfg.Upstream.InsecureTLS = insecure
	}
	if timeout, _ := cmd.Flags().GetDuration("timeout"); cmd.Flags().Changed("timeout") {
		cfg.Upstream.Timeout = config.Duration(timeout)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Server.LogMode = "development"
	}
}

func runServe(cfg *config.Config, noColor bool) error {
	log, err := logger.New(cfg.Server.LogMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	recorder := metrics.NewRecorder()

	options := []httpc.ClientOption{
		httpc.WithBaseURL(cfg.Upstream.BaseURL),
		httpc.WithTimeout(cfg.Upstream.Timeout.GetDuration(config.DefaultTimeout)),
		httpc.WithHeader("User-Agent", cfg.Upstream.UserAgent),
	}
	if cfg.Upstream.ProxyURL != "" {
		options = append(options, httpc.WithProxy(cfg.Upstream.ProxyURL))
	}
	if cfg.Upstream.InsecureTLS {
		options = append(options, httpc.WithInsecureTLS(true))
	}
	client := httpc.NewClient(options...)

	handler := server.NewHandler(upstream.New(client, log, recorder), log)
	router := server.NewRouter(server.RouterConfig{
		Handler:      handler,
		Log:          log,
		AllowOrigins: cfg.Server.AllowOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.GetDuration(config.DefaultReadTimeout),
		WriteTimeout: cfg.Server.WriteTimeout.GetDuration(config.DefaultWriteTimeout),
	}

	console := output.NewConsole(os.Stdout, noColor)
	console.Banner(cfg.Server.Addr, cfg.Upstream.BaseURL, cfg.Upstream.ProxyURL, cfg.Upstream.InsecureTLS, []output.Route{
		{Method: "GET", Path: "/", Desc: "health check"},
		{Method: "GET", Path: "/api/user/:id", Desc: "user + posts aggregation"},
		{Method: "POST", Path: "/api/create-post", Desc: "forward a post upstream"},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("server started",
		zap.String("addr", cfg.Server.Addr),
		zap.String("upstream", cfg.Upstream.BaseURL))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown incomplete", zap.Error(err))
	}

	console.Summary(recorder.Snapshot())
	return nil
}

func init() {
	serveCmd.Flags().StringP("config", "c", "", "Path to a YAML config file")
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (host:port)")
	serveCmd.Flags().StringP("upstream", "u", "", "Upstream base URL")
	serveCmd.Flags().String("proxy", "", "Route outbound calls through this proxy URL")
	serveCmd.Flags().Bool("insecure", false, "Skip upstream TLS certificate verification")
	serveCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Outbound request timeout")
	serveCmd.Flags().BoolP("verbose", "v", false, "Force development logging")
	serveCmd.Flags().Bool("no-color", false, "Disable colored output")
}
