package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-solitaire/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the solitaire SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own menu and tables. Per-variant stats and the
scoreboard are shared by everyone on the server; every game's result is
added to them. Tables left idle longer than server.idle_timeout are closed
without counting as played.

Host key handling:
  - If --host-key (or server.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.solitaire/host_key

Prometheus metrics are served on /metrics at --metrics (server.metrics_addr).
An empty address disables them.

Examples:
  solitaire serve                           # Listen on :2222
  solitaire serve --ssh :23234              # Listen on port 23234
  solitaire serve --host-key ./my_host_key  # Use specific host key
  solitaire serve --kv redis://localhost:6379

Users can connect with:
  ssh localhost -p 2222`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus listen address (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := newApp(false, reg)
	if err != nil {
		fail("%v", err)
	}
	defer a.Close()

	sshCfg := tui.SSHConfigFrom(a.cfg.Server)
	if flagSSHAddr != "" {
		sshCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		sshCfg.HostKeyPath = flagHostKey
	}
	metricsAddr := a.cfg.Server.MetricsAddr
	if cmd.Flags().Changed("metrics") {
		metricsAddr = flagMetricsAddr
	}

	server, err := tui.NewSSHServer(sshCfg, a.mgr, a.kv, a.scores, a.logger)
	if err != nil {
		a.Close()
		fail("creating server: %v", err)
	}

	var metricsSrv *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		metricsSrv = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server error", "err", err)
			}
		}()
		a.logger.Info("serving metrics", "address", metricsAddr)
	}

	a.mgr.Start()

	fmt.Printf("Starting solitaire SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	serveErr := server.ListenAndServe()

	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsSrv.Shutdown(ctx); err != nil {
			a.logger.Warn("metrics shutdown", "err", err)
		}
		cancel()
	}
	a.mgr.Stop()

	if serveErr != nil {
		a.Close()
		fail("server: %v", serveErr)
	}
}
