package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/codetribe"
	"pkt.systems/codetribe/core"
	"pkt.systems/codetribe/httpapi"
	"pkt.systems/codetribe/internal/appconfig"
	"pkt.systems/codetribe/schema"
	"pkt.systems/pslog"
)

func newServeCmd() *cobra.Command {
	var cfgPath string
	var disableAuditTrails bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the codetribe server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if disableAuditTrails {
				cfg.Logging.DisableAuditTrails = true
			}

			serverCfg := codetribe.ServerConfig{
				Service:    toServiceConfig(cfg),
				Execution:  toDispatcherConfig(cfg.Execution),
				HTTP:       toHTTPConfig(cfg.HTTP),
				HubHistory: 1000,
			}
			serverDeps := codetribe.ServerDeps{
				ServiceDeps: core.ServiceDeps{
					Logger: logger,
				},
			}
			server, err := codetribe.New(serverCfg, serverDeps, codetribe.WithHTTP(), codetribe.WithEventBus())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := server.Stop(stopCtx); err != nil {
					logger.Warn("server stop failed", "err", err)
				}
			}()
			logger.Info("http server listening", "addr", serverCfg.HTTP.Addr)
			if err := server.Start(ctx); err != nil {
				return err
			}
			return server.Wait()
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&disableAuditTrails, "disable-audit-trails", false, "disable audit trail logging for session activity")
	return cmd
}

func toServiceConfig(cfg appconfig.Config) schema.ServiceConfig {
	return schema.ServiceConfig{
		DefaultLanguage:     schema.LanguageID(cfg.Session.DefaultLanguage),
		ConsoleMaxLines:     cfg.Session.ConsoleMaxLines,
		HistoryMax:          cfg.Session.HistoryMax,
		MaxCodeBytes:        cfg.Session.MaxCodeBytes,
		UserColors:          cfg.Session.UserColors,
		DisableAuditLogging: cfg.Logging.DisableAuditTrails,
	}
}

func toDispatcherConfig(cfg appconfig.ExecutionConfig) core.DispatcherConfig {
	// A zero rate in the config file means faults are off.
	faultRate := cfg.FaultRate
	if faultRate == 0 {
		faultRate = -1
	}
	return core.DispatcherConfig{
		FaultRate:  faultRate,
		LatencyMin: time.Duration(cfg.LatencyMinMS) * time.Millisecond,
		LatencyMax: time.Duration(cfg.LatencyMaxMS) * time.Millisecond,
	}
}

func toHTTPConfig(cfg appconfig.HTTPConfig) httpapi.Config {
	return httpapi.Config{
		Addr:                cfg.Addr,
		SessionCookie:       cfg.SessionCookie,
		SessionTTLHours:     cfg.SessionTTLHours,
		BaseURL:             cfg.BaseURL,
		BasePath:            cfg.BasePath,
		InitialConsoleLines: cfg.InitialConsoleLines,
	}
}
