package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio/internal/adapters/web"
	"portfolio/internal/application"
	"portfolio/internal/config"
	"portfolio/internal/infrastructure/catalog"
	"portfolio/internal/infrastructure/i18n"
	"portfolio/internal/infrastructure/notify"
	"portfolio/internal/infrastructure/relay"
	"portfolio/internal/infrastructure/site"
	"portfolio/internal/infrastructure/telemetry"
	"portfolio/internal/logging"
)

const (
	sweepInterval   = time.Second
	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site and the contact form",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, logger)
	},
}

// siteSource returns the file system pages are read from on every load.
func siteSource(cfg *config.Config) func() fs.FS {
	if cfg.SiteDir == "" {
		return site.Sample
	}
	dir := cfg.SiteDir
	return func() fs.FS { return os.DirFS(dir) }
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPAddr, serviceName, logger)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	dict, err := i18n.NewTranslator(cfg.DefaultLocale, logger)
	if err != nil {
		return err
	}
	projects, err := catalog.Load(cfg.ProjectsFile)
	if err != nil {
		return err
	}
	holder, err := site.NewHolder(siteSource(cfg), logger)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.ContactStore, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []application.ContactOption{application.WithStatusTTL(cfg.StatusTTL)}
	if cfg.DiscordWebhookURL != "" {
		notifier, err := notify.NewDiscordNotifier(cfg.DiscordWebhookURL, logger)
		if err != nil {
			return err
		}
		opts = append(opts, application.WithNotifier(notifier))
	}
	contacts := application.NewContactService(store, relay.NewClient(cfg.RelayTimeout, logger), logger, opts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	statuses := web.NewStatusStore(nil)
	handler := web.NewHandler(holder, dict, contacts, application.NewNavigator(projects), statuses, web.NewMetrics(reg),
		web.Settings{
			DefaultLocale: cfg.DefaultLocale,
			PageSize:      cfg.PageSize,
			ProjectsPath:  cfg.ProjectsPath,
			FormEndpoint:  cfg.FormEndpoint,
			StatusTTL:     cfg.StatusTTL,
		}, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           web.NewRouter(handler, reg, serviceName, logging.Slog(logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var watcher *site.Watcher
	if cfg.SiteWatch {
		if watcher, err = site.NewWatcher(cfg.SiteDir, holder, logger); err != nil {
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("🚀 listening", zap.String("addr", srv.Addr), zap.Strings("pages", holder.Site().Paths()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(sctx)
	})
	g.Go(func() error {
		return statuses.RunSweeper(ctx, sweepInterval, logger)
	})
	if watcher != nil {
		g.Go(func() error {
			return watcher.Run(ctx)
		})
	}
	return g.Wait()
}
