package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	catalogmodel "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/model"
	catalogservice "github.com/Parshu2496/cosmic-bites/pkg/catalog/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/infrastructure/jsonfile"
	"github.com/Parshu2496/cosmic-bites/pkg/catalog/infrastructure/memory"
	"github.com/Parshu2496/cosmic-bites/pkg/checkout"
	"github.com/Parshu2496/cosmic-bites/pkg/config"
	notificationservice "github.com/Parshu2496/cosmic-bites/pkg/notification/domain/service"
	"github.com/Parshu2496/cosmic-bites/pkg/notification/infrastructure/logsender"
	"github.com/Parshu2496/cosmic-bites/pkg/session"
	"github.com/Parshu2496/cosmic-bites/pkg/shell"
	"github.com/Parshu2496/cosmic-bites/pkg/transport"
)

const shutdownTimeout = 5 * time.Second

func main() {
	app := &cli.App{
		Name:  "cosmicbites",
		Usage: "food ordering cart with simulated checkout",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "serve the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "address",
						Aliases: []string{"a"},
						Usage:   "listen address, overrides COSMICBITES_SERVE_ADDRESS",
					},
				},
				Action: serve,
			},
			{
				Name:   "shell",
				Usage:  "interactive cart over stdin",
				Action: runShell,
			},
			{
				Name:      "export-catalog",
				Usage:     "write the built-in sample catalog as JSON, a starting point for COSMICBITES_CATALOG_FILE",
				ArgsUsage: "<file>",
				Action:    exportCatalog,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

type container struct {
	cfg      *config.Config
	logger   *log.Logger
	session  *session.Session
	catalog  catalogservice.CatalogService
	checkout *checkout.Simulator
}

func newContainer() (*container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}

	source, err := loadCatalog(cfg.CatalogFile, logger)
	if err != nil {
		return nil, err
	}

	catalog := catalogservice.NewCatalogService(source)
	s := session.New(logger)
	notifier := notificationservice.NewNotificationService(logsender.New(logger), catalog)
	s.Subscribe(notifier.Notify)

	return &container{
		cfg:      cfg,
		logger:   logger,
		session:  s,
		catalog:  catalog,
		checkout: checkout.NewSimulator(s.Loop(), s.Cart(), cfg.Pricing(), cfg.CheckoutDelay, logger),
	}, nil
}

func loadCatalog(filePath string, logger log.FieldLogger) (catalogmodel.Source, error) {
	if filePath == "" {
		return memory.NewSource(), nil
	}
	source, err := jsonfile.LoadCatalog(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField("file", filePath).Warn("Catalog file not found, using sample catalog.")
			return memory.NewSource(), nil
		}
		return nil, errors.Wrap(err, "failed to load catalog")
	}
	return source, nil
}

func serve(c *cli.Context) error {
	cont, err := newContainer()
	if err != nil {
		return err
	}
	defer cont.session.Close()

	address := cont.cfg.ServeAddress
	if c.IsSet("address") {
		address = c.String("address")
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	srv := &http.Server{
		Addr: address,
		Handler: transport.Router(transport.Dependencies{
			Context:  ctx,
			Session:  cont.session,
			Catalog:  cont.catalog,
			Checkout: cont.checkout,
			Pricing:  cont.cfg.Pricing(),
			Logger:   cont.logger,
		}),
	}

	killSignalChan := getKillSignalChan()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cont.logger.WithFields(log.Fields{"url": address}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "failed to start server")
		}
		return nil
	})
	g.Go(func() error {
		waitForKillSignalChan(gctx, cont.logger, killSignalChan)
		// pending checkouts are bound to ctx and get cancelled here
		cancel()

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancelShutdown()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown server")
	})
	return g.Wait()
}

func runShell(c *cli.Context) error {
	cont, err := newContainer()
	if err != nil {
		return err
	}
	defer cont.session.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := shell.New(os.Stdin, os.Stdout, cont.session, cont.catalog, cont.checkout, cont.cfg.Pricing())
	return sh.Run(ctx)
}

func exportCatalog(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("usage: export-catalog <file>")
	}
	return jsonfile.SaveCatalog(c.Args().First(), memory.SampleDataset())
}

func getKillSignalChan() chan os.Signal {
	osKillSignalChan := make(chan os.Signal, 1)
	signal.Notify(osKillSignalChan, os.Interrupt, syscall.SIGTERM)
	return osKillSignalChan
}

func waitForKillSignalChan(ctx context.Context, logger log.FieldLogger, killSignalChan <-chan os.Signal) {
	select {
	case killSignal := <-killSignalChan:
		switch killSignal {
		case os.Interrupt:
			logger.Info("Got SIGINT...")
		case syscall.SIGTERM:
			logger.Info("Got SIGTERM...")
		}
	case <-ctx.Done():
	}
}
