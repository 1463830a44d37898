package main

import (
	"context"
	_ "embed"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/appetiteclub/pos/internal/admin"
	"github.com/appetiteclub/pos/internal/catalog"
	"github.com/appetiteclub/pos/internal/floor"
	"github.com/appetiteclub/pos/internal/insight"
	"github.com/appetiteclub/pos/internal/kitchen"
	"github.com/appetiteclub/pos/internal/memory"
	"github.com/appetiteclub/pos/internal/order"
	"github.com/appetiteclub/pos/internal/seeding"
	"github.com/appetiteclub/pos/pkg"
	"github.com/aquamarinepk/aqm"
	"github.com/aquamarinepk/aqm/events"
	"github.com/aquamarinepk/aqm/middleware"
	"github.com/joho/godotenv"
)

//go:embed seed.yaml
var seedData []byte

const (
	appNamespace = "POS"
	appName      = "pos"
	appVersion   = "0.1.0"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("%s(%s) cannot read .env file: %v", appName, appVersion, err)
	}

	config, err := aqm.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup with error: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := aqm.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	seedCtx, cancelSeeds := context.WithCancel(ctx)
	defer cancelSeeds()

	lifecycle := []interface{}{}

	menuRepo := memory.NewMenuRepo()
	inventoryRepo := memory.NewInventoryRepo()
	tableRepo := memory.NewTableRepo()
	orderRepo := memory.NewOrderRepo()

	var publisher events.Publisher
	var subscriber events.Subscriber

	natsURL, _ := config.GetString("nats.url")
	if natsURL != "" {
		natsPublisher, err := pkg.NewNATSPublisher(natsURL)
		if err != nil {
			log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
		}
		natsSubscriber, err := pkg.NewNATSSubscriber(natsURL, logger)
		if err != nil {
			log.Fatalf("%s(%s) cannot connect to NATS subscriber: %v", appName, appVersion, err)
		}
		lifecycle = append(lifecycle, aqm.LifecycleHooks{
			OnStop: func(context.Context) error {
				natsSubscriber.Close()
				return natsPublisher.Close()
			},
		})
		publisher, subscriber = natsPublisher, natsSubscriber
		logger.Info("using NATS event transport", "url", natsURL)
	} else {
		bus := pkg.NewLocalBus(logger)
		lifecycle = append(lifecycle, aqm.LifecycleHooks{
			OnStop: func(context.Context) error {
				return bus.Close()
			},
		})
		publisher, subscriber = bus, bus
	}

	floorPlan := floor.NewFloor(tableRepo, publisher, logger)

	engine := order.NewEngine(order.EngineDeps{
		OrderRepo: orderRepo,
		Tables:    floorPlan,
		Menu:      menuRepo,
		Publisher: publisher,
	}, logger)

	summarizer := newSummarizer(ctx, config, logger)
	insights := insight.NewService(insight.ServiceDeps{
		Summarizer: summarizer,
		Orders:     engine,
		Inventory:  inventoryRepo,
		Menu:       menuRepo,
	}, logger)

	kitchenView := kitchen.NewView(engine, floorPlan)
	feed := kitchen.NewFeed(kitchenView, subscriber, logger)
	lifecycle = append(lifecycle, aqm.LifecycleHooks{
		OnStart: feed.Start,
		OnStop:  feed.Stop,
	})

	if config.GetStringOrDef("seeding.enabled", "true") == "true" {
		repos := seeding.Repos{
			Tables:    tableRepo,
			Menu:      menuRepo,
			Inventory: inventoryRepo,
		}
		lifecycle = append(lifecycle, aqm.LifecycleHooks{
			OnStart: seeding.SeedingFunc(seedCtx, repos, seedData, logger),
			OnStop:  seeding.StopFunc(cancelSeeds),
		})
	}

	catalogHandler := catalog.NewHandler(catalog.HandlerDeps{
		MenuRepo:      menuRepo,
		InventoryRepo: inventoryRepo,
	}, config, logger)
	floorHandler := floor.NewHandler(floorPlan, config, logger)
	orderHandler := order.NewHandler(engine, config, logger)
	kitchenHandler := kitchen.NewHandler(kitchenView, feed, config, logger)
	adminHandler := admin.NewHandler(admin.HandlerDeps{
		Orders:    engine,
		Inventory: inventoryRepo,
		Tables:    floorPlan,
		Insights:  insights,
	}, config, logger)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger: logger,
	})

	options := []aqm.Option{
		aqm.WithConfig(config),
		aqm.WithLogger(logger),
		aqm.WithHTTPMiddleware(stack...),
		aqm.WithHTTPServerModules("web.port", catalogHandler, floorHandler, orderHandler, kitchenHandler, adminHandler),
		aqm.WithLifecycle(lifecycle...),
		aqm.WithHealthChecks(appName),
	}

	ms := aqm.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

func newSummarizer(ctx context.Context, config *aqm.Config, logger aqm.Logger) insight.Summarizer {
	apiKey, _ := config.GetString("insight.api.key")
	if apiKey == "" {
		logger.Info("insight api key not set, panels will show fallback texts")
		return insight.Unavailable{}
	}

	model := config.GetStringOrDef("insight.model", insight.DefaultModel)
	gemini, err := insight.NewGemini(ctx, apiKey, model)
	if err != nil {
		logger.Error("cannot create insight client", "error", err)
		return insight.Unavailable{}
	}
	return gemini
}
