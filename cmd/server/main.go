package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"bikeshop/internal/config"
	"bikeshop/internal/es"
	"bikeshop/internal/events"
	"bikeshop/internal/handlers"
	"bikeshop/internal/logging"
	"bikeshop/internal/service"
	"bikeshop/internal/service/search"
	httpserver "bikeshop/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LOG_LEVEL).With("service", "bikeshop")
	slog.SetDefault(logger)

	store, err := config.InitStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(strings.Split(cfg.KAFKA_ADDRESS, ","))
	}

	var searchSvc *search.Service
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searchSvc = &search.Service{ES: esClient, Index: "catalog"}
	}

	accounts := &service.Accounts{Store: store, Events: producer, Log: logger}
	fulfillment := &service.Fulfillment{Store: store, Events: producer, Log: logger}

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	deps := &httpserver.Deps{
		AuthHandler:   &handlers.AuthHandler{Accounts: accounts},
		BikeHandler:   &handlers.BikeHandler{Store: store, Producer: producer, Search: searchSvc},
		PartHandler:   &handlers.PartHandler{Store: store, Producer: producer, Search: searchSvc},
		StaffHandler:  &handlers.StaffHandler{Store: store},
		LedgerHandler: &handlers.LedgerHandler{Store: store, Producer: producer},
		OrderHandler:  &handlers.OrderHandler{Store: store, Fulfillment: fulfillment},
	}
	if searchSvc != nil {
		deps.SearchHandler = &handlers.SearchHandler{Svc: searchSvc}
	}
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:              cfg.HTTP_ADDR,
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("bikeshop listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = producer.Close()
	if err := store.Close(); err != nil {
		log.Printf("store close: %v", err)
	}

	log.Println("bikeshop stopped")
}
