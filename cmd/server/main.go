package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Veldkraal/farm_shop/internal/config"
	"github.com/Veldkraal/farm_shop/internal/es"
	"github.com/Veldkraal/farm_shop/internal/events"
	"github.com/Veldkraal/farm_shop/internal/httpserver"
	"github.com/Veldkraal/farm_shop/internal/logging"
	mwauth "github.com/Veldkraal/farm_shop/internal/middleware/auth"
	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/service"
)

const productIndex = "products"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init error: %v", err)
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	esClient, err := es.NewClient(configuration)
	if err != nil {
		log.Printf("elasticsearch unavailable, search disabled: %v", err)
		esClient = nil
	}

	r := repo.New(db)
	authSvc := &service.AuthService{
		Repo:           r,
		JWTSecret:      []byte(configuration.JWT_SECRET),
		AdminAllowList: configuration.AdminAllowList(),
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := logging.IntoContext(req.Context(), logger.With(
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	})

	deps := &httpserver.Deps{
		Auth:     &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		Cart:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r}, Producer: producer},
		Address:  &httpserver.AddressHTTP{Svc: &service.AddressService{Repo: r}},
		Order:    &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: r}, Producer: producer},
		Product:  &httpserver.ProductHTTP{Svc: &service.CatalogService{Repo: r}, Producer: producer, ES: esClient, Index: productIndex},
		Search:   &httpserver.SearchHTTP{ES: esClient, Index: productIndex},
		Review:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		Sessions: &mwauth.Middleware{Auth: authSvc},
	}
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
