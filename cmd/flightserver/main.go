package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
	"travel/cfg"
	"travel/internal/flight"
	"travel/pkg/flightclient"
	"travel/pkg/idgen"
	"travel/pkg/logger"
	"travel/pkg/telemetry"

	_ "travel/cmd/flightserver/docs" // swagger docs

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// @title           Flight Search API
// @version         1.0
// @description     Cheapest round-trip flight lookup backed by the SerpApi google_flights engine.
// @BasePath        /
// @schemes         http
func main() {
	// ============
	// config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// logger
	// ============
	zlogger := logger.NewZeroLog(config.AppEnv)

	// ============
	// Otel
	// ============
	shutdownOtel, err := telemetry.Init(context.Background(), &config.Observability, zlogger)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOtel(ctx); err != nil {
			zlogger.Error("failed to shutdown otel", logger.Field{Key: "err", Value: err})
		}
	}()

	// ============
	// External Service
	// ============
	httpClient := &http.Client{
		Timeout: config.SerpApiConfig.Timeout,
	}
	serpApiClient := flightclient.NewSerpApiClient(httpClient, config.SerpApiConfig.BaseURL,
		config.SerpApiConfig.APIKey, config.SerpApiConfig.Engine, zlogger)

	// ============
	// Internal Service
	// ============
	gen, err := idgen.NewSnowflakeGenerator(config.SnowflakeNodeID)
	if err != nil {
		log.Fatal(err)
	}
	flightSvc := flight.NewService(serpApiClient, gen, zlogger)
	flightHandler := flight.NewFlightHandler(flightSvc)

	// ============
	// HTTP
	// ============
	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(config.Observability.ServiceName))
	r.Use(TraceLoggerMiddleware(zlogger))

	flightHandler.RegisterRoutes(r)
	initSwagger(r)

	addr := fmt.Sprintf(":%s", config.AppPort)
	zlogger.Info("flight server listening", logger.Field{Key: "addr", Value: addr})
	if err := r.Run(addr); err != nil {
		zlogger.Error("server stopped", logger.Field{Key: "err", Value: err})
	}
}

func initSwagger(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// TraceLoggerMiddleware logs every request with its trace and span ids.
func TraceLoggerMiddleware(log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.Request.URL.Path},
			{Key: "status", Value: c.Writer.Status()},
			{Key: "elapsed", Value: time.Since(start)},
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			fields = append(fields,
				logger.Field{Key: "trace_id", Value: span.SpanContext().TraceID().String()},
				logger.Field{Key: "span_id", Value: span.SpanContext().SpanID().String()},
			)
		}

		log.Info("request completed", fields...)
	}
}
