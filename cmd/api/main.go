package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/cloudmeta/catalog"
	"github.com/cloudmeta/catalog/core"
	"github.com/cloudmeta/catalog/x/enforcer"
	"github.com/cloudmeta/catalog/x/gateway"
	"github.com/cloudmeta/catalog/x/image"
	"github.com/cloudmeta/catalog/x/metadef"
	"github.com/cloudmeta/catalog/x/task"
)

type CustomHandler struct {
	slog.Handler
}

func (h *CustomHandler) Handle(ctx context.Context, r slog.Record) error {

	r.AddAttrs(slog.String("type", "app"))

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(slog.String("traceID", span.SpanContext().TraceID().String()))
		r.AddAttrs(slog.String("spanID", span.SpanContext().SpanID().String()))
	}

	return h.Handler.Handle(ctx, r)
}

var (
	version = "unknown"
)

func main() {

	handler := &CustomHandler{Handler: slog.NewJSONHandler(os.Stdout, nil)}
	slogger := slog.New(handler)
	slog.SetDefault(slogger)

	slog.Info(fmt.Sprintf("Catalog %s starting...", version))

	e := echo.New()
	e.HidePort = true
	e.HideBanner = true

	config := Config{}
	configPath := os.Getenv("CATALOG_CONFIG")
	if configPath == "" {
		configPath = "/etc/catalog/config.yaml"
	}

	err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config: ", slog.String("error", err.Error()))
	}

	slog.Info(fmt.Sprintf("Config loaded! I am: %s", config.Catalog.FQDN))

	if config.Server.EnableTrace {
		cleanup, err := setupTraceProvider(config.Server.TraceEndpoint, config.Catalog.FQDN+"/catalog", version)
		if err != nil {
			panic(err)
		}
		defer cleanup()

		skipper := otelecho.WithSkipper(
			func(c echo.Context) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
		)
		e.Use(otelecho.Middleware("api", skipper))
	}

	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: "catalog",
		LabelFuncs: map[string]echoprometheus.LabelValueFunc{
			"url": func(c echo.Context, err error) string {
				return "REDACTED"
			},
		},
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	e.Use(middleware.Recover())

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(config.Server.Dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		panic("failed to connect database")
	}
	sqlDB, err := db.DB() // for pinging
	if err != nil {
		panic("failed to connect database")
	}
	defer sqlDB.Close()

	err = db.Use(tracing.NewPlugin(
		tracing.WithDBName("postgres"),
	))
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	// Migrate the schema
	slog.Info("start migrate")
	db.AutoMigrate(
		&core.Image{},
		&core.MetadefNamespace{},
		&core.MetadefObject{},
		&core.MetadefProperty{},
		&core.MetadefResourceType{},
		&core.MetadefTag{},
		&core.Task{},
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Server.RedisAddr,
		Password: "",
		DB:       config.Server.RedisDB,
	})
	err = redisotel.InstrumentTracing(
		rdb,
		redisotel.WithAttributes(
			attribute.KeyValue{
				Key:   "db.name",
				Value: attribute.StringValue("redis"),
			},
		),
	)
	if err != nil {
		panic("failed to setup tracing plugin")
	}

	mc := memcache.New(config.Server.MemcachedAddr)
	defer mc.Close()

	var gw *gateway.Gateway
	if config.Catalog.CasbinModelFile != "" && config.Catalog.CasbinPolicyFile != "" {
		ruleEnforcer, err := enforcer.NewCasbinService(config.Catalog.CasbinModelFile, config.Catalog.CasbinPolicyFile)
		if err != nil {
			panic(fmt.Sprintf("failed to setup casbin enforcer: %v", err))
		}
		gw, err = gateway.New(catalog.NewAccessors(db, mc), ruleEnforcer, rdb, config.Catalog)
		if err != nil {
			panic(fmt.Sprintf("failed to setup gateway: %v", err))
		}
	} else {
		gw, err = catalog.SetupGateway(db, rdb, mc, catalog.GetDefaultRuleDocument(), config.Catalog)
		if err != nil {
			panic(fmt.Sprintf("failed to setup gateway: %v", err))
		}
	}

	imageHandler := image.NewHandler(gw)
	metadefHandler := metadef.NewHandler(gw)
	taskHandler := task.NewHandler(gw)

	apiV1 := e.Group("/v1")

	// image
	apiV1.GET("/images", imageHandler.Query)
	apiV1.POST("/images", imageHandler.Post)
	apiV1.GET("/images/:id", imageHandler.Get)
	apiV1.PUT("/images/:id", imageHandler.Put)
	apiV1.DELETE("/images/:id", imageHandler.Delete)

	// metadef namespace
	apiV1.GET("/metadefs/namespaces", metadefHandler.QueryNamespaces)
	apiV1.POST("/metadefs/namespaces", metadefHandler.PostNamespace)
	apiV1.GET("/metadefs/namespaces/:id", metadefHandler.GetNamespace)
	apiV1.PUT("/metadefs/namespaces/:id", metadefHandler.PutNamespace)
	apiV1.DELETE("/metadefs/namespaces/:id", metadefHandler.DeleteNamespace)

	// metadef object
	apiV1.GET("/metadefs/objects", metadefHandler.QueryObjects)
	apiV1.POST("/metadefs/objects", metadefHandler.PostObject)
	apiV1.GET("/metadefs/objects/:id", metadefHandler.GetObject)
	apiV1.DELETE("/metadefs/objects/:id", metadefHandler.DeleteObject)

	// metadef property
	apiV1.GET("/metadefs/properties", metadefHandler.QueryProperties)
	apiV1.POST("/metadefs/properties", metadefHandler.PostProperty)
	apiV1.DELETE("/metadefs/properties/:id", metadefHandler.DeleteProperty)

	// metadef tag
	apiV1.GET("/metadefs/tags", metadefHandler.QueryTags)
	apiV1.POST("/metadefs/tags", metadefHandler.PostTag)
	apiV1.DELETE("/metadefs/tags/:id", metadefHandler.DeleteTag)

	// metadef resource type
	apiV1.GET("/metadefs/resource_types", metadefHandler.QueryResourceTypes)
	apiV1.POST("/metadefs/resource_types", metadefHandler.PostResourceType)

	// task
	apiV1.GET("/tasks", taskHandler.Query)
	apiV1.POST("/tasks", taskHandler.Post)
	apiV1.GET("/tasks/:id", taskHandler.Get)
	apiV1.DELETE("/tasks/:id", taskHandler.Delete)

	e.GET("/health", func(c echo.Context) (err error) {
		ctx := c.Request().Context()

		err = sqlDB.Ping()
		if err != nil {
			return c.String(http.StatusInternalServerError, "db error")
		}

		err = rdb.Ping(ctx).Err()
		if err != nil {
			return c.String(http.StatusInternalServerError, "redis error")
		}

		return c.String(http.StatusOK, "ok")
	})

	var resourceCountMetrics = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_resources_count",
			Help: "resources count",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(resourceCountMetrics)

	go func() {
		counters := map[string]func() *gorm.DB{
			"image":             func() *gorm.DB { return db.Model(&core.Image{}) },
			"metadef_namespace": func() *gorm.DB { return db.Model(&core.MetadefNamespace{}) },
			"task":              func() *gorm.DB { return db.Model(&core.Task{}) },
		}
		for {
			time.Sleep(15 * time.Second)
			for kind, model := range counters {
				var count int64
				err := model().Count(&count).Error
				if err != nil {
					slog.Error(fmt.Sprintf("failed to count %s: %v", kind, err))
					continue
				}
				resourceCountMetrics.WithLabelValues(kind).Set(float64(count))
			}
		}
	}()

	e.GET("/metrics", echoprometheus.NewHandler())

	e.Logger.Fatal(e.Start(":8000"))
}

func setupTraceProvider(endpoint string, serviceName string, serviceVersion string) (func(), error) {

	exporter, err := otlptracehttp.New(
		context.Background(),
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)

	if err != nil {
		return nil, err
	}

	resource := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(serviceVersion),
	)

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(tracerProvider)

	propagator := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
	otel.SetTextMapPropagator(propagator)

	cleanup := func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			slog.Error(fmt.Sprintf("Failed to shutdown tracer provider: %v", err))
		}
	}
	return cleanup, nil
}
