package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/bloghub/internal/auth"
	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/config"
	"github.com/2beens/bloghub/internal/db"
	"github.com/2beens/bloghub/internal/memdb"
	"github.com/2beens/bloghub/internal/middleware"
	"github.com/2beens/bloghub/internal/query"
	"github.com/2beens/bloghub/internal/seed"
	"github.com/2beens/bloghub/internal/telemetry/metrics"
	"github.com/2beens/bloghub/internal/telemetry/tracing"
	"github.com/2beens/bloghub/internal/users"
	"github.com/2beens/bloghub/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config      *config.Config
	dbPool      *pgxpool.Pool          // nil in memory storage mode
	neo4jDriver neo4j.DriverWithContext // nil unless follows come from neo4j
	redisClient *redis.Client

	guard       *blog.Guard
	engine      *query.Engine
	sessions    auth.SessionReader
	rateLimiter middleware.RequestRateLimiter

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	PostgresPassword        string
	Neo4jPassword           string
	HoneycombTracingEnabled bool
}

// storage is what the guard and the query engine run on, either PostgreSQL
// or the in-memory store.
type storage struct {
	blogs      blog.Store
	users      users.Directory
	follows    users.FollowReader
	source     query.Source
	people     seed.People
	memDB      *memdb.DB
	dbPool     *pgxpool.Pool
	collectors []prometheus.Collector
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "bloghub-backend", rdb)
	if err != nil {
		return nil, err
	}

	store, err := setupStorage(ctx, cfg, params)
	if err != nil {
		return nil, fmt.Errorf("setup storage: %w", err)
	}

	promRegistry := metrics.SetupPrometheus(store.collectors...)
	metricsManager := metrics.NewManager("bloghub", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	var neo4jDriver neo4j.DriverWithContext
	if cfg.FollowsSource == config.FollowsSourceNeo4j {
		neo4jDriver, err = users.NewNeo4jDriver(ctx, cfg.Neo4jURI, cfg.Neo4jUser, params.Neo4jPassword)
		if err != nil {
			return nil, fmt.Errorf("neo4j driver: %w", err)
		}
		store.follows = users.NewGraphFollows(neo4jDriver, cfg.Neo4jDatabase)
		log.Debugf("follows are read from neo4j at %s", cfg.Neo4jURI)
	}

	cachedUsers := users.NewCachedDirectory(
		store.users,
		cfg.UserCacheSizeMB,
		time.Duration(cfg.UserCacheTTLSeconds)*time.Second,
		metricsManager,
	)

	guard := blog.NewGuard(blog.GuardParams{
		Store: store.blogs,
		Users: cachedUsers,
		Limits: blog.Limits{
			BlogsPerDay:    cfg.BlogsPerDay,
			CommentsPerDay: cfg.CommentsPerDay,
		},
		Metrics: metricsManager,
	})
	engine := query.NewEngine(query.EngineParams{
		Source:  store.source,
		Follows: store.follows,
		Users:   cachedUsers,
		Metrics: metricsManager,
	})

	if store.memDB != nil && cfg.MemorySeedUsers > 0 {
		report, err := seed.NewSeeder(store.people, guard, nil, 0).Run(ctx, seed.DefaultParams(cfg.MemorySeedUsers))
		if err != nil {
			return nil, fmt.Errorf("seed memory storage: %w", err)
		}
		log.Infof("memory storage seeded, %s", report)
	}

	return &Server{
		config:      cfg,
		dbPool:      store.dbPool,
		neo4jDriver: neo4jDriver,
		redisClient: rdb,

		guard:       guard,
		engine:      engine,
		sessions:    auth.NewSessionStore(rdb),
		rateLimiter: redis_rate.NewLimiter(rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func setupStorage(ctx context.Context, cfg *config.Config, params NewServerParams) (*storage, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warnln("using in-memory storage, data is lost on restart")
		memDB := memdb.New()
		return &storage{
			blogs:   memDB,
			users:   memDB,
			follows: memDB,
			source:  memDB,
			people:  memDB,
			memDB:   memDB,
		}, nil
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if cfg.ApplySchema {
		if err := db.ApplySchema(ctx, dbPool); err != nil {
			dbPool.Close()
			return nil, err
		}
		log.Debugln("db schema applied")
	}

	usersRepo := users.NewRepo(dbPool)
	return &storage{
		blogs:   blog.NewRepo(dbPool),
		users:   usersRepo,
		follows: usersRepo,
		source:  query.NewRepo(dbPool),
		people:  usersRepo,
		dbPool:  dbPool,
		collectors: []prometheus.Collector{
			pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": cfg.PostgresDBName}),
		},
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("bloghub-router"))

	writeRateLimit := middleware.RateLimit(
		s.rateLimiter,
		"write",
		s.config.WriteRateLimitPerMin,
		s.metricsManager,
	)

	blogHandler := blog.NewHandler(s.guard)
	blogHandler.SetupRoutes(r.PathPrefix("/api/blog").Subrouter(), writeRateLimit)

	queryHandler := query.NewHandler(s.engine)
	queryHandler.SetupRoutes(r.PathPrefix("/api/query").Subrouter())

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET").Name("health")

	sessionAuth := middleware.NewSessionAuthHandler(
		s.sessions,
		blog.RouteCreateBlog,
		blog.RouteCreateComment,
		blog.RouteMyBlogs,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.RequestID())
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins...))
	r.Use(sessionAuth.SessionAuth())
	r.Use(middleware.LimitAndDrainBody(middleware.DefaultMaxBodyBytes))

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"storage": s.config.Storage,
		"status":  "ok",
	}
	code := http.StatusOK
	if s.dbPool != nil {
		if err := s.dbPool.Ping(r.Context()); err != nil {
			log.Errorf("health: ping db: %s", err)
			status["status"] = "db unavailable"
			code = http.StatusServiceUnavailable
		}
	}
	pkg.WriteJSON(w, status, code)
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		"metrics",
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.neo4jDriver != nil {
		if closeErr := s.neo4jDriver.Close(ctx); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close neo4j driver: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}
