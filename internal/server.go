package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fittrackhq/fittrack/internal/auth"
	"github.com/fittrackhq/fittrack/internal/config"
	"github.com/fittrackhq/fittrack/internal/db"
	"github.com/fittrackhq/fittrack/internal/middleware"
	"github.com/fittrackhq/fittrack/internal/prefs"
	"github.com/fittrackhq/fittrack/internal/sharing"
	"github.com/fittrackhq/fittrack/internal/telemetry/metrics"
	"github.com/fittrackhq/fittrack/internal/telemetry/tracing"
	"github.com/fittrackhq/fittrack/internal/tracking/bodyfat"
	"github.com/fittrackhq/fittrack/internal/tracking/creatine"
	"github.com/fittrackhq/fittrack/internal/tracking/macros"
	"github.com/fittrackhq/fittrack/internal/tracking/photos"
	"github.com/fittrackhq/fittrack/internal/tracking/sessions"
	"github.com/fittrackhq/fittrack/internal/tracking/weight"
	"github.com/fittrackhq/fittrack/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	sharingService *sharing.Service
	prefsStore     *prefs.Store
	photosResolver *photos.Resolver

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fittrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.NewUsersRepo(dbPool), auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittrack-backend", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		sharingService: sharing.NewService(sharing.NewRepo(dbPool)),
		prefsStore:     prefs.NewStore(rdb),
		photosResolver: photos.NewResolver(
			photos.NewBaseURLFetcher(params.Config.PhotosBaseURL),
			metricsManager,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "fittrack backend")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := auth.NewHandler(s.authService)
	r.Handle("/a/login",
		middleware.RateLimit(reqRateLimiter, "login", s.config.LoginRateLimitAllowedPerMin)(
			http.HandlerFunc(authHandler.HandleLogin),
		),
	).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/a/logout", authHandler.HandleLogout).Methods("GET", "OPTIONS").Name("logout")

	weightHandler := weight.NewHandler(weight.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/weight", weightHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-weight")
	r.HandleFunc("/weight/trend", weightHandler.HandleTrend).Methods("GET", "OPTIONS").Name("weight-trend")
	r.HandleFunc("/weight/list/page/{page}/size/{size}", weightHandler.HandleList).Methods("GET", "OPTIONS").Name("list-weight")
	r.HandleFunc("/weight/{id}", weightHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-weight")

	macrosHandler := macros.NewHandler(macros.NewRepo(s.dbPool), s.prefsStore, s.metricsManager)
	r.HandleFunc("/macros", macrosHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-macros")
	r.HandleFunc("/macros/day/{day}", macrosHandler.HandleDayStats).Methods("GET", "OPTIONS").Name("macros-day")
	r.HandleFunc("/macros/list/page/{page}/size/{size}", macrosHandler.HandleList).Methods("GET", "OPTIONS").Name("list-macros")
	r.HandleFunc("/macros/{id}", macrosHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-macros")

	creatineHandler := creatine.NewHandler(creatine.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/creatine", creatineHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-creatine")
	r.HandleFunc("/creatine/day/{day}", creatineHandler.HandleDay).Methods("GET", "OPTIONS").Name("creatine-day")
	r.HandleFunc("/creatine/{id}", creatineHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-creatine")

	bodyfatHandler := bodyfat.NewHandler(bodyfat.NewRepo(s.dbPool), s.metricsManager)
	r.HandleFunc("/bodyfat", bodyfatHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-bodyfat")
	r.HandleFunc("/bodyfat/history", bodyfatHandler.HandleHistory).Methods("GET", "OPTIONS").Name("bodyfat-history")
	r.HandleFunc("/bodyfat/{id}", bodyfatHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-bodyfat")

	photosHandler := photos.NewHandler(photos.NewRepo(s.dbPool), s.photosResolver, s.metricsManager)
	r.HandleFunc("/photos", photosHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-photo")
	r.HandleFunc("/photos/list", photosHandler.HandleList).Methods("GET", "OPTIONS").Name("list-photos")
	r.HandleFunc("/photos/{id}/uri", photosHandler.HandleResolveURI).Methods("GET", "OPTIONS").Name("resolve-photo-uri")
	r.HandleFunc("/photos/{id}", photosHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-photo")

	sessionsHandler := sessions.NewHandler(sessions.NewRepo(s.dbPool), s.sharingService, s.metricsManager)
	r.HandleFunc("/sessions", sessionsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions/list/page/{page}/size/{size}", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
	r.HandleFunc("/friends/{friendId}/sessions/live", sessionsHandler.HandleFriendLive).Methods("GET", "OPTIONS").Name("friend-live-session")
	r.HandleFunc("/friends/{friendId}/sessions/page/{page}/size/{size}", sessionsHandler.HandleFriendList).Methods("GET", "OPTIONS").Name("friend-list-sessions")
	r.HandleFunc("/friends/{friendId}/sessions/{id}", sessionsHandler.HandleFriendGet).Methods("GET", "OPTIONS").Name("friend-get-session")

	sharingHandler := sharing.NewHandler(s.sharingService)
	r.HandleFunc("/sharing/grant", sharingHandler.HandleGrant).Methods("POST", "OPTIONS").Name("sharing-grant")
	r.HandleFunc("/sharing/revoke", sharingHandler.HandleRevoke).Methods("POST", "OPTIONS").Name("sharing-revoke")
	r.HandleFunc("/sharing/granted", sharingHandler.HandleGranted).Methods("GET", "OPTIONS").Name("sharing-granted")
	r.HandleFunc("/sharing/received", sharingHandler.HandleReceived).Methods("GET", "OPTIONS").Name("sharing-received")

	prefsHandler := prefs.NewHandler(s.prefsStore)
	r.HandleFunc("/prefs", prefsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-prefs")
	r.HandleFunc("/prefs", prefsHandler.HandleSet).Methods("POST", "OPTIONS").Name("set-prefs")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
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

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
