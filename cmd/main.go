package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "modernc.org/sqlite"

	changePasswordHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/change_password"
	confirmBookingDeletionHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/confirm_booking_deletion"
	confirmVendorDeletionHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/confirm_vendor_deletion"
	createAnnouncementHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/create_announcement"
	createBookingHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/create_booking"
	createMarketHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/create_market"
	createVendorHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/create_vendor"
	deleteAnnouncementHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/delete_announcement"
	deleteMarketHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/delete_market"
	exportBookingsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/export_bookings"
	generatePromoHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/generate_promo"
	getBookingHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/get_booking"
	getLatestAnnouncementHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/get_latest_announcement"
	getMarketAnalysisHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/get_market_analysis"
	getRecommendationsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/get_recommendations"
	getVendorSalesHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/get_vendor_sales"
	getWeatherHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/get_weather"
	importBookingsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/import_bookings"
	listBookingsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/list_bookings"
	listMarketsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/list_markets"
	listVendorsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/list_vendors"
	loginHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/login"
	previewConflictsHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/preview_conflicts"
	requestBookingDeletionHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/request_booking_deletion"
	requestVendorDeletionHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/request_vendor_deletion"
	subscribeCollectionHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/subscribe_collection"
	updateBookingHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/update_booking"
	updateMarketHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/update_market"
	updateVendorHandler "github.com/m04kA/SMC-StallCalendar/internal/api/handlers/update_vendor"
	"github.com/m04kA/SMC-StallCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-StallCalendar/internal/auth"
	"github.com/m04kA/SMC-StallCalendar/internal/config"
	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	announcementRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/announcement"
	bookingRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/booking"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/deletion"
	marketRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/market"
	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/schema"
	vendorRepo "github.com/m04kA/SMC-StallCalendar/internal/infra/storage/vendor"
	textgenClient "github.com/m04kA/SMC-StallCalendar/internal/integrations/textgen"
	weatherClient "github.com/m04kA/SMC-StallCalendar/internal/integrations/weather"
	"github.com/m04kA/SMC-StallCalendar/internal/live"
	announcementsService "github.com/m04kA/SMC-StallCalendar/internal/service/announcements"
	assistantService "github.com/m04kA/SMC-StallCalendar/internal/service/assistant"
	bookingsService "github.com/m04kA/SMC-StallCalendar/internal/service/bookings"
	collectionsService "github.com/m04kA/SMC-StallCalendar/internal/service/collections"
	exchangeService "github.com/m04kA/SMC-StallCalendar/internal/service/exchange"
	forecastService "github.com/m04kA/SMC-StallCalendar/internal/service/forecast"
	marketsService "github.com/m04kA/SMC-StallCalendar/internal/service/markets"
	vendorsService "github.com/m04kA/SMC-StallCalendar/internal/service/vendors"
	bootstrapUC "github.com/m04kA/SMC-StallCalendar/internal/usecase/bootstrap"
	createBookingUC "github.com/m04kA/SMC-StallCalendar/internal/usecase/create_booking"
	getRecommendationsUC "github.com/m04kA/SMC-StallCalendar/internal/usecase/get_recommendations"
	importBookingsUC "github.com/m04kA/SMC-StallCalendar/internal/usecase/import_bookings"
	updateBookingUC "github.com/m04kA/SMC-StallCalendar/internal/usecase/update_booking"
	"github.com/m04kA/SMC-StallCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/logger"
	"github.com/m04kA/SMC-StallCalendar/pkg/metrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/sqlbuilder"
	"github.com/m04kA/SMC-StallCalendar/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StallCalendar...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	dialect, err := sqlbuilder.ParseDialect(cfg.Database.Driver)
	if err != nil {
		log.Fatal("Unsupported database driver: %v", err)
	}

	db, err := sql.Open(dialect.DriverName(), cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	if dialect == sqlbuilder.SQLite {
		// SQLite допускает одного писателя
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s, namespace=%s)", dialect, cfg.Store.Namespace)

	// Обёртка с метриками; при выключенных метриках работает как прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	if err := schema.Ensure(context.Background(), wrappedDB, dialect); err != nil {
		log.Fatal("Failed to apply schema: %v", err)
	}

	// Инициализируем репозитории
	sb := sqlbuilder.New(dialect)
	bookingRepository := bookingRepo.NewRepository(wrappedDB, sb, cfg.Store.Namespace)
	marketRepository := marketRepo.NewRepository(wrappedDB, sb, cfg.Store.Namespace)
	vendorRepository := vendorRepo.NewRepository(wrappedDB, sb, cfg.Store.Namespace)
	announcementRepository := announcementRepo.NewRepository(wrappedDB, sb, cfg.Store.Namespace)
	deletionStore := deletion.NewStore()

	// SERIALIZABLE указывается явно только для Postgres
	txMgr := txmanager.NewTransactionManager(wrappedDB, dialect == sqlbuilder.Postgres)

	// Уведомления об изменениях: локальный hub или hub + Redis для нескольких экземпляров
	type Notifier interface {
		Notify(ctx context.Context, collection domain.Collection)
	}
	hub := live.NewHub()
	var notifier Notifier = hub

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(rootCtx).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}

		relay := live.NewRedisRelay(redisClient, cfg.Redis.Channel, hub, log)
		go func() {
			if err := relay.Run(rootCtx); err != nil {
				log.Error("Redis relay stopped: %v", err)
			}
		}()
		notifier = relay
		log.Info("Live updates relayed through redis (addr=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	}

	// Инициализируем интеграционных клиентов
	textGen := textgenClient.NewClient(
		cfg.TextGen.URL,
		cfg.TextGen.Model,
		cfg.TextGen.APIKey,
		time.Duration(cfg.TextGen.Timeout)*time.Second,
		log,
	)

	var forecastSvc *forecastService.Service
	if cfg.Weather.Enabled {
		forecastSvc = forecastService.NewService(weatherClient.NewClient(
			cfg.Weather.GeocodeURL,
			cfg.Weather.ForecastURL,
			time.Duration(cfg.Weather.Timeout)*time.Second,
			log,
		), log)
	} else {
		forecastSvc = forecastService.NewService(nil, log)
	}
	log.Info("Integration clients initialized (TextGen=%s model=%s, Weather enabled=%t)",
		cfg.TextGen.URL, cfg.TextGen.Model, cfg.Weather.Enabled)

	clock := &bookingsService.RealTimeProvider{}
	confirmationTTL := time.Duration(cfg.Booking.ConfirmationTTLSeconds) * time.Second
	policy := domain.ConflictPolicy(cfg.Booking.ConflictPolicy)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	// Заполняем пустое хранилище
	if cfg.Seed.Enabled {
		seed := bootstrapUC.Seed{
			AdminID:    cfg.Seed.AdminID,
			AdminName:  cfg.Seed.AdminName,
			VendorID:   cfg.Seed.VendorID,
			VendorName: cfg.Seed.VendorName,
		}
		for _, m := range cfg.Seed.Markets {
			seed.Markets = append(seed.Markets, bootstrapUC.SeedMarket{ID: m.ID, City: m.City, Name: m.Name})
		}
		bootstrap := bootstrapUC.NewUseCase(vendorRepository, marketRepository, txMgr, seed, clock, log)
		if _, err := bootstrap.Execute(rootCtx); err != nil {
			log.Fatal("Failed to seed store: %v", err)
		}
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		vendorRepository,
		deletionStore,
		notifier,
		metricsCollector,
		confirmationTTL,
		clock,
		log,
	)
	vendorSvc := vendorsService.NewService(
		vendorRepository,
		tokens,
		deletionStore,
		notifier,
		vendorsService.Options{
			AllowPasswordless: cfg.Auth.AllowPasswordless,
			SeedAdminID:       cfg.Seed.AdminID,
			ConfirmationTTL:   confirmationTTL,
		},
		clock,
		log,
	)
	marketSvc := marketsService.NewService(marketRepository, vendorRepository, notifier, clock, log)
	announcementSvc := announcementsService.NewService(announcementRepository, vendorRepository, notifier, clock, log)
	exchangeSvc := exchangeService.NewService(bookingRepository, vendorRepository, cfg.Exchange.Brand, clock, log)
	assistantSvc := assistantService.NewService(
		textGen,
		bookingRepository,
		marketRepository,
		vendorRepository,
		assistantService.Options{
			Brand:             cfg.Exchange.Brand,
			RecencyDays:       cfg.Recommendations.RecencyDays,
			RequestsPerMinute: cfg.TextGen.RequestsPerMinute,
			Burst:             cfg.TextGen.Burst,
		},
		clock,
		log,
	)
	collectionsSvc := collectionsService.NewService(vendorSvc, marketSvc, bookingSvc, announcementSvc)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		marketRepository,
		vendorRepository,
		txMgr,
		notifier,
		metricsCollector,
		policy,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		marketRepository,
		vendorRepository,
		txMgr,
		notifier,
		metricsCollector,
		policy,
		clock,
		log,
	)
	importBookingsUseCase := importBookingsUC.NewUseCase(
		bookingRepository,
		marketRepository,
		vendorRepository,
		txMgr,
		notifier,
		metricsCollector,
		clock,
		log,
	)
	getRecommendationsUseCase := getRecommendationsUC.NewUseCase(
		bookingRepository,
		marketRepository,
		cfg.Recommendations.RecencyDays,
		cfg.Recommendations.Limit,
		clock,
		log,
	)

	// Фоновая очистка просроченных подтверждений удаления
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", func() {
		if n := deletionStore.Sweep(time.Now()); n > 0 {
			log.Info("Swept %d expired deletion confirmation(s)", n)
		}
	}); err != nil {
		log.Fatal("Failed to schedule housekeeping: %v", err)
	}
	scheduler.Start()

	// Инициализируем handlers
	login := loginHandler.NewHandler(vendorSvc, log)
	listVendors := listVendorsHandler.NewHandler(vendorSvc, log)
	createVendor := createVendorHandler.NewHandler(vendorSvc, log)
	updateVendor := updateVendorHandler.NewHandler(vendorSvc, log)
	changePassword := changePasswordHandler.NewHandler(vendorSvc, log)
	requestVendorDeletion := requestVendorDeletionHandler.NewHandler(vendorSvc, log)
	confirmVendorDeletion := confirmVendorDeletionHandler.NewHandler(vendorSvc, log)
	getVendorSales := getVendorSalesHandler.NewHandler(bookingSvc, log)
	listMarkets := listMarketsHandler.NewHandler(marketSvc, log)
	createMarket := createMarketHandler.NewHandler(marketSvc, log)
	updateMarket := updateMarketHandler.NewHandler(marketSvc, log)
	deleteMarket := deleteMarketHandler.NewHandler(marketSvc, log)
	getMarketAnalysis := getMarketAnalysisHandler.NewHandler(assistantSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	previewConflicts := previewConflictsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	requestBookingDeletion := requestBookingDeletionHandler.NewHandler(bookingSvc, log)
	confirmBookingDeletion := confirmBookingDeletionHandler.NewHandler(bookingSvc, log)
	generatePromo := generatePromoHandler.NewHandler(assistantSvc, log)
	getRecommendations := getRecommendationsHandler.NewHandler(getRecommendationsUseCase, log)
	getLatestAnnouncement := getLatestAnnouncementHandler.NewHandler(announcementSvc, log)
	createAnnouncement := createAnnouncementHandler.NewHandler(announcementSvc, log)
	deleteAnnouncement := deleteAnnouncementHandler.NewHandler(announcementSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(exchangeSvc, log)
	importBookings := importBookingsHandler.NewHandler(importBookingsUseCase, log)
	getWeather := getWeatherHandler.NewHandler(forecastSvc, log)
	subscribeCollection := subscribeCollectionHandler.NewHandler(hub, collectionsSvc, cfg.CORS.AllowedOrigins, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют токен сессии)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens))

	// --- Продавцы ---
	protected.HandleFunc("/vendors", listVendors.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/vendors", createVendor.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vendors/{vendorId}", updateVendor.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/vendors/{vendorId}", confirmVendorDeletion.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/vendors/{vendorId}/password", changePassword.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/vendors/{vendorId}/deletion", requestVendorDeletion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vendors/{vendorId}/sales", getVendorSales.Handle).Methods(http.MethodGet)

	// --- Рынки ---
	protected.HandleFunc("/markets", listMarkets.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/markets", createMarket.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/markets/{marketId}", updateMarket.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/markets/{marketId}", deleteMarket.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/markets/{marketId}/analysis", getMarketAnalysis.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// /bookings/conflicts регистрируется до /bookings/{bookingId}
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/conflicts", previewConflicts.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", confirmBookingDeletion.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/deletion", requestBookingDeletion.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/promo", generatePromo.Handle).Methods(http.MethodPost)

	// --- Рекомендации, объявления, погода ---
	protected.HandleFunc("/recommendations", getRecommendations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/announcements/latest", getLatestAnnouncement.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/announcements", createAnnouncement.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/announcements/{announcementId}", deleteAnnouncement.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/weather", getWeather.Handle).Methods(http.MethodGet)

	// --- Обмен данными (администратор) ---
	protected.HandleFunc("/exchange/bookings", exportBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/exchange/bookings", importBookings.Handle).Methods(http.MethodPost)

	// --- Живые обновления (websocket, токен в ?token=) ---
	protected.HandleFunc("/live/{collection}", subscribeCollection.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем фоновые задачи
	<-scheduler.Stop().Done()
	cancelRoot()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
