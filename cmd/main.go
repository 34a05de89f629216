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

	cancelBookingHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/confirm_booking"
	createDraftHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/create_draft"
	deleteDraftHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/delete_draft"
	getBookingHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/get_booking"
	getDailySlotsHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/get_daily_slots"
	getDraftHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/get_draft"
	getTimelineHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/get_timeline"
	getUserBookingsHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/avdk/SBM-ReservationService/internal/api/handlers/update_booking_status"
	"github.com/avdk/SBM-ReservationService/internal/api/middleware"
	"github.com/avdk/SBM-ReservationService/internal/config"
	"github.com/avdk/SBM-ReservationService/internal/domain"
	"github.com/avdk/SBM-ReservationService/internal/infra/events"
	bookingRepo "github.com/avdk/SBM-ReservationService/internal/infra/storage/booking"
	draftStorage "github.com/avdk/SBM-ReservationService/internal/infra/storage/draft"
	shiftRepo "github.com/avdk/SBM-ReservationService/internal/infra/storage/shift"
	scheduleServiceClient "github.com/avdk/SBM-ReservationService/internal/integrations/scheduleservice"
	userServiceClient "github.com/avdk/SBM-ReservationService/internal/integrations/userservice"
	availabilityService "github.com/avdk/SBM-ReservationService/internal/service/availability"
	bookingsService "github.com/avdk/SBM-ReservationService/internal/service/bookings"
	draftsService "github.com/avdk/SBM-ReservationService/internal/service/drafts"
	buildTimelineUC "github.com/avdk/SBM-ReservationService/internal/usecase/build_timeline"
	confirmBookingUC "github.com/avdk/SBM-ReservationService/internal/usecase/confirm_booking"
	createDraftUC "github.com/avdk/SBM-ReservationService/internal/usecase/create_draft"
	getDailySlotsUC "github.com/avdk/SBM-ReservationService/internal/usecase/get_daily_slots"
	"github.com/avdk/SBM-ReservationService/pkg/dbmetrics"
	"github.com/avdk/SBM-ReservationService/pkg/logger"
	"github.com/avdk/SBM-ReservationService/pkg/metrics"
	"github.com/avdk/SBM-ReservationService/pkg/simpletxmanager"
	"github.com/avdk/SBM-ReservationService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SBM-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Хранилище черновиков: Redis с TTL или in-memory для локальной разработки
	draftTTL := time.Duration(cfg.Drafts.TTLMinutes) * time.Minute
	stopCleanupCh := make(chan struct{})

	var draftStore draftsService.DraftStore
	if cfg.Drafts.Store == config.DraftStoreRedis {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		draftStore = draftStorage.NewStore(redisClient, draftTTL)
		log.Info("Draft store: redis (addr=%s, ttl=%s)", cfg.Redis.Addr, draftTTL)
	} else {
		memStore := draftStorage.NewMemoryStore(draftTTL)
		go memStore.RunCleanup(stopCleanupCh)
		draftStore = memStore
		log.Info("Draft store: in-memory (ttl=%s)", draftTTL)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	scheduleClient := scheduleServiceClient.NewClient(
		cfg.ScheduleService.URL,
		time.Duration(cfg.ScheduleService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s timeout=%ds, ScheduleService=%s timeout=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.ScheduleService.URL, cfg.ScheduleService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		shiftRepository   *shiftRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	// TODO: тот же интерфейс объявлен в контрактах usecase и сервиса, вынести в pkg
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		shiftRepository = shiftRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		shiftRepository = shiftRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// События бронирований: RabbitMQ или заглушка с логированием
	type Notifier interface {
		BookingCreated(ctx context.Context, booking *domain.Booking) error
		BookingStatusChanged(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus) error
		Close() error
	}
	var notifier Notifier

	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		notifier = publisher
		log.Info("Booking events: rabbitmq (exchange=%s)", cfg.Events.Exchange)
	} else {
		notifier = events.NewLogNotifier(log)
		log.Info("Booking events: disabled, using log notifier")
	}
	defer notifier.Close()

	// Инициализируем сервисы
	draftSvc := draftsService.NewService(draftStore, log)
	availabilitySvc := availabilityService.NewService(scheduleClient, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		txMgr,
		notifier,
		log,
	)

	// Инициализируем use cases
	createDraftUseCase := createDraftUC.NewUseCase(
		draftSvc,
		scheduleClient,
		draftTTL,
		cfg.Booking.Timezone,
		log,
	)

	getDailySlotsUseCase := getDailySlotsUC.NewUseCase(scheduleClient, cfg.Booking.Timezone, log)

	confirmBookingUseCase := confirmBookingUC.NewUseCase(
		bookingRepository,
		draftSvc,
		availabilitySvc,
		scheduleClient,
		userClient,
		notifier,
		txMgr,
		log,
	)

	buildTimelineUseCase := buildTimelineUC.NewUseCase(
		bookingRepository,
		shiftRepository,
		scheduleClient,
		cfg.Booking.Timezone,
		log,
	)

	// Инициализируем handlers
	getDailySlots := getDailySlotsHandler.NewHandler(getDailySlotsUseCase, log)
	createDraft := createDraftHandler.NewHandler(createDraftUseCase, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, draftTTL, log)
	deleteDraft := deleteDraftHandler.NewHandler(draftSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getTimeline := getTimelineHandler.NewHandler(buildTimelineUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix. Identity разбирает заголовки gateway на всех маршрутах,
	// в том числе публичных: гостевой ключ нужен черновикам
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Identity)

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты доступности услуги на день
	api.HandleFunc("/menus/{menuId}/slots", getDailySlots.Handle).Methods(http.MethodGet)

	// --- Черновики записи ---
	// Создание черновика (доступно гостям по guest key)
	api.HandleFunc("/drafts", createDraft.Handle).Methods(http.MethodPost)

	// Просмотр черновика по токену
	api.HandleFunc("/drafts/{token}", getDraft.Handle).Methods(http.MethodGet)

	// Отказ от черновика
	api.HandleFunc("/drafts/{token}", deleteDraft.Handle).Methods(http.MethodDelete)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Подтверждение черновика, создание записи
	protected.HandleFunc("/bookings", confirmBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Смена статуса записи (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Таймлайн занятости мастеров на день
	protected.HandleFunc("/admin/timeline", getTimeline.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	// Останавливаем фоновую чистку черновиков
	close(stopCleanupCh)

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
