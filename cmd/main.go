package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	adminLoginHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/admin_login"
	adminLogoutHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/admin_logout"
	createDisabledSlotHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_disabled_slot"
	createHolidayHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_holiday"
	createReservationHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/create_reservation"
	deleteDisabledSlotHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_disabled_slot"
	deleteHolidayHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_holiday"
	deleteReservationHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/delete_reservation"
	exportReservationsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/export_reservations"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_available_slots"
	getStatisticsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_statistics"
	getTodayHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_today"
	getWorkingHoursHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/get_working_hours"
	healthHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/health"
	listDisabledSlotsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_disabled_slots"
	listHolidaysHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_holidays"
	listReservationsHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_reservations"
	listWorkingHoursHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/list_working_hours"
	resetWorkingHoursHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/reset_working_hours"
	updateReservationHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_reservation"
	updateWorkingHoursHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/update_working_hours"
	workingHoursHistoryHandler "github.com/m04kA/SMC-BarberBooking/internal/api/handlers/working_hours_history"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/api/realtime"
	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/cache/slotcache"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/export/xlsx"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/scheduler"
	disabledSlotRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/disabledslot"
	holidayRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/session"
	workingHoursRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/workinghours"
	authService "github.com/m04kA/SMC-BarberBooking/internal/service/auth"
	calendarService "github.com/m04kA/SMC-BarberBooking/internal/service/calendar"
	disabledSlotsService "github.com/m04kA/SMC-BarberBooking/internal/service/disabledslots"
	holidaysService "github.com/m04kA/SMC-BarberBooking/internal/service/holidays"
	reservationsService "github.com/m04kA/SMC-BarberBooking/internal/service/reservations"
	workingHoursService "github.com/m04kA/SMC-BarberBooking/internal/service/workinghours"
	createReservationUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
	updateReservationUC "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/metrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
)

// Интерфейсы зависимостей, которые могут быть выключены конфигурацией.
// Выключенная зависимость остается nil интерфейсом, а не типизированным nil.
type (
	slotCache interface {
		Get(ctx context.Context, date time.Time) (*domain.DaySchedule, bool, error)
		Generation(ctx context.Context, date time.Time) (string, error)
		Set(ctx context.Context, schedule *domain.DaySchedule, generation string) error
		Invalidate(ctx context.Context, date time.Time) error
		InvalidateAll(ctx context.Context) error
	}

	notifier interface {
		Publish(event domain.ScheduleEvent)
	}

	txManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-BarberBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	location := cfg.Location()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
	if cfg.Database.Driver == config.DriverSQLite {
		// sqlite3 допускает одного писателя
		db.SetMaxOpenConns(1)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (driver=%s)", cfg.Database.Driver)

	// Применяем миграции
	migrateCtx, migrateCancel := context.WithTimeout(context.Background(), time.Minute)
	err = migrations.Apply(migrateCtx, db, cfg.Database.Driver, log)
	migrateCancel()
	if err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	// Репозитории работают через обёртку метрик, если метрики включены
	var executor dbmetrics.DBExecutor = db
	var beginner dbmetrics.TxBeginner = dbmetrics.SqlDB{DB: db}
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		beginner = wrappedDB
		log.Info("Database metrics collection started")
	}

	// Для sqlite3 конфликтов сериализации не бывает, повторы не нужны
	var txMgr txManager
	if cfg.Database.Driver == config.DriverSQLite {
		txMgr = simpletxmanager.NewTransactionManager(db)
	} else {
		txMgr = txmanager.NewTransactionManager(beginner)
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(executor)
	holidayRepository := holidayRepo.NewRepository(executor)
	workingHoursRepository := workingHoursRepo.NewRepository(executor)
	disabledSlotRepository := disabledSlotRepo.NewRepository(executor)
	sessionRepository := sessionRepo.NewRepository(executor)

	// Кэш расписаний (если задан адрес Redis)
	var (
		cache       slotCache
		cachePinger healthHandler.Pinger
		redisClient *redis.Client
	)
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		c := slotcache.New(redisClient, cfg.Redis.KeyPrefix, cfg.Availability.CacheDuration(), metricsCollector)
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := c.PingContext(pingCtx); err != nil {
			log.Warn("Redis is unavailable at %s: %v (cache errors will be ignored)", cfg.Redis.Addr, err)
		}
		pingCancel()

		cache = c
		cachePinger = c
		log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Availability.CacheTTL)
	}

	// Рассылка изменений расписания по WebSocket
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	var (
		hub    *realtime.Hub
		events notifier
	)
	if cfg.Realtime.Enabled {
		hub = realtime.NewHub(metricsCollector, log)
		go hub.Run(appCtx)
		events = hub
		log.Info("Realtime updates enabled")
	}

	// Инициализируем сервисы
	calendarSvc := calendarService.NewService(location)
	authSvc := authService.NewService(
		authService.Credentials{
			Username:     cfg.Admin.Username,
			PasswordHash: cfg.Admin.PasswordHash,
		},
		cfg.Admin.SessionDuration(),
		sessionRepository,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		xlsx.NewExporter(),
		txMgr,
		cache,
		events,
		location,
		log,
	)
	holidaySvc := holidaysService.NewService(holidayRepository, cache, events, log)
	workingHoursSvc := workingHoursService.NewService(workingHoursRepository, txMgr, cache, events, log)
	disabledSlotSvc := disabledSlotsService.NewService(
		disabledSlotRepository,
		cache,
		events,
		*cfg.Availability.ApplyGlobalDisabledSlots,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		holidayRepository,
		workingHoursRepository,
		reservationRepository,
		disabledSlotRepository,
		cache,
		getAvailableSlotsUC.Options{ApplyGlobalDisabledSlots: *cfg.Availability.ApplyGlobalDisabledSlots},
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		getAvailableSlotsUseCase,
		reservationRepository,
		txMgr,
		cache,
		events,
		metricsCollector,
		location,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		txMgr,
		cache,
		events,
		log,
	)

	// Инициализируем handlers
	health := healthHandler.NewHandler(db, cachePinger, log)
	getToday := getTodayHandler.NewHandler(calendarSvc)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationSvc, log)
	exportReservations := exportReservationsHandler.NewHandler(reservationSvc, log)
	getStatistics := getStatisticsHandler.NewHandler(reservationSvc, log)
	adminLogin := adminLoginHandler.NewHandler(authSvc, log)
	adminLogout := adminLogoutHandler.NewHandler(authSvc, log)
	listHolidays := listHolidaysHandler.NewHandler(holidaySvc, log)
	createHoliday := createHolidayHandler.NewHandler(holidaySvc, log)
	deleteHoliday := deleteHolidayHandler.NewHandler(holidaySvc, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	resetWorkingHours := resetWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	listWorkingHours := listWorkingHoursHandler.NewHandler(workingHoursSvc, log)
	workingHoursHistory := workingHoursHistoryHandler.NewHandler(workingHoursSvc, log)
	listDisabledSlots := listDisabledSlotsHandler.NewHandler(disabledSlotSvc, log)
	createDisabledSlot := createDisabledSlotHandler.NewHandler(disabledSlotSvc, log)
	deleteDisabledSlot := deleteDisabledSlotHandler.NewHandler(disabledSlotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	// Дата в пути приходит как 1403%2F01%2F01
	r.UseEncodedPath()

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

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", health.Handle).Methods(http.MethodGet)
	api.HandleFunc("/today", getToday.Handle).Methods(http.MethodGet)

	// Расписание дня по дате солнечной хиджры
	api.HandleFunc("/available-slots/{date}", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования и вход администратора ограничены по IP
	var createReservationRoute, adminLoginRoute http.Handler = http.HandlerFunc(createReservation.Handle), http.HandlerFunc(adminLogin.Handle)
	if cfg.RateLimit.Enabled {
		createReservationRoute = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).
			Middleware(log)(createReservationRoute)
		adminLoginRoute = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst).
			Middleware(log)(adminLoginRoute)
		log.Info("Rate limit enabled: %.0f req/min, burst %d", cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	}
	api.Handle("/reservations", createReservationRoute).Methods(http.MethodPost)
	api.Handle("/admin/login", adminLoginRoute).Methods(http.MethodPost)

	if hub != nil {
		ws := realtime.NewHandler(hub, cfg.CORS.AllowedOrigins, log)
		api.HandleFunc("/ws", ws.Handle).Methods(http.MethodGet)
	}

	// ============================================================
	// ADMIN ROUTES (требуют Authorization: Bearer <token>)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(authSvc, log))

	admin.HandleFunc("/logout", adminLogout.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	admin.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/export", exportReservations.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reservations/{id}", updateReservation.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reservations/{id}", deleteReservation.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/statistics", getStatistics.Handle).Methods(http.MethodGet)

	// --- Выходные дни ---
	admin.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/holidays", createHoliday.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{id}", deleteHoliday.Handle).Methods(http.MethodDelete)

	// --- Рабочие часы ---
	admin.HandleFunc("/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/working-hours", resetWorkingHours.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/working-hours/all", listWorkingHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/working-hours/history", workingHoursHistory.Handle).Methods(http.MethodGet)

	// --- Отключенные слоты ---
	admin.HandleFunc("/disabled-slots", listDisabledSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/disabled-slots", createDisabledSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/disabled-slots/{id}", deleteDisabledSlot.Handle).Methods(http.MethodDelete)

	// Middleware роутера выполняются только для найденных маршрутов,
	// поэтому общие обёртки ставятся снаружи
	var handler http.Handler = r
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Recovery(log)(handler)

	// Фоновые задачи
	jobs := scheduler.New(
		scheduler.Config{
			SessionCleanup: cfg.Scheduler.SessionCleanup,
			DayRollover:    cfg.Scheduler.DayRollover,
		},
		location,
		authSvc,
		events,
		log,
	)
	if err := jobs.Start(); err != nil {
		log.Fatal("Failed to start scheduler: %v", err)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownDuration())
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем фоновые задачи и рассылку
	jobs.Stop()
	appCancel()

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
