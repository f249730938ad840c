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

	cancelBookingHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/create_booking"
	createComboHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/create_combo"
	createRecurringBookingHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/create_recurring_booking"
	getAvailableSlotsHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/get_client_bookings"
	getSalonBookingsHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/get_salon_bookings"
	getSalonScheduleHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/get_salon_schedule"
	rescheduleBookingHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/reschedule_booking"
	setComboActiveHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/set_combo_active"
	updateBookingStatusHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/update_booking_status"
	updateSalonScheduleHandler "github.com/mirelka/SLN-SchedulingService/internal/api/handlers/update_salon_schedule"
	"github.com/mirelka/SLN-SchedulingService/internal/api/middleware"
	"github.com/mirelka/SLN-SchedulingService/internal/config"
	archiveRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/archive"
	bookingRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/booking"
	comboRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/combo"
	scheduleRepo "github.com/mirelka/SLN-SchedulingService/internal/infra/storage/schedule"
	clientServiceClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/clientservice"
	staffServiceClient "github.com/mirelka/SLN-SchedulingService/internal/integrations/staffservice"
	bookingsService "github.com/mirelka/SLN-SchedulingService/internal/service/bookings"
	scheduleService "github.com/mirelka/SLN-SchedulingService/internal/service/schedule"
	archiveExpiredBookingsUC "github.com/mirelka/SLN-SchedulingService/internal/usecase/archive_expired_bookings"
	createBookingUC "github.com/mirelka/SLN-SchedulingService/internal/usecase/create_booking"
	createRecurringBookingUC "github.com/mirelka/SLN-SchedulingService/internal/usecase/create_recurring_booking"
	getAvailableSlotsUC "github.com/mirelka/SLN-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/mirelka/SLN-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/mirelka/SLN-SchedulingService/pkg/dbmetrics"
	"github.com/mirelka/SLN-SchedulingService/pkg/logger"
	"github.com/mirelka/SLN-SchedulingService/pkg/metrics"
	"github.com/mirelka/SLN-SchedulingService/pkg/simpletxmanager"
	"github.com/mirelka/SLN-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SLN-SchedulingService...")
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

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, ClientService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		comboRepository    *comboRepo.Repository
		archiveRepository  *archiveRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		comboRepository = comboRepo.NewRepository(wrappedDB)
		archiveRepository = archiveRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		comboRepository = comboRepo.NewRepository(db)
		archiveRepository = archiveRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	limits := cfg.Scheduling.ToLimits()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		staffClient,
		txMgr,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		comboRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		comboRepository,
		staffClient,
		clientClient,
		txMgr,
		log,
		limits,
		cfg.Scheduling.NoticeMinutes,
	)

	createRecurringBookingUseCase := createRecurringBookingUC.NewUseCase(
		createBookingUseCase,
		log,
		limits,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		staffClient,
		log,
		limits,
		cfg.Scheduling.NoticeMinutes,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		staffClient,
		txMgr,
		log,
		cfg.Scheduling.NoticeMinutes,
	)

	archiveUseCase := archiveExpiredBookingsUC.NewUseCase(
		bookingRepository,
		archiveRepository,
		txMgr,
		log,
		cfg.Scheduling.ArchiveAfterDays,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createRecurringBooking := createRecurringBookingHandler.NewHandler(createRecurringBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	getSalonSchedule := getSalonScheduleHandler.NewHandler(scheduleSvc, log)
	updateSalonSchedule := updateSalonScheduleHandler.NewHandler(scheduleSvc, log)
	createCombo := createComboHandler.NewHandler(scheduleSvc, log)
	setComboActive := setComboActiveHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

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

	// Получение доступных слотов мастера
	api.HandleFunc("/salons/{salonId}/workers/{workerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Получение недельного расписания салона
	api.HandleFunc("/salons/{salonId}/schedule",
		getSalonSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Создание серии повторяющихся записей
	protected.HandleFunc("/bookings/recurring", createRecurringBooking.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Перенос сегмента записи
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Обновление статуса записи (для менеджеров)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История записей клиента
	protected.HandleFunc("/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном (для менеджеров) ---
	// Список записей салона
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Замена недельного расписания салона
	protected.HandleFunc("/salons/{salonId}/schedule", updateSalonSchedule.Handle).Methods(http.MethodPut)

	// Создание правила комбо
	protected.HandleFunc("/salons/{salonId}/combos", createCombo.Handle).Methods(http.MethodPost)

	// Включение/выключение правила комбо
	protected.HandleFunc("/salons/{salonId}/combos/{comboId}", setComboActive.Handle).Methods(http.MethodPatch)

	// Запускаем фоновую архивацию истекших записей
	stopArchiveCh := make(chan struct{})
	go func() {
		interval := time.Duration(cfg.Scheduling.ArchiveSweepMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("Archive sweep started (interval=%s)", interval)
		for {
			select {
			case <-ticker.C:
				result, err := archiveUseCase.Execute(context.Background())
				if err != nil {
					log.Error("Archive sweep failed: %v", err)
					continue
				}
				if result.Scanned > 0 {
					log.Info("Archive sweep finished: scanned=%d, archived=%d, failed=%d",
						result.Scanned, result.Archived, result.Failed)
				}
			case <-stopArchiveCh:
				return
			}
		}
	}()

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

	// Останавливаем фоновую архивацию
	close(stopArchiveCh)

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
