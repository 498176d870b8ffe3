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

	cancelBookingHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/create_booking"
	createCourtHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/create_court"
	createFacilityHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/create_facility"
	getAvailableIntervalsHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/get_available_intervals"
	getBookingHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/get_booking"
	getDashboardHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/get_dashboard"
	getFacilityHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/get_facility"
	getFacilityBookingsHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/get_facility_bookings"
	getUserBookingsHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/get_user_bookings"
	listFacilitiesHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/list_facilities"
	loginHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/login"
	moderateFacilityHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/moderate_facility"
	registerUserHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/register_user"
	resendOTPHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/resend_otp"
	updateBookingStatusHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/update_booking_status"
	updateFacilityHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/update_facility"
	verifyOTPHandler "github.com/m04kA/RentEase-BookingService/internal/api/handlers/verify_otp"
	"github.com/m04kA/RentEase-BookingService/internal/api/middleware"
	"github.com/m04kA/RentEase-BookingService/internal/config"
	"github.com/m04kA/RentEase-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/booking"
	courtRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/court"
	facilityRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/facility"
	statsRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/stats"
	userRepo "github.com/m04kA/RentEase-BookingService/internal/infra/storage/user"
	"github.com/m04kA/RentEase-BookingService/internal/integrations/mailer"
	bookingsService "github.com/m04kA/RentEase-BookingService/internal/service/bookings"
	dashboardService "github.com/m04kA/RentEase-BookingService/internal/service/dashboard"
	facilitiesService "github.com/m04kA/RentEase-BookingService/internal/service/facilities"
	usersService "github.com/m04kA/RentEase-BookingService/internal/service/users"
	createBookingUC "github.com/m04kA/RentEase-BookingService/internal/usecase/create_booking"
	getAvailableIntervalsUC "github.com/m04kA/RentEase-BookingService/internal/usecase/get_available_intervals"
	"github.com/m04kA/RentEase-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RentEase-BookingService/pkg/logger"
	"github.com/m04kA/RentEase-BookingService/pkg/metrics"
	"github.com/m04kA/RentEase-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/RentEase-BookingService/pkg/txmanager"
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

	log.Info("Starting RentEase-BookingService...")
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

	// Почтовый клиент для отправки кодов подтверждения
	mailClient := mailer.NewClient(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		log,
	)
	log.Info("SMTP client initialized (host=%s, port=%d)", cfg.SMTP.Host, cfg.SMTP.Port)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		userRepository     *userRepo.Repository
		courtRepository    *courtRepo.Repository
		facilityRepository *facilityRepo.Repository
		statsRepository    *statsRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		courtRepository = courtRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		statsRepository = statsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		courtRepository = courtRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		statsRepository = statsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	usersSvc := usersService.NewService(
		userRepository,
		mailClient,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		time.Duration(cfg.Auth.OTPTTLMinutes)*time.Minute,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		courtRepository,
		facilityRepository,
		log,
	)
	facilitiesSvc := facilitiesService.NewService(
		facilityRepository,
		courtRepository,
		log,
	)
	dashboardSvc := dashboardService.NewService(statsRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		courtRepository,
		facilityRepository,
		txMgr,
		cfg.Booking.AdvanceBookingDays,
		log,
	)
	getAvailableIntervalsUseCase := getAvailableIntervalsUC.NewUseCase(
		bookingRepository,
		courtRepository,
		facilityRepository,
		log,
	)

	// Инициализируем handlers
	registerUser := registerUserHandler.NewHandler(usersSvc, log)
	verifyOTP := verifyOTPHandler.NewHandler(usersSvc, log)
	resendOTP := resendOTPHandler.NewHandler(usersSvc, log)
	login := loginHandler.NewHandler(usersSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableIntervals := getAvailableIntervalsHandler.NewHandler(getAvailableIntervalsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getFacilityBookings := getFacilityBookingsHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingsSvc, log)

	listFacilities := listFacilitiesHandler.NewHandler(facilitiesSvc, log)
	getFacility := getFacilityHandler.NewHandler(facilitiesSvc, log)
	createFacility := createFacilityHandler.NewHandler(facilitiesSvc, log)
	updateFacility := updateFacilityHandler.NewHandler(facilitiesSvc, log)
	moderateFacility := moderateFacilityHandler.NewHandler(facilitiesSvc, log)
	createCourt := createCourtHandler.NewHandler(facilitiesSvc, log)

	getDashboard := getDashboardHandler.NewHandler(dashboardSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход
	api.HandleFunc("/auth/register", registerUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify-otp", verifyOTP.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/resend-otp", resendOTP.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// Публичный каталог площадок
	api.HandleFunc("/facilities", listFacilities.Handle).Methods(http.MethodGet)

	// Очередь модерации: регистрируется раньше карточки площадки,
	// чтобы /facilities/pending не матчился как /facilities/{id}
	api.Handle("/facilities/pending",
		middleware.Auth(cfg.Auth.JWTSecret)(
			middleware.RequireRole(string(domain.RoleAdmin))(http.HandlerFunc(moderateFacility.HandleQueue)))).
		Methods(http.MethodGet)

	// Карточка площадки: маршрут публичный, анонимы видят только
	// прошедшие модерацию площадки
	api.HandleFunc("/facilities/{id}", getFacility.Handle).Methods(http.MethodGet)

	// Свободные интервалы корта на дату
	api.HandleFunc("/courts/{id}/available-intervals", getAvailableIntervals.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.Handle("/bookings/{id}/status",
		middleware.RequireRole(string(domain.RoleAdmin))(http.HandlerFunc(updateBookingStatus.Handle))).
		Methods(http.MethodPatch)

	// --- Управление площадками ---
	protected.HandleFunc("/facilities", createFacility.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{id}", updateFacility.Handle).Methods(http.MethodPut)
	protected.Handle("/facilities/{id}/moderate",
		middleware.RequireRole(string(domain.RoleAdmin))(http.HandlerFunc(moderateFacility.Handle))).
		Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{id}/courts", createCourt.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/facilities/{id}/bookings", getFacilityBookings.Handle).Methods(http.MethodGet)

	// --- Личный кабинет ---
	protected.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)

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
