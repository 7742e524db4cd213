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
	"github.com/robfig/cron/v3"

	approvePaymentHandler "github.com/m04kA/MUA-QuoteService/internal/api/handlers/approve_payment"
	cancelQuoteHandler "github.com/m04kA/MUA-QuoteService/internal/api/handlers/cancel_quote"
	generateQuoteHandler "github.com/m04kA/MUA-QuoteService/internal/api/handlers/generate_quote"
	getQuoteHandler "github.com/m04kA/MUA-QuoteService/internal/api/handlers/get_quote"
	recordPaymentHandler "github.com/m04kA/MUA-QuoteService/internal/api/handlers/record_payment"
	rejectPaymentHandler "github.com/m04kA/MUA-QuoteService/internal/api/handlers/reject_payment"
	"github.com/m04kA/MUA-QuoteService/internal/api/middleware"
	"github.com/m04kA/MUA-QuoteService/internal/config"
	catalogRepo "github.com/m04kA/MUA-QuoteService/internal/infra/catalog"
	quoteRepo "github.com/m04kA/MUA-QuoteService/internal/infra/storage/finalquote"
	whatsappClient "github.com/m04kA/MUA-QuoteService/internal/integrations/whatsapp"
	assemblerService "github.com/m04kA/MUA-QuoteService/internal/service/assembler"
	lifecycleService "github.com/m04kA/MUA-QuoteService/internal/service/lifecycle"
	pricingService "github.com/m04kA/MUA-QuoteService/internal/service/pricing"
	remindersService "github.com/m04kA/MUA-QuoteService/internal/service/reminders"
	dispatchRemindersUC "github.com/m04kA/MUA-QuoteService/internal/usecase/dispatch_reminders"
	generateQuoteUC "github.com/m04kA/MUA-QuoteService/internal/usecase/generate_quote"
	recordPaymentUC "github.com/m04kA/MUA-QuoteService/internal/usecase/record_payment"
	"github.com/m04kA/MUA-QuoteService/pkg/dbmetrics"
	"github.com/m04kA/MUA-QuoteService/pkg/logger"
	"github.com/m04kA/MUA-QuoteService/pkg/metrics"
	"github.com/m04kA/MUA-QuoteService/pkg/simpletxmanager"
	"github.com/m04kA/MUA-QuoteService/pkg/txmanager"
)

// noopMetrics заглушка счетчиков напоминаний при выключенных метриках
type noopMetrics struct{}

func (noopMetrics) IncReminderSent(string)   {}
func (noopMetrics) IncReminderFailed(string) {}

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

	log.Info("Starting MUA-QuoteService...")
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

	// Инициализируем WhatsApp клиент
	whatsapp := whatsappClient.NewClient(
		cfg.WhatsApp.URL,
		time.Duration(cfg.WhatsApp.Timeout)*time.Second,
		log,
	)
	log.Info("WhatsApp gateway client initialized (url=%s, timeout=%ds)",
		cfg.WhatsApp.URL, cfg.WhatsApp.Timeout)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		quoteRepository   *quoteRepo.Repository
		catalogRepository *catalogRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		quoteRepository = quoteRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		quoteRepository = quoteRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingEngine := pricingService.NewEngine(catalogRepository, log)
	quoteAssembler := assemblerService.NewService(quoteRepository, log)
	reminderScheduler := remindersService.NewScheduler(log)
	lifecycleSvc := lifecycleService.NewService(
		quoteRepository,
		whatsapp,
		reminderScheduler,
		quoteAssembler,
		log,
	)

	// Инициализируем use cases
	generateQuoteUseCase := generateQuoteUC.NewUseCase(
		pricingEngine,
		quoteAssembler,
		quoteRepository,
		reminderScheduler,
		txMgr,
		log,
	)

	recordPaymentUseCase := recordPaymentUC.NewUseCase(lifecycleSvc, txMgr, log)

	var reminderMetrics dispatchRemindersUC.MetricsCollector = noopMetrics{}
	if cfg.Metrics.Enabled {
		reminderMetrics = metricsCollector
	}
	dispatchRemindersUseCase := dispatchRemindersUC.NewUseCase(
		quoteRepository,
		reminderScheduler,
		whatsapp,
		reminderMetrics,
		log,
	)

	// Инициализируем handlers
	generateQuote := generateQuoteHandler.NewHandler(generateQuoteUseCase, log)
	getQuote := getQuoteHandler.NewHandler(lifecycleSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)
	approvePayment := approvePaymentHandler.NewHandler(lifecycleSvc, log)
	rejectPayment := rejectPaymentHandler.NewHandler(lifecycleSvc, log)
	cancelQuote := cancelQuoteHandler.NewHandler(lifecycleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (вызываются ботом-шлюзом от имени клиента)
	// ============================================================

	// Генерация сметы
	api.HandleFunc("/quotes", generateQuote.Handle).Methods(http.MethodPost)

	// Получение сметы по номеру брони
	api.HandleFunc("/quotes/{quoteId}", getQuote.Handle).Methods(http.MethodGet)

	// Платежные события (отправка платежа, подтверждение провайдером)
	api.HandleFunc("/quotes/{quoteId}/payments", recordPayment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Admin-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Ручное одобрение скриншота оплаты
	protected.HandleFunc("/quotes/{quoteId}/payments/approve", approvePayment.Handle).Methods(http.MethodPost)

	// Отклонение скриншота оплаты
	protected.HandleFunc("/quotes/{quoteId}/payments/reject", rejectPayment.Handle).Methods(http.MethodPost)

	// Отмена брони
	protected.HandleFunc("/quotes/{quoteId}/cancel", cancelQuote.Handle).Methods(http.MethodPost)

	// Запускаем диспетчер напоминаний по расписанию
	var reminderCron *cron.Cron
	if cfg.Reminders.Enabled {
		reminderCron = cron.New()
		_, err := reminderCron.AddFunc(cfg.Reminders.CronSpec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if _, err := dispatchRemindersUseCase.Execute(ctx); err != nil {
				log.Error("Reminder dispatch pass failed: %v", err)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule reminder dispatcher: %v", err)
		}
		reminderCron.Start()
		log.Info("Reminder dispatcher scheduled (%s)", cfg.Reminders.CronSpec)
	}

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

	// Останавливаем диспетчер напоминаний
	if reminderCron != nil {
		cronCtx := reminderCron.Stop()
		<-cronCtx.Done()
		log.Info("Reminder dispatcher stopped")
	}

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
