package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orgflow/config"
	"orgflow/cron"
	"orgflow/database"
	emailRepoPkg "orgflow/database/repository/email"
	employeeRepoPkg "orgflow/database/repository/employee"
	expenseRepoPkg "orgflow/database/repository/expense"
	leaveRepoPkg "orgflow/database/repository/leave"
	notificationRepoPkg "orgflow/database/repository/notification"
	"orgflow/handlers"
	"orgflow/routes"
	"orgflow/services/approval"
	"orgflow/services/employee"
	"orgflow/services/expense"
	"orgflow/services/leave"
	"orgflow/services/mailer"
	"orgflow/services/notification"
	"orgflow/services/realtime"
	"orgflow/services/tasks"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	employeeRepo := employeeRepoPkg.NewMongoEmployeeRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	tokenRepo := emailRepoPkg.NewMongoTokenRepo()
	emailLogRepo := emailRepoPkg.NewMongoLogRepo()
	leaveRepo := leaveRepoPkg.NewMongoLeaveRepo()
	expenseRepo := expenseRepoPkg.NewMongoExpenseRepo()

	// services.
	employeeService := &employee.DefaultEmployeeService{
		Repo: employeeRepo,
	}

	notifier, err := realtime.NewFCMNotifier(employeeRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize realtime notifier: %v", err)
	}

	mailerService := mailer.NewDefaultMailerService(tokenRepo, emailLogRepo)

	notificationService := &notification.DefaultNotificationService{
		Repo:     notificationRepo,
		Mailer:   mailerService,
		Realtime: notifier,
	}

	reminderScheduler := tasks.NewAsynqReminderScheduler()

	leaveService := &leave.DefaultLeaveService{
		Repo:         leaveRepo,
		Employees:    employeeService,
		Notification: notificationService,
		Reminders:    reminderScheduler,
	}
	expenseService := &expense.DefaultExpenseService{
		Repo:         expenseRepo,
		Employees:    employeeService,
		Notification: notificationService,
		Reminders:    reminderScheduler,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Employee:     handlers.NewEmployeeHandler(employeeService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Leave:        handlers.NewLeaveHandler(leaveService, employeeService),
		Expense:      handlers.NewExpenseHandler(expenseService, employeeService),
		EmailAction: handlers.NewEmailActionHandler(tokenRepo, map[string]approval.EmailActioner{
			leave.RecordType:   leaveService,
			expense.RecordType: expenseService,
		}),
		Admin: handlers.NewAdminHandler(employeeService, leaveRepo, expenseRepo, emailLogRepo),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for pending-approval reminders.
	cron.InitReminderWorker(notifier, map[string]cron.StatusLookup{
		leave.RecordType: func(ctx context.Context, id string) (string, error) {
			lr, err := leaveRepo.GetByID(ctx, id)
			if err != nil {
				return "", err
			}
			return lr.Status, nil
		},
		expense.RecordType: func(ctx context.Context, id string) (string, error) {
			e, err := expenseRepo.GetByID(ctx, id)
			if err != nil {
				return "", err
			}
			return e.Status, nil
		},
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
