package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense_share/internal/api/handlers/expenses"
	"expense_share/internal/api/handlers/ledger"
	"expense_share/internal/api/handlers/users"
	mw "expense_share/internal/api/middlewares"
	"expense_share/internal/api/routers"
	"expense_share/internal/config"
	"expense_share/internal/repositories/sqlconnect"
	"expense_share/internal/repositories/store"
	"expense_share/internal/services"
	"expense_share/pkg/cron"
	"expense_share/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Logger.WithError(err).Warn("failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatal("invalid configuration: ", err)
	}

	utils.InitLogger(cfg.LogOptions())

	db, err := sqlconnect.ConnectDb(cfg.DB)
	if err != nil {
		utils.Logger.Fatal("DB connection failed: ", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sqlconnect.RunMigrations(ctx, db); err != nil {
		utils.Logger.Fatal("migrations failed: ", err)
	}

	var mailer utils.Mailer
	if cfg.SMTP.Host != "" {
		mailer = utils.NewSMTPMailer(cfg.SMTP)
	} else {
		utils.Logger.Warn("SMTP_HOST not set, balance sheet emails and reminders are disabled")
	}

	st := store.New(db)
	userService := services.NewUserService(st, mailer)
	expenseService := services.NewExpenseService(st)

	if cfg.ReminderCron != "" && mailer != nil {
		c, err := cron.StartCronJob(cfg.ReminderCron, expenseService, mailer, cfg.CurrencyLabel)
		if err != nil {
			utils.Logger.Fatal(err)
		}
		defer c.Stop()
	}

	router := routers.MainRouter(routers.Handlers{
		Users:    users.NewHandler(userService, cfg.RequestTimeout),
		Expenses: expenses.NewHandler(expenseService, cfg.RequestTimeout),
		Ledger:   ledger.NewHandler(expenseService, mailer, cfg.CurrencyLabel, cfg.RequestTimeout),
		DB:       st,
	})

	secureMux := mw.ApplyMiddlewares(router, mw.Metrics, mw.RequestLogger, mw.SecurityHeaders)

	server := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: secureMux,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.Logger.WithError(err).Error("server shutdown failed")
		}
	}()

	utils.Logger.WithField("tls", cfg.TLS()).Info("Server is running on port ", cfg.ServerPort)
	if cfg.TLS() {
		err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Logger.Fatal("Error starting the server: ", err)
	}

	utils.Logger.Info("server stopped")
}
