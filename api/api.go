package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	api "github.com/voltedge/workshop-api/api/handlers"
	"github.com/voltedge/workshop-api/internal/config"
	"github.com/voltedge/workshop-api/internal/dbrepo"
	"github.com/voltedge/workshop-api/internal/driver"
	"github.com/voltedge/workshop-api/internal/migrations"
	"github.com/voltedge/workshop-api/internal/models"
)

// application is the receiver for the various parts of the application
type application struct {
	config   models.Config
	infoLog  *log.Logger
	errorLog *log.Logger
	version  string
	Handlers *api.HandlerRepo
	DB       *dbrepo.DBRepository
	Server   *http.Server
	ctx      context.Context
}

var app *application

// serve starts the server and listens for requests
func (app *application) serve() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Port),
		Handler:           app.routes(),
		IdleTimeout:       30 * time.Second,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	app.Server = srv
	app.infoLog.Printf("Starting HTTP back end server in %s mode on port %d", app.config.Env, app.config.Port)
	return srv.ListenAndServe()
}

// ShutdownServer gracefully shuts down the server
func (app *application) ShutdownServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	app.infoLog.Println("Shutting down the server gracefully...")
	if err := app.Server.Shutdown(ctx); err != nil {
		app.errorLog.Printf("Server forced to shutdown: %s", err)
		return err
	}

	app.infoLog.Println("Server exited gracefully")
	return nil
}

// RunServer is the application entry point
func RunServer(ctx context.Context) error {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stdout, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		errorLog.Println(err)
		return err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev_only_secret_change_me"
	}
	cfg.JWT = models.JWTConfig{
		SecretKey: secret,
		Issuer:    "workshop-api",
		Audience:  "workshop_users",
		Algorithm: "HS256",
		Expiry:    time.Hour * 24,
	}

	// Connection to database
	var dbConn *pgxpool.Pool
	if cfg.Env == "live" {
		dbConn, err = driver.NewPgxPool(cfg.DB.DSN)
	} else {
		dbConn, err = driver.NewPgxPool(cfg.DB.DEVDSN)
	}
	if err != nil {
		errorLog.Println(err)
		return err
	}
	defer dbConn.Close()

	if err := migrations.Run(ctx, dbConn); err != nil {
		errorLog.Println(err)
		return err
	}

	dbRepo := dbrepo.NewDBRepository(dbConn)
	infoLog.Println("Connected to database")

	app = &application{
		config:   cfg,
		infoLog:  infoLog,
		errorLog: errorLog,
		version:  models.APPVersion,
		Handlers: api.NewHandlerRepo(dbRepo, cfg.JWT, infoLog, errorLog),
		DB:       dbRepo,
		ctx:      ctx,
	}

	// Run the server in a separate goroutine so we can wait for shutdown signals
	go func() {
		if err := app.serve(); err != nil && err != http.ErrServerClosed {
			errorLog.Printf("Error starting server: %s", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	return app.ShutdownServer()
}

// Stop server from outer module
func StopServer() error {
	return app.ShutdownServer()
}
