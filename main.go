package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boletera/internal/backend"
	"boletera/internal/config"
	web "boletera/internal/http"
	"boletera/internal/http/handlers"
	"boletera/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	api := backend.New(env.BackendURL, env.RequestTimeout)
	sessions := session.NewStore(env.SessionTTL)
	hs := handlers.New(api, sessions, env.PollInterval)

	r := web.NewRouter(env, hs, "web/templates/*.html")

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		// Pago-exitoso holds the connection open while it polls the payment
		// status, so the write timeout has to outlive a slow checkout.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Boletera escuchando en http://localhost%s (backend %s)", env.AppAddr, env.BackendURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("No se pudo iniciar el servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Apagando el servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Apagado forzado: %v", err)
	}

	log.Println("Servidor detenido.")
}
