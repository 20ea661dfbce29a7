package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gohanda11/step-to-dxf/pkg/server"
	"github.com/gohanda11/step-to-dxf/pkg/session"
)

const (
	defaultPort       = "5000"
	defaultSessionTTL = 30 * time.Minute
)

func main() {
	// Missing .env is fine; the defaults below apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	ttl := defaultSessionTTL
	if v := os.Getenv("SESSION_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 0 {
			log.Fatalf("config: invalid SESSION_TTL_MINUTES %q", v)
		}
		ttl = time.Duration(minutes) * time.Minute
	}

	store := session.NewStore(ttl)
	defer store.Close()

	srv := server.New(store)

	go func() {
		if err := srv.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Printf("server: %v", err)
		}
	}()
	log.Printf("listening on :%s, session ttl %s", port, ttl)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Echo().Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("server exiting")
}
