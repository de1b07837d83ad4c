package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redcell-sec/reportbot/src/reportapi/config"
	"github.com/redcell-sec/reportbot/src/reportapi/webserver"
	"github.com/redcell-sec/reportbot/src/shared/data"
)

func main() {
	cfg := config.Load()

	db := data.MustConnect(cfg.Database)
	if err := data.LoadSettings(db); err != nil {
		log.Printf("load settings: %v", err)
	}

	router := webserver.New(cfg, db)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("report API listening on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server: %v", err)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("report API stopped gracefully")
}
