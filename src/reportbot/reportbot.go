package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/redcell-sec/reportbot/src/reportbot/bot"
	"github.com/redcell-sec/reportbot/src/reportbot/components/pipeline"
	"github.com/redcell-sec/reportbot/src/reportbot/config"
	"github.com/redcell-sec/reportbot/src/shared/data"
	"github.com/redcell-sec/reportbot/src/shared/platform"
	"github.com/redcell-sec/reportbot/src/shared/platform/discord"
	"github.com/redcell-sec/reportbot/src/shared/store"
)

func main() {
	cfg := config.Load()

	db := data.MustConnect(cfg.Database)
	if err := data.LoadSettings(db); err != nil {
		log.Printf("load settings: %v", err)
	}

	// Database settings override the env defaults.
	if v := data.GetSetting("command_rate_seconds"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.CommandRate = time.Duration(secs) * time.Second
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	creds, err := platform.LoadCredentials(cfg.AccountsFile)
	if err != nil {
		log.Fatalf("accounts: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := bot.NewManager(pipeline.New(store.New(db), rdb), cfg.CommandRate)

	var connector discord.Connector
	connected := 0
	for _, c := range creds {
		sess, err := connector.Connect(ctx, c)
		if err != nil {
			log.Printf("connect account %s: %v", c.Phone, err)
			continue
		}
		manager.Attach(ctx, sess)
		connected++
		log.Printf("account %d online: %s", connected, sess.Account().Handle)
	}
	if connected == 0 {
		log.Fatal("no accounts connected")
	}

	log.Printf("report agent running with %d account(s). Press CTRL-C to exit.", connected)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	cancel()
	manager.Close()
	log.Println("report agent stopped gracefully")
}
