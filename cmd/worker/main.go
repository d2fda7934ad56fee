package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/roombooking/config"
	"github.com/Domenick1991/roombooking/internal/cache"
	"github.com/Domenick1991/roombooking/internal/kafka"
	"github.com/Domenick1991/roombooking/internal/notify"
	"github.com/Domenick1991/roombooking/internal/repository"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/Domenick1991/roombooking/internal/slotclock"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Worker.Validate(); err != nil {
		log.Fatalf("worker config: %v", err)
	}

	clock, err := slotclock.New(cfg.Booking.OpenTime, cfg.Booking.CloseTime, cfg.Booking.SlotMinutes)
	if err != nil {
		log.Fatalf("build slot clock: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Booking.RoomsCacheTTL)*time.Second,
		time.Duration(cfg.Booking.BoardCacheTTL)*time.Second)

	roomRepo := repository.NewRoomRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	ledger := booking.NewLedger(
		requestRepo,
		roomRepo,
		clock,
		redisCache,
		producer,
		cfg.Kafka.RequestEventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	notifier := notify.NewNotifier()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.RequestEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return notifier.Notify(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	staleAfter := time.Duration(cfg.Worker.StaleAfterMinutes) * time.Minute
	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.StaleSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			rejected, err := ledger.RejectStalePending(ctx, staleAfter, "scheduler")
			if err != nil {
				log.Printf("reject stale requests error: %v", err)
				continue
			}
			if len(rejected) > 0 {
				log.Printf("rejected %d stale pending requests", len(rejected))
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
