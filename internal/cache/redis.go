package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Domenick1991/roombooking/config"
	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client   *redis.Client
	roomsTTL time.Duration
	boardTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, roomsTTL, boardTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		roomsTTL: roomsTTL,
		boardTTL: boardTTL,
	}
}

func (c *RedisCache) GetRooms(ctx context.Context) ([]domain.Room, error) {
	data, err := c.client.Get(ctx, roomsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RedisCache) SetRooms(ctx context.Context, rooms []domain.Room) error {
	payload, err := json.Marshal(rooms)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, roomsKey(), payload, c.roomsTTL).Err()
}

func (c *RedisCache) InvalidateRooms(ctx context.Context) error {
	return c.client.Del(ctx, roomsKey()).Err()
}

func (c *RedisCache) GetBoard(ctx context.Context, roomID, date string) ([]domain.BoardSlot, error) {
	data, err := c.client.Get(ctx, boardKey(roomID, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var board []domain.BoardSlot
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return board, nil
}

func (c *RedisCache) SetBoard(ctx context.Context, roomID, date string, board []domain.BoardSlot) error {
	payload, err := json.Marshal(board)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, boardKey(roomID, date), payload, c.boardTTL).Err()
}

func (c *RedisCache) InvalidateBoard(ctx context.Context, roomID, date string) error {
	return c.client.Del(ctx, boardKey(roomID, date)).Err()
}

func roomsKey() string {
	return "cache:rooms"
}

func boardKey(roomID, date string) string {
	return fmt.Sprintf("cache:board:%s:%s", roomID, date)
}
