package rooms

import (
	"context"
	"errors"
	"log"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/repository"
	"github.com/google/uuid"
)

type RoomUseCase interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error)
	Remove(ctx context.Context, id string) error
}

type Cache interface {
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
	InvalidateRooms(ctx context.Context) error
}

// RoomService is the read-mostly room registry. The booking engine only
// reads; Create and Remove exist for the admin screens.
type RoomService struct {
	repo  repository.RoomRepository
	cache Cache
}

type CreateRoomInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func NewRoomService(repo repository.RoomRepository, cache Cache) *RoomService {
	return &RoomService{repo: repo, cache: cache}
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRooms(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRooms(ctx, rooms)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error) {
	if input.Name == "" {
		return nil, errors.New("room name is required")
	}
	if input.Capacity < 0 {
		return nil, errors.New("capacity must not be negative")
	}

	room := &domain.Room{
		ID:       input.ID,
		Name:     input.Name,
		Capacity: input.Capacity,
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return room, nil
}

func (s *RoomService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRooms(ctx); err != nil {
		log.Printf("WARNING: invalidate rooms cache: %v", err)
	}
}

var _ RoomUseCase = (*RoomService)(nil)
