package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/kafka"
	"github.com/Domenick1991/roombooking/internal/repository"
	"github.com/Domenick1991/roombooking/internal/slotclock"
	"github.com/google/uuid"
)

type LedgerUseCase interface {
	Create(ctx context.Context, input CreateRequestInput) (*domain.BookingRequest, error)
	Approve(ctx context.Context, id, actor string) (*domain.BookingRequest, error)
	Reject(ctx context.Context, id, actor string) (*domain.BookingRequest, error)
	Cancel(ctx context.Context, id, actor string) (*domain.BookingRequest, error)
	ListForRoomDate(ctx context.Context, roomID, date string) ([]domain.BookingRequest, error)
	BoardFor(ctx context.Context, roomID, date string) ([]domain.BoardSlot, error)
	RejectStalePending(ctx context.Context, olderThan time.Duration, actor string) ([]domain.BookingRequest, error)
}

type Cache interface {
	GetBoard(ctx context.Context, roomID, date string) ([]domain.BoardSlot, error)
	SetBoard(ctx context.Context, roomID, date string, board []domain.BoardSlot) error
	InvalidateBoard(ctx context.Context, roomID, date string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Ledger owns the booking request lifecycle. All mutations for one
// (room, date) pair are serialized behind a per-key mutex so the conflict
// check and the write it guards cannot interleave with another mutation of
// the same key.
type Ledger struct {
	requests           repository.RequestRepository
	rooms              repository.RoomRepository
	clock              *slotclock.Clock
	validator          *Validator
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type CreateRequestInput struct {
	Requester string `json:"requester"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartSlot int    `json:"start_slot"`
	EndSlot   int    `json:"end_slot"`
}

type LedgerOption func(*Ledger)

func WithNotificationsTopic(topic string) LedgerOption {
	return func(l *Ledger) {
		l.notificationsTopic = topic
	}
}

func NewLedger(
	requests repository.RequestRepository,
	rooms repository.RoomRepository,
	clock *slotclock.Clock,
	cache Cache,
	producer Producer,
	eventsTopic string,
	opts ...LedgerOption,
) *Ledger {
	ledger := &Ledger{
		requests:    requests,
		rooms:       rooms,
		clock:       clock,
		validator:   NewValidator(clock),
		cache:       cache,
		producer:    producer,
		eventsTopic: eventsTopic,
		locks:       make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(ledger)
	}
	return ledger
}

// lockFor returns the mutex serializing mutations of one (room, date) key.
// Distinct keys get distinct mutexes and proceed in parallel.
func (l *Ledger) lockFor(roomID, date string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := roomID + "|" + date
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

func (l *Ledger) Create(ctx context.Context, input CreateRequestInput) (*domain.BookingRequest, error) {
	if input.Requester == "" {
		return nil, errors.New("requester is required")
	}
	if _, err := time.Parse("2006-01-02", input.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", input.Date, domain.ErrInvalidRange)
	}

	if _, err := l.rooms.GetByID(ctx, input.RoomID); err != nil {
		return nil, err
	}

	mu := l.lockFor(input.RoomID, input.Date)
	mu.Lock()
	defer mu.Unlock()

	existing, err := l.requests.ListLiveForRoomDate(ctx, input.RoomID, input.Date)
	if err != nil {
		return nil, err
	}
	if err := l.validator.Validate(existing, input.StartSlot, input.EndSlot); err != nil {
		return nil, err
	}

	request := &domain.BookingRequest{
		ID:        uuid.NewString(),
		Requester: input.Requester,
		RoomID:    input.RoomID,
		Date:      input.Date,
		StartSlot: input.StartSlot,
		EndSlot:   input.EndSlot,
		Status:    domain.RequestStatusPending,
	}
	if err := l.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	l.invalidateBoard(ctx, input.RoomID, input.Date)
	l.publish(ctx, "request_created", request)
	return request, nil
}

func (l *Ledger) Approve(ctx context.Context, id, actor string) (*domain.BookingRequest, error) {
	return l.decide(ctx, id, actor, domain.RequestStatusApproved, "request_approved",
		domain.RequestStatusPending)
}

func (l *Ledger) Reject(ctx context.Context, id, actor string) (*domain.BookingRequest, error) {
	return l.decide(ctx, id, actor, domain.RequestStatusRejected, "request_rejected",
		domain.RequestStatusPending)
}

// Cancel is allowed from Pending and from Approved: cancelling a confirmed
// booking frees its slots without reopening the request.
func (l *Ledger) Cancel(ctx context.Context, id, actor string) (*domain.BookingRequest, error) {
	return l.decide(ctx, id, actor, domain.RequestStatusCancelled, "request_cancelled",
		domain.RequestStatusPending, domain.RequestStatusApproved)
}

func (l *Ledger) decide(ctx context.Context, id, actor string, target domain.RequestStatus, eventType string, allowedFrom ...domain.RequestStatus) (*domain.BookingRequest, error) {
	current, err := l.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mu := l.lockFor(current.RoomID, current.Date)
	mu.Lock()
	defer mu.Unlock()

	// re-read under the lock: the status may have changed between the
	// lookup and acquiring the key
	current, err = l.requests.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, from := range allowedFrom {
		if current.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%s -> %s: %w", current.Status, target, domain.ErrInvalidTransition)
	}

	updated, err := l.requests.UpdateDecision(ctx, id, target, actor, time.Now())
	if err != nil {
		return nil, err
	}

	l.invalidateBoard(ctx, updated.RoomID, updated.Date)
	l.publish(ctx, eventType, updated)
	return updated, nil
}

func (l *Ledger) ListForRoomDate(ctx context.Context, roomID, date string) ([]domain.BookingRequest, error) {
	return l.requests.ListForRoomDate(ctx, roomID, date)
}

// RejectStalePending rejects every pending request created more than
// olderThan ago through the ordinary Reject transition. Races with a
// concurrent decision are skipped, not errors.
func (l *Ledger) RejectStalePending(ctx context.Context, olderThan time.Duration, actor string) ([]domain.BookingRequest, error) {
	cutoff := time.Now().Add(-olderThan)
	stale, err := l.requests.ListPendingBefore(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	rejected := make([]domain.BookingRequest, 0, len(stale))
	for _, r := range stale {
		updated, err := l.Reject(ctx, r.ID, actor)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrRequestNotFound) {
				continue
			}
			return rejected, err
		}
		rejected = append(rejected, *updated)
	}
	return rejected, nil
}

func (l *Ledger) invalidateBoard(ctx context.Context, roomID, date string) {
	if l.cache == nil {
		return
	}
	if err := l.cache.InvalidateBoard(ctx, roomID, date); err != nil {
		log.Printf("WARNING: invalidate board cache for %s/%s: %v", roomID, date, err)
	}
}

func (l *Ledger) publish(ctx context.Context, eventType string, request *domain.BookingRequest) {
	if l.producer == nil || l.eventsTopic == "" {
		return
	}
	event := kafka.RequestEvent{
		Type:      eventType,
		RequestID: request.ID,
		Requester: request.Requester,
		RoomID:    request.RoomID,
		Date:      request.Date,
		StartSlot: request.StartSlot,
		EndSlot:   request.EndSlot,
		Status:    string(request.Status),
		DecidedBy: request.DecidedBy,
		CreatedAt: request.CreatedAt,
	}
	if err := l.producer.Publish(ctx, l.eventsTopic, request.ID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for request %s: %v", eventType, request.ID, err)
	}
	if l.notificationsTopic != "" {
		if err := l.producer.Publish(ctx, l.notificationsTopic, request.ID, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for request %s: %v", eventType, request.ID, err)
		}
	}
}

var _ LedgerUseCase = (*Ledger)(nil)
