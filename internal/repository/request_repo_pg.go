package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository interface {
	Create(ctx context.Context, request *domain.BookingRequest) error
	GetByID(ctx context.Context, id string) (*domain.BookingRequest, error)
	ListForRoomDate(ctx context.Context, roomID, date string) ([]domain.BookingRequest, error)
	ListLiveForRoomDate(ctx context.Context, roomID, date string) ([]domain.BookingRequest, error)
	UpdateDecision(ctx context.Context, id string, status domain.RequestStatus, actor string, decidedAt time.Time) (*domain.BookingRequest, error)
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.BookingRequest, error)
}

type PGRequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) RequestRepository {
	return &PGRequestRepository{db: db}
}

const requestColumns = `id, requester, room_id, date, start_slot, end_slot, status, created_at, decided_at, decided_by`

func (r *PGRequestRepository) Create(ctx context.Context, request *domain.BookingRequest) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx, `INSERT INTO booking_requests (id, requester, room_id, date, start_slot, end_slot, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`,
		request.ID, request.Requester, request.RoomID, request.Date, request.StartSlot, request.EndSlot, request.Status).
		Scan(&request.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGRequestRepository) GetByID(ctx context.Context, id string) (*domain.BookingRequest, error) {
	row := r.db.QueryRow(ctx, `SELECT `+requestColumns+` FROM booking_requests WHERE id=$1`, id)
	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *PGRequestRepository) ListForRoomDate(ctx context.Context, roomID, date string) ([]domain.BookingRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+requestColumns+` FROM booking_requests
		WHERE room_id=$1 AND date=$2 ORDER BY created_at, id`, roomID, date)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *PGRequestRepository) ListLiveForRoomDate(ctx context.Context, roomID, date string) ([]domain.BookingRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+requestColumns+` FROM booking_requests
		WHERE room_id=$1 AND date=$2 AND status = ANY($3) ORDER BY created_at, id`,
		roomID, date, []string{string(domain.RequestStatusPending), string(domain.RequestStatusApproved)})
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *PGRequestRepository) UpdateDecision(ctx context.Context, id string, status domain.RequestStatus, actor string, decidedAt time.Time) (*domain.BookingRequest, error) {
	row := r.db.QueryRow(ctx, `UPDATE booking_requests SET status=$1, decided_by=$2, decided_at=$3 WHERE id=$4
		RETURNING `+requestColumns, status, actor, decidedAt, id)
	request, err := scanRequest(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *PGRequestRepository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]domain.BookingRequest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+requestColumns+` FROM booking_requests
		WHERE status=$1 AND created_at <= $2 ORDER BY created_at, id`,
		domain.RequestStatusPending, cutoff)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func scanRequest(row pgx.Row) (*domain.BookingRequest, error) {
	var request domain.BookingRequest
	if err := row.Scan(&request.ID, &request.Requester, &request.RoomID, &request.Date,
		&request.StartSlot, &request.EndSlot, &request.Status,
		&request.CreatedAt, &request.DecidedAt, &request.DecidedBy); err != nil {
		return nil, err
	}
	return &request, nil
}

func collectRequests(rows pgx.Rows) ([]domain.BookingRequest, error) {
	defer rows.Close()

	requests := make([]domain.BookingRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *request)
	}
	return requests, rows.Err()
}

var _ RequestRepository = (*PGRequestRepository)(nil)
