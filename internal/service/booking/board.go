package booking

import (
	"context"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/slotclock"
)

// BoardFor projects the effective status of every slot of a room on a date.
// The projection is derived from the live request set on every call; only
// the short-lived redis snapshot is cached, never slot status itself.
func (l *Ledger) BoardFor(ctx context.Context, roomID, date string) ([]domain.BoardSlot, error) {
	if _, err := l.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}

	if l.cache != nil {
		if cached, err := l.cache.GetBoard(ctx, roomID, date); err == nil && cached != nil {
			return cached, nil
		}
	}

	// take the mutation lock so the scan sees a state that actually
	// existed, never a half-admitted request. The snapshot write stays
	// inside the critical section: a mutation that slipped between the
	// scan and the write would invalidate the cache only to have the
	// stale board stored over it.
	mu := l.lockFor(roomID, date)
	mu.Lock()
	defer mu.Unlock()

	live, err := l.requests.ListLiveForRoomDate(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	board := projectBoard(l.clock, live)
	if l.cache != nil {
		_ = l.cache.SetBoard(ctx, roomID, date, board)
	}
	return board, nil
}

// projectBoard stamps each slot with the status of the live request covering
// it: approved marks booked, pending marks pending, untouched slots stay
// available. Admission-time validation guarantees at most one live request
// per slot; an approved request still wins over a pending one should the
// store ever disagree.
func projectBoard(clock *slotclock.Clock, live []domain.BookingRequest) []domain.BoardSlot {
	slots := clock.SlotsForDay()
	board := make([]domain.BoardSlot, len(slots))
	for i, s := range slots {
		board[i] = domain.BoardSlot{Index: s.Index, Start: s.Start, End: s.End, Status: domain.SlotAvailable}
	}

	for _, r := range live {
		if !r.Status.Live() {
			continue
		}
		for i := r.StartSlot; i < r.EndSlot && i < len(board); i++ {
			if i < 0 {
				continue
			}
			if r.Status == domain.RequestStatusApproved {
				board[i].Status = domain.SlotBooked
			} else if board[i].Status == domain.SlotAvailable {
				board[i].Status = domain.SlotPending
			} else {
				continue
			}
			board[i].RequestID = r.ID
			board[i].Requester = r.Requester
		}
	}
	return board
}
