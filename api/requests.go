package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/Domenick1991/roombooking/internal/slotclock"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service booking.LedgerUseCase
	clock   *slotclock.Clock
}

type createRequestRequest struct {
	Requester string `json:"requester"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type decisionRequest struct {
	Actor string `json:"actor"`
}

type requestResponse struct {
	ID        string `json:"id"`
	Requester string `json:"requester"`
	RoomID    string `json:"room_id"`
	Date      string `json:"date"`
	StartSlot int    `json:"start_slot"`
	EndSlot   int    `json:"end_slot"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	DecidedAt string `json:"decided_at,omitempty"`
	DecidedBy string `json:"decided_by,omitempty"`
}

func NewRequestHandler(service booking.LedgerUseCase, clock *slotclock.Clock) *RequestHandler {
	return &RequestHandler{service: service, clock: clock}
}

func (h *RequestHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.list)
	router.PUT("/:id/approve", h.approve)
	router.PUT("/:id/reject", h.reject)
	router.DELETE("/:id", h.cancel)
}

func (h *RequestHandler) create(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Requester == "" || req.RoomID == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requester, room_id and date are required"})
		return
	}

	start, err := h.clock.TimeToIndex(req.StartTime)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	// the end time is the boundary after the last covered slot, so it is
	// either a slot start or the close of the window
	end, err := h.endTimeToBoundary(req.EndTime)
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}

	request, err := h.service.Create(c.Request.Context(), booking.CreateRequestInput{
		Requester: req.Requester,
		RoomID:    req.RoomID,
		Date:      req.Date,
		StartSlot: start,
		EndSlot:   end,
	})
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusCreated, h.toResponse(request))
}

func (h *RequestHandler) list(c *gin.Context) {
	roomID := c.Query("room_id")
	date := c.Query("date")
	if roomID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room_id and date are required"})
		return
	}

	list, err := h.service.ListForRoomDate(c.Request.Context(), roomID, date)
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}

	out := make([]requestResponse, 0, len(list))
	for i := range list {
		out = append(out, h.toResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RequestHandler) approve(c *gin.Context) {
	h.decideWith(c, h.service.Approve)
}

func (h *RequestHandler) reject(c *gin.Context) {
	h.decideWith(c, h.service.Reject)
}

func (h *RequestHandler) cancel(c *gin.Context) {
	h.decideWith(c, h.service.Cancel)
}

func (h *RequestHandler) decideWith(c *gin.Context, decide func(ctx context.Context, id, actor string) (*domain.BookingRequest, error)) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Actor == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actor is required"})
		return
	}

	request, err := decide(c.Request.Context(), c.Param("id"), req.Actor)
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, h.toResponse(request))
}

// endTimeToBoundary maps an HH:MM end time to an exclusive slot index. The
// window close itself is a valid end boundary even though no slot starts
// there.
func (h *RequestHandler) endTimeToBoundary(hhmm string) (int, error) {
	if index, err := h.clock.TimeToIndex(hhmm); err == nil {
		return index, nil
	}
	slots := h.clock.SlotsForDay()
	if len(slots) > 0 && slots[len(slots)-1].End == hhmm {
		return h.clock.SlotCount(), nil
	}
	_, err := h.clock.TimeToIndex(hhmm)
	return 0, err
}

func (h *RequestHandler) toResponse(request *domain.BookingRequest) requestResponse {
	out := requestResponse{
		ID:        request.ID,
		Requester: request.Requester,
		RoomID:    request.RoomID,
		Date:      request.Date,
		StartSlot: request.StartSlot,
		EndSlot:   request.EndSlot,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt.Format(time.RFC3339),
		DecidedBy: request.DecidedBy,
	}
	if start, _, err := h.clock.IndexToTime(request.StartSlot); err == nil {
		out.StartTime = start
	}
	if _, end, err := h.clock.IndexToTime(request.EndSlot - 1); err == nil {
		out.EndTime = end
	}
	if request.DecidedAt != nil {
		out.DecidedAt = request.DecidedAt.Format(time.RFC3339)
	}
	return out
}
