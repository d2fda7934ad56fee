package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/Domenick1991/roombooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service rooms.RoomUseCase
	ledger  booking.LedgerUseCase
}

type createRoomRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type roomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	CreatedAt string `json:"created_at"`
}

func NewRoomHandler(service rooms.RoomUseCase, ledger booking.LedgerUseCase) *RoomHandler {
	return &RoomHandler{service: service, ledger: ledger}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.create)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.remove)
	router.GET("/:id/board", h.board)
}

func (h *RoomHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}

	out := make([]roomResponse, 0, len(list))
	for _, room := range list {
		out = append(out, toRoomResponse(&room))
	}
	c.JSON(http.StatusOK, out)
}

func (h *RoomHandler) create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.Create(c.Request.Context(), rooms.CreateRoomInput{
		ID:       req.ID,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		writeError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, toRoomResponse(room))
}

func (h *RoomHandler) get(c *gin.Context) {
	room, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toRoomResponse(room))
}

func (h *RoomHandler) remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoomHandler) board(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	board, err := h.ledger.BoardFor(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		writeError(c, err, http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"room_id": c.Param("id"),
		"date":    date,
		"slots":   board,
	})
}

func toRoomResponse(room *domain.Room) roomResponse {
	return roomResponse{
		ID:        room.ID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		CreatedAt: room.CreatedAt.Format(time.RFC3339),
	}
}
