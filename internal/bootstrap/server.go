package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/roombooking/api"
	"github.com/Domenick1991/roombooking/config"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/Domenick1991/roombooking/internal/service/rooms"
	"github.com/Domenick1991/roombooking/internal/slotclock"
	"github.com/gin-gonic/gin"
)

// Run starts the HTTP API server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, roomSvc rooms.RoomUseCase, ledger booking.LedgerUseCase, clock *slotclock.Clock) error {
	router := gin.Default()

	v1 := router.Group("/api/v1")
	api.NewRoomHandler(roomSvc, ledger).Register(v1.Group("/rooms"))
	api.NewRequestHandler(ledger, clock).Register(v1.Group("/requests"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
