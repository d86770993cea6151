package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/greencycle/greencycle/backend/internal/api/middleware"
	"github.com/greencycle/greencycle/backend/internal/domain/entities"
	"github.com/greencycle/greencycle/backend/internal/domain/providers"
)

// EventStreamHandler serves reward events over Server-Sent Events.
// Clients receive report lifecycle events plus their own balance updates.
type EventStreamHandler struct {
	eventBus providers.EventBus
}

// NewEventStreamHandler creates a new event stream handler
func NewEventStreamHandler(eventBus providers.EventBus) *EventStreamHandler {
	return &EventStreamHandler{eventBus: eventBus}
}

// StreamEvents handles GET /api/events
func (h *EventStreamHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if h.eventBus == nil {
		respondWithError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	reportEvents, err := h.eventBus.Subscribe(r.Context(), providers.EventChannelReports)
	if err != nil {
		log.Warn().Err(err).Msg("failed to subscribe to report events")
		respondWithError(w, http.StatusInternalServerError, "subscription failed")
		return
	}

	balanceEvents, err := h.eventBus.Subscribe(r.Context(), providers.GetBalanceChannel(userID))
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("failed to subscribe to balance events")
		respondWithError(w, http.StatusInternalServerError, "subscription failed")
		return
	}

	sendEvent(w, "connected", map[string]interface{}{
		"user_id":   userID,
		"timestamp": time.Now(),
	})
	flusher.Flush()

	merged := make(chan *entities.RewardEvent, 20)
	go forward(r.Context(), reportEvents, merged)
	go forward(r.Context(), balanceEvents, merged)

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event := <-merged:
			if event == nil {
				continue
			}
			sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

func forward(ctx context.Context, in <-chan *entities.RewardEvent, out chan<- *entities.RewardEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- event:
			default:
				// Client channel full, skip event
			}
		}
	}
}

func sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal event data")
		return
	}

	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", payload)
}
