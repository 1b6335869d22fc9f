package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"krysselista-backend/internal/domain/child"
	"krysselista-backend/internal/domain/feed"
	"krysselista-backend/internal/usecase/access"
)

// EventsHandler streams refresh signals as server-sent events. Clients refetch
// over the REST routes when a signal arrives.
type EventsHandler struct {
	*Handler
	sub      feed.Subscriber
	children child.Repository

	keepAlive time.Duration
	quit      chan struct{}
	once      sync.Once
}

func NewEventsHandler(base *Handler, sub feed.Subscriber, children child.Repository) *EventsHandler {
	return &EventsHandler{
		Handler:   base,
		sub:       sub,
		children:  children,
		keepAlive: 25 * time.Second,
		quit:      make(chan struct{}),
	}
}

// Shutdown ends every open stream. It is safe to call more than once and is
// meant for http.Server.RegisterOnShutdown.
func (h *EventsHandler) Shutdown() {
	h.once.Do(func() { close(h.quit) })
}

// GET /pickups/events
// ?child_id= narrows the stream to one child.
func (h *EventsHandler) Pickups(c echo.Context) error {
	scope := feed.All()
	if id := c.QueryParam("child_id"); id != "" {
		scope = feed.Child(id)
	}
	return h.stream(c, scope)
}

// GET /children/:child_id/events
func (h *EventsHandler) Child(c echo.Context) error {
	childID := c.Param("child_id")
	if err := access.ChildAccess(c.Request().Context(), h.children, session(c), childID); err != nil {
		return h.fail(c, err, "")
	}
	return h.stream(c, feed.Child(childID))
}

func (h *EventsHandler) stream(c echo.Context, scope feed.Scope) error {
	if h.sub == nil {
		return h.fail(c, feed.ErrUnavailable, "")
	}

	ctx := c.Request().Context()
	signals := make(chan feed.Signal, 16)
	sub, err := h.sub.Subscribe(ctx, scope, func(s feed.Signal) {
		select {
		case signals <- s:
		default: // a pending refresh already covers this one
		}
	})
	if err != nil {
		return h.fail(c, err, "")
	}
	defer sub.Close()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := writeEvent(w, "ready", feed.Signal{ChildID: scope.ChildID, At: time.Now().UTC()}); err != nil {
		return nil
	}

	ping := time.NewTicker(h.keepAlive)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.quit:
			_ = writeEvent(w, "closed", feed.Signal{ChildID: scope.ChildID, At: time.Now().UTC()})
			return nil
		case <-sub.Done():
			// client reconnects and resubscribes
			_ = writeEvent(w, "closed", feed.Signal{ChildID: scope.ChildID, At: time.Now().UTC()})
			return nil
		case s := <-signals:
			if err := writeEvent(w, "refresh", s); err != nil {
				h.log.Debug("sse client gone", zap.Error(err))
				return nil
			}
		case <-ping.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

func writeEvent(w *echo.Response, event string, s feed.Signal) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	w.Flush()
	return nil
}
