package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/google/uuid"
)

// eventBuffer bounds how far a client may fall behind before events are dropped.
const eventBuffer = 64

type streamEvent struct {
	id   uuid.UUID
	kind string
	data any
}

// handleEvents streams registry and profile mutations as server-sent events
// until the client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	ch := make(chan streamEvent, eventBuffer)
	send := func(ev streamEvent) {
		select {
		case ch <- ev:
		default:
			s.log.Warn("event stream client too slow, dropping event", "kind", ev.kind)
		}
	}
	stopPrograms := s.reg.Subscribe(func(e registry.Event) {
		send(streamEvent{id: e.ID, kind: string(e.Kind), data: e})
	})
	defer stopPrograms()
	stopProfile := s.prof.Subscribe(func(e profile.Event) {
		send(streamEvent{id: e.ID, kind: string(e.Kind), data: e})
	})
	defer stopProfile()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		s.log.Error("event stream not supported", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			data, err := json.Marshal(ev.data)
			if err != nil {
				s.log.Error("encoding stream event", "kind", ev.kind, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.id, ev.kind, data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
