package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PabloGalante/fillyourcup/internal/app/cup"
)

// handleEvents streams a "state" event with the full snapshot on connect
// and after every change, until the client goes away.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	rc := http.NewResponseController(w)

	// A single pending signal is enough: every write re-reads the latest
	// snapshot, so bursts of changes collapse into one event.
	dirty := make(chan struct{}, 1)
	cancel := s.engine.Subscribe(func(cup.Snapshot) {
		select {
		case dirty <- struct{}{}:
		default:
		}
	})
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	var lastVersion uint64
	send := func() error {
		snap := s.engine.Snapshot()
		if snap.Version == lastVersion && lastVersion != 0 {
			return nil
		}
		lastVersion = snap.Version
		if err := writeEvent(w, "state", snap); err != nil {
			return err
		}
		return rc.Flush()
	}

	if err := send(); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-dirty:
			if err := send(); err != nil {
				return
			}
		}
	}
}

func writeEvent(w io.Writer, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", name, err)
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, data)
	return err
}
