package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/interview-platform/internal/interview"
	"github.com/jonathan/interview-platform/internal/relay"
)

// handleRealtime upgrades the client connection and bridges it to the
// upstream realtime voice endpoint. Query parameters: "role" selects the
// interviewer role, "profile" optionally carries a URL-encoded serialized
// CandidateProfile. A malformed profile is ignored, never rejected.
func (s *Server) handleRealtime(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.HasAPIKey() {
		s.pipelineError(w, ErrServiceUnavailable)
		return
	}

	roleID := r.URL.Query().Get("role")

	var profile *interview.CandidateProfile
	if raw := r.URL.Query().Get("profile"); raw != "" {
		var parsed interview.CandidateProfile
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			profile = &parsed
		} else {
			log.Printf("[relay] ignoring malformed profile parameter: %v", err)
		}
	}

	instructions := s.session.Instructions(roleID, profile)

	client, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Printf("[relay] upgrade failed: %v", err)
		return
	}

	upstream, err := relay.Dial(r.Context(), s.cfg.RealtimeURL, s.cfg.RealtimeModel, s.cfg.APIKey)
	if err != nil {
		log.Printf("[relay] upstream dial failed: %v", err)
		frame := relay.NewErrorFrame(relay.CodeUpstreamUnavailable, "could not reach the voice service")
		if writeErr := client.WriteJSON(frame); writeErr != nil {
			log.Printf("[relay] error frame not delivered: %v", writeErr)
		}
		client.Close()
		return
	}

	bridge := relay.NewBridge(client, upstream, relay.NewSession(instructions, s.cfg.RealtimeVoice))
	log.Printf("[relay %s] session started (role=%s)", bridge.ID(), roleID)
	if err := bridge.Run(); err != nil {
		log.Printf("[relay %s] session ended: %v", bridge.ID(), err)
	}
}
