package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/majel/internal/crew"
	"github.com/jonathan/majel/internal/observability"
	"github.com/jonathan/majel/internal/scoring"
	"github.com/jonathan/majel/internal/server/middleware"
	"github.com/jonathan/majel/internal/types"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies; a full roster is a few hundred officers.
const maxBodyBytes = 4 << 20

// IntentSummary describes one intent of the loaded bundle.
type IntentSummary struct {
	Key          types.IntentKey      `json:"key"`
	Name         string               `json:"name,omitempty"`
	Category     types.IntentCategory `json:"category"`
	Context      types.TargetContext  `json:"default_context"`
	WeightedKeys []types.EffectKey    `json:"weighted_keys"`
}

// RunResponse represents a stored recommendation run
type RunResponse struct {
	RunID     string                       `json:"run_id"`
	IntentKey types.IntentKey              `json:"intent_key"`
	CaptainID types.OfficerID              `json:"captain_id,omitempty"`
	Fallback  bool                         `json:"fallback"`
	Evaluated int                          `json:"evaluated"`
	Warnings  []string                     `json:"warnings,omitempty"`
	Results   []types.RecommendationResult `json:"results"`
	CreatedAt string                       `json:"created_at"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIntents lists the intents of the current effect bundle
func (s *Server) handleIntents(w http.ResponseWriter, r *http.Request) {
	b, err := s.source.EffectBundle(r.Context())
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to load effect bundle: %w", err))
		return
	}

	intents := make([]IntentSummary, 0, len(b.Intents))
	for _, key := range b.IntentKeys() {
		def, _ := b.Intent(key)
		intents = append(intents, IntentSummary{
			Key:          key,
			Name:         def.Name,
			Category:     scoring.CategoryFor(def),
			Context:      def.DefaultContext,
			WeightedKeys: b.WeightedKeys(key),
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"intents": intents})
}

// handleRecommend ranks crews for one intent
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	b, err := s.source.EffectBundle(r.Context())
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to load effect bundle: %w", err))
		return
	}
	if len(req.Officers) == 0 {
		if req.Officers, err = s.source.Roster(r.Context()); err != nil {
			s.failure(w, r, fmt.Errorf("failed to load roster: %w", err))
			return
		}
	}
	if req.Reservations == nil {
		if req.Reservations, err = s.source.Reservations(r.Context()); err != nil {
			s.failure(w, r, fmt.Errorf("failed to load reservations: %w", err))
			return
		}
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}
	if req.Limit == 0 {
		req.Limit = s.defaultLimit
	}

	start := time.Now()
	run, err := crew.Execute(crew.Input{
		Officers:     req.Officers,
		Reservations: req.Reservations,
		IntentKey:    req.IntentKey,
		Bundle:       b,
		CaptainID:    req.CaptainID,
		Limit:        req.Limit,
	})
	observability.ObserveRun(string(req.IntentKey), run, time.Since(start), err)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(r.Context(), run, req.CaptainID); err != nil {
			// The ranking is still valid; only its history is lost.
			s.logger.Error("failed to save recommendation run",
				zap.String("run_id", run.ID.String()),
				zap.String("request_id", middleware.GetRequestID(r)),
				zap.Error(err),
			)
		}
	}

	s.logger.Debug("recommendation complete",
		zap.String("run_id", run.ID.String()),
		zap.String("intent", string(run.IntentKey)),
		zap.Int("evaluated", run.Evaluated),
		zap.Int("results", len(run.Results)),
		zap.Bool("fallback", run.Fallback),
	)

	s.jsonResponse(w, http.StatusOK, types.RecommendResponse{
		RunID:     run.ID.String(),
		IntentKey: run.IntentKey,
		Results:   run.Results,
		Warnings:  run.Warnings,
	})
}

// handleScore returns the seat breakdown of one officer
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.failure(w, r, err)
		return
	}

	b, err := s.source.EffectBundle(r.Context())
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to load effect bundle: %w", err))
		return
	}
	if len(req.Officers) == 0 {
		if req.Officers, err = s.source.Roster(r.Context()); err != nil {
			s.failure(w, r, fmt.Errorf("failed to load roster: %w", err))
			return
		}
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, err)
		return
	}
	reservations, err := s.source.Reservations(r.Context())
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to load reservations: %w", err))
		return
	}

	breakdown, err := crew.ScoreSeat(crew.Input{
		Officers:     req.Officers,
		Reservations: reservations,
		IntentKey:    req.IntentKey,
		Bundle:       b,
	}, req.OfficerID, req.Slot)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"breakdown": breakdown,
		"total":     breakdown.Total(),
	})
}

// handleGetRun returns a stored recommendation run
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		s.failure(w, r, &ErrValidation{Field: "id", Message: "invalid run ID"})
		return
	}

	run, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		s.failure(w, r, fmt.Errorf("failed to get run: %w", err))
		return
	}
	if run == nil {
		s.failure(w, r, &ErrNotFound{Resource: "run", ID: idStr})
		return
	}

	results, err := run.DecodeResults()
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RunResponse{
		RunID:     run.ID.String(),
		IntentKey: types.IntentKey(run.IntentKey),
		CaptainID: types.OfficerID(run.CaptainID),
		Fallback:  run.Fallback,
		Evaluated: run.Evaluated,
		Warnings:  run.Warnings,
		Results:   results,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
	})
}

// decode reads a JSON body into dst, rejecting unknown fields.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: fmt.Sprintf("invalid JSON: %v", err)}
	}
	return nil
}
