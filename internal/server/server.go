package server

// #region imports
import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/negotiation"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/salary"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/session"
)

// #endregion

// #region cors
// WithCORS allows the browser frontend to call the API from another origin.
func WithCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

// #endregion cors

// #region json-helpers
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// #endregion json-helpers

// #region chat-controller
// ChatController exposes the negotiation session over HTTP. It keeps one
// active session for the single-player flow; initialize replaces it.
type ChatController struct {
	store *session.Store

	mu      sync.RWMutex
	current *session.Session
}

// NewChatController creates a controller with a default session already
// initialized, so the frontend can message before calling initialize.
func NewChatController(store *session.Store) *ChatController {
	c := &ChatController{store: store}
	c.current = store.Create(negotiation.DefaultConfig())
	return c
}

// initializeRequest carries optional session configuration overrides
// collected by the setup screen.
type initializeRequest struct {
	StartingSalary int    `json:"starting_salary"`
	JobTitle       string `json:"job_title"`
	MarketAverage  int    `json:"market_average"`
	TargetGoal     int    `json:"target_goal"`
}

// HandleInitialize resets the negotiation: a fresh session with the supplied
// configuration (or defaults), an empty transcript, and the initial state.
func (c *ChatController) HandleInitialize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cfg := negotiation.DefaultConfig()
	if r.Body != nil {
		var req initializeRequest
		// An empty body keeps the defaults.
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			if req.StartingSalary != 0 {
				cfg.StartingSalary = req.StartingSalary
			}
			if req.JobTitle != "" {
				cfg.JobTitle = req.JobTitle
			}
			if req.MarketAverage != 0 {
				cfg.MarketAverage = req.MarketAverage
			}
			if req.TargetGoal != 0 {
				cfg.TargetGoal = req.TargetGoal
			}
		}
	}

	c.mu.Lock()
	if c.current != nil {
		c.store.Remove(c.current.ID)
	}
	c.current = c.store.Create(cfg)
	s := c.current
	c.mu.Unlock()

	log.Printf("[SERVER] chat initialized: session=%s offer=%d target=%d", s.ID, s.State().CurrentOffer, cfg.TargetGoal)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"session_id": s.ID,
		"state":      s.State(),
	})
}

type messageRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
}

// HandleMessage processes one player turn and returns the visible dialogue
// plus the updated state snapshot.
func (c *ChatController) HandleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	s := c.resolve(req.SessionID)
	if s == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	res, err := s.Message(r.Context(), req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyPrompt):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, session.ErrTurnInFlight):
			writeError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, session.ErrGenerator):
			log.Printf("[SERVER] generator failure: %v", err)
			writeError(w, http.StatusBadGateway, "AI service error, please retry")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"response": res})
}

// resolve returns the addressed session, or the current one when no ID is given.
func (c *ChatController) resolve(id string) *session.Session {
	if id == "" {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.current
	}
	s, ok := c.store.Get(id)
	if !ok {
		return nil
	}
	return s
}

// #endregion chat-controller

// #region salary-controller
// SalaryController serves the static salary table and target calculation.
type SalaryController struct{}

// NewSalaryController creates the salary endpoints controller.
func NewSalaryController() *SalaryController {
	return &SalaryController{}
}

// HandleSalary returns the table entry for ?job=, or the known titles when
// no job is given.
func (c *SalaryController) HandleSalary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	job := r.URL.Query().Get("job")
	if job == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{"jobs": salary.Jobs()})
		return
	}

	data, ok := salary.Lookup(job)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown job title")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"job": job, "data": data})
}

type calculateRequest struct {
	MarketRate    int      `json:"market_rate"`
	Experience    string   `json:"experience"`
	Achievements  []string `json:"achievements"`
	CurrentSalary int      `json:"current_salary"`
}

// HandleCalculate derives the target goal from market rate, experience, and
// achievements.
func (c *SalaryController) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MarketRate <= 0 {
		writeError(w, http.StatusBadRequest, "market_rate is required")
		return
	}

	target := salary.CalculateTarget(req.MarketRate, req.Experience, req.Achievements, req.CurrentSalary)
	writeJSON(w, http.StatusOK, map[string]int{"target_goal": target})
}

// #endregion salary-controller

// #region health
// HandleHealth is the liveness endpoint.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// #endregion health
