package negotiation

import "github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/offer"

// #region status
// Status is the negotiation phase derived by the state machine each turn.
type Status string

const (
	StatusNegotiating         Status = "negotiating"
	StatusStalled             Status = "stalled"
	StatusDistractionOffered  Status = "distraction_offered"
	StatusAcceptedDistraction Status = "accepted_distraction"
	StatusTargetReached       Status = "target_reached"
	StatusTooRude             Status = "too_rude"
	StatusEndConvo            Status = "end_convo"
)

// Terminal reports whether the session accepts no further negotiation turns.
func (s Status) Terminal() bool {
	switch s {
	case StatusAcceptedDistraction, StatusTargetReached, StatusTooRude, StatusEndConvo:
		return true
	}
	return false
}

// #endregion status

// #region state
// State is the authoritative per-session negotiation state. It is a value:
// the only way it changes is by passing it through Apply, which returns a new
// value. JSON tags match the snapshot the API returns to the frontend.
type State struct {
	CurrentOffer        int    `json:"current_offer"`
	TurnCount           int    `json:"turn_count"`
	StrongArgumentCount int    `json:"strong_argument_count"`
	DistractionUsed     bool   `json:"distraction_used"`
	NoDataTurns         int    `json:"no_data_turns"`
	RepeatStreak        int    `json:"repeat_streak"`
	StalledStreak       int    `json:"stalled_streak"`
	RudeWarningIssued   bool   `json:"rude_warning_issued"`
	RudeStreak          int    `json:"rude_streak"`
	Status              Status `json:"status"`
	Hint                string `json:"hint"`
}

// #endregion state

// #region config
// Config is the immutable session configuration supplied at initialization.
type Config struct {
	StartingSalary int
	JobTitle       string
	MarketAverage  int
	TargetGoal     int

	// Penalty budgets below the starting salary; the floors derive from them.
	RudeFloorBudget   int
	RepeatFloorBudget int

	Offer offer.Config
}

// DefaultConfig returns the session parameters of the observed game setup.
func DefaultConfig() Config {
	return Config{
		StartingSalary:    75000,
		JobTitle:          "Software Engineer",
		MarketAverage:     94000,
		TargetGoal:        100000,
		RudeFloorBudget:   5000,
		RepeatFloorBudget: 2000,
		Offer:             offer.DefaultConfig(),
	}
}

// BaseSalary is the opening offer: the starting salary, or the market
// average when no starting salary was supplied.
func (c Config) BaseSalary() int {
	if c.StartingSalary == 0 {
		return c.MarketAverage
	}
	return c.StartingSalary
}

// OfferConfig returns the engine tunables with the session-derived bounds
// filled in.
func (c Config) OfferConfig() offer.Config {
	oc := c.Offer
	oc.TargetGoal = c.TargetGoal
	oc.RudeFloor = c.BaseSalary() - c.RudeFloorBudget
	oc.RepeatFloor = c.BaseSalary() - c.RepeatFloorBudget
	return oc
}

// #endregion config

// #region initial
// Initial returns the state a fresh session starts from.
func Initial(cfg Config) State {
	return State{
		CurrentOffer: cfg.BaseSalary(),
		Status:       StatusNegotiating,
	}
}

// #endregion initial

// #region result
// Result bundles everything returned by Apply.
type Result struct {
	State  State
	Reason string // why the turn landed where it did, for the turn log
}

// #endregion result
