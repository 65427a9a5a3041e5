package offer

import "github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"

// #region inputs
// Inputs carries the per-turn classification and streak values into Compute.
// Streaks must already reflect the current turn (the state machine updates
// them before computing the offer).
type Inputs struct {
	Conduct            flags.Conduct
	NewStrong          bool
	Repeated           bool
	RepeatStreak       int
	RudeStreak         int
	AskedAmountPresent bool
}

// #endregion inputs

// #region config
// Config holds the reward and penalty tunables plus the session-derived
// bounds. Magnitudes drifted between historical rule variants, so none of
// them are hard-coded in the engine.
type Config struct {
	StrongIncrease int // top-of-band reward for a new strong argument
	AskIncrease    int // small flat increase for a concrete amount ask
	MaxUpJump      int // per-turn increase cap
	MaxSingleDrop  int // per-turn decrease cap (positive magnitude)

	RudePenaltyFirst  int // rudeStreak <= 1
	RudePenaltySecond int // rudeStreak == 2
	RudePenaltyCap    int // rudeStreak >= 3

	EmotionalRepeatPenalty int // emotional conduct, repeated justification

	RepeatGraceStreak   int // repeat streaks below this are free
	RepeatPenaltyFirst  int // streak == RepeatGraceStreak
	RepeatPenaltyBeyond int // streak > RepeatGraceStreak

	// Session-derived bounds, filled in from the session configuration.
	TargetGoal  int
	RudeFloor   int
	RepeatFloor int
}

// DefaultConfig returns the tunables from the final rule variant. Bounds
// (TargetGoal, RudeFloor, RepeatFloor) are zero and must be derived from the
// session configuration before use.
func DefaultConfig() Config {
	return Config{
		StrongIncrease:         5000,
		AskIncrease:            1000,
		MaxUpJump:              5000,
		MaxSingleDrop:          3000,
		RudePenaltyFirst:       1000,
		RudePenaltySecond:      2000,
		RudePenaltyCap:         3000,
		EmotionalRepeatPenalty: 1000,
		RepeatGraceStreak:      3,
		RepeatPenaltyFirst:     1000,
		RepeatPenaltyBeyond:    2000,
	}
}

// #endregion config
