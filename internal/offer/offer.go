package offer

import "github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"

// #region compute
// Compute is a pure function returning the next offer from the previous one
// and the current turn's classification. Priority order: conduct-driven
// penalties first, increases only when no penalty applied, then the delta
// clamp, the target cap, and the floors. Hostile or stalling behavior can
// never earn a raise on the same turn.
func Compute(prev int, in Inputs, cfg Config) int {
	delta := 0
	repeatedNoNew := in.Repeated && !in.NewStrong

	// 1. Penalty selection (choose one)
	switch {
	case in.Conduct == flags.ConductRude:
		switch {
		case in.RudeStreak <= 1:
			delta = -cfg.RudePenaltyFirst
		case in.RudeStreak == 2:
			delta = -cfg.RudePenaltySecond
		default:
			delta = -cfg.RudePenaltyCap
		}
	case in.Conduct == flags.ConductEmotional:
		// No reward for venting; mild penalty only when also repetitive.
		if in.Repeated {
			delta = -cfg.EmotionalRepeatPenalty
		}
	case repeatedNoNew:
		// Grace period before punishing stalling.
		if in.RepeatStreak >= cfg.RepeatGraceStreak {
			if in.RepeatStreak == cfg.RepeatGraceStreak {
				delta = -cfg.RepeatPenaltyFirst
			} else {
				delta = -cfg.RepeatPenaltyBeyond
			}
		}
	}

	// 2. Increase selection, only if no penalty applied
	if delta == 0 && in.Conduct == flags.ConductProfessional && !repeatedNoNew {
		if in.NewStrong {
			delta = cfg.StrongIncrease
		} else if in.AskedAmountPresent && !in.Repeated {
			delta = cfg.AskIncrease
		}
	}

	// 3. Clamp delta, apply, cap at target
	if delta > cfg.MaxUpJump {
		delta = cfg.MaxUpJump
	}
	if delta < -cfg.MaxSingleDrop {
		delta = -cfg.MaxSingleDrop
	}

	next := prev + delta
	if next > cfg.TargetGoal {
		next = cfg.TargetGoal
	}

	// 4. Floors bound the downside of a single bad turn
	if in.Conduct == flags.ConductRude && next < cfg.RudeFloor {
		next = cfg.RudeFloor
	} else if repeatedNoNew && next < cfg.RepeatFloor {
		next = cfg.RepeatFloor
	}
	if next < 0 {
		next = 0
	}
	return next
}

// #endregion compute
