package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/flags"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/negotiation"
)

// #endregion

// #region fixture-types
// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string            `json:"description"`
	Config      FixtureConfig     `json:"config"`
	Turns       []FixtureTurn     `json:"turns"`
	Expected    []FixtureExpected `json:"expected"`
}

// FixtureConfig overrides the default session configuration. Zero fields
// keep their defaults.
type FixtureConfig struct {
	StartingSalary int    `json:"starting_salary"`
	JobTitle       string `json:"job_title"`
	MarketAverage  int    `json:"market_average"`
	TargetGoal     int    `json:"target_goal"`
}

// FixtureTurn mirrors Interaction with JSON tags.
type FixtureTurn struct {
	TurnID string          `json:"turn_id"`
	Flags  flags.TurnFlags `json:"flags"`
}

// FixtureExpected captures the expected status and offer per turn.
type FixtureExpected struct {
	TurnID string `json:"turn_id"`
	Status string `json:"status"`
	Offer  int    `json:"offer"`
}

// #endregion fixture-types

// #region fixture-loader
// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToConfig converts fixture overrides to a session configuration.
func (fc FixtureConfig) ToConfig() negotiation.Config {
	cfg := negotiation.DefaultConfig()
	if fc.StartingSalary != 0 {
		cfg.StartingSalary = fc.StartingSalary
	}
	if fc.JobTitle != "" {
		cfg.JobTitle = fc.JobTitle
	}
	if fc.MarketAverage != 0 {
		cfg.MarketAverage = fc.MarketAverage
	}
	if fc.TargetGoal != 0 {
		cfg.TargetGoal = fc.TargetGoal
	}
	return cfg
}

// ToInteractions converts fixture turns to domain interactions.
func (f *Fixture) ToInteractions() []Interaction {
	interactions := make([]Interaction, len(f.Turns))
	for i, t := range f.Turns {
		interactions[i] = Interaction{TurnID: t.TurnID, Flags: t.Flags}
	}
	return interactions
}

// #endregion fixture-loader
