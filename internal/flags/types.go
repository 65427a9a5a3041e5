package flags

// #region conduct
// Conduct classifies the tone of a single player turn.
type Conduct string

const (
	ConductProfessional  Conduct = "professional"
	ConductEmotional     Conduct = "emotional"
	ConductRude          Conduct = "rude"
	ConductInappropriate Conduct = "inappropriate"
)

// Valid reports whether c is one of the four contract values.
func (c Conduct) Valid() bool {
	switch c {
	case ConductProfessional, ConductEmotional, ConductRude, ConductInappropriate:
		return true
	}
	return false
}

// #endregion conduct

// #region turn-flags
// TurnFlags is the per-turn classification the dialogue generator must emit.
// Consumed exactly once by the state machine, never persisted.
type TurnFlags struct {
	NewStrongArgument   bool    `json:"new_strong_argument"`
	RepeatedArgument    bool    `json:"repeated_argument"`
	Conduct             Conduct `json:"conduct"`
	AskedAmountPresent  bool    `json:"asked_amount_present"`
	AcceptedDistraction bool    `json:"accepted_distraction"`
}

// Neutral returns the safe default classification used when the generator's
// metadata block is missing or unparseable: a professional turn that adds
// nothing, repeats nothing, asks nothing, accepts nothing.
func Neutral() TurnFlags {
	return TurnFlags{Conduct: ConductProfessional}
}

// #endregion turn-flags
