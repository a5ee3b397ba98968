package game

// ActionEvent is the structured record emitted for every applied action. The
// history slice of ActionEvents is the single source of truth for history
// queries and AI memory; the observability layer receives the same records
// as plain data.
type ActionEvent struct {
	Turn         int        `json:"turn"`
	Actor        PlayerID   `json:"actor"`
	Type         ActionType `json:"type"`
	CardID       int        `json:"card_id,omitempty"`
	Pos          Position   `json:"pos"`
	Lines        LineSet    `json:"lines,omitempty"`
	DaoXingDelta int        `json:"dao_xing_delta,omitempty"`
	BalanceDelta int        `json:"balance_delta,omitempty"`
	// HexagramBefore/After track the hexagram in play around the action;
	// zero means undefined.
	HexagramBefore int `json:"hexagram_before,omitempty"`
	HexagramAfter  int `json:"hexagram_after,omitempty"`
	// Drawn is the oracle's draw for a divine action; zero otherwise.
	Drawn int `json:"drawn,omitempty"`
}
