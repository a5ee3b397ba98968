package game

import "fmt"

// BiangGuaCostMode selects which resource pays for a biangua.
type BiangGuaCostMode string

const (
	CostDaoXing BiangGuaCostMode = "daoxing"
	CostBalance BiangGuaCostMode = "balance"
)

// Rules holds the numeric tunables of a match. None of the constants are
// canonical, so they are configuration with defaults rather than hard-coded
// values.
type Rules struct {
	// BalanceBound is N in the balance range [-N, N]. Actions that would
	// leave the range are rejected, not clamped.
	BalanceBound int
	// DaoXingWinThreshold ends the match in favor of the player reaching it.
	DaoXingWinThreshold int
	// TurnLimit caps the match in applied actions; 0 disables the cap.
	TurnLimit int
	// MeditateStep is how far one meditation pulls balance toward zero.
	MeditateStep int
	// StudyBalanceWindow is the |balance| ceiling under which study is
	// legal. Standing in the human realm widens the window by one.
	StudyBalanceWindow int
	// BiangGuaCost is how many units of the chosen resource one biangua
	// costs.
	BiangGuaCost int
	// BiangGuaCostMode selects dao-xing or balance as the biangua resource.
	BiangGuaCostMode BiangGuaCostMode
}

// DefaultRules returns the tunable defaults used by the batch demo and
// tests.
func DefaultRules() Rules {
	return Rules{
		BalanceBound:        5,
		DaoXingWinThreshold: 10,
		TurnLimit:           200,
		MeditateStep:        1,
		StudyBalanceWindow:  2,
		BiangGuaCost:        1,
		BiangGuaCostMode:    CostDaoXing,
	}
}

// Validate rejects rule sets that cannot host a match.
func (r Rules) Validate() error {
	if r.BalanceBound < 1 {
		return fmt.Errorf("balance bound must be at least 1, got %d", r.BalanceBound)
	}
	if r.DaoXingWinThreshold < 1 {
		return fmt.Errorf("dao-xing win threshold must be at least 1, got %d", r.DaoXingWinThreshold)
	}
	if r.TurnLimit < 0 {
		return fmt.Errorf("turn limit must not be negative, got %d", r.TurnLimit)
	}
	if r.MeditateStep < 1 {
		return fmt.Errorf("meditate step must be at least 1, got %d", r.MeditateStep)
	}
	if r.StudyBalanceWindow < 0 {
		return fmt.Errorf("study balance window must not be negative, got %d", r.StudyBalanceWindow)
	}
	if r.BiangGuaCost < 1 {
		return fmt.Errorf("biangua cost must be at least 1, got %d", r.BiangGuaCost)
	}
	switch r.BiangGuaCostMode {
	case CostDaoXing, CostBalance:
	default:
		return fmt.Errorf("unknown biangua cost mode %q", r.BiangGuaCostMode)
	}
	return nil
}
