package game

// ActionType enumerates the seven turn actions. The declaration order is the
// fixed tie-break priority the AI uses during exploitation.
type ActionType int

const (
	ActionStudy ActionType = iota
	ActionBiangGua
	ActionPlay
	ActionMove
	ActionMeditate
	ActionDivine
	ActionPass
	ActionConcede // host-level, never enumerated
)

var actionNames = map[ActionType]string{
	ActionStudy:    "study",
	ActionBiangGua: "biangua",
	ActionPlay:     "play",
	ActionMove:     "move",
	ActionMeditate: "meditate",
	ActionDivine:   "divine",
	ActionPass:     "pass",
	ActionConcede:  "concede",
}

func (t ActionType) String() string {
	if name, ok := actionNames[t]; ok {
		return name
	}
	return "unknown"
}

// Action is one discrete request against the board. Unused fields stay zero;
// Pos is the target slot for play and move and the source slot for biangua.
type Action struct {
	Type   ActionType `json:"type"`
	Player PlayerID   `json:"player"`
	CardID int        `json:"card_id,omitempty"`
	Pos    Position   `json:"pos,omitempty"`
	Lines  LineSet    `json:"lines,omitempty"`
}

// ActionEngine validates and applies actions against one BoardState. A
// rejection leaves the state untouched and the turn unconsumed; an applied
// action consumes the actor's turn and runs the termination check.
type ActionEngine struct {
	State  *BoardState
	Oracle *Oracle
}

func NewActionEngine(state *BoardState, oracle *Oracle) *ActionEngine {
	return &ActionEngine{State: state, Oracle: oracle}
}

// Apply runs one action to completion. The returned event is the record
// appended to history.
func (e *ActionEngine) Apply(a Action) (ActionEvent, error) {
	if e.State.Over() {
		return ActionEvent{}, ErrMatchAlreadyOver
	}
	if a.Player != e.State.Active {
		return ActionEvent{}, Rejectf("%s acted out of turn", a.Player)
	}

	event, err := e.resolve(e.State, a, e.Oracle)
	if err != nil {
		return ActionEvent{}, err
	}

	e.consumeTurn(a.Player)
	e.checkTermination(a.Player)
	return event, nil
}

// Legal dry-runs an action against a copy of the state. No mutation, no
// oracle consumption.
func (e *ActionEngine) Legal(a Action) error {
	if e.State.Over() {
		return ErrMatchAlreadyOver
	}
	if a.Player != e.State.Active {
		return Rejectf("%s acted out of turn", a.Player)
	}
	switch a.Type {
	case ActionDivine, ActionPass:
		return nil // never rejected
	}
	_, err := e.resolve(e.State.Copy(), a, nil)
	return err
}

// LegalActions enumerates the actions p could take right now. Play
// candidates cover every hand card and slot; biangua candidates are bucketed
// into the six single-line flips plus the full inversion rather than all 63
// line sets.
func (e *ActionEngine) LegalActions(p PlayerID) []Action {
	if e.State.Over() || p != e.State.Active {
		return nil
	}

	candidates := []Action{
		{Type: ActionStudy, Player: p},
		{Type: ActionMeditate, Player: p},
	}
	for _, src := range e.contributingSlots() {
		for i := 0; i < 6; i++ {
			candidates = append(candidates, Action{
				Type: ActionBiangGua, Player: p, Pos: src, Lines: LineSet(0).With(i),
			})
		}
		candidates = append(candidates, Action{
			Type: ActionBiangGua, Player: p, Pos: src, Lines: FullLineSet(),
		})
	}
	for _, c := range e.State.Player(p).Hand {
		for pos := Position(0); pos < NumPositions; pos++ {
			candidates = append(candidates, Action{
				Type: ActionPlay, Player: p, CardID: c.ID, Pos: pos,
			})
		}
	}
	for _, pos := range Neighbors(e.State.Player(p).Marker) {
		candidates = append(candidates, Action{Type: ActionMove, Player: p, Pos: pos})
	}

	legal := make([]Action, 0, len(candidates)+2)
	for _, a := range candidates {
		if e.Legal(a) == nil {
			legal = append(legal, a)
		}
	}
	// divine and pass are always available
	legal = append(legal,
		Action{Type: ActionDivine, Player: p},
		Action{Type: ActionPass, Player: p},
	)
	return legal
}

// Concede ends the match in the opponent's favor.
func (e *ActionEngine) Concede(p PlayerID) (ActionEvent, error) {
	if e.State.Over() {
		return ActionEvent{}, ErrMatchAlreadyOver
	}
	if !p.Valid() {
		return ActionEvent{}, Rejectf("unknown player %d", p)
	}
	event := ActionEvent{Turn: e.State.Turn + 1, Actor: p, Type: ActionConcede, Pos: NoPosition}
	if err := e.State.Apply([]Delta{{Kind: DeltaHistory, Event: event}}); err != nil {
		return ActionEvent{}, err
	}
	e.State.Result = &MatchResult{
		Winner: p.Other(),
		Reason: ReasonConcession,
		Turn:   e.State.Turn,
	}
	return event, nil
}

// resolve compiles an action into deltas and commits them against s. When s
// is a scratch copy this doubles as the legality dry run; oracle may be nil
// in that mode because divine never reaches resolve's oracle path there.
func (e *ActionEngine) resolve(s *BoardState, a Action, oracle *Oracle) (ActionEvent, error) {
	// positional actions overwrite Pos; the rest record no slot
	event := ActionEvent{Turn: s.Turn + 1, Actor: a.Player, Type: a.Type, Pos: NoPosition}
	if before, ok := s.CurrentHexagram(); ok {
		event.HexagramBefore = before.ID()
	}

	var deltas []Delta
	switch a.Type {
	case ActionPlay:
		var err error
		deltas, err = e.playDeltas(s, a, &event)
		if err != nil {
			return ActionEvent{}, err
		}

	case ActionMove:
		marker := s.Player(a.Player).Marker
		if !a.Pos.Valid() || !Adjacent(marker, a.Pos) {
			return ActionEvent{}, Rejectf("%s is not reachable from %s this turn", a.Pos, marker)
		}
		event.Pos = a.Pos
		deltas = []Delta{{Kind: DeltaMoveMarker, Player: a.Player, Pos: a.Pos}}

	case ActionMeditate:
		bal := s.Player(a.Player).Balance
		if bal == 0 {
			return ActionEvent{}, Rejectf("balance already at equilibrium")
		}
		step := s.Rules.MeditateStep
		if bal > 0 {
			if step > bal {
				step = bal
			}
			step = -step
		} else if step > -bal {
			step = -bal
		}
		event.BalanceDelta = step
		deltas = []Delta{{Kind: DeltaBalance, Player: a.Player, Amount: step}}

	case ActionStudy:
		window := s.Rules.StudyBalanceWindow
		if s.Player(a.Player).Marker == PosHuman {
			window++
		}
		if bal := s.Player(a.Player).Balance; bal > window || bal < -window {
			return ActionEvent{}, Rejectf("balance %d is outside the study window %d", bal, window)
		}
		event.DaoXingDelta = 1
		deltas = []Delta{{Kind: DeltaDaoXing, Player: a.Player, Amount: 1}}

	case ActionBiangGua:
		var err error
		deltas, err = e.bianguaDeltas(s, a, &event)
		if err != nil {
			return ActionEvent{}, err
		}

	case ActionDivine:
		if oracle != nil {
			event.Drawn = oracle.Draw().ID()
		}

	case ActionPass:
		// no board change; the turn is consumed

	default:
		return ActionEvent{}, Rejectf("unknown action type %d", a.Type)
	}

	if err := s.Apply(deltas); err != nil {
		return ActionEvent{}, err
	}
	if after, ok := s.CurrentHexagram(); ok {
		event.HexagramAfter = after.ID()
	}
	if err := s.Apply([]Delta{{Kind: DeltaHistory, Event: event}}); err != nil {
		return ActionEvent{}, err
	}
	return event, nil
}

func (e *ActionEngine) playDeltas(s *BoardState, a Action, event *ActionEvent) ([]Delta, error) {
	card, ok := s.Player(a.Player).HandCard(a.CardID)
	if !ok {
		return nil, Rejectf("card %d is not in %s's hand", a.CardID, a.Player)
	}
	if !a.Pos.Valid() {
		return nil, Rejectf("position %d does not exist", a.Pos)
	}

	var deltas []Delta
	if occupant := s.Board[a.Pos]; occupant != nil {
		if occupant.Owner != a.Player {
			return nil, Rejectf("position %s is held by the opponent", a.Pos)
		}
		// replacing an own card returns it to hand first
		deltas = append(deltas, Delta{Kind: DeltaRemoveCard, Player: a.Player, Pos: a.Pos})
	}
	deltas = append(deltas, Delta{Kind: DeltaPlaceCard, Player: a.Player, CardID: a.CardID, Pos: a.Pos})

	shift := 0
	if a.Pos.IsBagua() {
		shift = card.Trigram.Polarity()
	} else {
		shift = realmBalanceShift[a.Pos]
	}
	if shift != 0 {
		deltas = append(deltas, Delta{Kind: DeltaBalance, Player: a.Player, Amount: shift})
	}

	event.CardID = a.CardID
	event.Pos = a.Pos
	event.BalanceDelta = shift
	return deltas, nil
}

func (e *ActionEngine) bianguaDeltas(s *BoardState, a Action, event *ActionEvent) ([]Delta, error) {
	if !a.Lines.Valid() {
		return nil, Rejectf("changing lines %08b out of range", uint8(a.Lines))
	}
	source, defined := s.CurrentHexagram()
	if !defined {
		return nil, Rejectf("no hexagram in play")
	}
	if !s.contributesToHexagram(a.Pos) {
		return nil, Rejectf("position %s does not contribute to the hexagram in play", a.Pos)
	}
	target, err := Transform(source, a.Lines)
	if err != nil {
		return nil, Rejectf("transform failed: %v", err)
	}

	var deltas []Delta
	switch s.Rules.BiangGuaCostMode {
	case CostBalance:
		bal := s.Player(a.Player).Balance
		cost := s.Rules.BiangGuaCost
		if bal > -cost && bal < cost {
			return nil, Rejectf("balance %d cannot pay the biangua cost %d", bal, cost)
		}
		if bal > 0 {
			cost = -cost
		}
		event.BalanceDelta = cost
		deltas = append(deltas, Delta{Kind: DeltaBalance, Player: a.Player, Amount: cost})
	default: // CostDaoXing
		event.DaoXingDelta = -s.Rules.BiangGuaCost
		deltas = append(deltas, Delta{Kind: DeltaDaoXing, Player: a.Player, Amount: -s.Rules.BiangGuaCost})
	}

	// retune both contributing cards so the board reads the target figure
	for pos := Position(0); pos < NumPositions; pos++ {
		if s.Board[pos] == nil {
			continue
		}
		if pos.IsInner() {
			deltas = append(deltas, Delta{Kind: DeltaRetuneCard, Pos: pos, Trigram: target.Lower()})
		} else if pos.IsOuter() {
			deltas = append(deltas, Delta{Kind: DeltaRetuneCard, Pos: pos, Trigram: target.Upper()})
		}
	}

	event.Pos = a.Pos
	event.Lines = a.Lines
	return deltas, nil
}

// contributingSlots lists the occupied slots the current hexagram reads
// from; empty when the hexagram is undefined.
func (e *ActionEngine) contributingSlots() []Position {
	if _, ok := e.State.CurrentHexagram(); !ok {
		return nil
	}
	var out []Position
	for pos := Position(0); pos < NumPositions; pos++ {
		if e.State.Board[pos] != nil && (pos.IsInner() || pos.IsOuter()) {
			out = append(out, pos)
		}
	}
	return out
}

func (e *ActionEngine) consumeTurn(p PlayerID) {
	actor := e.State.Player(p)
	actor.Actions--
	if actor.Actions <= 0 {
		actor.Actions = 0
		next := p.Other()
		e.State.Player(next).Actions = 1
		e.State.Active = next
	}
	e.State.Turn++
}

func (e *ActionEngine) checkTermination(actor PlayerID) {
	s := e.State
	if s.Player(actor).DaoXing >= s.Rules.DaoXingWinThreshold {
		s.Result = &MatchResult{Winner: actor, Reason: ReasonThreshold, Turn: s.Turn}
		return
	}
	for _, p := range s.Players {
		if p.Balance >= s.Rules.BalanceBound || p.Balance <= -s.Rules.BalanceBound {
			s.Result = &MatchResult{Winner: p.ID.Other(), Reason: ReasonImbalance, Turn: s.Turn}
			return
		}
	}
	if s.Rules.TurnLimit > 0 && s.Turn >= s.Rules.TurnLimit {
		winner := NoPlayer
		if d1, d2 := s.Players[0].DaoXing, s.Players[1].DaoXing; d1 > d2 {
			winner = Player1
		} else if d2 > d1 {
			winner = Player2
		}
		s.Result = &MatchResult{Winner: winner, Reason: ReasonTurnLimit, Turn: s.Turn}
	}
}
