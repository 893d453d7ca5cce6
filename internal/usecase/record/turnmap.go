package record

// TurnMap reconciles the two move-numbering schemes: position p (0 = the
// initial position) holds the 1-based real (pass-inclusive) move index of
// the p-th non-pass move. Values are strictly increasing. Built once per
// record, then consulted by position in O(1) and by value with a linear
// scan bounded by game length.
type TurnMap []int

// BuildTurnMap builds the map for a move sequence on the given board size.
func BuildTurnMap(moves []Move, size int) TurnMap {
	m := TurnMap{0}
	for i, mv := range moves {
		if !IsPass(mv.Coord, size) {
			m = append(m, i+1)
		}
	}
	return m
}

// TurnMap builds the map for this record's moves.
func (r *GameRecord) TurnMap() TurnMap {
	return BuildTurnMap(r.Moves, r.Size)
}

// EngineCount is the number of engine positions: 1 + the non-pass move count.
func (m TurnMap) EngineCount() int { return len(m) }

// RealIndex translates an engine turn number back to the real move index.
func (m TurnMap) RealIndex(engineTurn int) (int, bool) {
	if engineTurn < 0 || engineTurn >= len(m) {
		return 0, false
	}
	return m[engineTurn], true
}

// EngineTurn finds the engine turn for a real move index. ok is false when
// the index has no engine turn, i.e. the move is a pass.
func (m TurnMap) EngineTurn(realIndex int) (int, bool) {
	for p, v := range m {
		if v == realIndex {
			return p, true
		}
	}
	return 0, false
}

// EngineTurns re-expresses caller-given real move indices as engine turns.
// Entries that land on passes are dropped silently, not erred.
func (m TurnMap) EngineTurns(realIndices []int) []int {
	var turns []int
	for _, r := range realIndices {
		if p, ok := m.EngineTurn(r); ok {
			turns = append(turns, p)
		}
	}
	return turns
}
