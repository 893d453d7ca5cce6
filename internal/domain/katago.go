package domain

// Query is one analysis request written to the engine, JSON per line.
// InitialStones and Moves hold (color, compact-coordinate) pairs.
type Query struct {
	ID            string         `json:"id"`
	Rules         string         `json:"rules,omitempty"`
	Komi          float64        `json:"komi"`
	BoardXSize    int            `json:"boardXSize"`
	BoardYSize    int            `json:"boardYSize"`
	InitialPlayer string         `json:"initialPlayer,omitempty"`
	InitialStones [][2]string    `json:"initialStones,omitempty"`
	Moves         [][2]string    `json:"moves"`
	AnalyzeTurns  []int          `json:"analyzeTurns"`
	MaxVisits     int            `json:"maxVisits,omitempty"`
	Overrides     map[string]any `json:"overrideSettings,omitempty"`
}

// RootInfo is the engine's estimate of the position itself.
type RootInfo struct {
	Winrate   float64 `json:"winrate"`
	ScoreLead float64 `json:"scoreLead"`
	Visits    int     `json:"visits"`
}

// MoveInfo is one ranked candidate continuation.
type MoveInfo struct {
	Move      string   `json:"move"`
	Order     int      `json:"order"`
	Visits    int      `json:"visits"`
	Winrate   float64  `json:"winrate"`
	ScoreLead float64  `json:"scoreLead"`
	PV        []string `json:"pv"`
}

// Response is one per-turn record of the engine's response stream. Fields the
// engine sends beyond these are ignored on decode.
type Response struct {
	ID         string     `json:"id,omitempty"`
	TurnNumber int        `json:"turnNumber"`
	RootInfo   RootInfo   `json:"rootInfo"`
	MoveInfos  []MoveInfo `json:"moveInfos,omitempty"`
	Error      string     `json:"error,omitempty"`
}
