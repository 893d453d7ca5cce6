// Package analyze builds engine queries from parsed records, interprets the
// engine's per-turn response stream, and drives the two-phase
// analyze-then-revisit protocol.
package analyze

import (
	"strconv"

	"github.com/google/uuid"

	"sgf_review/internal/domain"
	"sgf_review/internal/domain/coord"
	"sgf_review/internal/usecase/record"
)

// Options carries the caller side of a query: engine pass-through parameters
// plus fallbacks used when the record itself is silent.
type Options struct {
	Komi          float64 // used when the record carries no komi
	InitialPlayer string  // used when the record carries no PL; "" leaves it to the engine
	Rules         string
	MaxVisits     int
	AnalyzeTurns  []int          // real (pass-inclusive) move indices; nil analyzes every turn
	Overrides     map[string]any // handed to the engine untouched
}

// BuildQuery assembles an analysis request from a record. Moves are the main
// line with passes removed, in (color, COMPACT) pairs; analyzeTurns default
// to every position from 0 through the move count inclusive.
func BuildQuery(rec *record.GameRecord, opts Options) (domain.Query, error) {
	q := domain.Query{
		ID:         uuid.New().String(),
		Rules:      opts.Rules,
		BoardXSize: rec.Size,
		BoardYSize: rec.Size,
		MaxVisits:  opts.MaxVisits,
		Overrides:  opts.Overrides,
	}

	q.Komi = opts.Komi
	if v, ok := rec.RootValue("KM"); ok {
		if komi, err := strconv.ParseFloat(v, 64); err == nil {
			q.Komi = komi
		}
	} else if v, ok := rec.RootValue("KO"); ok {
		// Dialect-alternate komi key, in case the text skipped correction.
		if komi, err := strconv.ParseFloat(v, 64); err == nil {
			q.Komi = komi
		}
	}

	if v, ok := rec.RootValue("PL"); ok {
		q.InitialPlayer = normalizeColor(v)
	} else if opts.InitialPlayer != "" {
		q.InitialPlayer = normalizeColor(opts.InitialPlayer)
	}

	for _, pair := range []struct{ key, color string }{{"AB", "B"}, {"AW", "W"}} {
		for _, raw := range rec.RootValues(pair.key) {
			compact, err := coord.ToCompact(raw)
			if err != nil {
				return domain.Query{}, err
			}
			q.InitialStones = append(q.InitialStones, [2]string{pair.color, compact})
		}
	}

	for _, mv := range rec.Moves {
		if rec.IsPass(mv) {
			continue
		}
		compact, err := coord.ToCompact(mv.Coord)
		if err != nil {
			return domain.Query{}, err
		}
		q.Moves = append(q.Moves, [2]string{mv.Color, compact})
	}

	if opts.AnalyzeTurns == nil {
		q.AnalyzeTurns = make([]int, len(q.Moves)+1)
		for i := range q.AnalyzeTurns {
			q.AnalyzeTurns[i] = i
		}
	} else {
		q.AnalyzeTurns = rec.TurnMap().EngineTurns(opts.AnalyzeTurns)
	}

	return q, nil
}

func normalizeColor(v string) string {
	switch v {
	case "B", "b", "black", "Black":
		return "B"
	case "W", "w", "white", "White":
		return "W"
	}
	return v
}
