// Package report buckets per-move win-rate and score drops and renders the
// textual move-quality report. Every stage is a pure function of its inputs:
// identical drops and thresholds always produce byte-identical text.
package report

import (
	"sort"

	"sgf_review/internal/domain"
	"sgf_review/internal/usecase/record"
)

// MoveDrop is one move's quality measured against the position before it.
// It is always derived from two adjacent response records, never stored on
// its own.
type MoveDrop struct {
	Index       int    // 1-based real (pass-inclusive) move index
	Color       string // owning player, "B" or "W"
	WinrateDrop float64
	ScoreDrop   float64
}

// Thresholds classify drops; goodCeiling < badFloor <= hotSpotFloor, each
// in (0,1).
type Thresholds struct {
	GoodCeiling  float64
	BadFloor     float64
	HotSpotFloor float64
}

// ComputeDrops derives per-move drops from a merged response stream. The
// stream is sorted defensively; when several records carry the same turn
// number, the later one (a revisit record) wins. Only pairs of consecutive
// engine turns produce a drop.
func ComputeDrops(responses []domain.Response, moves []record.Move, tm record.TurnMap) []MoveDrop {
	byTurn := make(map[int]domain.Response, len(responses))
	for _, resp := range responses {
		byTurn[resp.TurnNumber] = resp
	}
	turns := make([]int, 0, len(byTurn))
	for t := range byTurn {
		turns = append(turns, t)
	}
	sort.Ints(turns)

	var drops []MoveDrop
	for i := 1; i < len(turns); i++ {
		prev, cur := turns[i-1], turns[i]
		if cur != prev+1 {
			continue
		}
		realIndex, ok := tm.RealIndex(cur)
		if !ok || realIndex < 1 || realIndex > len(moves) {
			continue
		}
		a, b := byTurn[prev].RootInfo, byTurn[cur].RootInfo
		drops = append(drops, MoveDrop{
			Index:       realIndex,
			Color:       moves[realIndex-1].Color,
			WinrateDrop: abs(a.Winrate - b.Winrate),
			ScoreDrop:   abs(a.ScoreLead - b.ScoreLead),
		})
	}
	return drops
}

// Buckets is the classification of one player's drops. The buckets are not
// exclusive: acceptable contains good, and hot spots are a subset of bad.
type Buckets struct {
	Good       []MoveDrop // drop < goodCeiling
	Acceptable []MoveDrop // drop < badFloor
	Bad        []MoveDrop // drop >= badFloor
	HotSpot    []MoveDrop // drop >= hotSpotFloor
	TopWinrate []MoveDrop // up to 10, stable descending by winrate drop
	TopScore   []MoveDrop // up to 10, stable descending by score drop
}

// Classify buckets drops under the thresholds. Pure function, never
// persisted as state.
func Classify(drops []MoveDrop, th Thresholds) Buckets {
	var b Buckets
	for _, d := range drops {
		if d.WinrateDrop < th.GoodCeiling {
			b.Good = append(b.Good, d)
		}
		if d.WinrateDrop < th.BadFloor {
			b.Acceptable = append(b.Acceptable, d)
		} else {
			b.Bad = append(b.Bad, d)
		}
		if d.WinrateDrop >= th.HotSpotFloor {
			b.HotSpot = append(b.HotSpot, d)
		}
	}
	b.TopWinrate = topBy(drops, func(d MoveDrop) float64 { return d.WinrateDrop })
	b.TopScore = topBy(drops, func(d MoveDrop) float64 { return d.ScoreDrop })
	return b
}

// topBy returns up to ten drops in stable descending key order; ties keep
// original move order.
func topBy(drops []MoveDrop, key func(MoveDrop) float64) []MoveDrop {
	sorted := make([]MoveDrop, len(drops))
	copy(sorted, drops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	return sorted
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
