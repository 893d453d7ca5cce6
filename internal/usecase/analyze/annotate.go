package analyze

import (
	"fmt"
	"sort"
	"strings"

	"sgf_review/internal/domain"
	"sgf_review/internal/usecase/record"
	"sgf_review/internal/usecase/report"
)

// Annotate splices engine verdicts back into the record's sequence text and
// returns the full annotated record. Good moves get TE[1]; bad moves get
// BM[1] (plus HO[1] past the hot-spot floor) and a comment with the
// win-rate swing and the engine's preferred continuation at the position
// before the mistake. Untouched nodes stay byte for byte identical.
func Annotate(rec *record.GameRecord, responses []domain.Response, drops []report.MoveDrop, th report.Thresholds) string {
	byTurn := make(map[int]domain.Response, len(responses))
	for _, resp := range responses {
		byTurn[resp.TurnNumber] = resp
	}
	tm := rec.TurnMap()

	sorted := make([]report.MoveDrop, len(drops))
	copy(sorted, drops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	seq := rec.Sequence
	shift := 0
	for _, d := range sorted {
		if d.Index < 1 || d.Index > len(rec.Moves) {
			continue
		}
		// Aim at the move's own '[' so the scan cannot catch the closing
		// bracket of an earlier splice.
		offset := rec.Moves[d.Index-1].Offset + shift + 2
		before := len(seq)

		// Comment first, mark second: both splice right after the move's
		// closing bracket, so the later splice ends up leftmost.
		if d.WinrateDrop >= th.BadFloor {
			if comment := verdictComment(d, byTurn, tm); comment != "" {
				seq, _ = record.AttachComment(seq, comment, offset)
			}
		}

		switch {
		case d.WinrateDrop >= th.HotSpotFloor:
			seq, _ = record.MarkBadHotSpot(seq, offset)
		case d.WinrateDrop >= th.BadFloor:
			seq, _ = record.MarkBad(seq, offset)
		case d.WinrateDrop < th.GoodCeiling:
			seq, _ = record.MarkGood(seq, offset)
		}
		shift += len(seq) - before
	}

	return rec.TextWithSequence(seq)
}

// verdictComment describes a bad move: the win-rate swing across it and the
// engine's best alternative (with PV) from the position just before.
func verdictComment(d report.MoveDrop, byTurn map[int]domain.Response, tm record.TurnMap) string {
	engineTurn, ok := tm.EngineTurn(d.Index)
	if !ok {
		return ""
	}
	after, okAfter := byTurn[engineTurn]
	prev, okPrev := byTurn[engineTurn-1]
	if !okAfter || !okPrev {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%.2f%% → %.2f%% (⇣%.2f%%)",
		prev.RootInfo.Winrate*100, after.RootInfo.Winrate*100, d.WinrateDrop*100)
	if len(prev.MoveInfos) > 0 {
		best := prev.MoveInfos[0]
		fmt.Fprintf(&b, "\nbetter: %s (%.2f%%)", best.Move, best.Winrate*100)
		if len(best.PV) > 0 {
			fmt.Fprintf(&b, "\nPV: %s", strings.Join(best.PV, " "))
		}
	}
	return b.String()
}
