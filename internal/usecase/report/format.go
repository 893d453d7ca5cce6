package report

import (
	"fmt"
	"strings"
)

// PlayerMoves is one player's analyzed moves as raw drops; classification
// happens at render time so the report stays a pure function of
// (drops, thresholds).
type PlayerMoves struct {
	Name  string
	Color string // "B" or "W"
	Drops []MoveDrop
}

// Format renders the move-quality report. Per player, each non-empty bucket
// gets one line with a two-decimal percentage and a count relative to that
// player's analyzed total; bad, hot-spot and top-10 buckets carry an inline
// "#<move> ⇣<value>" list. Empty buckets produce no line.
func Format(players []PlayerMoves, th Thresholds) string {
	var b strings.Builder
	for _, p := range players {
		writePlayer(&b, p, Classify(p.Drops, th), len(p.Drops), false, 0)
	}
	return b.String()
}

// FormatRemaining re-applies the same filters limited to moves after the
// given real move index, listing only the bad and hot-spot buckets. Used
// for incremental review of a partly corrected game.
func FormatRemaining(players []PlayerMoves, th Thresholds, afterIndex int) string {
	var b strings.Builder
	for _, p := range players {
		var rest []MoveDrop
		for _, d := range p.Drops {
			if d.Index > afterIndex {
				rest = append(rest, d)
			}
		}
		writePlayer(&b, PlayerMoves{Name: p.Name, Color: p.Color, Drops: rest},
			Classify(rest, th), len(p.Drops), true, afterIndex)
	}
	return b.String()
}

func writePlayer(b *strings.Builder, p PlayerMoves, buckets Buckets, total int, remainingOnly bool, afterIndex int) {
	if total == 0 {
		return
	}
	name := colorName(p.Color)
	if p.Name != "" {
		name += " (" + p.Name + ")"
	}
	if remainingOnly {
		fmt.Fprintf(b, "%s, remaining bad moves after move %d:\n", name, afterIndex)
	} else {
		fmt.Fprintf(b, "%s: %d moves analyzed\n", name, total)
		writeBucket(b, "good", buckets.Good, total, nil)
		writeBucket(b, "acceptable", buckets.Acceptable, total, nil)
	}
	writeBucket(b, "bad", buckets.Bad, total, winrateTag)
	writeBucket(b, "hot spots", buckets.HotSpot, total, winrateTag)
	if !remainingOnly {
		writeTop(b, "top 10 win-rate drops", buckets.TopWinrate, winrateTag)
		writeTop(b, "top 10 score drops", buckets.TopScore, scoreTag)
	}
}

func writeBucket(b *strings.Builder, label string, drops []MoveDrop, total int, tag func(MoveDrop) string) {
	if len(drops) == 0 {
		return
	}
	pct := float64(len(drops)) / float64(total) * 100
	fmt.Fprintf(b, "  %s: %.2f%% (%d)", label, pct, len(drops))
	writeMoveList(b, drops, tag)
	b.WriteString("\n")
}

func writeTop(b *strings.Builder, label string, drops []MoveDrop, tag func(MoveDrop) string) {
	if len(drops) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s", label)
	writeMoveList(b, drops, tag)
	b.WriteString("\n")
}

func writeMoveList(b *strings.Builder, drops []MoveDrop, tag func(MoveDrop) string) {
	if tag == nil {
		return
	}
	b.WriteString(":")
	for i, d := range drops {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(b, " #%d %s", d.Index, tag(d))
	}
}

func winrateTag(d MoveDrop) string { return fmt.Sprintf("⇣%.2f%%", d.WinrateDrop*100) }
func scoreTag(d MoveDrop) string   { return fmt.Sprintf("⇣%.1f", d.ScoreDrop) }

func colorName(color string) string {
	switch color {
	case "B":
		return "Black"
	case "W":
		return "White"
	}
	return color
}
