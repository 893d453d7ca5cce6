package report

import (
	"reflect"
	"testing"

	"sgf_review/internal/domain"
	"sgf_review/internal/usecase/record"
)

func TestComputeDrops(t *testing.T) {
	rec, err := record.FromText("(;SZ[19];B[dd];W[];B[pp])")
	if err != nil {
		t.Fatalf("FromText error: %v", err)
	}
	responses := []domain.Response{
		{TurnNumber: 2, RootInfo: domain.RootInfo{Winrate: 0.60, ScoreLead: 2.0}},
		{TurnNumber: 0, RootInfo: domain.RootInfo{Winrate: 0.50, ScoreLead: 0.0}},
		{TurnNumber: 1, RootInfo: domain.RootInfo{Winrate: 0.45, ScoreLead: -1.0}},
	}

	drops := ComputeDrops(responses, rec.Moves, rec.TurnMap())
	want := []MoveDrop{
		{Index: 1, Color: "B", WinrateDrop: 0.05, ScoreDrop: 1},
		{Index: 3, Color: "B", WinrateDrop: 0.15, ScoreDrop: 3},
	}
	if len(drops) != 2 {
		t.Fatalf("drops = %d, want 2", len(drops))
	}
	for i := range want {
		if drops[i].Index != want[i].Index || drops[i].Color != want[i].Color {
			t.Errorf("drop %d = %+v, want %+v", i, drops[i], want[i])
		}
		if diff := drops[i].WinrateDrop - want[i].WinrateDrop; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("drop %d winrate = %v, want %v", i, drops[i].WinrateDrop, want[i].WinrateDrop)
		}
	}
}

func TestComputeDropsRevisitWins(t *testing.T) {
	rec, _ := record.FromText("(;SZ[19];B[dd];W[pp])")
	responses := []domain.Response{
		{TurnNumber: 0, RootInfo: domain.RootInfo{Winrate: 0.50}},
		{TurnNumber: 1, RootInfo: domain.RootInfo{Winrate: 0.30}},
		{TurnNumber: 2, RootInfo: domain.RootInfo{Winrate: 0.28}},
		// Appended revisit record for turn 1 replaces the earlier one.
		{TurnNumber: 1, RootInfo: domain.RootInfo{Winrate: 0.45}},
	}
	drops := ComputeDrops(responses, rec.Moves, rec.TurnMap())
	if len(drops) != 2 {
		t.Fatalf("drops = %d, want 2", len(drops))
	}
	if d := drops[0].WinrateDrop; d < 0.049 || d > 0.051 {
		t.Errorf("drop 0 = %v, want 0.05 from the revisit record", d)
	}
}

func TestClassify(t *testing.T) {
	th := Thresholds{GoodCeiling: 0.05, BadFloor: 0.06, HotSpotFloor: 0.15}
	drops := []MoveDrop{
		{Index: 1, Color: "B", WinrateDrop: 0.03},
		{Index: 3, Color: "B", WinrateDrop: 0.20},
		{Index: 5, Color: "B", WinrateDrop: 0.055},
	}
	b := Classify(drops, th)

	if !reflect.DeepEqual(indices(b.Good), []int{1}) {
		t.Errorf("good = %v, want [1]", indices(b.Good))
	}
	// Acceptable is a superset of good.
	if !reflect.DeepEqual(indices(b.Acceptable), []int{1, 5}) {
		t.Errorf("acceptable = %v, want [1 5]", indices(b.Acceptable))
	}
	if !reflect.DeepEqual(indices(b.Bad), []int{3}) {
		t.Errorf("bad = %v, want [3]", indices(b.Bad))
	}
	// Hot spots are a subset of bad.
	if !reflect.DeepEqual(indices(b.HotSpot), []int{3}) {
		t.Errorf("hot spots = %v, want [3]", indices(b.HotSpot))
	}
}

func TestTopListsStable(t *testing.T) {
	drops := []MoveDrop{
		{Index: 1, WinrateDrop: 0.10, ScoreDrop: 1},
		{Index: 2, WinrateDrop: 0.10, ScoreDrop: 3},
		{Index: 3, WinrateDrop: 0.20, ScoreDrop: 1},
		{Index: 4, WinrateDrop: 0.10, ScoreDrop: 2},
	}
	b := Classify(drops, Thresholds{GoodCeiling: 0.01, BadFloor: 0.5, HotSpotFloor: 0.5})

	// Ties keep original move order.
	if got := indices(b.TopWinrate); !reflect.DeepEqual(got, []int{3, 1, 2, 4}) {
		t.Errorf("top winrate = %v, want [3 1 2 4]", got)
	}
	if got := indices(b.TopScore); !reflect.DeepEqual(got, []int{2, 4, 1, 3}) {
		t.Errorf("top score = %v, want [2 4 1 3]", got)
	}

	var many []MoveDrop
	for i := 1; i <= 15; i++ {
		many = append(many, MoveDrop{Index: i, WinrateDrop: 0.10})
	}
	b = Classify(many, Thresholds{GoodCeiling: 0.01, BadFloor: 0.5, HotSpotFloor: 0.5})
	if len(b.TopWinrate) != 10 {
		t.Errorf("top winrate length = %d, want 10", len(b.TopWinrate))
	}
}

func TestFormatDeterministic(t *testing.T) {
	th := Thresholds{GoodCeiling: 0.02, BadFloor: 0.05, HotSpotFloor: 0.15}
	players := []PlayerMoves{
		{Name: "Lee", Color: "B", Drops: []MoveDrop{
			{Index: 1, Color: "B", WinrateDrop: 0.01, ScoreDrop: 0.2},
			{Index: 3, Color: "B", WinrateDrop: 0.21, ScoreDrop: 7.3},
		}},
		{Color: "W", Drops: []MoveDrop{
			{Index: 2, Color: "W", WinrateDrop: 0.03, ScoreDrop: 0.9},
		}},
	}

	first := Format(players, th)
	second := Format(players, th)
	if first != second {
		t.Fatal("identical input must render byte-identical text")
	}

	wantLines := []string{
		"Black (Lee): 2 moves analyzed",
		"  good: 50.00% (1)",
		"  acceptable: 50.00% (1)",
		"  bad: 50.00% (1): #3 ⇣21.00%",
		"  hot spots: 50.00% (1): #3 ⇣21.00%",
		"  top 10 win-rate drops: #3 ⇣21.00%, #1 ⇣1.00%",
		"  top 10 score drops: #3 ⇣7.3, #1 ⇣0.2",
		"White: 1 moves analyzed",
		"  acceptable: 100.00% (1)",
		"  top 10 win-rate drops: #2 ⇣3.00%",
		"  top 10 score drops: #2 ⇣0.9",
		"",
	}
	if got := splitLines(first); !reflect.DeepEqual(got, wantLines) {
		t.Errorf("report:\n%s\nlines = %q", first, got)
	}
}

func TestFormatRemaining(t *testing.T) {
	th := Thresholds{GoodCeiling: 0.02, BadFloor: 0.05, HotSpotFloor: 0.15}
	players := []PlayerMoves{
		{Color: "B", Drops: []MoveDrop{
			{Index: 3, Color: "B", WinrateDrop: 0.10},
			{Index: 9, Color: "B", WinrateDrop: 0.30},
		}},
	}

	got := FormatRemaining(players, th, 5)
	wantLines := []string{
		"Black, remaining bad moves after move 5:",
		"  bad: 50.00% (1): #9 ⇣30.00%",
		"  hot spots: 50.00% (1): #9 ⇣30.00%",
		"",
	}
	if lines := splitLines(got); !reflect.DeepEqual(lines, wantLines) {
		t.Errorf("remaining report:\n%s\nlines = %q", got, lines)
	}
}

func indices(drops []MoveDrop) []int {
	out := make([]int, len(drops))
	for i, d := range drops {
		out[i] = d.Index
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
