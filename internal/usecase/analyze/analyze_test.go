package analyze

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"sgf_review/internal/domain"
	"sgf_review/internal/usecase/report"
)

// scriptedEngine replays canned response batches and records every query.
type scriptedEngine struct {
	batches [][]domain.Response
	queries []domain.Query
}

func (e *scriptedEngine) Analyze(_ context.Context, q domain.Query) ([]domain.Response, error) {
	e.queries = append(e.queries, q)
	if len(e.batches) == 0 {
		return nil, nil
	}
	batch := e.batches[0]
	e.batches = e.batches[1:]
	return batch, nil
}

func testConfig() Config {
	return Config{
		Query:            Options{Komi: 6.5, MaxVisits: 100},
		RevisitVisits:    400,
		RevisitThreshold: 0.10,
		Thresholds:       report.Thresholds{GoodCeiling: 0.05, BadFloor: 0.10, HotSpotFloor: 0.15},
	}
}

func TestAnalyzerRunTwoPhase(t *testing.T) {
	engine := &scriptedEngine{batches: [][]domain.Response{
		{
			resp(0, 0.50), resp(1, 0.48), resp(2, 0.30), resp(3, 0.31),
		},
		{
			{
				TurnNumber: 1,
				RootInfo:   domain.RootInfo{Winrate: 0.47},
				MoveInfos: []domain.MoveInfo{
					{Move: "Q16", Winrate: 0.49, PV: []string{"Q16", "D4"}},
				},
			},
		},
	}}
	a := NewAnalyzer(engine, testConfig(), zap.NewNop().Sugar())

	res, err := a.Run(context.Background(), "(;SZ[19]PB[Lee]PW[Gu];B[dd];W[pp];B[cc])")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(engine.queries) != 2 {
		t.Fatalf("engine calls = %d, want 2", len(engine.queries))
	}
	first, second := engine.queries[0], engine.queries[1]
	if !reflect.DeepEqual(first.AnalyzeTurns, []int{0, 1, 2, 3}) {
		t.Errorf("first pass turns = %v, want [0 1 2 3]", first.AnalyzeTurns)
	}
	if first.MaxVisits != 100 {
		t.Errorf("first pass visits = %d, want 100", first.MaxVisits)
	}
	// The 0.18 gap between turns 1 and 2 flags turn 1 for the second pass.
	if !reflect.DeepEqual(second.AnalyzeTurns, []int{1}) {
		t.Errorf("revisit turns = %v, want [1]", second.AnalyzeTurns)
	}
	if second.MaxVisits != 400 {
		t.Errorf("revisit visits = %d, want 400", second.MaxVisits)
	}
	if second.ID == first.ID || second.ID == "" {
		t.Error("revisit query needs a fresh id")
	}

	// Merged stream keeps the revisit record appended, not re-sorted.
	turns := make([]int, len(res.Responses))
	for i, r := range res.Responses {
		turns[i] = r.TurnNumber
	}
	if !reflect.DeepEqual(turns, []int{0, 2, 3, 1}) {
		t.Errorf("merged turns = %v, want [0 2 3 1]", turns)
	}

	// With the revisit value 0.47, move 1 drops 3%, move 2 drops 17%,
	// move 3 drops 1%.
	for _, want := range []string{
		";B[dd]TE[1]",
		";W[pp]BM[1]HO[1]C[",
		";B[cc]TE[1]",
		"47.00% → 30.00% (⇣17.00%)",
		"better: Q16 (49.00%)",
		"PV: Q16 D4",
	} {
		if !strings.Contains(res.Annotated, want) {
			t.Errorf("annotated record lacks %q:\n%s", want, res.Annotated)
		}
	}

	if !strings.Contains(res.Report, "Black (Lee): 2 moves analyzed") {
		t.Errorf("report lacks black header:\n%s", res.Report)
	}
	if !strings.Contains(res.Report, "White (Gu): 1 moves analyzed") {
		t.Errorf("report lacks white header:\n%s", res.Report)
	}
	if !strings.Contains(res.Report, "hot spots: 100.00% (1): #2") {
		t.Errorf("report lacks white hot spot:\n%s", res.Report)
	}
}

func TestAnalyzerRunNoRevisit(t *testing.T) {
	engine := &scriptedEngine{batches: [][]domain.Response{
		{resp(0, 0.50), resp(1, 0.49), resp(2, 0.51)},
	}}
	a := NewAnalyzer(engine, testConfig(), zap.NewNop().Sugar())

	res, err := a.Run(context.Background(), "(;SZ[19];B[dd];W[pp])")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(engine.queries) != 1 {
		t.Fatalf("engine calls = %d, want 1 when nothing crosses the threshold", len(engine.queries))
	}
	if strings.Contains(res.Annotated, "BM[1]") {
		t.Errorf("no move should be marked bad:\n%s", res.Annotated)
	}
}

func TestAnalyzerFromResponses(t *testing.T) {
	a := NewAnalyzer(nil, testConfig(), zap.NewNop().Sugar())
	rec := mustRecord(t, "(;SZ[19];B[dd];W[pp])")
	responses := []domain.Response{resp(0, 0.50), resp(1, 0.52), resp(2, 0.30)}

	res := a.FromResponses(rec, responses)
	if len(res.Players) != 2 || res.Players[0].Color != "B" {
		t.Fatalf("players = %+v", res.Players)
	}
	if len(res.Players[1].Drops) != 1 || res.Players[1].Drops[0].Index != 2 {
		t.Errorf("white drops = %+v, want move 2", res.Players[1].Drops)
	}
	if !strings.Contains(res.Annotated, ";W[pp]BM[1]HO[1]") {
		t.Errorf("annotated record lacks the mark:\n%s", res.Annotated)
	}
}
