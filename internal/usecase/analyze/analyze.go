package analyze

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sgf_review/internal/domain"
	"sgf_review/internal/usecase/record"
	"sgf_review/internal/usecase/report"
)

// Engine runs one analysis query and returns the collected per-turn records.
type Engine interface {
	Analyze(ctx context.Context, q domain.Query) ([]domain.Response, error)
}

// Config tunes the two-phase protocol and the classification stage.
type Config struct {
	Query            Options
	RevisitVisits    int     // visit budget of the second pass
	RevisitThreshold float64 // win-rate gap that flags a turn for revisit
	Thresholds       report.Thresholds
}

// Analyzer drives the full pipeline: parse → query → engine → revisit →
// merge → drops → classify → format → annotate. Every stage is pure, so a
// failed engine call can be retried without any state to reset.
type Analyzer struct {
	engine Engine
	cfg    Config
	log    *zap.SugaredLogger
}

func NewAnalyzer(engine Engine, cfg Config, log *zap.SugaredLogger) *Analyzer {
	return &Analyzer{engine: engine, cfg: cfg, log: log}
}

// Result is everything one analysis produces.
type Result struct {
	Record    *record.GameRecord
	Responses []domain.Response
	Players   []report.PlayerMoves
	Report    string
	Annotated string
}

// Run analyzes one record from source text.
func (a *Analyzer) Run(ctx context.Context, text string) (*Result, error) {
	rec, err := record.FromTextCorrected(text)
	if err != nil {
		return nil, err
	}

	query, err := BuildQuery(rec, a.cfg.Query)
	if err != nil {
		return nil, err
	}

	a.log.Infof("analyzing %d turns with %d visits (query %s)",
		len(query.AnalyzeTurns), query.MaxVisits, query.ID)
	responses, err := a.engine.Analyze(ctx, query)
	if err != nil {
		return nil, err
	}

	turns := DropTurns(responses, a.cfg.RevisitThreshold)
	if len(turns) > 0 {
		// Second, higher-budget pass restricted to the flagged turns.
		revisitQuery := query
		revisitQuery.ID = uuid.New().String()
		revisitQuery.AnalyzeTurns = turns
		revisitQuery.MaxVisits = a.cfg.RevisitVisits

		a.log.Infof("revisiting %d turns with %d visits (query %s)",
			len(turns), revisitQuery.MaxVisits, revisitQuery.ID)
		revisit, err := a.engine.Analyze(ctx, revisitQuery)
		if err != nil {
			return nil, err
		}
		responses = Merge(responses, revisit, turns)
	} else {
		a.log.Info("no turns above the revisit threshold, skipping merge")
	}

	return a.FromResponses(rec, responses), nil
}

// FromResponses runs the engine-free tail of the pipeline. Used by Run and
// by callers replaying a cached or persisted response stream.
func (a *Analyzer) FromResponses(rec *record.GameRecord, responses []domain.Response) *Result {
	drops := report.ComputeDrops(responses, rec.Moves, rec.TurnMap())
	players := SplitPlayers(rec, drops)
	return &Result{
		Record:    rec,
		Responses: responses,
		Players:   players,
		Report:    report.Format(players, a.cfg.Thresholds),
		Annotated: Annotate(rec, responses, drops, a.cfg.Thresholds),
	}
}

// SplitPlayers splits drops per owning color, named from the record's
// player properties. Black first.
func SplitPlayers(rec *record.GameRecord, drops []report.MoveDrop) []report.PlayerMoves {
	black := report.PlayerMoves{Color: "B"}
	white := report.PlayerMoves{Color: "W"}
	black.Name, _ = rec.RootValue("PB")
	white.Name, _ = rec.RootValue("PW")
	for _, d := range drops {
		if d.Color == "B" {
			black.Drops = append(black.Drops, d)
		} else {
			white.Drops = append(white.Drops, d)
		}
	}
	return []report.PlayerMoves{black, white}
}
