// Command review analyzes SGF game records in batch: each file is sent
// through the engine, and an annotated copy, a response side-car, and a
// move-quality report are produced next to it. A failure on one file never
// stops the rest of the batch.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sgf_review/internal/bootstrap"
	repo "sgf_review/internal/repository"
	analyzeuc "sgf_review/internal/usecase/analyze"
	"sgf_review/internal/usecase/record"
	"sgf_review/internal/usecase/report"
)

var (
	flagConfig   string
	flagVisits   int
	flagRevisit  int
	flagKomi     float64
	flagTurns    []int
	flagOutDir   string
	flagNoEngine bool
)

var rootCmd = &cobra.Command{
	Use:   "review [files...]",
	Short: "Analyze SGF game records with KataGo and report move quality",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", ".env", "config file")
	rootCmd.Flags().IntVar(&flagVisits, "visits", 0, "visit budget of the first pass (overrides config)")
	rootCmd.Flags().IntVar(&flagRevisit, "revisit-visits", 0, "visit budget of the revisit pass (overrides config)")
	rootCmd.Flags().Float64Var(&flagKomi, "komi", 0, "komi when the record carries none (overrides config)")
	rootCmd.Flags().IntSliceVar(&flagTurns, "turns", nil, "move numbers to analyze, pass-inclusive; default all")
	rootCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "output directory; default next to each input")
	rootCmd.Flags().BoolVar(&flagNoEngine, "from-sidecar", false, "rebuild report and annotations from existing side-cars")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	var engine *repo.EngineClient
	if !flagNoEngine {
		engine, err = repo.NewEngineClient(cfg, logger)
		if err != nil {
			return err
		}
		defer engine.Close()
	}

	analyzer := analyzeuc.NewAnalyzer(engine, analyzerConfig(cfg), logger)

	failed := 0
	for _, path := range args {
		if err := processFile(cmd, analyzer, path); err != nil {
			logger.Errorf("%s: %v", path, err)
			failed++
		}
	}
	if failed == len(args) {
		return fmt.Errorf("all %d records failed", failed)
	}
	return nil
}

func processFile(cmd *cobra.Command, analyzer *analyzeuc.Analyzer, path string) error {
	base := outputBase(path)

	var result *analyzeuc.Result
	if flagNoEngine {
		canonical, responses, err := repo.LoadSidecar(base + ".ndjson")
		if err != nil {
			return err
		}
		rec, err := record.FromText(canonical)
		if err != nil {
			return err
		}
		result = analyzer.FromResponses(rec, responses)
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		result, err = analyzer.Run(cmd.Context(), string(data))
		if err != nil {
			return err
		}
		if err := repo.SaveSidecar(base+".ndjson", result.Record.CanonicalText(), result.Responses); err != nil {
			return err
		}
	}

	if err := os.WriteFile(base+"-analyzed.sgf", []byte(result.Annotated), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s", path, result.Report)
	return nil
}

func outputBase(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if flagOutDir != "" {
		base = filepath.Join(flagOutDir, filepath.Base(base))
	}
	return base
}

func applyFlags(cfg *bootstrap.Config) {
	if flagVisits > 0 {
		cfg.MaxVisits = flagVisits
	}
	if flagRevisit > 0 {
		cfg.RevisitVisits = flagRevisit
	}
	if flagKomi != 0 {
		cfg.DefaultKomi = flagKomi
	}
}

func analyzerConfig(cfg *bootstrap.Config) analyzeuc.Config {
	return analyzeuc.Config{
		Query: analyzeuc.Options{
			Komi:         cfg.DefaultKomi,
			Rules:        cfg.KatagoRules,
			MaxVisits:    cfg.MaxVisits,
			AnalyzeTurns: flagTurns,
		},
		RevisitVisits:    cfg.RevisitVisits,
		RevisitThreshold: cfg.RevisitWinrateDrop,
		Thresholds: report.Thresholds{
			GoodCeiling:  cfg.GoodMoveCeiling,
			BadFloor:     cfg.BadMoveFloor,
			HotSpotFloor: cfg.HotSpotFloor,
		},
	}
}

func newLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
