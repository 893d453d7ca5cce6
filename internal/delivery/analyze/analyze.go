package analyze

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sgf_review/internal/adapters"
	"sgf_review/internal/bootstrap"
	"sgf_review/internal/domain"
	apperr "sgf_review/internal/errors"
	"sgf_review/internal/httpresponse"
	repo "sgf_review/internal/repository"
	analyzeuc "sgf_review/internal/usecase/analyze"
	"sgf_review/internal/usecase/record"
	"sgf_review/internal/usecase/report"
)

// AnalyzeHandler serves the analysis pipeline over HTTP: a one-shot POST, a
// websocket that streams per-turn evaluations live, and archive listing.
type AnalyzeHandler struct {
	cfg      bootstrap.Config
	log      *zap.SugaredLogger
	engine   *repo.EngineClient
	analyzer *analyzeuc.Analyzer
	archive  *repo.ArchiveRepository
	cache    *repo.AnalysisCache
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewAnalyzeHandler(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	engine *repo.EngineClient,
	mongoAdapter *adapters.AdapterMongo,
	redisAdapter *adapters.AdapterRedis,
) *AnalyzeHandler {
	analyzer := analyzeuc.NewAnalyzer(engine, analyzerConfig(cfg), log)
	return &AnalyzeHandler{
		cfg:      cfg,
		log:      log,
		engine:   engine,
		analyzer: analyzer,
		archive:  repo.NewArchiveRepository(mongoAdapter.Database, log),
		cache:    repo.NewAnalysisCache(redisAdapter.GetClient(), log),
	}
}

func analyzerConfig(cfg bootstrap.Config) analyzeuc.Config {
	return analyzeuc.Config{
		Query: analyzeuc.Options{
			Komi:      cfg.DefaultKomi,
			Rules:     cfg.KatagoRules,
			MaxVisits: cfg.MaxVisits,
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

type AnalyzeResponse struct {
	AnnotatedSGF string `json:"annotated_sgf"`
	Report       string `json:"report"`
	Cached       bool   `json:"cached"`
}

// HandleAnalyze runs the full pipeline on the SGF text in the request body.
// A cached response stream for the same canonical record skips the engine.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "failed to read request body"})
		return
	}

	ctx := r.Context()
	text := string(bodyBytes)

	rec, err := record.FromTextCorrected(text)
	if err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	canonical := rec.CanonicalText()
	if cached, found, cacheErr := h.cache.Load(ctx, canonical); cacheErr == nil && found {
		result := h.analyzer.FromResponses(rec, cached)
		httpresponse.WriteResponseWithStatus(w, http.StatusOK, AnalyzeResponse{
			AnnotatedSGF: result.Annotated,
			Report:       result.Report,
			Cached:       true,
		})
		return
	} else if cacheErr != nil {
		h.log.Errorf("cache lookup failed: %v", cacheErr)
	}

	result, err := h.analyzer.Run(ctx, text)
	if err != nil {
		h.log.Errorf("analysis failed: %v", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	if err := h.cache.Save(ctx, canonical, result.Responses); err != nil {
		h.log.Errorf("cache save failed: %v", err)
	}
	h.archivePut(r, result)

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, AnalyzeResponse{
		AnnotatedSGF: result.Annotated,
		Report:       result.Report,
	})
}

func (h *AnalyzeHandler) archivePut(r *http.Request, result *analyzeuc.Result) {
	rec := result.Record
	analysis := domain.ArchivedAnalysis{
		ID:        uuid.New().String(),
		SGF:       rec.CanonicalText(),
		Report:    result.Report,
		CreatedAt: time.Now(),
	}
	analysis.PlayerBlack, _ = rec.RootValue("PB")
	analysis.PlayerWhite, _ = rec.RootValue("PW")
	analysis.Date, _ = rec.RootValue("DT")
	analysis.Result, _ = rec.RootValue("RE")

	if err := h.archive.Put(r.Context(), analysis); err != nil {
		h.log.Errorf("archive put failed: %v", err)
	}
}

// HandleAnalyzeLive upgrades to a websocket, reads one SGF text message, and
// streams every per-turn evaluation record to the client as the engine
// produces it, finishing with the report.
func (h *AnalyzeHandler) HandleAnalyzeLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("upgrade error: %v", err)
		return
	}
	defer conn.Close()

	_, message, err := conn.ReadMessage()
	if err != nil {
		h.log.Errorf("read error: %v", err)
		return
	}

	ctx := r.Context()
	rec, err := record.FromTextCorrected(string(message))
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(err.Error()))
		return
	}

	query, err := analyzeuc.BuildQuery(rec, analyzerConfig(h.cfg).Query)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(err.Error()))
		return
	}

	responses, err := h.engine.AnalyzeStream(ctx, query, func(resp domain.Response) {
		if writeErr := conn.WriteJSON(resp); writeErr != nil {
			h.log.Errorf("write to client error: %v", writeErr)
		}
	})
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(err.Error()))
		return
	}

	result := h.analyzer.FromResponses(rec, responses)
	final := AnalyzeResponse{AnnotatedSGF: result.Annotated, Report: result.Report}
	if err := conn.WriteJSON(final); err != nil {
		h.log.Errorf("write report error: %v", err)
	}
}

// HandleArchiveList lists archived analyses, optionally filtered by player
// name (?player=).
func (h *AnalyzeHandler) HandleArchiveList(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.archive.ListByPlayer(r.Context(), r.URL.Query().Get("player"))
	if err != nil {
		h.log.Errorf("archive list failed: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, analyses)
}

// HandleArchiveGet returns one archived analysis by id.
func (h *AnalyzeHandler) HandleArchiveGet(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.archive.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, apperr.ErrRecordNotFound) {
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: "analysis not found"})
		return
	}
	if err != nil {
		h.log.Errorf("archive get failed: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, analysis)
}
