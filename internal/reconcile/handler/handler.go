package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"matcher-service/internal/config"
	"matcher-service/internal/fileio"
	"matcher-service/internal/middleware"
	"matcher-service/internal/reconcile/model"
	recSvc "matcher-service/internal/reconcile/service"
)

// Handler — HTTP-обёртка над движком. Движок один на процесс, кеши общие.
type Handler struct {
	cfg    config.Config
	engine *recSvc.Engine
	log    zerolog.Logger
}

func New(cfg config.Config, engine *recSvc.Engine, logger zerolog.Logger) *Handler {
	return &Handler{cfg: cfg, engine: engine, log: logger}
}

type scoreRequest struct {
	A string `json:"a"`
	B string `json:"b"`
}

type scoreResponse struct {
	Similarity float64 `json:"similarity"`
	Percent    float64 `json:"similarity_percentage"`
}

// Score — POST /score {"a": "...", "b": "..."}
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	v := h.engine.ScoreText(req.A, req.B)
	writeJSON(w, h.requestLog(r), http.StatusOK, scoreResponse{Similarity: v, Percent: v * 100})
}

// Stats — GET /stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.requestLog(r), http.StatusOK, h.engine.Stats())
}

// ClearCaches — DELETE /caches
func (h *Handler) ClearCaches(w http.ResponseWriter, r *http.Request) {
	h.engine.ClearCaches()
	w.WriteHeader(http.StatusNoContent)
}

// Match — POST /match, multipart: файлы materials и prices плюс маппинг колонок.
// Поля маппинга: m_name, m_id, ..., p_price, p_supplier; m_specs/p_specs через запятую.
// summary_only=1 — без списка пар, только сводка и статистика.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := h.requestLog(r)

	if err := r.ParseMultipartForm(int64(h.cfg.MaxUploadMB) << 20); err != nil {
		writeError(w, http.StatusBadRequest, "bad multipart form: "+err.Error())
		return
	}

	mm := mappingFromForm(r, "m_", DefaultMaterialMapping())
	pm := mappingFromForm(r, "p_", DefaultPriceMapping())

	matRows, err := readUpload(r, "materials", mm.HeaderRow)
	if err != nil {
		writeError(w, statusFor(err), "materials: "+err.Error())
		return
	}
	priceRows, err := readUpload(r, "prices", pm.HeaderRow)
	if err != nil {
		writeError(w, statusFor(err), "prices: "+err.Error())
		return
	}

	materials := ToMaterials(matRows.Rows, mm, log)
	items := ToPriceItems(priceRows.Rows, pm, log)

	minSim := toFloat(r.FormValue("min_similarity"), h.engine.MinSimilarity())
	if minSim < 0 || minSim > 100 {
		writeError(w, http.StatusBadRequest, "min_similarity must be within 0-100")
		return
	}
	topN := atoi(r.FormValue("top_n"), 0)

	ctx := log.WithContext(r.Context())
	results := recSvc.TopMatches(h.engine.MatchBatch(ctx, materials, items, minSim), topN)

	rep := model.Report{
		Results:    results,
		Summary:    recSvc.Summarize(materials, results),
		Statistics: recSvc.Statistics(materials, results),
		Stats:      h.engine.Stats(),
		MinSim:     minSim,
		TopN:       topN,
		MapM:       mm,
		MapP:       pm,
	}
	if toBool(r.FormValue("summary_only"), false) {
		rep.Results = nil
	}

	if format := r.FormValue("format"); format == "xlsx" {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="matches.xlsx"`)
		if err := fileio.WriteReportXLSX(w, rep); err != nil {
			log.Error().Err(err).Msg("write xlsx")
			return
		}
	} else {
		writeJSON(w, log, http.StatusOK, rep)
	}

	log.Info().
		Int("materials", len(materials)).
		Int("items", len(items)).
		Int("results", len(results)).
		Dur("elapsed", time.Since(start)).
		Msg("match done")
}

func (h *Handler) requestLog(r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return h.log.With().Str("rid", rid).Logger()
	}
	return h.log
}

func readUpload(r *http.Request, field string, headerRow int) (fileio.Table, error) {
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return fileio.Table{}, errMissingFile
	}
	defer func(f multipart.File) { _ = f.Close() }(f)
	return fileio.ReadTable(f, hdr.Filename, headerRow)
}

var errMissingFile = errors.New("missing file")

func statusFor(err error) int {
	switch {
	case errors.Is(err, errMissingFile), errors.Is(err, fileio.ErrUnsupportedFormat):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func mappingFromForm(r *http.Request, prefix string, def model.Mapping) model.Mapping {
	m := def
	set := func(dst *string, key string) {
		if v := r.FormValue(prefix + key); v != "" {
			*dst = v
		}
	}
	set(&m.IDKey, "id")
	set(&m.NameKey, "name")
	set(&m.DescriptionKey, "description")
	set(&m.CategoryKey, "category")
	set(&m.BrandKey, "brand")
	set(&m.ModelKey, "model")
	set(&m.UnitKey, "unit")
	set(&m.PriceKey, "price")
	set(&m.CurrencyKey, "currency")
	set(&m.SupplierKey, "supplier_col")
	set(&m.Supplier, "supplier")
	if v := r.FormValue(prefix + "specs"); v != "" {
		m.SpecKeys = splitList(v)
	}
	m.HeaderRow = atoi(r.FormValue(prefix+"header_row"), def.HeaderRow)
	return m
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
