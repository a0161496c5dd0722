package model

// Mapping — какие колонки таблицы читать. Имена поддерживают альтернативы через "|".
type Mapping struct {
	IDKey          string   `json:"id,omitempty"`   // артикул / код позиции
	NameKey        string   `json:"name,omitempty"` // наименование
	DescriptionKey string   `json:"description,omitempty"`
	CategoryKey    string   `json:"category,omitempty"`
	BrandKey       string   `json:"brand,omitempty"` // бренд / завод-изготовитель
	ModelKey       string   `json:"model,omitempty"` // тип, марка
	UnitKey        string   `json:"unit,omitempty"`
	PriceKey       string   `json:"price,omitempty"` // только для прайса
	CurrencyKey    string   `json:"currency,omitempty"`
	SupplierKey    string   `json:"supplier,omitempty"`
	SpecKeys       []string `json:"specs,omitempty"`            // колонки, уходящие в характеристики
	HeaderRow      int      `json:"header_row"`                 // строка заголовков (1-based)
	Supplier       string   `json:"default_supplier,omitempty"` // поставщик по умолчанию, если колонки нет
}

// Stats — снимок счётчиков движка.
type Stats struct {
	CacheHitRate             float64 `json:"cache_hit_rate"`
	TotalComputations        int64   `json:"total_computations"`
	AverageComputationTimeMs float64 `json:"average_computation_time_ms"`
	TotalTimeMs              float64 `json:"total_time_ms"`
	CacheSize                int     `json:"cache_size"`
	NormalizationCacheSize   int     `json:"normalization_cache_size"`
	FeatureCacheSize         int     `json:"feature_cache_size"`
	Batches                  int64   `json:"batches"`
	PairsEvaluated           int64   `json:"pairs_evaluated"`
}

// Summary — лучшее совпадение по одному материалу.
type Summary struct {
	MaterialID              string   `json:"material_id"`
	MaterialName            string   `json:"material_name"`
	MaterialCategory        Category `json:"material_category"`
	BestMatchFound          bool     `json:"best_match_found"`
	BestMatchSimilarity     float64  `json:"best_match_similarity"`
	BestMatchItemName       string   `json:"best_match_price_item_name,omitempty"`
	BestMatchSupplier       string   `json:"best_match_supplier,omitempty"`
	BestMatchPrice          string   `json:"best_match_price,omitempty"`
	BestMatchHighConfidence bool     `json:"best_match_high_confidence"`
	TotalMatchesFound       int      `json:"total_matches_found"`
}

// Statistics — агрегаты по всему прогону.
type Statistics struct {
	TotalMaterials            int     `json:"total_materials"`
	MaterialsWithMatches      int     `json:"materials_with_matches"`
	MaterialsWithoutMatches   int     `json:"materials_without_matches"`
	MatchRate                 float64 `json:"match_rate"`
	TotalMatches              int     `json:"total_matches"`
	AverageMatchesPerMaterial float64 `json:"average_matches_per_material"`
	AverageSimilarity         float64 `json:"average_similarity,omitempty"`
	MaxSimilarity             float64 `json:"max_similarity,omitempty"`
	MinSimilarity             float64 `json:"min_similarity,omitempty"`
	HighConfidenceMatches     int     `json:"high_confidence_matches"`
	PerfectMatches            int     `json:"perfect_matches"`
}

// Report — ответ /match и содержимое выгрузки.
type Report struct {
	Results    []SearchResult `json:"results"`
	Summary    []Summary      `json:"summary"`
	Statistics Statistics     `json:"statistics"`
	Stats      Stats          `json:"performance"`
	MinSim     float64        `json:"min_similarity"`
	TopN       int            `json:"top_n,omitempty"`
	MapM       Mapping        `json:"mapping_materials"`
	MapP       Mapping        `json:"mapping_prices"`
}
