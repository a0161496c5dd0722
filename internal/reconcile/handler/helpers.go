package handler

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"matcher-service/internal/reconcile/model"
	"matcher-service/internal/utils"
)

// Колонки по умолчанию: типичные заголовки выгрузок 1С и прайсов поставщиков.
func DefaultMaterialMapping() model.Mapping {
	return model.Mapping{
		IDKey:          "Код|Артикул|ID|Номер",
		NameKey:        "Наименование|Номенклатура|Материал|Name",
		DescriptionKey: "Описание|Характеристика|Description",
		CategoryKey:    "Категория|Группа|Category",
		BrandKey:       "Бренд|Производитель|Завод-изготовитель|Brand",
		ModelKey:       "Модель|Марка|Тип|Model",
		UnitKey:        "Ед. изм.|Единица|Unit",
		HeaderRow:      1,
	}
}

func DefaultPriceMapping() model.Mapping {
	m := DefaultMaterialMapping()
	m.PriceKey = "Цена|Стоимость|Price"
	m.CurrencyKey = "Валюта|Currency"
	m.SupplierKey = "Поставщик|Supplier"
	return m
}

var headerJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// нормализуем имя колонки: нижний регистр, ё→е, служебные символы в пробел
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "ё", "е").Replace(s)
	s = headerJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// ищем реальный ключ в записи по желаемому имени.
// Поддерживает варианты через "|" (например: "Наименование|Номенклатура")
func resolveKey(rec map[string]string, want string) string {
	want = strings.TrimSpace(want)
	if want == "" {
		return ""
	}
	alts := strings.Split(want, "|")
	for i := range alts {
		alts[i] = strings.TrimSpace(alts[i])
	}

	// точное совпадение как есть
	for _, a := range alts {
		if _, ok := rec[a]; ok {
			return a
		}
	}

	nAlts := make([]string, 0, len(alts))
	for _, a := range alts {
		if n := normHeaderKey(a); n != "" {
			nAlts = append(nAlts, n)
		}
	}

	// точное по нормализованному, потом частичное (want ⊂ key или key ⊂ want);
	// при равном счёте берём лексикографически меньший ключ — обход map случайный
	bestKey, bestScore := "", 0
	for k := range rec {
		nk := normHeaderKey(k)
		if nk == "" {
			continue
		}
		score := 0
		for _, n := range nAlts {
			switch {
			case nk == n:
				score = max(score, 1000)
			case strings.Contains(nk, n) || strings.Contains(n, nk):
				score = max(score, len(n))
			}
		}
		if score > bestScore || (score == bestScore && score > 0 && k < bestKey) {
			bestScore, bestKey = score, k
		}
	}
	return bestKey
}

// resolvedKeys — ключи маппинга, найденные по первой записи таблицы.
type resolvedKeys struct {
	id, name, description, category, brand, model, unit, price, currency, supplier string
	specs                                                                          []string
}

func resolveMapping(sample map[string]string, m model.Mapping) resolvedKeys {
	rk := resolvedKeys{
		id:          resolveKey(sample, m.IDKey),
		name:        resolveKey(sample, m.NameKey),
		description: resolveKey(sample, m.DescriptionKey),
		category:    resolveKey(sample, m.CategoryKey),
		brand:       resolveKey(sample, m.BrandKey),
		model:       resolveKey(sample, m.ModelKey),
		unit:        resolveKey(sample, m.UnitKey),
		price:       resolveKey(sample, m.PriceKey),
		currency:    resolveKey(sample, m.CurrencyKey),
		supplier:    resolveKey(sample, m.SupplierKey),
	}
	for _, s := range m.SpecKeys {
		if k := resolveKey(sample, s); k != "" {
			rk.specs = append(rk.specs, k)
		}
	}
	return rk
}

// повторная шапка внутри таблицы (склейки листов, выгрузки с разрывами)
func looksLikeHeaderMap(m map[string]string) bool {
	cnt := 0
	for _, v := range m {
		s := strings.ToLower(strings.TrimSpace(v))
		if strings.Contains(s, "наимен") || strings.Contains(s, "артикул") ||
			strings.Contains(s, "цена") || strings.Contains(s, "поставщик") {
			cnt++
		}
	}
	return cnt >= 2
}

func specsOf(rec map[string]string, keys []string) map[string]any {
	if len(keys) == 0 {
		return nil
	}
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v := strings.TrimSpace(rec[k]); v != "" {
			out[k] = v
		}
	}
	return out
}

// ToMaterials строит материалы из строк таблицы. Невалидные строки
// пропускаются и логируются; номер строки — как в файле.
func ToMaterials(rows []map[string]string, m model.Mapping, log zerolog.Logger) []*model.MaterialRecord {
	if len(rows) == 0 {
		return nil
	}
	rk := resolveMapping(rows[0], m)
	out := make([]*model.MaterialRecord, 0, len(rows))
	skipped := 0
	for i, rec := range rows {
		if looksLikeHeaderMap(rec) {
			continue
		}
		name := rec[rk.name]
		id := rec[rk.id]
		if id == "" {
			id = "M" + strconv.Itoa(i+1)
		}
		desc := rec[rk.description]
		if desc == "" {
			desc = name // в перечнях материалов описание часто не заполняют
		}
		mat, err := model.NewMaterial(model.MaterialInput{
			ID:             id,
			Name:           name,
			Description:    desc,
			Category:       rec[rk.category],
			Brand:          rec[rk.brand],
			Model:          rec[rk.model],
			Unit:           rec[rk.unit],
			Specifications: specsOf(rec, rk.specs),
		})
		if err != nil {
			skipped++
			log.Debug().Err(err).Int("row", i+m.HeaderRow+1).Msg("skip material row")
			continue
		}
		out = append(out, mat)
	}
	log.Info().
		Str("name_key", rk.name).
		Str("id_key", rk.id).
		Int("rows", len(rows)).
		Int("materials", len(out)).
		Int("skipped", skipped).
		Msg("materials mapped")
	return out
}

// ToPriceItems — то же для прайса. Поставщик берётся из колонки или m.Supplier.
func ToPriceItems(rows []map[string]string, m model.Mapping, log zerolog.Logger) []*model.PriceListItem {
	if len(rows) == 0 {
		return nil
	}
	rk := resolveMapping(rows[0], m)
	out := make([]*model.PriceListItem, 0, len(rows))
	skipped := 0
	for i, rec := range rows {
		if looksLikeHeaderMap(rec) {
			continue
		}
		id := rec[rk.id]
		if id == "" {
			id = "P" + strconv.Itoa(i+1)
		}
		supplier := rec[rk.supplier]
		if supplier == "" {
			supplier = m.Supplier
		}
		item, err := model.NewPriceListItem(model.PriceItemInput{
			ID:             id,
			Name:           rec[rk.name],
			Description:    rec[rk.description],
			Price:          rec[rk.price],
			Currency:       rec[rk.currency],
			Supplier:       supplier,
			Category:       rec[rk.category],
			Brand:          rec[rk.brand],
			Unit:           rec[rk.unit],
			Specifications: specsOf(rec, rk.specs),
		})
		if err != nil {
			skipped++
			log.Debug().Err(err).Int("row", i+m.HeaderRow+1).Msg("skip price row")
			continue
		}
		out = append(out, item)
	}
	log.Info().
		Str("name_key", rk.name).
		Str("price_key", rk.price).
		Int("rows", len(rows)).
		Int("items", len(out)).
		Int("skipped", skipped).
		Msg("price items mapped")
	return out
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on", "да":
		return true
	case "0", "false", "no", "n", "off", "нет":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, ok := utils.ParseFloatRU(s) // "50", "50,5", "50 %"
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// splitList: "a, b;c" → [a b c]
func splitList(s string) []string {
	f := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := f[:0]
	for _, v := range f {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
