package service

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Латиница→кириллица (визуальные двойники)
var lookalikes = map[rune]rune{
	'A': 'А', 'B': 'В', 'C': 'С', 'E': 'Е', 'H': 'Н', 'K': 'К', 'M': 'М', 'O': 'О', 'P': 'Р', 'T': 'Т', 'X': 'Х', 'Y': 'У',
	'a': 'а', 'c': 'с', 'e': 'е', 'o': 'о', 'p': 'р', 'x': 'х', 'y': 'у',
}

// 0,5 → 0.5
var decComma = regexp.MustCompile(`(\d),(\d)`)

// Всё, кроме букв/цифр/пробелов и разделителей размеров, превращаем в пробел
var punct = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-.,()×x²]+`)

// Группы синонимов: любой член группы заменяется первым.
var synonymGroups = [][]string{
	{"led", "светодиодный"},
	{"автомат", "выключатель"},
	{"мм²", "мм2", "кв.мм"},
	{"w", "вт", "ватт"},
}

var stopWords = map[string]struct{}{
	"для": {}, "и": {}, "с": {}, "на": {}, "в": {}, "к": {}, "от": {}, "до": {}, "по": {}, "за": {}, "при": {},
	"или": {}, "но": {}, "а": {}, "что": {}, "как": {}, "это": {}, "все": {}, "еще": {},
}

// synonyms строится из synonymGroups, ключи проходят ту же унификацию, что и текст.
var synonyms = buildSynonyms()

func buildSynonyms() map[string]string {
	out := make(map[string]string)
	for _, g := range synonymGroups {
		canon := strings.ToLower(unifyLookalikes(g[0]))
		for _, w := range g {
			out[strings.ToLower(unifyLookalikes(w))] = canon
		}
	}
	return out
}

// Normalizer — канонизация строк для сравнения, с ограниченным кешем.
type Normalizer struct {
	normCache  *boundedCache[string, string]
	tokenCache *boundedCache[string, []string]
}

func NewNormalizer(capacity int) *Normalizer {
	return &Normalizer{
		normCache:  newBoundedCache[string, string](capacity),
		tokenCache: newBoundedCache[string, []string](capacity),
	}
}

// Normalize is a pure function of s; results are cached.
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}
	if v, ok := n.normCache.Get(s); ok {
		return v
	}
	v := normalize(s)
	n.normCache.Put(s, v)
	return v
}

// Tokens returns the sorted unique non-stop-word tokens of the normalized s.
// The slice is shared with the cache and must not be modified.
func (n *Normalizer) Tokens(s string) []string {
	if s == "" {
		return nil
	}
	if v, ok := n.tokenCache.Get(s); ok {
		return v
	}
	v := tokenize(n.Normalize(s))
	n.tokenCache.Put(s, v)
	return v
}

func (n *Normalizer) Len() int { return n.normCache.Len() }

func (n *Normalizer) Clear() {
	n.normCache.Clear()
	n.tokenCache.Clear()
}

// === normalize — главный конвейер ===
func normalize(s string) string {
	if s == "" {
		return ""
	}
	// 1) Unicode NFC
	out := norm.NFC.String(s)

	// 2) Двойники лат↔кир, ё→е
	out = unifyLookalikes(out)

	// 3) Регистр
	out = strings.ToLower(out)

	// 4) Десятичные: 3,2 → 3.2 (делаем ДО чистки пунктуации)
	out = decComma.ReplaceAllString(out, "$1.$2")

	// 5) Пунктуация и пробелы
	out = removePunctToSpaces(out)

	// 6) Синонимы по токенам
	words := strings.Fields(out)
	for i, w := range words {
		if c, ok := synonyms[w]; ok {
			words[i] = c
		}
	}
	return strings.Join(words, " ")
}

func tokenize(normalized string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range strings.Fields(normalized) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// ===== helpers =====

// Ё→Е, лат→кир по lookalikes
func unifyLookalikes(s string) string {
	b := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case 'ё':
			r = 'е'
		case 'Ё':
			r = 'Е'
		default:
			if rr, ok := lookalikes[r]; ok {
				r = rr
			}
		}
		b = append(b, r)
	}
	return string(b)
}

func removePunctToSpaces(s string) string {
	return collapseSpaces(punct.ReplaceAllString(s, " "))
}

// Лексикографическая сортировка токенов
func tokenSort(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
