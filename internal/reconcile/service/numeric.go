package service

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const num = `(\d+(?:[.,]\d+)?)`

// 3x2.5, 1×70, 4*16
var reSize = regexp.MustCompile(num + `\s*[xх×*]\s*` + num)

// 10-20, 0,5–1,5 мм
var reRange = regexp.MustCompile(num + `\s*[-–—]\s*` + num)

// 16а, 220в, 2.5 мм², 60 вт. Однобуквенные а/в только слитно с числом:
// в "3 в упаковке" это предлог.
var reValue = regexp.MustCompile(num + `(?:\s*(мм²|мм2|мм|вт|w|кв)|(а|в))(?:[^\p{L}\p{N}]|$)`)

// numericFeatures извлекает размеры, диапазоны и «число+единица» из сырого имени.
// Числа канонизируются: "2,50" и "2.5" дают один признак.
func numericFeatures(s string) []string {
	if s == "" {
		return nil
	}
	low := strings.ToLower(unifyLookalikes(s))

	set := make(map[string]struct{})
	for _, m := range reSize.FindAllStringSubmatch(low, -1) {
		set["size:"+canonNumber(m[1])+"x"+canonNumber(m[2])] = struct{}{}
	}
	for _, m := range reRange.FindAllStringSubmatch(low, -1) {
		set["range:"+canonNumber(m[1])+"-"+canonNumber(m[2])] = struct{}{}
	}
	for _, m := range reValue.FindAllStringSubmatch(low, -1) {
		unit := m[2]
		if unit == "" {
			unit = m[3]
		}
		set["value:"+canonNumber(m[1])+canonUnit(unit)] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func canonNumber(s string) string {
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func canonUnit(u string) string {
	switch u {
	case "мм2":
		return "мм²"
	case "w":
		return "вт"
	}
	return u
}

// numericCompatible: конфликт только если у обеих сторон есть признаки и они не пересекаются.
func numericCompatible(fa, fb []string) bool {
	if len(fa) == 0 || len(fb) == 0 {
		return true
	}
	i, j := 0, 0
	for i < len(fa) && j < len(fb) {
		switch {
		case fa[i] == fb[j]:
			return true
		case fa[i] < fb[j]:
			i++
		default:
			j++
		}
	}
	return false
}
