package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.\-]`)

var spaceRepl = strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "", ",", ".")

// CleanNumberRU приводит "1 234,50", "197 ,00" (NBSP/NNBSP) к виду "1234.50".
// Второе значение false, если после чистки числа не осталось.
func CleanNumberRU(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	s = spaceRepl.Replace(s)
	// оставить только цифры, точку и минус (на случай мусора)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return "", false
	}
	return s, true
}

// ParseFloatRU парсит "1 234,50", "197 ,00", "2 345,6" и т.п.
func ParseFloatRU(s string) (float64, bool) {
	c, ok := CleanNumberRU(s)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(c, 64)
	return f, err == nil
}

// ParseStrictFloat accepts only a bare number with either decimal separator.
// Spec values like "ip44" or "220в" must stay text.
func ParseStrictFloat(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
