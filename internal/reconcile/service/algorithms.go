package service

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"matcher-service/internal/reconcile/model"
)

// Базовые веса алгоритмов; перенормируются по выбранному набору.
var algorithmWeights = map[model.Algorithm]float64{
	model.AlgoFuzzyRatio:      0.25,
	model.AlgoTokenSort:       0.25,
	model.AlgoTokenSet:        0.20,
	model.AlgoSequenceMatcher: 0.15,
	model.AlgoSemantic:        0.15,
}

type weightedAlgorithm struct {
	algo   model.Algorithm
	weight float64
}

// algorithmBank combines the selected similarity functions over normalized text.
type algorithmBank struct {
	norm  *Normalizer
	algos []weightedAlgorithm
}

func newAlgorithmBank(n *Normalizer, selected []model.Algorithm) *algorithmBank {
	total := 0.0
	for _, a := range selected {
		total += algorithmWeights[a]
	}
	b := &algorithmBank{norm: n}
	if total == 0 {
		return b
	}
	for _, a := range selected {
		b.algos = append(b.algos, weightedAlgorithm{algo: a, weight: algorithmWeights[a] / total})
	}
	return b
}

// combined expects both inputs already normalized and non-empty.
func (b *algorithmBank) combined(a, c string) float64 {
	if a == c {
		return 1
	}
	sum := 0.0
	for _, wa := range b.algos {
		sum += wa.weight * b.run(wa.algo, a, c)
	}
	return clamp01(sum)
}

func (b *algorithmBank) run(algo model.Algorithm, a, c string) float64 {
	switch algo {
	case model.AlgoFuzzyRatio:
		return editRatio(a, c)
	case model.AlgoTokenSort:
		return tokenSortRatio(a, c)
	case model.AlgoTokenSet:
		return tokenSetRatio(a, c)
	case model.AlgoSequenceMatcher:
		return sequenceRatio(a, c)
	case model.AlgoSemantic:
		return tokenOverlap(b.norm.Tokens(a), b.norm.Tokens(c))
	}
	return 0
}

// normalized similarity in [0..1] on Damerau-Levenshtein distance
func editRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	ra, rb := []rune(a), []rune(b)
	m := max(len(ra), len(rb))
	return 1 - float64(damerauLevenshtein(ra, rb))/float64(m)
}

// tokenSortRatio: сортируем токены по алфавиту (устойчиво к порядку слов)
func tokenSortRatio(a, b string) float64 {
	return editRatio(tokenSort(a), tokenSort(b))
}

// tokenSetRatio сравнивает общее ядро токенов с каждым «ядро + остаток»
// и берёт лучший из трёх вариантов.
func tokenSetRatio(a, b string) float64 {
	sa, sb := wordSet(a), wordSet(b)
	var sect, onlyA, onlyB []string
	for w := range sa {
		if _, ok := sb[w]; ok {
			sect = append(sect, w)
		} else {
			onlyA = append(onlyA, w)
		}
	}
	for w := range sb {
		if _, ok := sa[w]; !ok {
			onlyB = append(onlyB, w)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	core := strings.Join(sect, " ")
	withA := strings.TrimSpace(core + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(core + " " + strings.Join(onlyB, " "))

	return max(editRatio(core, withA), editRatio(core, withB), editRatio(withA, withB))
}

// sequenceRatio — 2*M/T по совпадающим блокам (Ratcliff/Obershelp).
func sequenceRatio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// tokenOverlap — Jaccard по множествам токенов с «бонусом» за сильное пересечение.
// Оба слайса отсортированы и без повторов.
func tokenOverlap(ta, tb []string) float64 {
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	i, j := 0, 0
	for i < len(ta) && j < len(tb) {
		switch {
		case ta[i] == tb[j]:
			inter++
			i++
			j++
		case ta[i] < tb[j]:
			i++
		default:
			j++
		}
	}
	union := len(ta) + len(tb) - inter
	jaccard := float64(inter) / float64(union)
	switch {
	case jaccard >= 0.8:
		return 0.95
	case jaccard >= 0.6:
		return 0.85
	default:
		return jaccard
	}
}

func wordSet(s string) map[string]struct{} {
	f := strings.Fields(s)
	m := make(map[string]struct{}, len(f))
	for _, w := range f {
		m[w] = struct{}{}
	}
	return m
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
