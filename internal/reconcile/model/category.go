package model

import "strings"

type Category string

const (
	CategoryElectrical Category = "electrical"
	CategoryCables     Category = "cables"
	CategoryLighting   Category = "lighting"
	CategorySwitches   Category = "switches"
	CategoryAutomation Category = "automation"
	CategoryGeneral    Category = "general"
)

// русские синонимы категорий из выгрузок
var categoryAliases = map[string]Category{
	"кабель":      CategoryCables,
	"провод":      CategoryCables,
	"светильник":  CategoryLighting,
	"лампа":       CategoryLighting,
	"выключатель": CategorySwitches,
	"автомат":     CategoryAutomation,
	"электрик":    CategoryElectrical,
}

// ParseCategory never fails: anything unknown becomes CategoryGeneral.
func ParseCategory(s string) Category {
	n := strings.ToLower(strings.TrimSpace(s))
	switch c := Category(n); c {
	case CategoryElectrical, CategoryCables, CategoryLighting, CategorySwitches, CategoryAutomation, CategoryGeneral:
		return c
	}
	if c, ok := categoryAliases[n]; ok {
		return c
	}
	return CategoryGeneral
}

// LocalizedName — подпись для отчётов.
func (c Category) LocalizedName() string {
	switch c {
	case CategoryElectrical:
		return "Электрооборудование"
	case CategoryCables:
		return "Кабели и провода"
	case CategoryLighting:
		return "Освещение"
	case CategorySwitches:
		return "Выключатели"
	case CategoryAutomation:
		return "Автоматика"
	default:
		return "Общее"
	}
}

type Currency string

const (
	CurrencyRUB Currency = "RUB"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var currencyAliases = map[string]Currency{
	"RUB":    CurrencyRUB,
	"USD":    CurrencyUSD,
	"EUR":    CurrencyEUR,
	"РУБ":    CurrencyRUB,
	"РУБЛЬ":  CurrencyRUB,
	"РУБ.":   CurrencyRUB,
	"RUR":    CurrencyRUB,
	"$":      CurrencyUSD,
	"ДОЛЛАР": CurrencyUSD,
	"€":      CurrencyEUR,
	"ЕВРО":   CurrencyEUR,
}

// ParseCurrency defaults to RUB on unrecognized input.
func ParseCurrency(s string) Currency {
	if c, ok := currencyAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return c
	}
	return CurrencyRUB
}
