package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"matcher-service/internal/utils"
)

// PriceItemInput — строка прайс-листа поставщика до валидации.
type PriceItemInput struct {
	ID             string
	Name           string
	Description    string
	Price          string // "1 234,50" тоже допустимо
	Currency       string
	Supplier       string
	Category       string // пусто — категория не задана
	Brand          string
	Unit           string
	Specifications map[string]any
}

// PriceListItem is immutable once built by NewPriceListItem.
type PriceListItem struct {
	id          string
	name        string
	description string
	price       decimal.Decimal
	currency    Currency
	supplier    string
	category    *Category
	brand       string
	unit        string
	specs       specSet
}

func NewPriceListItem(in PriceItemInput) (*PriceListItem, error) {
	p := &PriceListItem{
		id:          strings.TrimSpace(in.ID),
		name:        strings.TrimSpace(in.Name),
		description: strings.TrimSpace(in.Description),
		currency:    ParseCurrency(in.Currency),
		supplier:    strings.TrimSpace(in.Supplier),
		brand:       strings.TrimSpace(in.Brand),
		unit:        strings.TrimSpace(in.Unit),
		specs:       newSpecSet(in.Specifications),
	}
	if c := strings.TrimSpace(in.Category); c != "" {
		cat := ParseCategory(c)
		p.category = &cat
	}

	var problems []string
	if p.id == "" {
		problems = append(problems, "price list item ID cannot be empty")
	}
	if p.name == "" {
		problems = append(problems, "price list item name cannot be empty")
	}
	if p.supplier == "" {
		problems = append(problems, "supplier cannot be empty")
	}

	price, err := parsePrice(in.Price)
	switch {
	case err != nil:
		problems = append(problems, err.Error())
	case price.IsNegative():
		problems = append(problems, fmt.Sprintf("price cannot be negative: %s", price.StringFixed(2)))
	default:
		p.price = price
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Entity: "price list item", Problems: problems}
	}
	return p, nil
}

func parsePrice(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	clean, ok := utils.CleanNumberRU(s)
	if !ok {
		return decimal.Zero, fmt.Errorf("invalid price value: %q", s)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price value: %q", s)
	}
	return d, nil
}

func (p *PriceListItem) ID() string             { return p.id }
func (p *PriceListItem) Name() string           { return p.name }
func (p *PriceListItem) Description() string    { return p.description }
func (p *PriceListItem) Price() decimal.Decimal { return p.price }
func (p *PriceListItem) Currency() Currency     { return p.currency }
func (p *PriceListItem) Supplier() string       { return p.supplier }
func (p *PriceListItem) Brand() string          { return p.brand }
func (p *PriceListItem) Unit() string           { return p.unit }
func (p *PriceListItem) SpecKeys() []string     { return p.specs.Keys() }
func (p *PriceListItem) SpecCount() int         { return len(p.specs.values) }

func (p *PriceListItem) SpecValue(k string) (string, bool) { return p.specs.Value(k) }

// Category reports false when the supplier gave none.
func (p *PriceListItem) Category() (Category, bool) {
	if p.category == nil {
		return "", false
	}
	return *p.category, true
}

// Equal compares by id alone.
func (p *PriceListItem) Equal(o *PriceListItem) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.id == o.id
}

// FormattedPrice rounds half-up to kopecks: "1234.50 RUB".
func (p *PriceListItem) FormattedPrice() string {
	return p.price.Round(2).StringFixed(2) + " " + string(p.currency)
}

func (p *PriceListItem) String() string {
	return fmt.Sprintf("PriceListItem(id=%q, name=%q, price=%s)", p.id, p.name, p.FormattedPrice())
}

func (p *PriceListItem) MarshalJSON() ([]byte, error) {
	var cat *Category
	if p.category != nil {
		c := *p.category
		cat = &c
	}
	return json.Marshal(struct {
		ID             string            `json:"id"`
		Name           string            `json:"material_name"`
		Description    string            `json:"description,omitempty"`
		Price          decimal.Decimal   `json:"price"`
		Currency       Currency          `json:"currency"`
		FormattedPrice string            `json:"formatted_price"`
		Supplier       string            `json:"supplier"`
		Category       *Category         `json:"category,omitempty"`
		Brand          string            `json:"brand,omitempty"`
		Unit           string            `json:"unit,omitempty"`
		Specifications map[string]string `json:"specifications,omitempty"`
	}{
		ID:             p.id,
		Name:           p.name,
		Description:    p.description,
		Price:          p.price,
		Currency:       p.currency,
		FormattedPrice: p.FormattedPrice(),
		Supplier:       p.supplier,
		Category:       cat,
		Brand:          p.brand,
		Unit:           p.unit,
		Specifications: p.specs.Map(),
	})
}
