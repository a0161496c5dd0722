package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// MaterialInput — сырые поля позиции из внутреннего перечня материалов.
type MaterialInput struct {
	ID             string
	Name           string
	Description    string
	Category       string
	Brand          string
	Model          string
	Unit           string
	Specifications map[string]any
}

// MaterialRecord is immutable once built by NewMaterial. The engine only reads it.
type MaterialRecord struct {
	id          string
	name        string
	description string
	category    Category
	brand       string
	model       string
	unit        string
	specs       specSet
	key         string
}

// NewMaterial trims and validates the input. Unknown categories become general.
func NewMaterial(in MaterialInput) (*MaterialRecord, error) {
	m := &MaterialRecord{
		id:          strings.TrimSpace(in.ID),
		name:        strings.TrimSpace(in.Name),
		description: strings.TrimSpace(in.Description),
		category:    ParseCategory(in.Category),
		brand:       strings.TrimSpace(in.Brand),
		model:       strings.TrimSpace(in.Model),
		unit:        strings.TrimSpace(in.Unit),
		specs:       newSpecSet(in.Specifications),
	}

	var problems []string
	if m.id == "" {
		problems = append(problems, "material ID cannot be empty")
	}
	if m.name == "" {
		problems = append(problems, "material name cannot be empty")
	}
	if m.description == "" {
		problems = append(problems, "material description cannot be empty")
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Entity: "material", Problems: problems}
	}

	m.key = identityKey(m.id, m.name, string(m.category))
	return m, nil
}

func (m *MaterialRecord) ID() string          { return m.id }
func (m *MaterialRecord) Name() string        { return m.name }
func (m *MaterialRecord) Description() string { return m.description }
func (m *MaterialRecord) Category() Category  { return m.category }
func (m *MaterialRecord) Brand() string       { return m.brand }
func (m *MaterialRecord) Model() string       { return m.model }
func (m *MaterialRecord) Unit() string        { return m.unit }

// Key is a stable hash of the identity fields.
func (m *MaterialRecord) Key() string { return m.key }

func (m *MaterialRecord) SpecKeys() []string                  { return m.specs.Keys() }
func (m *MaterialRecord) SpecValue(key string) (string, bool) { return m.specs.Value(key) }
func (m *MaterialRecord) SpecCount() int                      { return len(m.specs.values) }

// Equal compares identity only: id and name.
func (m *MaterialRecord) Equal(o *MaterialRecord) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.id == o.id && m.name == o.name
}

// DisplayName — имя с брендом и моделью для отчётов.
func (m *MaterialRecord) DisplayName() string {
	s := m.name
	if m.brand != "" {
		s += " (" + m.brand + ")"
	}
	if m.model != "" {
		s += " Модель: " + m.model
	}
	return s
}

func (m *MaterialRecord) String() string {
	return fmt.Sprintf("Material(id=%q, name=%q, category=%s)", m.id, m.name, m.category)
}

func (m *MaterialRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID                string            `json:"id"`
		Name              string            `json:"name"`
		Description       string            `json:"description"`
		Category          Category          `json:"category"`
		CategoryLocalized string            `json:"category_localized"`
		Brand             string            `json:"brand,omitempty"`
		Model             string            `json:"model,omitempty"`
		Unit              string            `json:"unit,omitempty"`
		Specifications    map[string]string `json:"specifications,omitempty"`
		DisplayName       string            `json:"display_name"`
	}{
		ID:                m.id,
		Name:              m.name,
		Description:       m.description,
		Category:          m.category,
		CategoryLocalized: m.category.LocalizedName(),
		Brand:             m.brand,
		Model:             m.model,
		Unit:              m.unit,
		Specifications:    m.specs.Map(),
		DisplayName:       m.DisplayName(),
	})
}

// specSet keeps stringified specification values; the caller's map is never retained.
type specSet struct {
	keys   []string
	values map[string]string
}

func newSpecSet(in map[string]any) specSet {
	s := specSet{values: make(map[string]string, len(in))}
	for k, v := range in {
		k = strings.TrimSpace(k)
		if k == "" || v == nil {
			continue
		}
		s.values[k] = fmt.Sprint(v)
		s.keys = append(s.keys, k)
	}
	slices.Sort(s.keys)
	return s
}

func (s specSet) Keys() []string { return slices.Clone(s.keys) }

func (s specSet) Value(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s specSet) Map() map[string]string {
	if len(s.values) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func identityKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
