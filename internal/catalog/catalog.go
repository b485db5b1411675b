// Package catalog holds the immutable table of cryptocurrencies the bot can talk about.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"CryptoBuddy/internal/model"
)

var (
	ErrEmptyCatalog = errors.New("catalog is empty")
	ErrInvalidAsset = errors.New("invalid asset")
)

// Catalog is an ordered, read-only set of assets keyed by name.
// Order is insertion order and decides display order and ties.
type Catalog struct {
	assets []model.Asset
	byName map[string]int
}

// New validates the records and builds a Catalog. The slice is copied.
func New(assets []model.Asset) (*Catalog, error) {
	if len(assets) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		assets: make([]model.Asset, len(assets)),
		byName: make(map[string]int, len(assets)),
	}
	copy(c.assets, assets)

	symbols := make(map[string]string, len(assets))
	for i, a := range c.assets {
		if err := validate(a); err != nil {
			return nil, err
		}
		key := strings.ToLower(a.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidAsset, a.Name)
		}
		sym := strings.ToLower(a.Symbol)
		if other, dup := symbols[sym]; dup {
			return nil, fmt.Errorf("%w: symbol %q used by both %s and %s", ErrInvalidAsset, a.Symbol, other, a.Name)
		}
		c.byName[key] = i
		symbols[sym] = a.Name
	}
	return c, nil
}

func validate(a model.Asset) error {
	switch {
	case strings.TrimSpace(a.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidAsset)
	case a.Name != strings.TrimSpace(a.Name):
		return fmt.Errorf("%w: name %q has surrounding whitespace", ErrInvalidAsset, a.Name)
	case strings.TrimSpace(a.Symbol) == "":
		return fmt.Errorf("%w: %s: symbol is required", ErrInvalidAsset, a.Name)
	case a.Symbol != strings.TrimSpace(a.Symbol):
		return fmt.Errorf("%w: %s: symbol %q has surrounding whitespace", ErrInvalidAsset, a.Name, a.Symbol)
	case a.PriceTrend == "":
		return fmt.Errorf("%w: %s: price_trend is required", ErrInvalidAsset, a.Name)
	case !a.MarketCap.Valid():
		return fmt.Errorf("%w: %s: market_cap %q", ErrInvalidAsset, a.Name, a.MarketCap)
	case !a.EnergyUse.Valid():
		return fmt.Errorf("%w: %s: energy_use %q", ErrInvalidAsset, a.Name, a.EnergyUse)
	case !a.RiskLevel.Valid():
		return fmt.Errorf("%w: %s: risk_level %q", ErrInvalidAsset, a.Name, a.RiskLevel)
	case a.MaxSustainability <= 0:
		return fmt.Errorf("%w: %s: max_sustainability must be positive", ErrInvalidAsset, a.Name)
	case a.SustainabilityScore < 0 || a.SustainabilityScore > a.MaxSustainability:
		return fmt.Errorf("%w: %s: sustainability_score %d outside [0,%d]",
			ErrInvalidAsset, a.Name, a.SustainabilityScore, a.MaxSustainability)
	}
	return nil
}

func (c *Catalog) Len() int { return len(c.assets) }

// All returns a copy of the assets in catalog order.
func (c *Catalog) All() []model.Asset {
	out := make([]model.Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Names returns asset names in catalog order.
func (c *Catalog) Names() []string {
	return c.names(func(model.Asset) bool { return true })
}

// Get finds an asset by exact name, ignoring case.
func (c *Catalog) Get(name string) (model.Asset, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return model.Asset{}, false
	}
	return c.assets[i], true
}

// Lookup returns the first asset whose name or symbol occurs in query, ignoring case.
func (c *Catalog) Lookup(query string) (model.Asset, bool) {
	q := strings.ToLower(query)
	for _, a := range c.assets {
		if strings.Contains(q, strings.ToLower(a.Name)) || strings.Contains(q, strings.ToLower(a.Symbol)) {
			return a, true
		}
	}
	return model.Asset{}, false
}

// MostSustainable returns the asset with the highest sustainability score.
// The earliest asset wins ties.
func (c *Catalog) MostSustainable() (model.Asset, error) {
	if c == nil || len(c.assets) == 0 {
		return model.Asset{}, ErrEmptyCatalog
	}
	best := c.assets[0]
	for _, a := range c.assets[1:] {
		if a.SustainabilityScore > best.SustainabilityScore {
			best = a
		}
	}
	return best, nil
}

func (c *Catalog) FilterByTrend(t model.Trend) []string {
	return c.names(func(a model.Asset) bool { return a.PriceTrend == t })
}

func (c *Catalog) FilterByEnergy(l model.Level) []string {
	return c.names(func(a model.Asset) bool { return a.EnergyUse == l })
}

func (c *Catalog) FilterByMarketCap(l model.Level) []string {
	return c.names(func(a model.Asset) bool { return a.MarketCap == l })
}

// Filter returns copies of the assets keep accepts, in catalog order.
func (c *Catalog) Filter(keep func(model.Asset) bool) []model.Asset {
	var out []model.Asset
	for _, a := range c.assets {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (c *Catalog) names(keep func(model.Asset) bool) []string {
	var out []string
	for _, a := range c.Filter(keep) {
		out = append(out, a.Name)
	}
	return out
}
