package model

// Trend is the recent price direction of an asset.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// Level is a coarse low/medium/high rating used for market cap and energy use.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Risk is the investment risk rating of an asset.
type Risk string

const (
	RiskLow        Risk = "low"
	RiskMedium     Risk = "medium"
	RiskMediumHigh Risk = "medium-high"
	RiskHigh       Risk = "high"
)

func (r Risk) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskMediumHigh, RiskHigh:
		return true
	}
	return false
}

// Asset is one cryptocurrency entry of the catalog.
type Asset struct {
	Name                string `yaml:"name"`
	Symbol              string `yaml:"symbol"`
	PriceTrend          Trend  `yaml:"price_trend"`
	MarketCap           Level  `yaml:"market_cap"`
	EnergyUse           Level  `yaml:"energy_use"`
	SustainabilityScore int    `yaml:"sustainability_score"`
	MaxSustainability   int    `yaml:"max_sustainability"`
	Description         string `yaml:"description"`
	RiskLevel           Risk   `yaml:"risk_level"`
}
