package catalog

import "CryptoBuddy/internal/model"

var builtinAssets = []model.Asset{
	{
		Name:                "Bitcoin",
		Symbol:              "BTC",
		PriceTrend:          model.TrendRising,
		MarketCap:           model.LevelHigh,
		EnergyUse:           model.LevelHigh,
		SustainabilityScore: 3,
		MaxSustainability:   10,
		Description:         "The original cryptocurrency with the largest market cap",
		RiskLevel:           model.RiskMedium,
	},
	{
		Name:                "Ethereum",
		Symbol:              "ETH",
		PriceTrend:          model.TrendStable,
		MarketCap:           model.LevelHigh,
		EnergyUse:           model.LevelMedium,
		SustainabilityScore: 6,
		MaxSustainability:   10,
		Description:         "Smart contract platform with strong developer ecosystem",
		RiskLevel:           model.RiskMedium,
	},
	{
		Name:                "Cardano",
		Symbol:              "ADA",
		PriceTrend:          model.TrendRising,
		MarketCap:           model.LevelMedium,
		EnergyUse:           model.LevelLow,
		SustainabilityScore: 8,
		MaxSustainability:   10,
		Description:         "Proof-of-stake blockchain focused on sustainability",
		RiskLevel:           model.RiskMediumHigh,
	},
	{
		Name:                "Solana",
		Symbol:              "SOL",
		PriceTrend:          model.TrendRising,
		MarketCap:           model.LevelMedium,
		EnergyUse:           model.LevelLow,
		SustainabilityScore: 7,
		MaxSustainability:   10,
		Description:         "High-speed blockchain for decentralized applications",
		RiskLevel:           model.RiskHigh,
	},
	{
		Name:                "Polygon",
		Symbol:              "MATIC",
		PriceTrend:          model.TrendStable,
		MarketCap:           model.LevelMedium,
		EnergyUse:           model.LevelLow,
		SustainabilityScore: 9,
		MaxSustainability:   10,
		Description:         "Ethereum scaling solution with low energy consumption",
		RiskLevel:           model.RiskMediumHigh,
	},
}
