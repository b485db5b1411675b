package notifier

import (
	"fmt"
	"strings"
	"time"

	"CryptoBuddy/internal/calculator"
	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/model"
)

// FormatDigest summarizes the catalog for the scheduled broadcast.
func FormatDigest(cat *catalog.Catalog, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 CryptoBuddy market digest | %s\n\n", now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("📈 Rising: %s\n", joinOrNone(cat.FilterByTrend(model.TrendRising))))
	b.WriteString(fmt.Sprintf("🌱 Low energy: %s\n", joinOrNone(cat.FilterByEnergy(model.LevelLow))))
	b.WriteString(fmt.Sprintf("💰 High market cap: %s\n", joinOrNone(cat.FilterByMarketCap(model.LevelHigh))))

	if a, err := cat.MostSustainable(); err == nil {
		pct, _ := calculator.SustainabilityPercent(a.SustainabilityScore, a.MaxSustainability)
		b.WriteString(fmt.Sprintf("🏆 Greenest: %s (%d/%d, %d%%)\n",
			a.Name, a.SustainabilityScore, a.MaxSustainability, pct))
	}

	b.WriteString("\n⚠️ Educational content only. Always do your own research!")
	return b.String()
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
