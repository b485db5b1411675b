// Package responder turns a question and its detected intents into a reply.
package responder

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"CryptoBuddy/internal/calculator"
	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/classifier"
	"CryptoBuddy/internal/model"
	"CryptoBuddy/internal/picker"
)

// Rule names the branch that produced a reply.
type Rule string

const (
	RuleEmpty       Rule = "empty"
	RuleExit        Rule = "exit"
	RuleHelp        Rule = "help"
	RuleListAll     Rule = "list_all"
	RuleAssetCard   Rule = "asset_card"
	RuleSustainable Rule = "sustainable"
	RuleTrending    Rule = "trending"
	RuleBalanced    Rule = "balanced"
	RuleFallback    Rule = "fallback"
)

// Rules lists every rule in precedence order.
var Rules = []Rule{
	RuleEmpty, RuleExit, RuleHelp, RuleListAll, RuleAssetCard,
	RuleSustainable, RuleTrending, RuleBalanced, RuleFallback,
}

// balancedMinScore is the lowest sustainability score a balanced pick may have.
const balancedMinScore = 6

// trendingSnippetLen is how many characters of a description the trending list shows.
const trendingSnippetLen = 50

// Reply is the outcome of one turn.
type Reply struct {
	Text       string
	Rule       Rule
	Asset      string // asset the reply is about, if any
	EndSession bool
}

type turn struct {
	query   string
	intents model.IntentSet
	asset   model.Asset
}

type rule struct {
	name   Rule
	match  func(t *turn) bool
	render func(t *turn) Reply
}

// Responder applies the precedence rules against a catalog.
type Responder struct {
	catalog  *catalog.Catalog
	picker   picker.Picker
	greenest model.Asset
	rules    []rule
}

// New builds a Responder. The catalog must be non-empty.
func New(cat *catalog.Catalog, p picker.Picker) (*Responder, error) {
	greenest, err := cat.MostSustainable()
	if err != nil {
		return nil, fmt.Errorf("pick most sustainable: %w", err)
	}
	if p == nil {
		p = picker.Random{}
	}
	r := &Responder{catalog: cat, picker: p, greenest: greenest}
	r.rules = []rule{
		{RuleExit, isExit, r.farewell},
		{RuleHelp, wants(model.IntentHelp), r.help},
		{RuleListAll, wants(model.IntentAllCryptos), r.listAll},
		{RuleAssetCard, r.mentionsAsset, r.assetCard},
		{RuleSustainable, wants(model.IntentSustainable), r.recommendSustainable},
		{RuleTrending, wants(model.IntentTrending), r.recommendTrending},
		{RuleBalanced, wants(model.IntentProfitable, model.IntentLongTerm), r.recommendBalanced},
	}
	return r, nil
}

// Respond picks the first matching rule for raw and its intents.
// Empty input short-circuits before any rule.
func (r *Responder) Respond(raw string, intents model.IntentSet) Reply {
	query := classifier.Normalize(raw)
	if query == "" {
		return Empty()
	}
	t := &turn{query: query, intents: intents}
	for _, rl := range r.rules {
		if rl.match(t) {
			reply := rl.render(t)
			reply.Rule = rl.name
			return reply
		}
	}
	return Reply{Text: picker.Choose(r.picker, Redirects), Rule: RuleFallback}
}

// Empty is the reply to blank input.
func Empty() Reply {
	return Reply{Text: EmptyPrompt, Rule: RuleEmpty}
}

// Welcome returns the opening banner with a randomly chosen greeting.
func (r *Responder) Welcome() string {
	line := strings.Repeat("=", 60)
	return line + "\n" + picker.Choose(r.picker, Greetings) + "\n" + line + "\n\n" +
		welcomeBody + "\n" + strings.Repeat("-", 60)
}

// AssetCard describes the named asset, or says it is unknown.
func (r *Responder) AssetCard(name string) string {
	a, ok := r.catalog.Get(name)
	if !ok {
		return fmt.Sprintf("Sorry, I don't have information about %s in my database.", name)
	}
	return card(a)
}

func isExit(t *turn) bool {
	for _, p := range ExitPhrases {
		if strings.Contains(t.query, p) {
			return true
		}
	}
	return false
}

func wants(intents ...model.Intent) func(t *turn) bool {
	return func(t *turn) bool {
		for _, i := range intents {
			if t.intents.Has(i) {
				return true
			}
		}
		return false
	}
}

func (r *Responder) mentionsAsset(t *turn) bool {
	a, ok := r.catalog.Lookup(t.query)
	if ok {
		t.asset = a
	}
	return ok
}

func (r *Responder) farewell(*turn) Reply {
	return Reply{Text: Farewell, EndSession: true}
}

func (r *Responder) help(*turn) Reply {
	return Reply{Text: helpText}
}

func (r *Responder) listAll(*turn) Reply {
	var b strings.Builder
	b.WriteString("🪙 Available cryptocurrencies in my database:\n\n")
	for _, a := range r.catalog.All() {
		bar, err := calculator.SustainabilityBar(a.SustainabilityScore, a.MaxSustainability, "🟢", "⚪")
		if err != nil {
			// catalog.New rejects non-positive maxima
			bar = strings.Repeat("⚪", calculator.BarWidth)
		}
		icon := "📊"
		if a.PriceTrend == model.TrendRising {
			icon = "📈"
		}
		b.WriteString(fmt.Sprintf("%s %s (%s)\n", icon, a.Name, a.Symbol))
		b.WriteString(fmt.Sprintf("   Sustainability: %s %d/%d\n", bar, a.SustainabilityScore, a.MaxSustainability))
		b.WriteString(fmt.Sprintf("   Trend: %s | Cap: %s\n\n", title(string(a.PriceTrend)), title(string(a.MarketCap))))
	}
	return Reply{Text: strings.TrimRight(b.String(), "\n")}
}

func (r *Responder) assetCard(t *turn) Reply {
	return Reply{Text: card(t.asset), Asset: t.asset.Name}
}

func card(a model.Asset) string {
	pct, err := calculator.SustainabilityPercent(a.SustainabilityScore, a.MaxSustainability)
	if err != nil {
		pct = 0
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🪙 %s (%s)\n", a.Name, a.Symbol))
	b.WriteString(fmt.Sprintf("📈 Price Trend: %s\n", title(string(a.PriceTrend))))
	b.WriteString(fmt.Sprintf("💰 Market Cap: %s\n", title(string(a.MarketCap))))
	b.WriteString(fmt.Sprintf("⚡ Energy Use: %s\n", title(string(a.EnergyUse))))
	b.WriteString(fmt.Sprintf("🌱 Sustainability: %d/%d (%d%%)\n", a.SustainabilityScore, a.MaxSustainability, pct))
	b.WriteString(fmt.Sprintf("⚠️ Risk Level: %s\n", title(string(a.RiskLevel))))
	b.WriteString(fmt.Sprintf("📝 Description: %s", a.Description))
	return b.String()
}

func (r *Responder) recommendSustainable(*turn) Reply {
	a := r.greenest
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌱 For sustainability, I recommend %s!\n\n", a.Name))
	b.WriteString("Here's why:\n")
	b.WriteString(fmt.Sprintf("• Sustainability score: %d/%d\n", a.SustainabilityScore, a.MaxSustainability))
	b.WriteString(fmt.Sprintf("• Energy use: %s\n", a.EnergyUse))
	b.WriteString(fmt.Sprintf("• %s\n\n", a.Description))
	b.WriteString("💚 It's eco-friendly and has great long-term potential!")
	return Reply{Text: b.String(), Asset: a.Name}
}

func (r *Responder) recommendTrending(*turn) Reply {
	rising := r.catalog.Filter(isRising)
	if len(rising) == 0 {
		return Reply{Text: NoneTrending}
	}
	var b strings.Builder
	b.WriteString("🚀 Here are the trending cryptocurrencies:\n\n")
	for _, a := range rising {
		b.WriteString(fmt.Sprintf("• %s (%s) - %s...\n", a.Name, a.Symbol, snippet(a.Description, trendingSnippetLen)))
	}
	b.WriteString("\n📈 These cryptos are showing upward price momentum!")
	return Reply{Text: b.String()}
}

func (r *Responder) recommendBalanced(*turn) Reply {
	rising := r.catalog.Filter(isRising)
	for _, a := range rising {
		if a.SustainabilityScore < balancedMinScore {
			continue
		}
		var b strings.Builder
		b.WriteString(fmt.Sprintf("💡 For a balanced investment, I suggest %s!\n\n", a.Name))
		b.WriteString("Why it's a good choice:\n")
		b.WriteString(fmt.Sprintf("✅ Price trend: %s\n", a.PriceTrend))
		b.WriteString(fmt.Sprintf("✅ Sustainability score: %d/%d\n", a.SustainabilityScore, a.MaxSustainability))
		b.WriteString(fmt.Sprintf("✅ Market position: %s market cap\n", a.MarketCap))
		b.WriteString(fmt.Sprintf("✅ Energy efficiency: %s energy use\n\n", a.EnergyUse))
		b.WriteString(fmt.Sprintf("📝 %s", a.Description))
		return Reply{Text: b.String(), Asset: a.Name}
	}

	hot := FallbackTrending
	if len(rising) > 0 {
		hot = rising[0].Name
	}
	var b strings.Builder
	b.WriteString("🤔 Based on current data, consider diversifying between:\n")
	b.WriteString(fmt.Sprintf("• %s (most sustainable)\n", r.greenest.Name))
	b.WriteString(fmt.Sprintf("• %s (trending option)", hot))
	return Reply{Text: b.String()}
}

func isRising(a model.Asset) bool { return a.PriceTrend == model.TrendRising }

// snippet returns the first n characters of s.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}
