package responder

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/classifier"
	"CryptoBuddy/internal/model"
	"CryptoBuddy/internal/picker"
)

type fixture struct {
	cat  *catalog.Catalog
	cls  *classifier.Classifier
	resp *Responder
}

func newFixture(t *testing.T, assets ...model.Asset) *fixture {
	t.Helper()
	var src catalog.Source = catalog.BuiltinSource{}
	if len(assets) > 0 {
		src = catalog.StaticSource{Assets: assets}
	}
	cat, err := catalog.Open(src)
	require.NoError(t, err)
	resp, err := New(cat, picker.Random{})
	require.NoError(t, err)
	return &fixture{cat: cat, cls: classifier.New(cat), resp: resp}
}

func (f *fixture) ask(q string) Reply {
	return f.resp.Respond(q, f.cls.Classify(q))
}

func TestNew_EmptyCatalog(t *testing.T) {
	_, err := New(&catalog.Catalog{}, nil)
	assert.ErrorIs(t, err, catalog.ErrEmptyCatalog)
}

func TestRespond_Precedence(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		input string
		rule  Rule
		asset string
	}{
		{"blank", "   ", RuleEmpty, ""},
		{"exit beats asset", "bye Bitcoin", RuleExit, ""},
		{"exit beats help", "help me quit", RuleExit, ""},
		{"goodbye", "GoodBye!", RuleExit, ""},
		{"help beats list", "help, show me everything", RuleHelp, ""},
		{"list beats asset", "show all, especially solana", RuleListAll, ""},
		{"asset beats sustainable", "is cardano green?", RuleAssetCard, "Cardano"},
		{"asset beats trending", "is BTC trending?", RuleAssetCard, "Bitcoin"},
		{"asset beats profitable", "should I buy polygon", RuleAssetCard, "Polygon"},
		{"symbol match", "what is ada", RuleAssetCard, "Cardano"},
		{"first asset in catalog order wins", "solana or ethereum", RuleAssetCard, "Ethereum"},
		{"sustainable", "What's the most eco-friendly crypto?", RuleSustainable, "Polygon"},
		{"sustainable beats trending", "green and trending", RuleSustainable, "Polygon"},
		{"trending", "Which crypto is trending up?", RuleTrending, ""},
		{"profitable", "where can I make money", RuleBalanced, "Cardano"},
		{"long term", "a pick for the future", RuleBalanced, "Cardano"},
		{"risky alone falls through", "is crypto risky", RuleFallback, ""},
		{"nothing", "hello", RuleFallback, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.ask(tt.input)
			assert.Equal(t, tt.rule, got.Rule)
			assert.Equal(t, tt.asset, got.Asset)
			assert.Equal(t, tt.rule == RuleExit, got.EndSession)
			assert.NotEmpty(t, got.Text)
		})
	}
}

func TestRules_MatchEvaluationOrder(t *testing.T) {
	f := newFixture(t)

	require.NotEmpty(t, Rules)
	assert.Equal(t, RuleEmpty, Rules[0])
	assert.Equal(t, RuleFallback, Rules[len(Rules)-1])

	var evaluated []Rule
	for _, rl := range f.resp.rules {
		evaluated = append(evaluated, rl.name)
	}
	assert.Equal(t, Rules[1:len(Rules)-1], evaluated)
}

func TestRules_EachReachable(t *testing.T) {
	f := newFixture(t)
	inputs := map[Rule]string{
		RuleEmpty:       "",
		RuleExit:        "quit",
		RuleHelp:        "help",
		RuleListAll:     "list all",
		RuleAssetCard:   "tell me about bitcoin",
		RuleSustainable: "most sustainable",
		RuleTrending:    "what is trending",
		RuleBalanced:    "long term profit",
		RuleFallback:    "hello",
	}
	for _, rule := range Rules {
		input, ok := inputs[rule]
		require.True(t, ok, "no input for rule %s", rule)
		assert.Equal(t, rule, f.ask(input).Rule, input)
	}
}

func TestRespond_AssetMentionIgnoresIntents(t *testing.T) {
	f := newFixture(t)
	for _, a := range f.cat.All() {
		for _, q := range []string{
			"tell me about " + a.Name,
			strings.ToUpper(a.Symbol) + " sustainable trending profit?",
			"hot " + strings.ToLower(a.Name) + " for the long term",
		} {
			got := f.ask(q)
			if got.Rule == RuleAssetCard {
				assert.Equal(t, a.Name, got.Asset, q)
			}
		}
		got := f.resp.Respond("about "+a.Name, model.NewIntentSet(model.IntentSustainable, model.IntentTrending))
		assert.Equal(t, RuleAssetCard, got.Rule)
		assert.Equal(t, a.Name, got.Asset)
	}
}

func TestRespond_EmptyNeverClassified(t *testing.T) {
	f := newFixture(t)
	for _, in := range []string{"", " ", "\t\n"} {
		got := f.resp.Respond(in, model.NewIntentSet(model.IntentHelp))
		assert.Equal(t, EmptyPrompt, got.Text)
		assert.Equal(t, RuleEmpty, got.Rule)
	}
}

func TestRespond_Farewell(t *testing.T) {
	f := newFixture(t)
	got := f.ask("ok I'm done, exit")
	assert.Equal(t, Farewell, got.Text)
	assert.True(t, got.EndSession)
}

func TestAssetCard_Cardano(t *testing.T) {
	f := newFixture(t)
	got := f.ask("Tell me about Cardano")
	require.Equal(t, RuleAssetCard, got.Rule)

	assert.Contains(t, got.Text, "Cardano (ADA)")
	assert.Contains(t, got.Text, "Price Trend: Rising")
	assert.Contains(t, got.Text, "Market Cap: Medium")
	assert.Contains(t, got.Text, "Energy Use: Low")
	assert.Contains(t, got.Text, "Sustainability: 8/10 (80%)")
	assert.Contains(t, got.Text, "Proof-of-stake blockchain focused on sustainability")
}

func TestAssetCard_PercentageRounds(t *testing.T) {
	f := newFixture(t, model.Asset{
		Name: "Thirds", Symbol: "TRD", PriceTrend: model.TrendStable,
		MarketCap: model.LevelLow, EnergyUse: model.LevelLow,
		SustainabilityScore: 2, MaxSustainability: 3, RiskLevel: model.RiskLow,
		Description: "Two thirds green",
	})
	got := f.resp.AssetCard("thirds")
	assert.Contains(t, got, "2/3 (67%)")
}

func TestAssetCard_Unknown(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "Sorry, I don't have information about Dogecoin in my database.", f.resp.AssetCard("Dogecoin"))
	assert.Contains(t, f.resp.AssetCard("Polygon"), "Polygon (MATIC)")
}

func TestRecommendSustainable(t *testing.T) {
	f := newFixture(t)
	got := f.ask("What's the most eco-friendly crypto?")
	assert.Contains(t, got.Text, "Polygon")
	assert.Contains(t, got.Text, "9/10")
	assert.Contains(t, strings.ToLower(got.Text), "recommend")
	assert.Contains(t, got.Text, "Energy use: low")
}

func TestRecommendTrending(t *testing.T) {
	f := newFixture(t)
	got := f.ask("Which crypto is trending up?")
	require.Equal(t, RuleTrending, got.Rule)

	lines := strings.Split(got.Text, "\n")
	var items []string
	for _, l := range lines {
		if strings.HasPrefix(l, "• ") {
			items = append(items, l)
		}
	}
	require.Len(t, items, 3)
	assert.True(t, strings.HasPrefix(items[0], "• Bitcoin (BTC) - "))
	assert.True(t, strings.HasPrefix(items[1], "• Cardano (ADA) - "))
	assert.True(t, strings.HasPrefix(items[2], "• Solana (SOL) - "))
	assert.Equal(t, "• Bitcoin (BTC) - The original cryptocurrency with the largest marke...", items[0])
	assert.True(t, strings.HasSuffix(got.Text, "upward price momentum!"))
}

func TestRecommendTrending_NoneRising(t *testing.T) {
	f := newFixture(t, model.Asset{
		Name: "Flat", Symbol: "FLT", PriceTrend: model.TrendStable,
		MarketCap: model.LevelLow, EnergyUse: model.LevelLow,
		SustainabilityScore: 5, MaxSustainability: 10, RiskLevel: model.RiskLow,
	})
	got := f.ask("what is hot")
	assert.Equal(t, RuleTrending, got.Rule)
	assert.Equal(t, NoneTrending, got.Text)
}

func TestRecommendBalanced(t *testing.T) {
	f := newFixture(t)
	got := f.ask("I want to invest for profit")
	require.Equal(t, RuleBalanced, got.Rule)
	assert.Equal(t, "Cardano", got.Asset)
	assert.Contains(t, got.Text, "I suggest Cardano")
	assert.Contains(t, got.Text, "Price trend: rising")
	assert.Contains(t, got.Text, "Sustainability score: 8/10")
	assert.Contains(t, got.Text, "medium market cap")
	assert.Contains(t, got.Text, "low energy use")
}

func mk(name, symbol string, trend model.Trend, score int) model.Asset {
	return model.Asset{
		Name: name, Symbol: symbol, PriceTrend: trend,
		MarketCap: model.LevelMedium, EnergyUse: model.LevelMedium,
		SustainabilityScore: score, MaxSustainability: 10, RiskLevel: model.RiskMedium,
		Description: name + " description",
	}
}

func TestRecommend_CustomCatalogRendersRecords(t *testing.T) {
	f := newFixture(t,
		mk("Zed", "ZED", model.TrendRising, 7),
		mk("Old", "OLD", model.TrendRising, 3),
		mk("Calm", "CLM", model.TrendStable, 9),
	)

	trending := f.ask("what is trending")
	require.Equal(t, RuleTrending, trending.Rule)
	assert.Contains(t, trending.Text, "• Zed (ZED) - Zed description...")
	assert.Contains(t, trending.Text, "• Old (OLD) - Old description...")
	assert.NotContains(t, trending.Text, "Calm")
	assert.NotContains(t, trending.Text, "•  ()")

	balanced := f.ask("invest")
	require.Equal(t, RuleBalanced, balanced.Rule)
	assert.Equal(t, "Zed", balanced.Asset)
	assert.Contains(t, balanced.Text, "I suggest Zed!")
	assert.Contains(t, balanced.Text, "Sustainability score: 7/10")
	assert.NotContains(t, balanced.Text, "I suggest !")
	assert.NotContains(t, balanced.Text, "0/0")
}

func TestRecommendBalanced_Diversified(t *testing.T) {
	tests := []struct {
		name   string
		assets []model.Asset
		want   []string
	}{
		{
			name: "trending but not sustainable",
			assets: []model.Asset{
				mk("Dirty", "DRT", model.TrendRising, 2),
				mk("Clean", "CLN", model.TrendStable, 9),
			},
			want: []string{"• Clean (most sustainable)", "• Dirty (trending option)"},
		},
		{
			name: "nothing trending uses literal fallback",
			assets: []model.Asset{
				mk("Clean", "CLN", model.TrendStable, 9),
				mk("Meh", "MEH", model.TrendFalling, 4),
			},
			want: []string{"• Clean (most sustainable)", "• Bitcoin (trending option)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.assets...)
			got := f.ask("make money long term")
			require.Equal(t, RuleBalanced, got.Rule)
			assert.Empty(t, got.Asset)
			for _, w := range tt.want {
				assert.Contains(t, got.Text, w)
			}
		})
	}
}

func TestListAll(t *testing.T) {
	f := newFixture(t)
	got := f.ask("Show me all cryptos")
	require.Equal(t, RuleListAll, got.Rule)

	var order []int
	for _, a := range f.cat.All() {
		idx := strings.Index(got.Text, a.Name+" ("+a.Symbol+")")
		require.GreaterOrEqual(t, idx, 0, a.Name)
		order = append(order, idx)
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, order[i-1], order[i], "catalog order")
	}
	assert.Contains(t, got.Text, "Sustainability: 🟢🟢🟢⚪⚪⚪⚪⚪⚪⚪ 3/10")
	assert.Contains(t, got.Text, "Sustainability: 🟢🟢🟢🟢🟢🟢🟢🟢🟢⚪ 9/10")
	assert.Contains(t, got.Text, "Trend: Rising | Cap: High")
	assert.Contains(t, got.Text, "Trend: Stable | Cap: Medium")
}

func TestFallback_OneOfRedirects(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 20; i++ {
		got := f.ask("tell me a joke")
		assert.Equal(t, RuleFallback, got.Rule)
		assert.Contains(t, Redirects, got.Text)
	}
}

func TestFallback_DeterministicPicker(t *testing.T) {
	cat, err := catalog.Open(catalog.BuiltinSource{})
	require.NoError(t, err)
	r, err := New(cat, picker.NewSequence(2, 0))
	require.NoError(t, err)

	assert.Equal(t, Redirects[2], r.Respond("hmm", 0).Text)
	assert.Equal(t, Redirects[0], r.Respond("hmm", 0).Text)
}

func TestWelcome(t *testing.T) {
	cat, err := catalog.Open(catalog.BuiltinSource{})
	require.NoError(t, err)
	r, err := New(cat, picker.NewSequence(1))
	require.NoError(t, err)

	w := r.Welcome()
	assert.Contains(t, w, Greetings[1])
	assert.Contains(t, w, "Type 'help' for commands or 'quit' to exit")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 50))
	assert.Equal(t, "héllo", snippet("héllo wörld", 5))
}
