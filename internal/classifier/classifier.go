// Package classifier maps free-form questions to intents by keyword containment.
package classifier

import (
	"strings"

	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/model"
)

// staticKeywords holds the trigger phrases of every intent except SpecificCrypto,
// whose triggers come from the catalog.
var staticKeywords = map[model.Intent][]string{
	model.IntentSustainable: {"sustainable", "eco", "green", "environment", "energy", "eco-friendly"},
	model.IntentTrending:    {"trending", "rising", "growing", "up", "bullish", "hot"},
	model.IntentProfitable:  {"profitable", "profit", "gain", "money", "invest", "buy"},
	model.IntentAllCryptos:  {"all", "list", "show", "available", "what cryptos"},
	model.IntentHelp:        {"help", "commands", "what can you do"},
	model.IntentLongTerm:    {"long-term", "long term", "future", "hold"},
	model.IntentRisky:       {"risky", "risk", "volatile", "dangerous"},
}

// Normalize lowercases s and trims surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Classifier detects intents in user text.
// Matching is plain substring containment, so "up" also fires on "update".
type Classifier struct {
	keywords map[model.Intent][]string
}

// New builds a Classifier whose SpecificCrypto triggers are the catalog's
// names and symbols, lowercased.
func New(cat *catalog.Catalog) *Classifier {
	c := &Classifier{keywords: make(map[model.Intent][]string, len(model.Intents))}
	for intent, kws := range staticKeywords {
		c.keywords[intent] = append([]string(nil), kws...)
	}

	var assets []string
	for _, a := range cat.All() {
		assets = append(assets, strings.ToLower(a.Name))
	}
	for _, a := range cat.All() {
		assets = append(assets, strings.ToLower(a.Symbol))
	}
	c.keywords[model.IntentSpecificCrypto] = assets
	return c
}

// Classify normalizes text and returns every intent with at least one trigger present.
func (c *Classifier) Classify(text string) model.IntentSet {
	query := Normalize(text)
	var set model.IntentSet
	for _, intent := range model.Intents {
		for _, kw := range c.keywords[intent] {
			if strings.Contains(query, kw) {
				set = set.Add(intent)
				break
			}
		}
	}
	return set
}

// Keywords returns a copy of the trigger phrases for intent.
func (c *Classifier) Keywords(intent model.Intent) []string {
	return append([]string(nil), c.keywords[intent]...)
}
