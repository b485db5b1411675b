package model

import "strings"

// Intent is a category of user question.
type Intent uint8

// Declaration order is the detection order reported by IntentSet.List.
const (
	IntentSustainable Intent = iota
	IntentTrending
	IntentProfitable
	IntentAllCryptos
	IntentSpecificCrypto
	IntentHelp
	IntentLongTerm
	IntentRisky
	intentCount
)

// Intents lists every intent in declaration order.
var Intents = []Intent{
	IntentSustainable,
	IntentTrending,
	IntentProfitable,
	IntentAllCryptos,
	IntentSpecificCrypto,
	IntentHelp,
	IntentLongTerm,
	IntentRisky,
}

var intentNames = [intentCount]string{
	"sustainable",
	"trending",
	"profitable",
	"all_cryptos",
	"specific_crypto",
	"help",
	"long_term",
	"risky",
}

func (i Intent) String() string {
	if i >= intentCount {
		return "unknown"
	}
	return intentNames[i]
}

// IntentSet is a set of detected intents.
type IntentSet uint16

// NewIntentSet builds a set from the given intents.
func NewIntentSet(intents ...Intent) IntentSet {
	var s IntentSet
	for _, i := range intents {
		s = s.Add(i)
	}
	return s
}

func (s IntentSet) Add(i Intent) IntentSet { return s | 1<<i }

func (s IntentSet) Has(i Intent) bool { return s&(1<<i) != 0 }

// List returns the members in declaration order.
func (s IntentSet) List() []Intent {
	var out []Intent
	for _, i := range Intents {
		if s.Has(i) {
			out = append(out, i)
		}
	}
	return out
}

func (s IntentSet) String() string {
	names := make([]string, 0, len(Intents))
	for _, i := range s.List() {
		names = append(names, i.String())
	}
	return strings.Join(names, ",")
}
