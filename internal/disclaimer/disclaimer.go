// Package disclaimer appends a risk warning to replies that read like investment advice.
package disclaimer

import (
	"strings"

	"CryptoBuddy/internal/picker"
)

// Triggers mark a reply as investment advice.
var Triggers = []string{"recommend", "invest", "buy", "suggest", "choose"}

// Disclaimers are the warnings one of which is appended.
var Disclaimers = []string{
	"\n⚠️ Disclaimer: Crypto investments are highly risky. Always do your own research!",
	"\n📚 Remember: This is educational content only. Consult financial advisors for investment decisions!",
	"\n🚨 Risk Warning: Cryptocurrency markets are volatile. Never invest more than you can afford to lose!",
}

// Decorator appends a disclaimer to advice-like text.
type Decorator struct {
	picker picker.Picker
}

func New(p picker.Picker) *Decorator {
	if p == nil {
		p = picker.Random{}
	}
	return &Decorator{picker: p}
}

// NeedsDisclaimer reports whether text contains any trigger, ignoring case.
func NeedsDisclaimer(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range Triggers {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Decorate returns text with one disclaimer appended when it needs one,
// and whether it did so. Only the input text is scanned.
func (d *Decorator) Decorate(text string) (string, bool) {
	if !NeedsDisclaimer(text) {
		return text, false
	}
	return text + picker.Choose(d.picker, Disclaimers), true
}
