package responder

// BotName is how the assistant introduces itself.
const BotName = "CryptoBuddy"

const (
	EmptyPrompt       = "🤔 I didn't catch that. Could you ask me something about crypto?"
	Farewell          = "👋 Thanks for chatting! Remember: crypto is risky, so always do your own research! 💎🚀"
	InterruptFarewell = "👋 Goodbye! Stay safe in the crypto world! 🚀"
	ErrorNotice       = "🚨 Oops! Something went wrong. Let's try again!"
	NoneTrending      = "🤔 No cryptocurrencies are showing strong upward trends right now."

	// FallbackTrending names the trending option when nothing in the catalog is rising.
	FallbackTrending = "Bitcoin"
)

// ExitPhrases end the conversation when found anywhere in the input.
var ExitPhrases = []string{"quit", "exit", "bye", "goodbye"}

// Redirects are the replies for questions no rule understood.
var Redirects = []string{
	"🤔 That's interesting! Could you be more specific? Try asking about trending cryptos or sustainable options.",
	"💡 I can help with crypto questions! Ask me about sustainable coins, trending options, or a specific cryptocurrency.",
	"🚀 Curious about crypto trends, sustainability, or investment ideas? Just ask!",
}

// Greetings open the welcome banner.
var Greetings = []string{
	"Hey there! I'm " + BotName + ", your crypto sidekick! 🚀",
	"Welcome to " + BotName + "! Ready to explore the crypto universe? 🌟",
	"Hi! " + BotName + " here to help you navigate the wild world of crypto! 💎",
}

const welcomeBody = `🤖 What I can help you with:
• Find trending cryptocurrencies
• Recommend sustainable crypto options
• Analyze crypto profitability
• Show details for a specific coin
• Show all available cryptocurrencies

💡 Try asking me things like:
- "Which crypto is trending up?"
- "What's the most sustainable coin?"
- "Show me all cryptos"
- "Help me choose a crypto for long-term investment"

📝 Type 'help' for commands or 'quit' to exit`

const helpText = `🤖 ` + BotName + ` commands & features

Ask me about:
• Sustainable cryptocurrencies: "What's the most eco-friendly crypto?"
• Trending cryptos: "Which cryptos are rising?"
• Investment ideas: "What should I invest in?"
• Specific cryptos: "Tell me about Bitcoin" or "What is ADA?"
• All options: "Show me all cryptos"

Sample questions:
• "Which crypto is best for long-term holding?"
• "What's trending up right now?"
• "Show me sustainable options"
• "Tell me about Ethereum"

Commands:
• help: show this message
• quit or exit: end the conversation
• list or all: show every cryptocurrency

💡 Tip: I understand plain language, so feel free to ask in your own words!`
