// Package chat runs one question through classification, response selection and
// disclaimer decoration, and keeps the audit trail of each conversation.
package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/classifier"
	"CryptoBuddy/internal/disclaimer"
	"CryptoBuddy/internal/metrics"
	"CryptoBuddy/internal/model"
	"CryptoBuddy/internal/picker"
	"CryptoBuddy/internal/recorder"
	"CryptoBuddy/internal/responder"
)

// Channels a conversation can arrive on.
const (
	ChannelCLI      = "cli"
	ChannelAsk      = "ask"
	ChannelTelegram = "telegram"
)

// End reasons recorded for a conversation.
const (
	EndExit      = "exit"
	EndEOF       = "eof"
	EndInterrupt = "interrupt"
	EndAnswered  = "answered" // one-shot question
)

// Turn is the decorated answer to one question.
type Turn struct {
	Text       string
	Rule       responder.Rule
	Asset      string
	Intents    model.IntentSet
	Disclaimer bool
	EndSession bool
}

// Bot is safe for concurrent use; it holds no per-conversation state.
type Bot struct {
	classifier *classifier.Classifier
	responder  *responder.Responder
	decorator  *disclaimer.Decorator
	recorder   recorder.Recorder
	log        *zap.Logger
	now        func() time.Time
}

// New wires a Bot over cat. A nil picker means random choices, a nil recorder
// means nothing is recorded.
func New(cat *catalog.Catalog, p picker.Picker, rec recorder.Recorder, log *zap.Logger) (*Bot, error) {
	if p == nil {
		p = picker.Random{}
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if log == nil {
		log = zap.NewNop()
	}
	resp, err := responder.New(cat, p)
	if err != nil {
		return nil, fmt.Errorf("create responder: %w", err)
	}
	return &Bot{
		classifier: classifier.New(cat),
		responder:  resp,
		decorator:  disclaimer.New(p),
		recorder:   rec,
		log:        log,
		now:        time.Now,
	}, nil
}

// Welcome returns the opening banner.
func (b *Bot) Welcome() string {
	return b.responder.Welcome()
}

// Answer produces the reply to input without recording it.
func (b *Bot) Answer(input string) Turn {
	query := classifier.Normalize(input)
	intents := b.classifier.Classify(query)
	reply := b.responder.Respond(query, intents)
	text, added := b.decorator.Decorate(reply.Text)

	b.log.Debug("turn answered",
		zap.String("intents", intents.String()),
		zap.String("rule", string(reply.Rule)),
		zap.String("asset", reply.Asset),
		zap.Bool("disclaimer", added),
	)
	return Turn{
		Text:       text,
		Rule:       reply.Rule,
		Asset:      reply.Asset,
		Intents:    intents,
		Disclaimer: added,
		EndSession: reply.EndSession,
	}
}

// Open starts a new recorded conversation on channel.
func (b *Bot) Open(channel string) *Conversation {
	c := &Conversation{
		ID:      uuid.NewString(),
		Channel: channel,
		Started: b.now(),
		bot:     b,
	}
	b.log.Info("conversation opened", zap.String("session_id", c.ID), zap.String("channel", channel))
	return c
}

// Conversation is one user's exchange with the bot. Not safe for concurrent use.
type Conversation struct {
	ID      string
	Channel string
	Started time.Time

	bot    *Bot
	turns  int
	closed bool
}

// Welcome returns the opening banner.
func (c *Conversation) Welcome() string {
	return c.bot.Welcome()
}

// Reply answers input, counts it and appends it to the audit trail.
func (c *Conversation) Reply(input string) Turn {
	b := c.bot
	t := b.Answer(input)
	c.turns++

	metrics.TurnsTotal.WithLabelValues(c.Channel, string(t.Rule)).Inc()
	for _, in := range t.Intents.List() {
		metrics.IntentsDetected.WithLabelValues(in.String()).Inc()
	}
	if t.Disclaimer {
		metrics.DisclaimersTotal.Inc()
	}

	err := b.recorder.RecordTurn(&recorder.TurnEvent{
		SessionID:  c.ID,
		Channel:    c.Channel,
		At:         b.now(),
		Input:      input,
		Intents:    t.Intents.String(),
		Rule:       string(t.Rule),
		Asset:      t.Asset,
		Disclaimer: t.Disclaimer,
	})
	if err != nil {
		metrics.FailuresTotal.WithLabelValues("recorder").Inc()
		b.log.Error("record turn", zap.String("session_id", c.ID), zap.Error(err))
	}
	return t
}

// Turns reports how many questions were answered so far.
func (c *Conversation) Turns() int { return c.turns }

// Close records the end of the conversation. Later calls are ignored.
func (c *Conversation) Close(reason string) {
	if c.closed {
		return
	}
	c.closed = true
	b := c.bot
	err := b.recorder.RecordSession(&recorder.SessionEvent{
		SessionID: c.ID,
		Channel:   c.Channel,
		StartedAt: c.Started,
		EndedAt:   b.now(),
		Turns:     c.turns,
		EndReason: reason,
	})
	if err != nil {
		metrics.FailuresTotal.WithLabelValues("recorder").Inc()
		b.log.Error("record session", zap.String("session_id", c.ID), zap.Error(err))
	}
	b.log.Info("conversation closed",
		zap.String("session_id", c.ID),
		zap.Int("turns", c.turns),
		zap.String("reason", reason),
	)
}
