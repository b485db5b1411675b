package main

import (
	"go.uber.org/zap"

	"CryptoBuddy/internal/chat"
	"CryptoBuddy/internal/metrics"
	"CryptoBuddy/internal/responder"
)

// conversations keeps one open conversation per Telegram chat.
// Only the polling goroutine touches it.
type conversations struct {
	bot  *chat.Bot
	log  *zap.Logger
	open map[int64]*chat.Conversation
}

func newConversations(bot *chat.Bot, log *zap.Logger) *conversations {
	return &conversations{bot: bot, log: log, open: make(map[int64]*chat.Conversation)}
}

func (c *conversations) handle(chatID int64, text string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FailuresTotal.WithLabelValues("telegram").Inc()
			c.log.Error("telegram reply panicked", zap.Int64("chat_id", chatID), zap.Any("panic", r), zap.Stack("stack"))
			reply = responder.ErrorNotice
		}
	}()

	if text == "/start" {
		c.end(chatID, chat.EndExit)
		c.open[chatID] = c.bot.Open(chat.ChannelTelegram)
		return c.bot.Welcome()
	}

	conv, ok := c.open[chatID]
	if !ok {
		conv = c.bot.Open(chat.ChannelTelegram)
		c.open[chatID] = conv
	}
	turn := conv.Reply(text)
	if turn.EndSession {
		c.end(chatID, chat.EndExit)
	}
	return turn.Text
}

func (c *conversations) end(chatID int64, reason string) {
	if conv, ok := c.open[chatID]; ok {
		conv.Close(reason)
		delete(c.open, chatID)
	}
}

func (c *conversations) closeAll(reason string) {
	for id := range c.open {
		c.end(id, reason)
	}
}
