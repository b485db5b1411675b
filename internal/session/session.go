// Package session runs the interactive question/answer loop over a line-based stream.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"CryptoBuddy/internal/chat"
	"CryptoBuddy/internal/metrics"
	"CryptoBuddy/internal/responder"
)

const (
	userPrompt = "\n💬 You: "
	botPrefix  = "\n🤖 " + responder.BotName + ": "
)

// Replier answers the questions of one conversation.
type Replier interface {
	Welcome() string
	Reply(input string) chat.Turn
	Close(reason string)
}

// Session owns one conversation on in/out.
type Session struct {
	replier Replier
	in      io.Reader
	out     io.Writer
	log     *zap.Logger
}

func New(replier Replier, in io.Reader, out io.Writer, log *zap.Logger) *Session {
	return &Session{replier: replier, in: in, out: out, log: log}
}

// Run prints the welcome banner and answers lines until the conversation ends,
// input is exhausted or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go s.readLines(lines, readErr, done)

	s.print(s.replier.Welcome() + "\n")

	for {
		s.print(userPrompt)
		select {
		case <-ctx.Done():
			s.print("\n" + botPrefix + responder.InterruptFarewell + "\n")
			s.replier.Close(chat.EndInterrupt)
			return nil
		case err := <-readErr:
			s.replier.Close(chat.EndEOF)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			s.print("\n")
			return nil
		case line := <-lines:
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			turn, ok := s.reply(line)
			if !ok {
				s.print(botPrefix + responder.ErrorNotice + "\n")
				continue
			}
			s.print(botPrefix + turn.Text + "\n")
			if turn.EndSession {
				s.replier.Close(chat.EndExit)
				return nil
			}
		}
	}
}

// reply calls the replier, turning a panic into ok == false.
func (s *Session) reply(line string) (turn chat.Turn, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			metrics.FailuresTotal.WithLabelValues("session").Inc()
			s.log.Error("reply panicked", zap.Any("panic", r), zap.Stack("stack"))
			ok = false
		}
	}()
	return s.replier.Reply(line), true
}

// readLines feeds lines until EOF, a read error, or done is closed.
// A nil error on readErr means EOF.
func (s *Session) readLines(lines chan<- string, readErr chan<- error, done <-chan struct{}) {
	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		select {
		case lines <- sc.Text():
		case <-done:
			return
		}
	}
	readErr <- sc.Err()
}

func (s *Session) print(text string) {
	if _, err := io.WriteString(s.out, text); err != nil {
		s.log.Warn("write output", zap.Error(err))
	}
}
