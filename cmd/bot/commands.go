package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"CryptoBuddy/internal/chat"
	"CryptoBuddy/internal/metrics"
	"CryptoBuddy/internal/notifier"
	"CryptoBuddy/internal/recorder"
	"CryptoBuddy/internal/scheduler"
	"CryptoBuddy/internal/session"
)

// digestRetries bounds delivery attempts of `digest --send`.
const digestRetries = 3

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func (a *app) runChat(cmd *cobra.Command) error {
	ctx, stop := signalContext(cmd)
	defer stop()

	conv := a.bot.Open(chat.ChannelCLI)
	return session.New(conv, cmd.InOrStdin(), cmd.OutOrStdout(), a.log).Run(ctx)
}

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Answer a single question and exit",
		Example: `  bot ask which crypto is trending up
  bot ask "tell me about cardano"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := a.bot.Open(chat.ChannelAsk)
			turn := conv.Reply(strings.Join(args, " "))
			conv.Close(chat.EndAnswered)
			fmt.Fprintln(cmd.OutOrStdout(), turn.Text)
			return nil
		},
	}
}

func newDigestCmd(a *app) *cobra.Command {
	var send bool
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the market digest, or send it to the configured Telegram chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := notifier.FormatDigest(a.cat, time.Now())
			if !send {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := a.cfg.ValidateTelegram(); err != nil {
				return err
			}
			if !a.cfg.DigestEnabled() {
				return errors.New("telegram.chat_id is required to send the digest")
			}
			ctx, stop := signalContext(cmd)
			defer stop()

			tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
			if err := tn.SendWithRetry(ctx, text, digestRetries); err != nil {
				return fmt.Errorf("send digest: %w", err)
			}
			metrics.DigestsSent.Inc()
			a.log.Info("digest sent", zap.String("chat_id", a.cfg.Telegram.ChatID))
			return nil
		},
	}
	cmd.Flags().BoolVar(&send, "send", false, "deliver the digest via Telegram instead of printing it")
	return cmd
}

func newTelegramCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Answer Telegram messages and broadcast the scheduled digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.ValidateTelegram(); err != nil {
				return err
			}
			ctx, stop := signalContext(cmd)
			defer stop()
			return a.runTelegram(ctx)
		},
	}
}

func (a *app) runTelegram(ctx context.Context) error {
	tn := notifier.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.cfg.Proxy, a.log)
	convs := newConversations(a.bot, a.log)
	defer convs.closeAll(chat.EndInterrupt)

	g, gctx := errgroup.WithContext(ctx)

	if a.cfg.DigestEnabled() {
		sched := scheduler.NewScheduler(gctx, a.cat, tn, a.log)
		if err := sched.Register(a.cfg.Schedule.DigestCron); err != nil {
			return err
		}
		g.Go(func() error { return sched.Run(gctx) })
	} else {
		a.log.Info("telegram.chat_id not set, digest broadcast disabled")
	}

	g.Go(func() error {
		tn.StartPolling(gctx, convs.handle)
		return nil
	})

	if a.cfg.Metrics.Addr != "" {
		g.Go(func() error { return metrics.Serve(gctx, a.cfg.Metrics.Addr, a.log) })
	}

	a.log.Info("CryptoBuddy is running on Telegram. Press Ctrl+C to stop.")
	err := g.Wait()
	a.log.Info("CryptoBuddy stopped")
	return err
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how often each response rule fired, from the audit database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sr, ok := a.rec.(*recorder.SQLiteRecorder)
			if !ok {
				return errors.New("database.sqlite_path is not set or the database could not be opened")
			}
			counts, err := sr.RuleCounts()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(counts) == 0 {
				fmt.Fprintln(out, "No turns recorded yet.")
				return nil
			}
			for _, c := range counts {
				fmt.Fprintf(out, "%-12s %d\n", c.Rule, c.Count)
			}
			return nil
		},
	}
}
