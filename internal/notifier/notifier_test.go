package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/model"
)

// fakeAPI records sendMessage calls and serves queued getUpdates batches.
type fakeAPI struct {
	mu       sync.Mutex
	sent     []map[string]string
	updates  []string
	failures int
}

func (f *fakeAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			if f.failures > 0 {
				f.failures--
				http.Error(w, `{"ok":false}`, http.StatusBadGateway)
				return
			}
			var payload map[string]string
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.sent = append(f.sent, payload)
			fmt.Fprint(w, `{"ok":true}`)
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if len(f.updates) == 0 {
				fmt.Fprint(w, `{"ok":true,"result":[]}`)
				return
			}
			batch := f.updates[0]
			f.updates = f.updates[1:]
			fmt.Fprint(w, batch)
		default:
			http.NotFound(w, r)
		}
	})
}

func (f *fakeAPI) sentMessages() []map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]string(nil), f.sent...)
}

func newTestNotifier(t *testing.T, api *fakeAPI) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	n := NewTelegramNotifier("TOKEN", "42", "", zaptest.NewLogger(t))
	n.APIBase = srv.URL
	n.Client = srv.Client()
	n.RetryBase = time.Millisecond
	n.PollTimeout = 0
	n.ErrorBackoff = time.Millisecond
	return n
}

func TestSend(t *testing.T) {
	api := &fakeAPI{}
	n := newTestNotifier(t, api)

	require.NoError(t, n.Send(context.Background(), "hello"))
	assert.Equal(t, []map[string]string{{"chat_id": "42", "text": "hello"}}, api.sentMessages())
}

func TestSend_NoChatID(t *testing.T) {
	n := newTestNotifier(t, &fakeAPI{})
	n.ChatID = ""
	assert.Error(t, n.Send(context.Background(), "hello"))
}

func TestSend_APIError(t *testing.T) {
	n := newTestNotifier(t, &fakeAPI{failures: 1})
	err := n.Send(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestSendWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		failures   int
		maxRetries int
		wantErr    bool
	}{
		{name: "first try", failures: 0, maxRetries: 3},
		{name: "recovers", failures: 2, maxRetries: 3},
		{name: "exhausted", failures: 5, maxRetries: 2, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{failures: tt.failures}
			n := newTestNotifier(t, api)
			err := n.SendWithRetry(context.Background(), "digest", tt.maxRetries)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "all 3 attempts failed")
				assert.Empty(t, api.sentMessages())
				return
			}
			require.NoError(t, err)
			assert.Len(t, api.sentMessages(), 1)
		})
	}
}

func TestSendWithRetry_Cancelled(t *testing.T) {
	n := newTestNotifier(t, &fakeAPI{failures: 10})
	n.RetryBase = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := n.SendWithRetry(ctx, "digest", 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartPolling_AnswersSenderChat(t *testing.T) {
	api := &fakeAPI{updates: []string{
		`{"ok":true,"result":[
			{"update_id":10,"message":{"text":"  hi  ","chat":{"id":7}}},
			{"update_id":11,"message":{"text":"   ","chat":{"id":7}}},
			{"update_id":12}
		]}`,
		`not json`,
		`{"ok":false,"description":"Unauthorized"}`,
		`{"ok":true,"result":[{"update_id":13,"message":{"text":"/start","chat":{"id":-99}}}]}`,
	}}
	n := newTestNotifier(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		n.StartPolling(ctx, func(chatID int64, text string) string {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, fmt.Sprintf("%d:%s", chatID, text))
			if text == "/start" {
				return ""
			}
			return "echo " + text
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, 5*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []string{"7:hi", "-99:/start"}, got)
	assert.Equal(t, []map[string]string{{"chat_id": "7", "text": "echo hi"}}, api.sentMessages())
}

func TestFormatDigest(t *testing.T) {
	cat, err := catalog.Open(catalog.BuiltinSource{})
	require.NoError(t, err)

	got := FormatDigest(cat, time.Date(2024, 3, 9, 9, 0, 0, 0, time.UTC))
	assert.Contains(t, got, "market digest | 2024-03-09")
	assert.Contains(t, got, "📈 Rising: Bitcoin, Cardano, Solana\n")
	assert.Contains(t, got, "🌱 Low energy: Cardano, Solana, Polygon\n")
	assert.Contains(t, got, "💰 High market cap: Bitcoin, Ethereum\n")
	assert.Contains(t, got, "🏆 Greenest: Polygon (9/10, 90%)\n")
}

func TestFormatDigest_NothingRising(t *testing.T) {
	cat, err := catalog.New([]model.Asset{{
		Name: "Stablecoin", Symbol: "STB", PriceTrend: model.TrendStable,
		MarketCap: model.LevelMedium, EnergyUse: model.LevelMedium,
		SustainabilityScore: 5, MaxSustainability: 10, RiskLevel: model.RiskLow,
	}})
	require.NoError(t, err)

	got := FormatDigest(cat, time.Now())
	assert.Contains(t, got, "📈 Rising: none\n")
	assert.Contains(t, got, "🌱 Low energy: none\n")
	assert.Contains(t, got, "🏆 Greenest: Stablecoin (5/10, 50%)\n")
}
