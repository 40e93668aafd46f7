package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/swbrowse/pkg/browser"
)

// mockNotifier implements ntfy.Notifier for testing.
type mockNotifier struct {
	schema string
	mu     sync.Mutex
	calls  []sendCall
	err    error
}

type sendCall struct {
	dest string
	text string
}

func (m *mockNotifier) Send(_ context.Context, dest, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, sendCall{dest: dest, text: text})
	return m.err
}

func (m *mockNotifier) Schema() string { return m.schema }
func (m *mockNotifier) String() string { return "mock-" + m.schema }

func (m *mockNotifier) getCalls() []sendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]sendCall, len(m.calls))
	copy(res, m.calls)
	return res
}

// mockLogger captures log output for testing.
type mockLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *mockLogger) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func (l *mockLogger) getMsgs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]string, len(l.msgs))
	copy(res, l.msgs)
	return res
}

func newTestService(onFailure, onRecovery bool, chs ...channel) (*Service, *mockLogger) {
	log := &mockLogger{}
	return &Service{
		channels:   chs,
		onFailure:  onFailure,
		onRecovery: onRecovery,
		timeoutMs:  5000,
		hostname:   "test-host",
		baseURL:    "http://api.example",
		log:        log,
		failed:     map[string]bool{},
		queue:      make(chan Alert, queueSize),
	}, log
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		wantErr  string
		channels int
	}{
		{name: "unknown channel", params: Params{Channels: []string{"unknown"}}, wantErr: "unknown notification channel"},
		{name: "webhook missing urls", params: Params{Channels: []string{"webhook"}}, wantErr: "notify_webhook_urls is required"},
		{name: "email missing host", params: Params{Channels: []string{"email"}}, wantErr: "notify_smtp_host is required"},
		{name: "email missing from", params: Params{Channels: []string{"email"}, SMTPHost: "smtp.example.com"},
			wantErr: "notify_email_from is required"},
		{name: "email missing to", params: Params{Channels: []string{"email"}, SMTPHost: "smtp.example.com",
			EmailFrom: "from@example.com"}, wantErr: "notify_email_to is required"},
		{name: "slack missing token", params: Params{Channels: []string{"slack"}}, wantErr: "notify_slack_token is required"},
		{name: "slack missing channel", params: Params{Channels: []string{"slack"}, SlackToken: "xoxb"},
			wantErr: "notify_slack_channel is required"},
		{name: "telegram missing token", params: Params{Channels: []string{"telegram"}},
			wantErr: "notify_telegram_token is required"},
		{name: "telegram missing chat", params: Params{Channels: []string{"telegram"}, TelegramToken: "bot"},
			wantErr: "notify_telegram_chat is required"},
		{name: "webhook", params: Params{Channels: []string{"webhook"}, WebhookURLs: []string{"https://a.com", "https://b.com"}},
			channels: 2},
		{name: "email", params: Params{Channels: []string{"email"}, SMTPHost: "smtp.example.com", SMTPPort: 587,
			EmailFrom: "from@example.com", EmailTo: []string{"to@example.com"}}, channels: 1},
		{name: "slack and webhook", params: Params{Channels: []string{" Slack ", "webhook"}, SlackToken: "xoxb",
			SlackChannel: "alerts", WebhookURLs: []string{"https://a.com"}}, channels: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := New(tc.params, "", &mockLogger{})
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, svc)
			assert.Len(t, svc.channels, tc.channels)
		})
	}

	t.Run("empty channels returns nil", func(t *testing.T) {
		svc, err := New(Params{}, "", nil)
		require.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("timeouts", func(t *testing.T) {
		svc, err := New(Params{Channels: []string{"webhook"}, WebhookURLs: []string{"https://a.com"}}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, 10000, svc.timeoutMs)

		svc, err = New(Params{Channels: []string{"webhook"}, WebhookURLs: []string{"https://a.com"}, TimeoutMs: 500}, "", nil)
		require.NoError(t, err)
		assert.Equal(t, 500, svc.timeoutMs)
	})

	t.Run("telegram api failure redacts token and skips", func(t *testing.T) {
		orig := telegramChannelMaker
		telegramChannelMaker = func(p Params) (channel, error) {
			return channel{}, fmt.Errorf("request to https://api.telegram.org/bot%s/getMe failed", p.TelegramToken)
		}
		t.Cleanup(func() { telegramChannelMaker = orig })

		log := &mockLogger{}
		svc, err := New(Params{Channels: []string{"telegram"}, TelegramToken: "123:secret", TelegramChat: "-1"}, "", log)
		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.Empty(t, svc.channels)
		msgs := log.getMsgs()
		require.Len(t, msgs, 2)
		assert.Contains(t, msgs[0], "[WARN] telegram channel disabled")
		assert.Contains(t, msgs[0], "[REDACTED]")
		assert.NotContains(t, msgs[0], "123:secret")
		assert.Contains(t, msgs[1], "all notification channels were disabled")
	})
}

func TestService_Observe(t *testing.T) {
	at := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	failed := browser.Event{Tracker: "people", Seq: 2, From: "loading", To: "failed", Error: "status 500", At: at}
	recovered := browser.Event{Tracker: "people", Seq: 3, From: "loading", To: "succeeded", At: at}

	t.Run("nil receiver is no-op", func(t *testing.T) {
		var svc *Service
		svc.Observe(failed)
		svc.Run(context.Background())
		svc.Send(context.Background(), Alert{})
	})

	t.Run("failure then recovery", func(t *testing.T) {
		svc, _ := newTestService(true, true)
		svc.Observe(browser.Event{Tracker: "people", Seq: 1, From: "idle", To: "loading"})
		svc.Observe(browser.Event{Tracker: "films", Seq: 1, From: "loading", To: "succeeded"})
		svc.Observe(failed)
		svc.Observe(recovered)
		svc.Observe(recovered) // already recovered

		require.Len(t, svc.queue, 2)
		assert.Equal(t, Alert{Status: StatusFailure, Tracker: "people", Seq: 2, Error: "status 500", At: at}, <-svc.queue)
		assert.Equal(t, Alert{Status: StatusRecovery, Tracker: "people", Seq: 3, At: at}, <-svc.queue)
	})

	t.Run("recovery disabled still clears failure", func(t *testing.T) {
		svc, _ := newTestService(true, false)
		svc.Observe(failed)
		svc.Observe(recovered)
		require.Len(t, svc.queue, 1)
		assert.Equal(t, StatusFailure, (<-svc.queue).Status)
		assert.Empty(t, svc.failed)
	})

	t.Run("failure disabled", func(t *testing.T) {
		svc, _ := newTestService(false, true)
		svc.Observe(failed)
		assert.Empty(t, svc.queue)
		assert.True(t, svc.failed["people"])
	})

	t.Run("full queue drops alerts", func(t *testing.T) {
		svc, log := newTestService(true, false)
		for range queueSize + 1 {
			svc.Observe(failed)
		}
		assert.Len(t, svc.queue, queueSize)
		msgs := log.getMsgs()
		require.Len(t, msgs, 1)
		assert.Contains(t, msgs[0], "alert queue full")
	})
}

func TestService_Run(t *testing.T) {
	mock := &mockNotifier{schema: "http"}
	svc, _ := newTestService(true, false, channel{notifier: mock, dest: "https://example.com/hook"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	svc.Observe(browser.Event{Tracker: "films", Seq: 4, To: "failed", Error: "timeout"})
	require.Eventually(t, func() bool { return len(mock.getCalls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Contains(t, mock.getCalls()[0].text, "swbrowse films failed on test-host")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop on cancel")
	}
}

func TestService_Send(t *testing.T) {
	t.Run("notifier errors are logged", func(t *testing.T) {
		bad := &mockNotifier{schema: "http", err: errors.New("network error")}
		good := &mockNotifier{schema: "slack"}
		svc, log := newTestService(true, false,
			channel{notifier: bad, dest: "https://example.com/hook"},
			channel{notifier: good, dest: "slack:alerts"})

		svc.Send(context.Background(), Alert{Status: StatusFailure, Tracker: "people"})
		assert.Len(t, bad.getCalls(), 1)
		require.Len(t, good.getCalls(), 1)
		assert.Equal(t, "slack:alerts", good.getCalls()[0].dest)

		msgs := log.getMsgs()
		require.Len(t, msgs, 2)
		assert.Contains(t, msgs[0], "notification failed for mock-http: network error")
		assert.Contains(t, msgs[1], "[DEBUG] failure alert for people sent to mock-slack")
	})

	t.Run("html escaped for telegram", func(t *testing.T) {
		tg := &mockNotifier{schema: "telegram"}
		plain := &mockNotifier{schema: "http"}
		svc, _ := newTestService(true, false,
			channel{notifier: tg, dest: "telegram:-1?parseMode=HTML", htmlEscape: true},
			channel{notifier: plain, dest: "https://example.com/hook"})

		svc.Send(context.Background(), Alert{Status: StatusFailure, Tracker: "people", Error: "decode: <nil> & more"})
		require.Len(t, tg.getCalls(), 1)
		assert.Contains(t, tg.getCalls()[0].text, "decode: &lt;nil&gt; &amp; more")
		require.Len(t, plain.getCalls(), 1)
		assert.Contains(t, plain.getCalls()[0].text, "decode: <nil> & more")
	})
}

func TestService_FormatMessage(t *testing.T) {
	svc, _ := newTestService(true, true)
	at := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	t.Run("failure", func(t *testing.T) {
		msg := svc.formatMessage(Alert{Status: StatusFailure, Tracker: "people", Seq: 7, Error: "status 500", At: at})
		assert.Equal(t, "swbrowse people failed on test-host\n\n"+
			"api:      http://api.example\n"+
			"request:  #7\n"+
			"at:       2026-10-14T12:00:00Z\n"+
			"error:    status 500\n", msg)
	})

	t.Run("recovery without optional fields", func(t *testing.T) {
		bare := &Service{hostname: "h"}
		msg := bare.formatMessage(Alert{Status: StatusRecovery, Tracker: "films", Seq: 1})
		assert.Contains(t, msg, "swbrowse films recovered on h")
		assert.NotContains(t, msg, "api:")
		assert.NotContains(t, msg, "at:")
		assert.NotContains(t, msg, "error:")
		assert.Len(t, strings.Split(strings.TrimRight(msg, "\n"), "\n"), 3)
	})
}
