// Package notify sends alerts when a dashboard tracker fails or recovers.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	ntfy "github.com/go-pkgz/notify"

	"github.com/umputun/swbrowse/pkg/browser"
)

// alert statuses
const (
	StatusFailure  = "failure"
	StatusRecovery = "recovery"
)

// queueSize bounds alerts waiting for delivery, extra alerts are dropped.
const queueSize = 32

// Params holds configuration for creating a notification Service.
type Params struct {
	Channels      []string
	OnFailure     bool
	OnRecovery    bool
	TimeoutMs     int
	TelegramToken string
	TelegramChat  string
	SlackToken    string
	SlackChannel  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPStartTLS  bool
	EmailFrom     string
	EmailTo       []string
	WebhookURLs   []string
}

// Service turns tracker transitions into alerts and delivers them through configured channels.
type Service struct {
	channels   []channel
	onFailure  bool
	onRecovery bool
	timeoutMs  int
	hostname   string
	baseURL    string
	log        lgr.L

	mu     sync.Mutex
	failed map[string]bool // trackers whose last settled phase is failed
	queue  chan Alert
}

// channel pairs a notifier with its destination URI.
type channel struct {
	notifier   ntfy.Notifier
	dest       string
	htmlEscape bool // telegram uses HTML parse mode
}

// Alert describes a single tracker failure or recovery.
type Alert struct {
	Status  string    `json:"status"`
	Tracker string    `json:"tracker"`
	Seq     uint64    `json:"seq"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

// New creates a notification Service from the given Params. baseURL is the api root
// included in messages.
// returns nil, nil if no channels are configured, all Service methods are nil-safe.
func New(p Params, baseURL string, log lgr.L) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil service means alerts are disabled
	}
	if log == nil {
		log = lgr.NoOp
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	svc := &Service{
		onFailure:  p.OnFailure,
		onRecovery: p.OnRecovery,
		timeoutMs:  p.TimeoutMs,
		hostname:   hostname,
		baseURL:    baseURL,
		log:        log,
		failed:     map[string]bool{},
		queue:      make(chan Alert, queueSize),
	}
	if svc.timeoutMs <= 0 {
		svc.timeoutMs = 10000
	}

	for _, ch := range p.Channels {
		switch strings.TrimSpace(strings.ToLower(ch)) {
		case "telegram":
			if p.TelegramToken == "" {
				return nil, errors.New("telegram channel: notify_telegram_token is required")
			}
			if p.TelegramChat == "" {
				return nil, errors.New("telegram channel: notify_telegram_chat is required")
			}
			c, cErr := telegramChannelMaker(p)
			if cErr != nil {
				// telegram init verifies the token with a live call, skip the channel when it fails
				errMsg := strings.ReplaceAll(cErr.Error(), p.TelegramToken, "[REDACTED]")
				log.Logf("[WARN] telegram channel disabled: %s", errMsg)
				continue
			}
			svc.channels = append(svc.channels, c)
		case "email":
			c, cErr := makeEmailChannel(p)
			if cErr != nil {
				return nil, fmt.Errorf("email channel: %w", cErr)
			}
			svc.channels = append(svc.channels, c)
		case "slack":
			c, cErr := makeSlackChannel(p)
			if cErr != nil {
				return nil, fmt.Errorf("slack channel: %w", cErr)
			}
			svc.channels = append(svc.channels, c)
		case "webhook":
			chs, cErr := makeWebhookChannels(p)
			if cErr != nil {
				return nil, fmt.Errorf("webhook channel: %w", cErr)
			}
			svc.channels = append(svc.channels, chs...)
		default:
			return nil, fmt.Errorf("unknown notification channel: %q", ch)
		}
	}

	if len(svc.channels) == 0 {
		log.Logf("[WARN] all notification channels were disabled due to initialization errors")
	}
	return svc, nil
}

// Observe inspects a tracker transition and queues an alert when the tracker settles
// as failed, or succeeds after a failure. It never blocks, a full queue drops the alert.
func (s *Service) Observe(e browser.Event) {
	if s == nil {
		return
	}
	alert, ok := s.classify(e)
	if !ok {
		return
	}
	select {
	case s.queue <- alert:
	default:
		s.log.Logf("[WARN] alert queue full, dropped %s alert for %s", alert.Status, alert.Tracker)
	}
}

func (s *Service) classify(e browser.Event) (Alert, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.To {
	case "failed":
		s.failed[e.Tracker] = true
		return Alert{Status: StatusFailure, Tracker: e.Tracker, Seq: e.Seq, Error: e.Error, At: e.At}, s.onFailure
	case "succeeded":
		if !s.failed[e.Tracker] {
			return Alert{}, false
		}
		delete(s.failed, e.Tracker)
		return Alert{Status: StatusRecovery, Tracker: e.Tracker, Seq: e.Seq, At: e.At}, s.onRecovery
	}
	return Alert{}, false
}

// Run delivers queued alerts until ctx is canceled.
func (s *Service) Run(ctx context.Context) {
	if s == nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case a := <-s.queue:
			s.Send(ctx, a)
		}
	}
}

// Send delivers an alert to all channels. errors are logged, never returned.
func (s *Service) Send(ctx context.Context, a Alert) {
	if s == nil {
		return
	}

	msg := s.formatMessage(a)
	sendCtx, cancel := context.WithTimeout(ctx, time.Duration(s.timeoutMs)*time.Millisecond)
	defer cancel()

	for _, ch := range s.channels {
		text := msg
		if ch.htmlEscape {
			text = html.EscapeString(msg)
		}
		if err := ch.notifier.Send(sendCtx, ch.dest, text); err != nil {
			s.log.Logf("[WARN] notification failed for %s: %v", ch.notifier, err)
			continue
		}
		s.log.Logf("[DEBUG] %s alert for %s sent to %s", a.Status, a.Tracker, ch.notifier)
	}
}

// formatMessage creates a plain text message from the alert.
func (s *Service) formatMessage(a Alert) string {
	var b strings.Builder

	if a.Status == StatusRecovery {
		fmt.Fprintf(&b, "swbrowse %s recovered on %s\n", a.Tracker, s.hostname)
	} else {
		fmt.Fprintf(&b, "swbrowse %s failed on %s\n", a.Tracker, s.hostname)
	}

	b.WriteString("\n")
	if s.baseURL != "" {
		fmt.Fprintf(&b, "api:      %s\n", s.baseURL)
	}
	fmt.Fprintf(&b, "request:  #%d\n", a.Seq)
	if !a.At.IsZero() {
		fmt.Fprintf(&b, "at:       %s\n", a.At.Format(time.RFC3339))
	}
	if a.Error != "" {
		fmt.Fprintf(&b, "error:    %s\n", a.Error)
	}
	return b.String()
}

// telegramChannelMaker is overridden in tests to avoid live API calls.
var telegramChannelMaker = makeTelegramChannel

// makeTelegramChannel creates a telegram notifier sending to telegram:<chat>?parseMode=HTML.
func makeTelegramChannel(p Params) (channel, error) {
	tg, err := ntfy.NewTelegram(ntfy.TelegramParams{Token: p.TelegramToken})
	if err != nil {
		return channel{}, fmt.Errorf("create telegram notifier: %w", err)
	}

	dest := fmt.Sprintf("telegram:%s?parseMode=HTML", p.TelegramChat)
	return channel{notifier: tg, dest: dest, htmlEscape: true}, nil
}

// makeEmailChannel creates an email notifier and destination.
func makeEmailChannel(p Params) (channel, error) {
	if p.SMTPHost == "" {
		return channel{}, errors.New("notify_smtp_host is required")
	}
	if p.EmailFrom == "" {
		return channel{}, errors.New("notify_email_from is required")
	}
	if len(p.EmailTo) == 0 {
		return channel{}, errors.New("notify_email_to is required")
	}

	em := ntfy.NewEmail(ntfy.SMTPParams{
		Host:     p.SMTPHost,
		Port:     p.SMTPPort,
		Username: p.SMTPUsername,
		Password: p.SMTPPassword,
		StartTLS: p.SMTPStartTLS,
	})

	dest := fmt.Sprintf("mailto:%s?from=%s&subject=%s",
		strings.Join(p.EmailTo, ","),
		url.QueryEscape(p.EmailFrom),
		url.QueryEscape("swbrowse alert"),
	)
	return channel{notifier: em, dest: dest}, nil
}

// makeSlackChannel creates a slack notifier and destination.
func makeSlackChannel(p Params) (channel, error) {
	if p.SlackToken == "" {
		return channel{}, errors.New("notify_slack_token is required")
	}
	if p.SlackChannel == "" {
		return channel{}, errors.New("notify_slack_channel is required")
	}
	return channel{notifier: ntfy.NewSlack(p.SlackToken), dest: "slack:" + p.SlackChannel}, nil
}

// makeWebhookChannels creates a webhook channel per configured URL.
func makeWebhookChannels(p Params) ([]channel, error) {
	if len(p.WebhookURLs) == 0 {
		return nil, errors.New("notify_webhook_urls is required")
	}

	wh := ntfy.NewWebhook(ntfy.WebhookParams{})
	channels := make([]channel, 0, len(p.WebhookURLs))
	for _, u := range p.WebhookURLs {
		channels = append(channels, channel{notifier: wh, dest: u})
	}
	return channels, nil
}
