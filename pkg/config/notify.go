package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// NotifyValues holds tracker alert settings used by the dashboard.
// ChannelsSet distinguishes an explicitly empty notify_channels, which disables alerts
// configured in an outer file.
type NotifyValues struct {
	Channels      []string
	ChannelsSet   bool
	OnFailure     bool
	OnFailureSet  bool
	OnRecovery    bool
	OnRecoverySet bool
	TimeoutMs     int
	TimeoutMsSet  bool
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

func parseNotify(section *ini.Section) (NotifyValues, error) {
	var nv NotifyValues

	if key, err := section.GetKey("notify_channels"); err == nil {
		nv.Channels = splitList(key.String())
		nv.ChannelsSet = true
	}

	bools := []struct {
		key   string
		field *bool
		set   *bool
	}{
		{"notify_on_failure", &nv.OnFailure, &nv.OnFailureSet},
		{"notify_on_recovery", &nv.OnRecovery, &nv.OnRecoverySet},
		{"notify_smtp_starttls", &nv.SMTPStartTLS, nil},
	}
	for _, bk := range bools {
		key, err := section.GetKey(bk.key)
		if err != nil {
			continue
		}
		val, bErr := key.Bool()
		if bErr != nil {
			return NotifyValues{}, fmt.Errorf("invalid %s: %w", bk.key, bErr)
		}
		*bk.field = val
		if bk.set != nil {
			*bk.set = true
		}
	}

	if key, err := section.GetKey("notify_timeout_ms"); err == nil {
		val, iErr := key.Int()
		if iErr != nil || val < 0 {
			return NotifyValues{}, fmt.Errorf("invalid notify_timeout_ms: %q", key.String())
		}
		nv.TimeoutMs, nv.TimeoutMsSet = val, true
	}
	if key, err := section.GetKey("notify_smtp_port"); err == nil {
		val, iErr := key.Int()
		if iErr != nil || val <= 0 || val > 65535 {
			return NotifyValues{}, fmt.Errorf("invalid notify_smtp_port: %q", key.String())
		}
		nv.SMTPPort = val
	}

	strs := []struct {
		key   string
		field *string
	}{
		{"notify_telegram_token", &nv.TelegramToken},
		{"notify_telegram_chat", &nv.TelegramChat},
		{"notify_slack_token", &nv.SlackToken},
		{"notify_slack_channel", &nv.SlackChannel},
		{"notify_smtp_host", &nv.SMTPHost},
		{"notify_smtp_username", &nv.SMTPUsername},
		{"notify_smtp_password", &nv.SMTPPassword},
		{"notify_email_from", &nv.EmailFrom},
	}
	for _, sk := range strs {
		if key, err := section.GetKey(sk.key); err == nil {
			*sk.field = strings.TrimSpace(key.String())
		}
	}

	if key, err := section.GetKey("notify_email_to"); err == nil {
		nv.EmailTo = splitList(key.String())
	}
	if key, err := section.GetKey("notify_webhook_urls"); err == nil {
		nv.WebhookURLs = splitList(key.String())
	}
	return nv, nil
}

// mergeFrom merges set values from src into dst.
func (dst *NotifyValues) mergeFrom(src *NotifyValues) {
	if src.ChannelsSet {
		dst.Channels, dst.ChannelsSet = src.Channels, true
	}
	if src.OnFailureSet {
		dst.OnFailure, dst.OnFailureSet = src.OnFailure, true
	}
	if src.OnRecoverySet {
		dst.OnRecovery, dst.OnRecoverySet = src.OnRecovery, true
	}
	if src.TimeoutMsSet {
		dst.TimeoutMs, dst.TimeoutMsSet = src.TimeoutMs, true
	}
	for _, p := range []struct{ dst, src *string }{
		{&dst.TelegramToken, &src.TelegramToken},
		{&dst.TelegramChat, &src.TelegramChat},
		{&dst.SlackToken, &src.SlackToken},
		{&dst.SlackChannel, &src.SlackChannel},
		{&dst.SMTPHost, &src.SMTPHost},
		{&dst.SMTPUsername, &src.SMTPUsername},
		{&dst.SMTPPassword, &src.SMTPPassword},
		{&dst.EmailFrom, &src.EmailFrom},
	} {
		if *p.src != "" {
			*p.dst = *p.src
		}
	}
	if src.SMTPPort > 0 {
		dst.SMTPPort = src.SMTPPort
	}
	if src.SMTPStartTLS {
		dst.SMTPStartTLS = true
	}
	if len(src.EmailTo) > 0 {
		dst.EmailTo = src.EmailTo
	}
	if len(src.WebhookURLs) > 0 {
		dst.WebhookURLs = src.WebhookURLs
	}
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var res []string
	for p := range strings.SplitSeq(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			res = append(res, t)
		}
	}
	return res
}
