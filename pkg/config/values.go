package config

import (
	"embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/ini.v1"
)

// Values holds scalar configuration values.
// Fields ending in *Set track whether the numeric field was explicitly set in config,
// so a local 0 can override a non-zero global value.
type Values struct {
	BaseURL             string
	MinLoadingMs        int
	MinLoadingMsSet     bool
	RequestTimeoutMs    int
	RequestTimeoutMsSet bool
	FilmsConcurrency    int
	FilmsConcurrencySet bool
	RateLimitRPS        float64
	RateLimitRPSSet     bool
	RateLimitBurst      int
	RateLimitBurstSet   bool
	DashboardPort       int
	DashboardPortSet    bool
	CORSOrigins         []string // allowed dashboard origins
	OutputFormat        string   // text, json or yaml
	ValidateStrategy    string   // total or fail-fast
	Notify              NotifyValues
}

// output formats accepted by output_format.
var outputFormats = []string{"text", "json", "yaml"}

// valuesLoader loads Values with embedded filesystem fallback.
type valuesLoader struct {
	embedFS embed.FS
}

func newValuesLoader(embedFS embed.FS) *valuesLoader {
	return &valuesLoader{embedFS: embedFS}
}

// Load loads values from config files with fallback chain: local → global → embedded.
// localConfigPath and globalConfigPath are full paths to config files (not directories).
//
//nolint:dupl // intentional structural similarity with colorLoader.Load
func (vl *valuesLoader) Load(localConfigPath, globalConfigPath string) (Values, error) {
	embedded, err := vl.parseValuesFromEmbedded()
	if err != nil {
		return Values{}, fmt.Errorf("parse embedded defaults: %w", err)
	}

	global, err := vl.parseValuesFromFile(globalConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse global config: %w", err)
	}

	local, err := vl.parseValuesFromFile(localConfigPath)
	if err != nil {
		return Values{}, fmt.Errorf("parse local config: %w", err)
	}

	// merge: embedded → global → local (local wins)
	result := embedded
	result.mergeFrom(&global)
	result.mergeFrom(&local)

	return result, nil
}

// parseValuesFromFile reads a config file and parses it into Values.
// returns empty Values (not error) if the file doesn't exist or has only comments.
func (vl *valuesLoader) parseValuesFromFile(path string) (Values, error) {
	if path == "" {
		return Values{}, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is constructed internally
	if err != nil {
		if os.IsNotExist(err) {
			return Values{}, nil
		}
		return Values{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if strings.TrimSpace(stripComments(string(data))) == "" {
		return Values{}, nil
	}

	return vl.parseValuesFromBytes(data)
}

func (vl *valuesLoader) parseValuesFromEmbedded() (Values, error) {
	data, err := vl.embedFS.ReadFile("defaults/config")
	if err != nil {
		return Values{}, fmt.Errorf("read embedded defaults: %w", err)
	}
	return vl.parseValuesFromBytes(data)
}

// parseValuesFromBytes parses configuration from a byte slice into Values.
func (vl *valuesLoader) parseValuesFromBytes(data []byte) (Values, error) {
	// ignoreInlineComment: true keeps # inside values, colors are written as #rrggbb
	cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, data)
	if err != nil {
		return Values{}, fmt.Errorf("parse config: %w", err)
	}

	var values Values
	section := cfg.Section("") // default section (no section header)

	if key, err := section.GetKey("base_url"); err == nil {
		values.BaseURL = strings.TrimSpace(key.String())
	}

	ints := []struct {
		key      string
		field    *int
		set      *bool
		positive bool // zero is rejected as well
	}{
		{"min_loading_ms", &values.MinLoadingMs, &values.MinLoadingMsSet, false},
		{"request_timeout_ms", &values.RequestTimeoutMs, &values.RequestTimeoutMsSet, false},
		{"films_concurrency", &values.FilmsConcurrency, &values.FilmsConcurrencySet, true},
		{"rate_limit_burst", &values.RateLimitBurst, &values.RateLimitBurstSet, true},
		{"dashboard_port", &values.DashboardPort, &values.DashboardPortSet, true},
	}
	for _, ik := range ints {
		key, err := section.GetKey(ik.key)
		if err != nil {
			continue
		}
		val, intErr := key.Int()
		if intErr != nil {
			return Values{}, fmt.Errorf("invalid %s: %w", ik.key, intErr)
		}
		if val < 0 || (ik.positive && val == 0) {
			return Values{}, fmt.Errorf("invalid %s: out of range, got %d", ik.key, val)
		}
		*ik.field = val
		*ik.set = true
	}
	if values.DashboardPortSet && values.DashboardPort > 65535 {
		return Values{}, fmt.Errorf("invalid dashboard_port: out of range, got %d", values.DashboardPort)
	}

	if key, err := section.GetKey("rate_limit_rps"); err == nil {
		val, fErr := key.Float64()
		if fErr != nil {
			return Values{}, fmt.Errorf("invalid rate_limit_rps: %w", fErr)
		}
		if val < 0 {
			return Values{}, fmt.Errorf("invalid rate_limit_rps: must be non-negative, got %v", val)
		}
		values.RateLimitRPS = val
		values.RateLimitRPSSet = true
	}

	if key, err := section.GetKey("cors_origins"); err == nil {
		values.CORSOrigins = splitList(key.String())
	}

	if key, err := section.GetKey("output_format"); err == nil {
		format := strings.ToLower(strings.TrimSpace(key.String()))
		if err := checkOutputFormat(format); err != nil {
			return Values{}, fmt.Errorf("invalid output_format: %w", err)
		}
		values.OutputFormat = format
	}

	if key, err := section.GetKey("validate_strategy"); err == nil {
		values.ValidateStrategy = strings.ToLower(strings.TrimSpace(key.String()))
	}

	notify, err := parseNotify(section)
	if err != nil {
		return Values{}, err
	}
	values.Notify = notify

	return values, nil
}

// mergeFrom merges set values from src into dst.
func (dst *Values) mergeFrom(src *Values) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.MinLoadingMsSet {
		dst.MinLoadingMs, dst.MinLoadingMsSet = src.MinLoadingMs, true
	}
	if src.RequestTimeoutMsSet {
		dst.RequestTimeoutMs, dst.RequestTimeoutMsSet = src.RequestTimeoutMs, true
	}
	if src.FilmsConcurrencySet {
		dst.FilmsConcurrency, dst.FilmsConcurrencySet = src.FilmsConcurrency, true
	}
	if src.RateLimitRPSSet {
		dst.RateLimitRPS, dst.RateLimitRPSSet = src.RateLimitRPS, true
	}
	if src.RateLimitBurstSet {
		dst.RateLimitBurst, dst.RateLimitBurstSet = src.RateLimitBurst, true
	}
	if src.DashboardPortSet {
		dst.DashboardPort, dst.DashboardPortSet = src.DashboardPort, true
	}
	if len(src.CORSOrigins) > 0 {
		dst.CORSOrigins = src.CORSOrigins
	}
	if src.OutputFormat != "" {
		dst.OutputFormat = src.OutputFormat
	}
	if src.ValidateStrategy != "" {
		dst.ValidateStrategy = src.ValidateStrategy
	}
	dst.Notify.mergeFrom(&src.Notify)
}

func checkOutputFormat(format string) error {
	if slices.Contains(outputFormats, format) {
		return nil
	}
	return fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join(outputFormats, ", "))
}

// stripComments removes lines starting with # (comment lines) from content.
// handles both Unix (LF) and Windows (CRLF) line endings.
func stripComments(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
