// Package main provides swbrowse - a terminal and web browser for the Star Wars people API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/swbrowse/pkg/browser"
	"github.com/umputun/swbrowse/pkg/config"
	"github.com/umputun/swbrowse/pkg/input"
	"github.com/umputun/swbrowse/pkg/notify"
	"github.com/umputun/swbrowse/pkg/render"
	"github.com/umputun/swbrowse/pkg/swapi"
	"github.com/umputun/swbrowse/pkg/validate"
	"github.com/umputun/swbrowse/pkg/web"
)

// opts holds all command-line options.
type opts struct {
	Page        int    `long:"page" default:"1" description:"people page to load"`
	Person      int    `long:"person" description:"show person N (1-based) of the page with their films"`
	Interactive bool   `short:"i" long:"interactive" description:"browse pages and people interactively"`
	Format      string `short:"f" long:"format" choice:"text" choice:"json" choice:"yaml" description:"output format, overrides config"`

	Validate bool   `long:"validate" description:"validate a sign-up form and exit"`
	Email    string `long:"email" description:"form email, prompted when empty"`
	Password string `long:"password" description:"form password, prompted when empty"`
	FailFast bool   `long:"fail-fast" description:"stop at the first failing form field"`

	Serve bool `short:"s" long:"serve" description:"start web dashboard for real-time tracker state"`
	Port  int  `short:"p" long:"port" description:"web dashboard port, overrides config"`

	BaseURL    string `long:"base-url" description:"API root, overrides config"`
	MinLoading int    `long:"min-loading" default:"-1" description:"minimum loading time in ms, -1 uses config"`
	ConfigDir  string `long:"config-dir" env:"SWBROWSE_CONFIG_DIR" description:"global config directory"`
	Init       bool   `long:"init" description:"write the default config into the config directory and exit"`

	Debug   bool `short:"d" long:"debug" description:"enable debug logging"`
	NoColor bool `long:"no-color" description:"disable color output"`
	Version bool `short:"v" long:"version" description:"print version and exit"`
}

var revision = "unknown"

func main() {
	var o opts
	parser := flags.NewParser(&o, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		fmt.Printf("swbrowse %s\n", revision)
		os.Exit(0)
	}

	// setup context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts, stdin io.Reader, stdout io.Writer) error {
	cfg, err := config.Load(config.Options{ConfigDir: o.ConfigDir, Install: o.Init})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.Init {
		_, _ = fmt.Fprintf(stdout, "config installed in %s\n", cfg.ConfigDir)
		return nil
	}

	st, err := resolveSettings(cfg, o)
	if err != nil {
		return err
	}

	log := setupLog(o.Debug)
	if o.NoColor {
		color.NoColor = true
	}
	printer := render.New(render.Config{Out: stdout, Colors: render.NewColors(cfg.Colors), NoColor: o.NoColor})

	if o.Validate {
		return runValidate(ctx, validateRequest{Email: o.Email, Password: o.Password, Strategy: st.strategy},
			input.NewTerminalPrompter(stdin, stdout), printer)
	}

	client := swapi.New(swapi.Config{
		BaseURL:          st.baseURL,
		Timeout:          cfg.RequestTimeout(),
		RateLimit:        cfg.RateLimitRPS,
		RateBurst:        cfg.RateLimitBurst,
		FilmsConcurrency: cfg.FilmsConcurrency,
		Log:              log,
	})
	br := browser.New(ctx, browser.Config{Fetcher: client, MinLoading: st.minLoading, Log: log})
	defer br.Close()

	if o.Serve {
		srv := web.NewServer(web.ServerConfig{
			Port:        st.port,
			BaseURL:     client.BaseURL(),
			CORSOrigins: cfg.CORSOrigins,
			Strategy:    st.strategy,
			Log:         log,
		}, br, web.NewBuffer(0))
		br.Subscribe(srv.Observe)

		alerts, aErr := notify.New(notifyParams(cfg.Notify), client.BaseURL(), log)
		if aErr != nil {
			return fmt.Errorf("notifications: %w", aErr)
		}
		if alerts != nil {
			br.Subscribe(alerts.Observe)
			go alerts.Run(ctx)
		}

		go func() {
			if srvErr := srv.Start(ctx); srvErr != nil {
				fmt.Fprintf(os.Stderr, "web server error: %v\n", srvErr)
			}
		}()
		printer.Info("web dashboard: http://localhost:%d", st.port)
	}

	switch {
	case o.Interactive:
		restore := quietInterrupt()
		defer restore()
		return newSession(br, printer).run(ctx, o.Page, stdin)
	case o.Serve:
		if _, err := br.SetPage(o.Page); err != nil {
			return fmt.Errorf("load page: %w", err)
		}
		<-ctx.Done()
		return nil
	default:
		return runList(ctx, br, printer, stdout, listRequest{Page: o.Page, Person: o.Person, Format: st.format})
	}
}

// settings are the effective options after applying flags over config.
type settings struct {
	baseURL    string
	port       int
	format     string
	minLoading time.Duration
	strategy   validate.Strategy
}

// resolveSettings applies command-line overrides on top of the loaded config.
func resolveSettings(cfg *config.Config, o opts) (settings, error) {
	st := settings{
		baseURL:    cfg.BaseURL,
		port:       cfg.DashboardPort,
		format:     cfg.OutputFormat,
		minLoading: cfg.MinLoading(),
	}
	if o.BaseURL != "" {
		st.baseURL = o.BaseURL
	}
	if o.Port > 0 {
		st.port = o.Port
	}
	if o.Format != "" {
		st.format = o.Format
	}
	if o.MinLoading >= 0 {
		st.minLoading = time.Duration(o.MinLoading) * time.Millisecond
	}
	if o.Page < 1 {
		return settings{}, fmt.Errorf("invalid page %d", o.Page)
	}

	strategy, err := validate.ParseStrategy(cfg.ValidateStrategy)
	if err != nil {
		return settings{}, fmt.Errorf("config validate_strategy: %w", err)
	}
	if o.FailFast {
		strategy = validate.FailFast
	}
	st.strategy = strategy
	return st, nil
}

// notifyParams maps config alert values to notify.Params.
func notifyParams(v config.NotifyValues) notify.Params {
	return notify.Params{
		Channels:      v.Channels,
		OnFailure:     v.OnFailure,
		OnRecovery:    v.OnRecovery,
		TimeoutMs:     v.TimeoutMs,
		TelegramToken: v.TelegramToken,
		TelegramChat:  v.TelegramChat,
		SlackToken:    v.SlackToken,
		SlackChannel:  v.SlackChannel,
		SMTPHost:      v.SMTPHost,
		SMTPPort:      v.SMTPPort,
		SMTPUsername:  v.SMTPUsername,
		SMTPPassword:  v.SMTPPassword,
		SMTPStartTLS:  v.SMTPStartTLS,
		EmailFrom:     v.EmailFrom,
		EmailTo:       v.EmailTo,
		WebhookURLs:   v.WebhookURLs,
	}
}

// setupLog creates the logger passed to every component. debug and trace lines are
// dropped unless debug is set.
func setupLog(debug bool) lgr.L {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.Out(os.Stderr)}
	if debug {
		logOpts = append(logOpts, lgr.Debug, lgr.CallerFunc)
	}
	return lgr.New(logOpts...)
}
