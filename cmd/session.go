package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/CrazyPigHead/t-reader/internal/config"
	"github.com/CrazyPigHead/t-reader/internal/history"
	"github.com/CrazyPigHead/t-reader/internal/lang"
	"github.com/CrazyPigHead/t-reader/internal/providers/generic"
	"github.com/CrazyPigHead/t-reader/internal/reader"
	"github.com/CrazyPigHead/t-reader/internal/ui"
	"github.com/CrazyPigHead/t-reader/internal/util"
)

// readerEnv bundles a session with the pieces the commands print through.
type readerEnv struct {
	cfg     *config.Config
	path    string
	log     *ui.Logger
	status  *ui.StatusLine
	session *reader.Session
	history *history.DB
}

func loadConfig() (*config.Config, string, error) {
	return config.LoadMerged(config.Options{
		Profile:   flagProfile,
		Debug:     flagDebug,
		Proxy:     flagProxy,
		UserAgent: flagUserAgent,
	})
}

func openReader() (*readerEnv, error) {
	cfg, used, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if used != "" {
		logSvc.Debugf("config file: %s\n", used)
	} else {
		logSvc.Infof("no active config, reading position will not be saved\n")
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Proxy:       cfg.Proxy,
		Cloudflare:  cfg.Cloudflare,
		DebugLogger: logSvc,
	})
	if err != nil {
		return nil, err
	}

	env := &readerEnv{
		cfg:    cfg,
		path:   used,
		log:    logSvc,
		status: ui.NewStatusLine(os.Stdout),
	}

	scr := generic.NewScraper(generic.NewFetcher(client), cfg.BookRule(), logSvc)
	logSvc.Debugf("book rule: %+v\n", scr.Rule())

	opts := reader.Options{
		Source:   scr,
		Store:    config.NewFileStore(used, cfg),
		Display:  env.status,
		Log:      logSvc,
		Detector: lang.NewDetector(),
	}

	if cfg.History {
		db, err := history.Open(config.HistoryPath())
		if err != nil {
			logSvc.Errorf("reading history disabled: %v\n", err)
		} else {
			env.history = db
			opts.History = db
		}
	}

	env.session = reader.NewSession(opts)
	return env, nil
}

func (e *readerEnv) Close() {
	if e.history != nil {
		_ = e.history.Close()
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// withSession opens a session, runs Init unless skipInit is set, then op.
func withSession(skipInit bool, op func(context.Context, *readerEnv) error) error {
	env, err := openReader()
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, stop := signalContext()
	defer stop()
	defer env.status.Done()

	if !skipInit {
		if err := env.session.Init(ctx); err != nil {
			return describe(err)
		}
	}

	return describe(op(ctx, env))
}

// describe turns session errors into command results. Reaching either end
// of the book is not a failure.
func describe(err error) error {
	switch {
	case err == nil, reader.IsBoundary(err):
		return nil
	case errors.Is(err, reader.ErrNoChapterURL):
		return fmt.Errorf("%w (set it with `treader config set chapter_url <url>`)", err)
	default:
		return err
	}
}
