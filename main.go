package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/soar/xgamepad/internal/config"
	"github.com/soar/xgamepad/internal/gamepad/sdlreader"
	"github.com/soar/xgamepad/internal/hub"
	"github.com/soar/xgamepad/internal/inject"
	"github.com/soar/xgamepad/internal/keyboard"
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/server"
	"github.com/soar/xgamepad/internal/session"
	"github.com/soar/xgamepad/internal/settings"
	"github.com/soar/xgamepad/internal/sim"
	"github.com/soar/xgamepad/internal/tray"
	"github.com/soar/xgamepad/internal/xpweb"
)

// os.Interrupt covers Ctrl+C on every platform.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Errorf("%v", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if !logger.SetLevel(cfg.LogLevel) {
		logger.Warningf("unknown log level %q, keeping info", cfg.LogLevel)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	aircraft := sim.DefaultAircraft()
	aircraft.Path = cfg.Aircraft
	host := sim.New(sim.Options{Rate: cfg.Rate, Plugins: cfg.Plugins, Aircraft: aircraft})

	injector, name, err := inject.Open(cfg.Injector)
	if err != nil {
		logger.Warningf("%v; emulated mouse and keyboard disabled", err)
		injector, name = nil, "null"
	}
	logger.Infof("input injector: %s", name)

	file := settings.NewFile(cfg.Settings)
	sess := session.New(host, session.Options{
		Settings: file.Load(),
		Saver:    file,
		Injector: injector,
		Overlay:  &keyboard.Flag{},
		Displays: cfg.Displays,
	})
	host.RegisterFlightLoop(sess.Tick)
	host.OnMessage(sess.HandleMessage)
	host.Post(sess.Start)
	err = file.Watch(ctx, func(st settings.Settings) {
		host.Post(func() { sess.ApplySettings(st) })
	})
	if err != nil {
		logger.Warningf("%v; external settings edits are ignored", err)
	}

	reader := sdlreader.NewReader()
	h := hub.NewHub()
	broadcaster := hub.NewBroadcaster(h, sess)
	srv := server.New(server.Options{
		Hub:         h,
		Broadcaster: broadcaster,
		Loop:        host,
		Controls:    sess,
		Source:      sess,
		Frontend:    frontendFS(),
		Addr:        cfg.Listen,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return reader.Run(gctx) })
	g.Go(func() error { return host.Feed(gctx, reader.Changes()) })
	g.Go(func() error { return host.Run(gctx) })
	g.Go(func() error { return h.Run(gctx) })
	g.Go(func() error { return broadcaster.Run(gctx) })
	g.Go(func() error { return srv.ListenAndServe(gctx) })

	if cfg.XPlaneURL != "" {
		bridge := xpweb.NewBridge(xpweb.NewClient(cfg.XPlaneURL, nil), host)
		g.Go(func() error { return bridge.Run(gctx) })
		logger.Infof("mirroring into x-plane at %s", cfg.XPlaneURL)
	}

	if cfg.Tray {
		t := tray.New(tray.Options{
			Session:  sess,
			Loop:     host,
			Source:   sess,
			URL:      statusURL(cfg.Listen),
			Shutdown: tray.ShutdownFunc(cancel),
		})
		go t.Run(tray.Icon())
		go func() {
			<-gctx.Done()
			t.Quit()
		}()
	} else {
		logger.Infof("press Ctrl+C to exit")
	}

	runErr := g.Wait()
	logger.Infof("shutting down")

	// The flight loop has stopped, so the session can be torn down here.
	if n := sess.Stop(); n > 0 {
		logger.Infof("restored %d pending assignment snapshots", n)
	}

	var result *multierror.Error
	if runErr != nil {
		result = multierror.Append(result, runErr)
	}
	if injector != nil {
		if err := injector.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "close injector"))
		}
	}
	return result.ErrorOrNil()
}

func statusURL(listen string) string {
	if strings.HasPrefix(listen, ":") {
		return fmt.Sprintf("http://localhost%s", listen)
	}
	return "http://" + listen
}
