package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/juju/errors"
	"github.com/op/go-logging"

	"github.com/fkcurrie/keyled/internal/config"
	"github.com/fkcurrie/keyled/internal/display"
	"github.com/fkcurrie/keyled/internal/feed"
	"github.com/fkcurrie/keyled/internal/layout"
	klog "github.com/fkcurrie/keyled/internal/logging"
	"github.com/fkcurrie/keyled/internal/server"
	"github.com/fkcurrie/keyled/internal/snapshot"
)

var log = logging.MustGetLogger("keyled")

func main() {
	configPath := flag.String("config", "keyled.toml", "path to config file")
	text := flag.String("text", "", "text to show instead of display.text")
	sink := flag.String("sink", "", "output sink: terminal, gpio or memory")
	snapshotPath := flag.String("snapshot", "", "write the keys to this .png or .svg file on exit (memory sink)")
	listen := flag.String("listen", "", "serve /health and /text on this address")
	flag.Parse()

	if err := run(*configPath, *text, *sink, *snapshotPath, *listen); err != nil {
		fmt.Fprintln(os.Stderr, errors.ErrorStack(err))
		os.Exit(1)
	}
}

func run(configPath, text, sink, snapshotPath, listen string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	watch := err == nil
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return err
		}
		log.Infof("No config at %s, using defaults", configPath)
		cfg = config.DefaultConfig()
	}
	if text != "" {
		cfg.Display.Text = text
	}
	if sink != "" {
		cfg.Display.Sink = sink
	}
	if snapshotPath != "" && cfg.Display.Sink != config.SinkMemory {
		return errors.NotValidf("-snapshot with sink %q", cfg.Display.Sink)
	}
	if err := cfg.Validate(); err != nil {
		return errors.Trace(err)
	}

	// The terminal preview owns the screen, so logs go to a file
	logFile := cfg.Log.File
	if logFile == "" && cfg.Display.Sink == config.SinkTerminal {
		logFile = filepath.Join(os.TempDir(), "keyled.log")
	}
	closer, err := klog.Configure(cfg.Log.Level, logFile)
	if err != nil {
		return errors.Trace(err)
	}
	defer closer.Close()

	palette, err := cfg.Palette()
	if err != nil {
		return errors.Trace(err)
	}
	keys, err := cfg.KeyColors()
	if err != nil {
		return errors.Trace(err)
	}

	// Create sink
	matrix, err := display.Open(cfg)
	if err != nil {
		return errors.Annotate(err, "opening sink")
	}
	defer matrix.Close()

	renderer := display.NewRenderer(&cfg.Display, &layout.Voyager, palette)
	renderer.SetKeyColors(keys)
	renderer.SetMatrix(matrix)

	// Handle shutdown gracefully
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			log.Infof("Received %v, shutting down", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if tm, ok := matrix.(*display.TerminalMatrix); ok {
		go func() {
			tm.WaitQuit()
			cancel()
		}()
	}

	var wg sync.WaitGroup
	start := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil && errors.Cause(err) != context.Canceled {
				log.Errorf("%s stopped: %v", name, err)
			}
		}()
	}

	start("renderer", renderer.Start)

	if cfg.Feed.URL != "" {
		client := feed.NewClient(cfg.Feed)
		start("feed", client.Run)
		start("messages", func(ctx context.Context) error {
			return renderer.Messages(ctx, client.Messages())
		})
	}

	if listen != "" {
		start("http server", func(ctx context.Context) error {
			return server.ListenAndServe(ctx, listen, renderer)
		})
	}

	if watch {
		shown := cfg.Display.Text
		start("config watcher", func(ctx context.Context) error {
			return config.Watch(ctx, configPath, func(next *config.Config) {
				p, err := next.Palette()
				if err != nil {
					return
				}
				k, err := next.KeyColors()
				if err != nil {
					return
				}
				if fields := cfg.RestartFields(next); len(fields) > 0 {
					log.Warningf("Restart to apply changes to %s", strings.Join(fields, ", "))
				}
				// A color sent with the showing message stays in effect
				renderer.SetPalette(p)
				renderer.SetKeyColors(k)
				if text == "" && next.Display.Text != shown {
					shown = next.Display.Text
					renderer.SetText(next.Display.Text)
				}
			})
		})
	}

	log.Infof("Showing %q on the %s sink", cfg.Display.Text, cfg.Display.Sink)
	<-ctx.Done()
	wg.Wait()

	if snapshotPath != "" {
		// Flush whatever the last tick did not draw
		if _, err := renderer.RenderOnce(); err != nil {
			return errors.Trace(err)
		}
		return writeSnapshot(snapshotPath, matrix.(*display.MemoryMatrix))
	}
	return nil
}

// writeSnapshot writes m as SVG or PNG depending on the file extension
func writeSnapshot(path string, m *display.MemoryMatrix) error {
	var svg bytes.Buffer
	if err := snapshot.SVG(&svg, m, &layout.Voyager); err != nil {
		return errors.Trace(err)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		_, err = svg.WriteTo(f)
	} else {
		width, height := snapshot.Size()
		err = snapshot.PNG(f, &svg, width, height)
	}
	if err != nil {
		return errors.Annotatef(err, "writing snapshot %s", path)
	}
	log.Infof("Wrote snapshot to %s", path)
	return f.Close()
}
