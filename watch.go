package main

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/radovskyb/watcher"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// painter re-derives the palette from the current configuration and renders it.
// Calls are serialized since config events arrive on watcher goroutines.
type painter struct {
	mu     sync.Mutex
	v      *viper.Viper
	logger *log.Entry
}

func newPainter(v *viper.Viper) *painter {
	return &painter{
		v:      v,
		logger: log.WithField("component", "painter"),
	}
}

func (p *painter) paint() (Settings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	setLogLevel(p.v, p.logger)

	settings, err := parseConfig(p.v, p.logger)
	if err != nil {
		return settings, err
	}

	stripes, err := BuildPalette(settings.Palette)
	if err != nil {
		return settings, err
	}

	renderer, err := newRenderer(settings.Output)
	if err != nil {
		return settings, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, stripes); err != nil {
		return settings, fmt.Errorf("could not render palette: %w", err)
	}
	if err := writeOutput(settings.Output.File, buf.Bytes()); err != nil {
		return settings, err
	}

	p.logger.WithFields(log.Fields{
		"steps":  len(stripes),
		"format": settings.Output.Format,
	}).Debugln("Rendered palette")
	return settings, nil
}

// repaint is paint for config events, where there is no caller to return to.
func (p *painter) repaint() {
	if _, err := p.paint(); err != nil {
		p.logger.Errorf("Could not apply updated config\nError: %s", err.Error())
		return
	}
	p.logger.Infoln("Updated palette")
}

// watchConfig blocks, repainting on every change of the config file, until
// ctx is cancelled. A positive poll interval uses a polling watcher instead
// of fsnotify.
func watchConfig(ctx context.Context, p *painter, poll time.Duration) error {
	file := p.v.ConfigFileUsed()
	if file == "" {
		return fmt.Errorf("watching requires a config file")
	}
	logger := p.logger.WithField("file", file)

	if poll <= 0 {
		p.v.OnConfigChange(func(e fsnotify.Event) {
			logger.Debugln(e.Op, e.Name)
			p.repaint()
		})
		p.v.WatchConfig()
		logger.Infoln("Watching config")
		<-ctx.Done()
		return nil
	}

	w := watcher.New()
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write, watcher.Create)
	if err := w.Add(file); err != nil {
		return fmt.Errorf("could not watch config file: %w", err)
	}

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
		case <-stopped:
			return
		}
		// Close is a no-op until Start has the watcher running
		w.Wait()
		w.Close()
	}()

	errc := make(chan error, 1)
	go func() {
		errc <- w.Start(poll)
	}()

	logger.Infof("Polling config every %s", poll)
	for {
		select {
		case event := <-w.Event:
			logger.Debugln(event)
			if err := p.v.ReadInConfig(); err != nil {
				logger.Errorf("Could not read config file\nError: %s", err.Error())
				continue
			}
			p.repaint()
		case err := <-w.Error:
			logger.Errorln(err)
		case <-w.Closed:
			return nil
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("config poller stopped: %w", err)
			}
		}
	}
}
