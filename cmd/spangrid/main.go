// SPDX-License-Identifier: Unlicense OR MIT

// Command spangrid is a terminal table with merged cells, driven by
// the gesture router.
//
// Drag with the left button to flick the table, click to select a
// cell and hold to merge the selection or split a merged cell. The
// right button drags a selection.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"gioui.org/gesturekit/internal/logutil"
)

var (
	configFile = flag.String("config", "", "read gesture and scroller settings from YAML `file`")
	logFile    = flag.String("log", "", "write a debug log to `file`")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spangrid: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	c, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			return err
		}
		defer f.Close()
		logutil.SetOutput(f)
	}
	a, err := newApp(c)
	if err != nil {
		return err
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()
	s.EnableMouse()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	start := time.Now()
	for {
		a.draw(s)
		s.Show()
		var wake <-chan time.Time
		if at, ok := a.wakeup(time.Since(start)); ok {
			wake = time.After(max(at-time.Since(start), 0))
		}
		select {
		case ev := <-events:
			now := time.Since(start)
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.Sync()
			case *tcell.EventKey:
				if a.key(ev) {
					return nil
				}
			case *tcell.EventMouse:
				a.mouse(ev, now)
			}
			a.advance(now)
		case <-wake:
			a.advance(time.Since(start))
		}
	}
}
