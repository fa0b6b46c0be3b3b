// Copyright 2011 Vadim Vygonets. All rights reserved.
// Use of this source code is governed by the Bugroff
// license that can be found in the LICENSE file.

/*
Usage:
	tforth [-config tforth.yaml] [-trace] [file.4th ...]

The files named in the configuration and on the command line are
evaluated in order, then the outer interpreter reads standard input.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"tforth/bootstrap"
	"tforth/config"
	"tforth/forth"
)

// lineReader feeds readline input to the machine a line at a time.
type lineReader struct {
	rl  *readline.Instance
	buf []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	for len(l.buf) == 0 {
		line, err := l.rl.Readline()
		switch {
		case err == readline.ErrInterrupt:
			continue
		case err != nil:
			return 0, err
		}
		l.buf = append([]byte(line), '\n')
	}
	n := copy(p, l.buf)
	l.buf = l.buf[n:]
	return n, nil
}

func input(cfg *config.Config) (io.RuneReader, func(), error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		enc, err := forth.Encoding(cfg.Input.Encoding)
		if err != nil {
			return nil, nil, err
		}
		return forth.NewInput(os.Stdin, enc), func() {}, nil
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.History,
		InterruptPrompt: "^C",
		EOFPrompt:       "BYE",
	})
	if err != nil {
		return nil, nil, err
	}
	return forth.NewInput(&lineReader{rl: rl}, nil), func() { rl.Close() }, nil
}

func evaluate(ctx context.Context, img *bootstrap.Image, m *forth.Machine, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = img.Evaluate(ctx, m, f); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func main() {
	var (
		cfgPath = flag.String("config", "", "configuration `file`")
		trace   = flag.Bool("trace", false, "trace execution to standard error")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			log.Fatalln(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := forth.NewMachine(nil, os.Stdout)
	m.SetTrace(cfg.Trace || *trace, os.Stderr)
	img, err := bootstrap.Install(ctx, m, cfg.Base)
	if err != nil {
		log.Fatalln(err)
	}
	if img.Encoding, err = forth.Encoding(cfg.Input.Encoding); err != nil {
		log.Fatalln(err)
	}
	for _, name := range append(cfg.Startup, flag.Args()...) {
		if err := evaluate(ctx, img, m, name); err != nil {
			log.Fatalln(err)
		}
	}

	in, done, err := input(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	defer done()
	m.SetInput(in)
	for {
		err := m.Run(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		m.Reset(img.Quit)
	}
}
