// Package chat implements the host link: protocol lines out, commands in.
//
// Outgoing lines are "<ms> <TAG> <fields...>". Incoming commands are
//
//	SET <NAME> <int>   set a parameter by abbreviation
//	RELEASE_TRL        release the next trial
//
// Reading happens on a pump goroutine that hands lines over a channel; commands are
// only applied inside Poll, on the caller's goroutine.
package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/ardufsm/internal/logging"
	"github.com/aretw0/ardufsm/pkg/domain"
	"github.com/aretw0/ardufsm/pkg/ports"
)

// Host commands.
const (
	CmdSet     = "SET"
	CmdRelease = "RELEASE_TRL"
)

// ErrNoTarget is returned by Poll before Bind.
var ErrNoTarget = errors.New("chat: no command target bound")

// Link is a line-oriented host connection over any reader and writer pair
// (a serial port, stdio, a pipe in tests).
type Link struct {
	reader *bufio.Reader
	writer io.Writer
	logger *slog.Logger

	wmu    sync.Mutex
	target ports.CommandTarget

	lines     chan lineResult
	startOnce sync.Once
	closed    bool
}

type lineResult struct {
	text string
	err  error
}

var (
	_ ports.Reporter      = (*Link)(nil)
	_ ports.CommandSource = (*Link)(nil)
)

// Option configures a Link.
type Option func(*Link)

// WithLogger sets the logger for dropped or malformed traffic.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Link) { l.logger = logger }
}

// New creates a link reading commands from r and writing lines to w.
func New(r io.Reader, w io.Writer, opts ...Option) *Link {
	l := &Link{
		reader: bufio.NewReader(r),
		writer: w,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Bind sets what commands act on.
func (l *Link) Bind(target ports.CommandTarget) {
	l.target = target
}

// Report implements ports.Reporter.
func (l *Link) Report(at time.Duration, tag string, fields ...any) error {
	var b strings.Builder
	b.WriteString(strconv.FormatInt(at.Milliseconds(), 10))
	b.WriteByte(' ')
	b.WriteString(tag)
	for _, f := range fields {
		b.WriteByte(' ')
		fmt.Fprint(&b, f)
	}
	b.WriteByte('\n')

	l.wmu.Lock()
	defer l.wmu.Unlock()
	if _, err := io.WriteString(l.writer, b.String()); err != nil {
		return fmt.Errorf("write %s line: %w", tag, err)
	}
	return nil
}

func (l *Link) initPump() {
	l.startOnce.Do(func() {
		l.lines = make(chan lineResult, 64)
		go l.pump()
	})
}

func (l *Link) pump() {
	for {
		text, err := l.reader.ReadString('\n')
		if text != "" {
			l.lines <- lineResult{text: text}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				l.lines <- lineResult{err: err}
			}
			close(l.lines)
			return
		}
	}
}

// Poll implements ports.CommandSource. It applies every command already received
// and returns without waiting for more. Bad commands do not stop the drain; their
// errors are joined into the result.
func (l *Link) Poll(ctx context.Context) error {
	if l.target == nil {
		return ErrNoTarget
	}
	l.initPump()

	var errs []error
	for {
		select {
		case <-ctx.Done():
			return errors.Join(append(errs, ctx.Err())...)
		case res, ok := <-l.lines:
			if !ok {
				if !l.closed {
					l.closed = true
					l.logger.Warn("host closed the link")
					errs = append(errs, io.EOF)
				}
				return errors.Join(errs...)
			}
			if res.err != nil {
				errs = append(errs, fmt.Errorf("read command: %w", res.err))
				continue
			}
			if err := l.apply(res.text); err != nil {
				l.logger.Warn("bad command", "line", strings.TrimSpace(res.text), "error", err)
				errs = append(errs, err)
			}
		default:
			return errors.Join(errs...)
		}
	}
}

func (l *Link) apply(line string) error {
	cmd, err := Parse(line)
	if err != nil {
		return err
	}
	switch cmd.Verb {
	case CmdSet:
		return l.target.SetParam(cmd.Name, cmd.Value)
	case CmdRelease:
		l.target.ReleaseTrial()
	}
	return nil
}

// Command is one parsed host command. Name and Value are set for SET only.
type Command struct {
	Verb  string
	Name  string
	Value int64
}

// Parse reads one command line. Blank lines parse to a zero Command with no error.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, nil
	}
	switch fields[0] {
	case CmdSet:
		if len(fields) != 3 {
			return Command{}, fmt.Errorf("%w: %q", domain.ErrMalformedCommand, strings.TrimSpace(line))
		}
		v, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q: %v", domain.ErrMalformedCommand, strings.TrimSpace(line), err)
		}
		return Command{Verb: CmdSet, Name: fields[1], Value: v}, nil
	case CmdRelease:
		if len(fields) != 1 {
			return Command{}, fmt.Errorf("%w: %q", domain.ErrMalformedCommand, strings.TrimSpace(line))
		}
		return Command{Verb: CmdRelease}, nil
	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", domain.ErrMalformedCommand, fields[0])
	}
}
