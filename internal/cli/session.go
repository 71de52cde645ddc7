package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var errEnd = errors.New("end")

// InteractiveSession contains shared logic for interactive study sessions
type InteractiveSession struct {
	stdinReader  *bufio.Reader
	lines        chan inputLine
	startReader  sync.Once
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	green        *color.Color
	red          *color.Color
}

// NewInteractiveSession creates a session reading answers from in and writing to out
func NewInteractiveSession(in io.Reader, out io.Writer) *InteractiveSession {
	return &InteractiveSession{
		stdinReader:  bufio.NewReader(in),
		lines:        make(chan inputLine),
		stdoutWriter: out,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		green:        color.New(color.FgGreen),
		red:          color.New(color.FgRed),
	}
}

//go:generate mockgen -source=session.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session

// Session runs one step of an interactive session. Run calls it until it
// returns an error, so it must return once ctx is done.
type Session interface {
	Session(context context.Context) error
}

func (cli *InteractiveSession) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

		for {
			if err := session.Session(ctx); err != nil {
				if !errors.Is(err, errEnd) {
					errCh <- err
				}
				return
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
		// The session sees the canceled context on its next read and
		// wraps up before returning.
		if err := <-errCh; err != nil {
			return fmt.Errorf("error: %w", err)
		}
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

type inputLine struct {
	text string
	err  error
}

func (cli *InteractiveSession) readInput() {
	defer close(cli.lines)
	for {
		line, err := cli.stdinReader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line != "" {
					cli.lines <- inputLine{text: strings.TrimSpace(line)}
				}
				return
			}
			cli.lines <- inputLine{err: err}
			return
		}
		cli.lines <- inputLine{text: strings.TrimSpace(line)}
	}
}

// readLine returns the next trimmed input line. A final line without a
// newline is returned with a nil error; io.EOF means no input is left.
// It returns ctx.Err() when ctx is done before a line arrives.
func (cli *InteractiveSession) readLine(ctx context.Context) (string, error) {
	cli.startReader.Do(func() {
		go cli.readInput()
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-cli.lines:
		if !ok {
			return "", io.EOF
		}
		return line.text, line.err
	}
}

// endOfInput reports whether no more answers will arrive, either because the
// input is exhausted or because the session was interrupted.
func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
