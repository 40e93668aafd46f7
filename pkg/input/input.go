// Package input reads interactive browser commands and form answers from a terminal.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Action is the kind of an interactive command.
type Action int

// interactive actions.
const (
	ActionNext   Action = iota + 1 // next page
	ActionPrev                     // previous page
	ActionSelect                   // select a person by number
	ActionBack                     // back to the list
	ActionReload                   // repeat the current request
	ActionHelp                     // print the command summary
	ActionQuit                     // leave the session
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionSelect:
		return "select"
	case ActionBack:
		return "back"
	case ActionReload:
		return "reload"
	case ActionHelp:
		return "help"
	case ActionQuit:
		return "quit"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Command is one parsed line of interactive input.
type Command struct {
	Action Action
	Number int // 1-based person number for ActionSelect
}

// ErrEmpty is returned by Parse for blank lines.
var ErrEmpty = errors.New("empty command")

var aliases = map[string]Action{
	"n": ActionNext, "next": ActionNext, ">": ActionNext,
	"p": ActionPrev, "prev": ActionPrev, "<": ActionPrev,
	"b": ActionBack, "back": ActionBack,
	"r": ActionReload, "reload": ActionReload,
	"h": ActionHelp, "help": ActionHelp, "?": ActionHelp,
	"q": ActionQuit, "quit": ActionQuit, "exit": ActionQuit,
}

// Parse converts one input line into a Command.
func Parse(line string) (Command, error) {
	line = strings.ToLower(strings.TrimSpace(line))
	if line == "" {
		return Command{}, ErrEmpty
	}
	if a, ok := aliases[line]; ok {
		return Command{Action: a}, nil
	}
	num, err := strconv.Atoi(line)
	if err != nil {
		return Command{}, fmt.Errorf("unknown command %q", line)
	}
	if num < 1 {
		return Command{}, fmt.Errorf("selection out of range: %d", num)
	}
	return Command{Action: ActionSelect, Number: num}, nil
}

// Result is a parsed command or the parse error of one line.
type Result struct {
	Command Command
	Err     error
}

// Commands reads lines from r until EOF or ctx is done and sends each parsed line.
// blank lines are skipped. the channel is closed when reading stops; an ActionQuit is
// sent first on EOF.
func Commands(ctx context.Context, r io.Reader) <-chan Result {
	if r == nil {
		r = os.Stdin
	}
	ch := make(chan Result)
	go func() {
		defer close(ch)
		send := func(res Result) bool {
			select {
			case ch <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			cmd, err := Parse(scanner.Text())
			if errors.Is(err, ErrEmpty) {
				continue
			}
			if !send(Result{Command: cmd, Err: err}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			if !send(Result{Err: fmt.Errorf("read input: %w", err)}) {
				return
			}
		}
		send(Result{Command: Command{Action: ActionQuit}})
	}()
	return ch
}

//go:generate moq -out mocks/prompter.go -pkg mocks -skip-ensure -fmt goimports . Prompter

// Prompter asks for a single line answer.
type Prompter interface {
	// Ask prints question and returns the trimmed answer. an empty answer is valid.
	Ask(ctx context.Context, question string) (string, error)
}

// TerminalPrompter implements Prompter on stdin/stdout.
type TerminalPrompter struct {
	stdin  *bufio.Reader
	stdout io.Writer
}

// NewTerminalPrompter creates a prompter reading r and writing w, nil uses os.Stdin/os.Stdout.
func NewTerminalPrompter(r io.Reader, w io.Writer) *TerminalPrompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TerminalPrompter{stdin: bufio.NewReader(r), stdout: w}
}

// Ask prints question and reads one line. returns ctx.Err() if ctx is done first.
func (p *TerminalPrompter) Ask(ctx context.Context, question string) (string, error) {
	_, _ = fmt.Fprintf(p.stdout, "%s: ", question)

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := p.stdin.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return "", fmt.Errorf("read input: %w", a.err)
		}
		return strings.TrimSpace(a.line), nil
	}
}
