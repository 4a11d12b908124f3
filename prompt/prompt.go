// Package prompt abstracts the interactive questions the tools ask (confirm
// an unknown symbol, pick a strategy). The journal engine and tagger take a
// Prompter so they run headless in tests and in unattended deployments.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type Prompter interface {
	// Confirm asks a yes/no question. Implementations decide the default.
	Confirm(question string) bool
	// Ask displays a question and returns the raw line entered.
	Ask(question string) string
}

// Terminal prompts on an io.Writer and reads answers line by line. Wire it to
// os.Stdin / os.Stdout for interactive runs.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Confirm(question string) bool {
	ans := strings.TrimSpace(t.Ask(question + " (Y/N): "))
	if ans == "" {
		return false
	}
	return strings.EqualFold(ans[:1], "y")
}

func (t *Terminal) Ask(question string) string {
	fmt.Fprint(t.out, question)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// Headless declines every confirmation and answers every question with an
// empty string, which makes callers fall back to their defaults. This is the
// Prompter for unattended runs.
type Headless struct{}

func (Headless) Confirm(string) bool { return false }
func (Headless) Ask(string) string   { return "" }

// Script replays canned answers in order. Meant for tests.
type Script struct {
	Confirms []bool
	Answers  []string

	ci, ai int
}

func (s *Script) Confirm(string) bool {
	if s.ci >= len(s.Confirms) {
		return false
	}
	v := s.Confirms[s.ci]
	s.ci++
	return v
}

func (s *Script) Ask(string) string {
	if s.ai >= len(s.Answers) {
		return ""
	}
	v := s.Answers[s.ai]
	s.ai++
	return v
}
