package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Prompter asks the operator single-line questions. Empty input always means
// the stated default.
type Prompter interface {
	YesNo(question string, def bool) (bool, error)
	Int(question string, def int) (int, error)
	Choose(question string, options []string) (int, error)
}

// Stdio prompts on the terminal.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
}

func NewStdio() *Stdio {
	return &Stdio{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

func (s *Stdio) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// YesNo asks a y/n question. The default is taken on empty input.
func (s *Stdio) YesNo(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(s.out, "%s (%s, Enter for default): ", question, hint)

	answer, err := s.readLine()
	if err != nil {
		return def, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Int asks for a number, falling back to the default on empty or unparsable
// input.
func (s *Stdio) Int(question string, def int) (int, error) {
	fmt.Fprintf(s.out, "%s (default %d): ", question, def)

	answer, err := s.readLine()
	if err != nil {
		return def, err
	}
	n, convErr := strconv.Atoi(answer)
	if answer == "" || convErr != nil {
		return def, nil
	}
	return n, nil
}

// Choose presents a numbered list and returns the selected index, reprompting
// until the selection is valid.
func (s *Stdio) Choose(question string, options []string) (int, error) {
	fmt.Fprintln(s.out, question)
	for i, option := range options {
		fmt.Fprintf(s.out, "%d: %s\n", i+1, option)
	}

	for {
		fmt.Fprint(s.out, "Enter your selection: ")
		answer, err := s.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(answer)
		if convErr == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}
		fmt.Fprintln(s.out, "Invalid selection. Please try again.")
	}
}
