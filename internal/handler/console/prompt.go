package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Prompter reads one line of operator input.
type Prompter interface {
	Line(prompt string) (string, error)
}

type readlinePrompter struct{}

// NewReadlinePrompter returns a Prompter backed by the terminal.
func NewReadlinePrompter() Prompter {
	return readlinePrompter{}
}

func (readlinePrompter) Line(prompt string) (string, error) {
	return readline.Line(prompt)
}

// isExit reports whether err means the operator asked to leave.
func isExit(err error) bool {
	return errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF)
}

type input struct {
	prompter Prompter
	out      io.Writer
}

func (in input) text(prompt string) (string, error) {
	line, err := in.prompter.Line(prompt)
	if err != nil {
		return "", errors.Wrap(err, "could not read input from stdin")
	}

	return strings.TrimSpace(line), nil
}

func (in input) integer(prompt string) (int, error) {
	for {
		line, err := in.text(prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(line)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(in.out, "Invalid input. Please enter a valid int.")
	}
}

func (in input) decimal(prompt string) (decimal.Decimal, error) {
	for {
		line, err := in.text(prompt)
		if err != nil {
			return decimal.Zero, err
		}

		d, err := decimal.NewFromString(line)
		if err == nil {
			return d, nil
		}
		fmt.Fprintln(in.out, "Invalid input. Please enter a valid number.")
	}
}

// optionalDecimal accepts an empty line as "no value".
func (in input) optionalDecimal(prompt string) (decimal.NullDecimal, error) {
	for {
		line, err := in.text(prompt)
		if err != nil {
			return decimal.NullDecimal{}, err
		}
		if line == "" {
			return decimal.NullDecimal{}, nil
		}

		d, err := decimal.NewFromString(line)
		if err == nil {
			return decimal.NewNullDecimal(d), nil
		}
		fmt.Fprintln(in.out, "Invalid input. Please enter a valid number.")
	}
}
