// Package cli holds the promptui prompts used by the interactive terminal driver.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

var (
	// ErrEmptyInput is returned by validators when nothing was typed.
	ErrEmptyInput = errors.New("you must enter something")
	// ErrInvalidAmount is returned by validators for input that is not a number.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Prompter runs prompts against a pair of streams.
type Prompter struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// NewPrompter creates a prompter on the process standard streams.
func NewPrompter() *Prompter {
	return &Prompter{
		In:  os.Stdin,
		Out: os.Stdout,
	}
}

// Confirm asks a yes/no question. An abort counts as "no".
func (p *Prompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     p.In,
		Stdout:    p.Out,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

// String asks for non-empty text. When mask is non-zero the input is hidden behind it.
func (p *Prompter) String(label string, mask rune) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: ValidateNonEmpty,
		Mask:     mask,
		Stdin:    p.In,
		Stdout:   p.Out,
	}

	return prompt.Run()
}

// Amount asks for a decimal amount.
func (p *Prompter) Amount(label string) (float64, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: ValidateAmount,
		Stdin:    p.In,
		Stdout:   p.Out,
	}

	txt, err := prompt.Run()
	if err != nil {
		return 0, err
	}

	return ParseAmount(txt)
}

// ValidateNonEmpty rejects blank input.
func ValidateNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyInput
	}

	return nil
}

// ValidateAmount rejects input that ParseAmount cannot read.
func ValidateAmount(s string) error {
	_, err := ParseAmount(s)

	return err
}

// ParseAmount reads a decimal amount. Sign is not checked; the terminal decides
// what a non-positive amount means.
func ParseAmount(s string) (float64, error) {
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return val, nil
}
