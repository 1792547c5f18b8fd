package cli

import (
	"strings"

	"github.com/manifoldco/promptui"
)

// Select shows a single-choice menu and returns the index and text of the pick.
// Typing filters the list by prefix, case-insensitively.
func (p *Prompter) Select(label string, choices ...string) (int, string, error) {
	sel := &promptui.Select{
		Label:    label,
		Items:    choices,
		Size:     len(choices),
		Searcher: PrefixSearcher(choices),
		Stdin:    p.In,
		Stdout:   p.Out,
	}

	return sel.Run()
}

// PrefixSearcher matches choices whose text starts with the typed input.
func PrefixSearcher(choices []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" || index < 0 || index >= len(choices) {
			return false
		}

		return strings.HasPrefix(strings.ToLower(choices[index]), strings.ToLower(input))
	}
}
