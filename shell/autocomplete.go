package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"solve":   {Options: []string{"-yaml"}},
	"analyze": {Options: []string{"-yaml"}},
	"hand":    {Options: []string{"-rest", "-lead"}},
	"batch":   {Options: []string{"-n", "-cards", "-threads", "-hist"}},
	"charge":  {Args: []string{"none", "QS", "JD", "AH", "TC"}},
	"help":    {Args: []string{"deal", "hand", "charge", "legal", "play", "solve", "analyze", "line", "batch", "script"}},
}

var commandNames = []string{
	"help", "deal", "hand", "show", "charge", "legal", "play", "solve",
	"analyze", "line", "batch", "script", "exit",
}

var boolValues = []string{"true", "false"}
var seatValues = []string{"0", "1", "2", "3"}

// Do implements the readline.AutoComplete interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if isOption(lastCompleteField) {
			switch strings.TrimPrefix(lastCompleteField, "-") {
			case "yaml":
				completions = boolValues
			case "rest", "lead", "hist":
				completions = seatValues
			}
		}

		// playable cards of the seat to act
		if cmdName == "play" && completions == nil && c.sc.hasPos && !c.sc.pos.Done() {
			for _, card := range c.sc.pos.Legal().Cards() {
				completions = append(completions, card.String())
			}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
