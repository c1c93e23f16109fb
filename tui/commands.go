package tui

import (
	"errors"
	"fmt"
	"strings"
)

// Command is a parsed command line.
type Command struct {
	Name string
	Args []string

	// Text is everything after the command name, verbatim.
	Text string
}

// arity is the number of arguments of each command; -1 takes the rest of
// the line as text.
var arity = map[string][2]int{
	"select":     {1, 2},
	"type":       {-1, -1},
	"focus":      {0, 0},
	"copy":       {0, 0},
	"cut":        {0, 0},
	"paste":      {0, 0},
	"paste-html": {0, 0},
	"load":       {1, 1},
	"bold":       {0, 0},
	"italic":     {0, 0},
	"h1":         {0, 0},
	"h2":         {0, 0},
	"q":          {0, 0},
	"quit":       {0, 0},
}

// ParseCommand parses a command line. Lines starting with ':' name a
// command; anything else is text to type.
func ParseCommand(line string) (Command, error) {
	if !strings.HasPrefix(line, ":") {
		if line == "" {
			return Command{}, errors.New("empty command")
		}
		return Command{Name: "type", Text: line}, nil
	}

	name, rest, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	n, ok := arity[name]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q", name)
	}

	cmd := Command{Name: name, Text: rest}
	if n[0] < 0 {
		if rest == "" {
			return Command{}, fmt.Errorf("%s needs some text", name)
		}
		return cmd, nil
	}

	cmd.Args = strings.Fields(rest)
	if len(cmd.Args) < n[0] || len(cmd.Args) > n[1] {
		return Command{}, fmt.Errorf("%s takes %s", name, describeArity(n))
	}
	return cmd, nil
}

func describeArity(n [2]int) string {
	switch {
	case n[1] == 0:
		return "no arguments"
	case n[0] == n[1]:
		return fmt.Sprintf("%d argument(s)", n[0])
	}
	return fmt.Sprintf("%d to %d arguments", n[0], n[1])
}
