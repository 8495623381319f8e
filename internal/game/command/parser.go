package command

import (
	"strconv"
	"strings"
)

// ParseResult is one line of town input split into a command word and its arguments.
type ParseResult struct {
	// Command is the first word, lowercased. It may be a menu number.
	Command string
	// Args are the remaining words.
	Args []string
}

// Parse splits line on whitespace.
//
// Postcondition: Command is empty iff line holds no words; Args is nil when
// the line has a single word.
func Parse(line string) ParseResult {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ParseResult{}
	}
	res := ParseResult{Command: strings.ToLower(words[0])}
	if len(words) > 1 {
		res.Args = words[1:]
	}
	return res
}

// MenuNumber reports the menu entry the command word names, if it is a number.
func (p ParseResult) MenuNumber() (int, bool) {
	n, err := strconv.Atoi(p.Command)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IntArg returns argument i as an integer.
//
// Postcondition: ok is false when the argument is missing or not a number.
func (p ParseResult) IntArg(i int) (n int, ok bool) {
	if i < 0 || i >= len(p.Args) {
		return 0, false
	}
	n, err := strconv.Atoi(p.Args[i])
	if err != nil {
		return 0, false
	}
	return n, true
}
