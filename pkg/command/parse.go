package command

import (
	"strings"

	"github.com/jgoizueta/grass-gis/pkg/errors"
)

// Parse is the inverse of Command.String: it splits a textual command line
// back into a Command. Double-quoted values may contain whitespace and
// escaped quotes. It is used by the CLI to accept commands from scripts and
// the command line.
func Parse(line string) (*Command, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New(errors.ErrCommandParse, "empty command")
	}

	name := tokens[0]
	if strings.HasPrefix(name, "-") || strings.Contains(name, "=") {
		return nil, errors.Newf(errors.ErrCommandParse, "invalid tool name %q", name)
	}

	args := make([]Arg, 0, len(tokens)-1)
	for _, tok := range tokens[1:] {
		switch {
		case strings.HasPrefix(tok, "-"):
			args = append(args, Flag(strings.TrimPrefix(tok, "-")))
		case strings.Contains(tok, "="):
			kv := strings.SplitN(tok, "=", 2)
			if kv[0] == "" {
				return nil, errors.Newf(errors.ErrCommandParse, "option with empty key: %q", tok)
			}
			args = append(args, Option(kv[0], kv[1]))
		default:
			return nil, errors.Newf(errors.ErrCommandParse, "unexpected argument %q (expected flag or key=value)", tok)
		}
	}

	return New(name, args...), nil
}

// tokenize splits a command line on whitespace, honoring double quotes and
// backslash escapes inside them.
func tokenize(line string) ([]string, error) {
	var tokens []string
	var cur strings.Builder
	inToken := false
	inQuotes := false
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuotes && r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
			inToken = true
		case !inQuotes && (r == ' ' || r == '\t' || r == '\n'):
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inQuotes {
		return nil, errors.New(errors.ErrCommandParse, "unterminated quote")
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}
