package command

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrorKind classifies why a command line was rejected.
type ErrorKind int

const (
	ErrEmpty ErrorKind = iota
	ErrUnknownCommand
	ErrMissingSubcommand
	ErrUnknownFlag
	ErrMissingValue
	ErrInvalidValue
	ErrDuplicateFlag
	ErrUnexpectedArgument
	ErrMissingRequired
	ErrConflict
)

func (k ErrorKind) String() string {
	switch k {
	case ErrEmpty:
		return "empty"
	case ErrUnknownCommand:
		return "unknown command"
	case ErrMissingSubcommand:
		return "missing subcommand"
	case ErrUnknownFlag:
		return "unknown flag"
	case ErrMissingValue:
		return "missing value"
	case ErrInvalidValue:
		return "invalid value"
	case ErrDuplicateFlag:
		return "duplicate flag"
	case ErrUnexpectedArgument:
		return "unexpected argument"
	case ErrMissingRequired:
		return "missing required flag"
	case ErrConflict:
		return "conflicting flags"
	default:
		return "unknown"
	}
}

// ParseError is a rejected command line. It carries the usage text of the
// deepest grammar node the parser reached.
type ParseError struct {
	Kind   ErrorKind
	Path   []string
	Detail string
	usage  string
}

func (e *ParseError) Error() string {
	return "error: " + e.Detail
}

// Usage is the usage text to show alongside the error.
func (e *ParseError) Usage() string { return e.usage }

func parseError(kind ErrorKind, path []string, n *Node, format string, a ...any) *ParseError {
	return &ParseError{
		Kind:   kind,
		Path:   path,
		Detail: fmt.Sprintf(format, a...),
		usage:  usage(path, n),
	}
}

// Tokenize splits a raw input line on whitespace.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// ParseLine tokenizes and parses one input line.
func ParseLine(line string) (Invocation, error) {
	return Parse(Tokenize(line))
}

// Parse walks the grammar with tokens. Command names are matched
// case-insensitively; flag values are kept verbatim.
func Parse(tokens []string) (Invocation, error) {
	if len(tokens) == 0 {
		return nil, parseError(ErrEmpty, nil, root, "no command given")
	}
	if strings.EqualFold(tokens[0], "help") {
		path := make([]string, 0, len(tokens)-1)
		for _, t := range tokens[1:] {
			path = append(path, strings.ToLower(t))
		}
		if _, err := Lookup(path); err != nil {
			return nil, err
		}
		return Help{Path: path}, nil
	}

	n := root
	var path []string
	i := 0
	for ; i < len(tokens) && len(n.Subcommands) > 0; i++ {
		tok := tokens[i]
		if isHelpFlag(tok) {
			return Help{Path: path}, nil
		}
		next := n.sub(strings.ToLower(tok))
		if next == nil {
			if len(path) == 0 {
				return nil, parseError(ErrUnknownCommand, path, n, "unrecognized command '%s'", tok)
			}
			return nil, parseError(ErrUnknownCommand, path, n, "unrecognized subcommand '%s'", tok)
		}
		n = next
		path = append(path, n.Name)
	}
	if n.build == nil {
		return nil, parseError(ErrMissingSubcommand, path, n, "'%s' requires a subcommand", strings.Join(path, " "))
	}

	v, err := parseFlags(n, path, tokens[i:])
	if err != nil {
		return nil, err
	}
	if v == nil {
		return Help{Path: path}, nil
	}
	return n.build(v), nil
}

// values holds the flags given to a leaf, keyed by flag name. Integer flags
// are validated before the leaf's build function sees them.
type values map[string]string

func (v values) has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v values) text(name string) string { return v[name] }

func (v values) num(name string) uint32 {
	n, _ := strconv.ParseUint(v[name], 10, 32)
	return uint32(n)
}

// parseFlags reads "--name value", "--name=value" and bare bool flags. A
// help flag anywhere yields nil values and no error.
func parseFlags(n *Node, path []string, tokens []string) (values, error) {
	if slices.ContainsFunc(tokens, isHelpFlag) {
		return nil, nil
	}
	v := values{}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if !strings.HasPrefix(tok, "--") || len(tok) == 2 {
			return nil, parseError(ErrUnexpectedArgument, path, n, "unexpected argument '%s'", tok)
		}
		name, value, inline := strings.Cut(tok[2:], "=")
		f, ok := n.flag(name)
		if !ok {
			return nil, parseError(ErrUnknownFlag, path, n, "unexpected flag '--%s'", name)
		}
		if v.has(name) {
			return nil, parseError(ErrDuplicateFlag, path, n, "flag '--%s' given more than once", name)
		}

		if f.Kind == FlagBool {
			if inline {
				return nil, parseError(ErrUnexpectedArgument, path, n, "flag '--%s' takes no value", name)
			}
			v[name] = ""
			continue
		}
		if inline && value == "" {
			return nil, parseError(ErrMissingValue, path, n, "flag '--%s' requires a value %s", name, f.Kind.placeholder())
		}
		if !inline {
			if i+1 >= len(tokens) || strings.HasPrefix(tokens[i+1], "--") {
				return nil, parseError(ErrMissingValue, path, n, "flag '--%s' requires a value %s", name, f.Kind.placeholder())
			}
			i++
			value = tokens[i]
		}
		if f.Kind == FlagInt {
			if _, err := strconv.ParseUint(value, 10, 32); err != nil {
				return nil, parseError(ErrInvalidValue, path, n, "invalid value '%s' for '--%s': expected a non-negative integer", value, name)
			}
		}
		v[name] = value
	}

	if len(n.Exclusive) > 0 {
		var given []string
		for _, x := range n.Exclusive {
			if v.has(x) {
				given = append(given, "--"+x)
			}
		}
		switch {
		case len(given) == 0:
			return nil, parseError(ErrMissingRequired, path, n, "one of %s is required", groupText(n))
		case len(given) > 1:
			return nil, parseError(ErrConflict, path, n, "%s cannot be used together", strings.Join(given, " and "))
		}
	}
	return v, nil
}

func isHelpFlag(tok string) bool {
	return tok == "-h" || tok == "--help"
}

// Lookup resolves a command path to its grammar node.
func Lookup(path []string) (*Node, error) {
	n := root
	for i, name := range path {
		next := n.sub(name)
		if next == nil {
			return nil, parseError(ErrUnknownCommand, append([]string(nil), path[:i]...), n, "no help topic '%s'", strings.Join(path[:i+1], " "))
		}
		n = next
	}
	return n, nil
}
