package command

import (
	"fmt"
	"strings"
)

// Usage renders the help text for the command at path.
func Usage(path []string) (string, error) {
	n, err := Lookup(path)
	if err != nil {
		return "", err
	}
	return usage(path, n), nil
}

func usage(path []string, n *Node) string {
	var b strings.Builder
	name := strings.Join(path, " ")
	if name != "" {
		fmt.Fprintf(&b, "%s - %s\n\n", name, n.About)
	} else {
		fmt.Fprintf(&b, "%s\n\n", n.About)
	}

	var line []string
	if name != "" {
		line = append(line, name)
	}
	switch {
	case len(n.Subcommands) > 0 && name == "":
		line = append(line, "<COMMAND>")
	case len(n.Subcommands) > 0:
		line = append(line, "<SUBCOMMAND>")
	default:
		if s := synopsis(n); s != "" {
			line = append(line, s)
		}
	}
	fmt.Fprintf(&b, "USAGE:\n    %s\n", strings.Join(line, " "))

	if len(n.Flags) > 0 {
		b.WriteString("\nOPTIONS:\n")
		rows := make([][2]string, 0, len(n.Flags)+1)
		for _, f := range n.Flags {
			rows = append(rows, [2]string{strings.TrimSpace("--" + f.Name + " " + f.Kind.placeholder()), f.About})
		}
		rows = append(rows, [2]string{"-h, --help", "print help"})
		writeRows(&b, rows)
	}
	if len(n.Subcommands) > 0 {
		if name == "" {
			b.WriteString("\nCOMMANDS:\n")
		} else {
			b.WriteString("\nSUBCOMMANDS:\n")
		}
		rows := make([][2]string, 0, len(n.Subcommands))
		for _, s := range n.Subcommands {
			rows = append(rows, [2]string{s.Name, s.About})
		}
		writeRows(&b, rows)
	}
	return b.String()
}

// synopsis renders a leaf's flags: the required group first, then the
// optional flags in brackets.
func synopsis(n *Node) string {
	if n == root.sub("help") {
		return "[COMMAND]..."
	}
	var parts []string
	if len(n.Exclusive) > 0 {
		parts = append(parts, groupText(n))
	}
	for _, f := range n.Flags {
		if n.exclusive(f.Name) {
			continue
		}
		parts = append(parts, "["+flagText(f)+"]")
	}
	return strings.Join(parts, " ")
}

func groupText(n *Node) string {
	if len(n.Exclusive) == 1 {
		f, _ := n.flag(n.Exclusive[0])
		return flagText(f)
	}
	alts := make([]string, 0, len(n.Exclusive))
	for _, x := range n.Exclusive {
		f, _ := n.flag(x)
		alts = append(alts, flagText(f))
	}
	return "(" + strings.Join(alts, " | ") + ")"
}

func flagText(f Flag) string {
	if p := f.Kind.placeholder(); p != "" {
		return "--" + f.Name + " " + p
	}
	return "--" + f.Name
}

func writeRows(b *strings.Builder, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(b, "    %-*s    %s\n", width, r[0], r[1])
	}
}
