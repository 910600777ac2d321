package output

import (
	"fmt"
	"strings"
)

// CommandHints maps command names to related commands users might want to run next
var CommandHints = map[string][]string{
	"login":            {"search", "proposals mine", "session show"},
	"logout":           {"login"},
	"register":         {"verify-email <token>", "login"},
	"verify-email":     {"login"},
	"proposals create": {"proposals mine", "proposals visibility <id>"},
	"proposals list":   {"proposals show <id>", "search"},
	"proposals mine":   {"proposals update <id>", "proposals visibility <id>"},
	"search":           {"chat open <id>", "catalog"},
	"catalog":          {"profile update", "search"},
	"profile show":     {"profile update"},
	"password reset":   {"login"},
	"admin list":       {"admin update <kind> <id>", "admin metrics"},
	"admin metrics":    {"admin list <kind>"},
}

// PrintHints prints "See also" hints for a command. No-op in quiet mode or if command has no hints.
func (p *Printer) PrintHints(command string) {
	if p.quiet {
		return
	}
	hints, ok := CommandHints[command]
	if !ok || len(hints) == 0 {
		return
	}

	cmds := make([]string, len(hints))
	for i, h := range hints {
		cmds[i] = "propctl " + h
	}
	fmt.Fprintf(p.out, "\nSee also: %s\n", strings.Join(cmds, ", "))
}
