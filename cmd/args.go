package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
)

// parseID parses a positional id. Non-positive ids are passed on to the
// client, which rejects them as validation errors.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &output.CLIError{
			Summary:  fmt.Sprintf("invalid id %q", s),
			Detail:   "ids are integers",
			ExitCode: output.ExitUsageError,
		}
	}
	return id, nil
}

// parseAssignments turns key=value pairs into a record. jsonPairs values
// are decoded as JSON, plain pairs stay strings.
func parseAssignments(pairs, jsonPairs []string) (domain.Record, error) {
	rec := domain.Record{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, usageError("invalid --set %q, expected key=value", p)
		}
		rec[k] = v
	}
	for _, p := range jsonPairs {
		k, raw, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, usageError("invalid --set-json %q, expected key=<json>", p)
		}
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, usageError("invalid JSON for %s: %v", k, err)
		}
		rec[k] = v
	}
	return rec, nil
}

// readSecret reads one line, typically a password piped on stdin
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func usageError(format string, args ...any) *output.CLIError {
	return &output.CLIError{
		Summary:  fmt.Sprintf(format, args...),
		ExitCode: output.ExitUsageError,
	}
}
