package eapi

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a table line that does not match the column contract.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("eapi: parse %q: %s", e.Line, e.Reason)
}

// tableRows drops the header line and the trailing line of a CLI table and
// returns the remaining non-blank lines.
func tableRows(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil
	}
	var rows []string
	for _, l := range lines[1 : len(lines)-1] {
		if strings.TrimSpace(l) != "" {
			rows = append(rows, l)
		}
	}
	return rows
}

// ParseConnectedInterfaces parses "show interfaces status connected".
// The interface name is the first column.
func ParseConnectedInterfaces(text string) []string {
	var out []string
	for _, row := range tableRows(text) {
		out = append(out, strings.Fields(row)[0])
	}
	return out
}

// ParseErrorCounters parses "show interfaces counters errors", keeping only
// the named interfaces. Columns: 0 port, 1 FCS, 2 align, 3 symbol.
func ParseErrorCounters(text string, interfaces []string) (map[string]Counters, error) {
	want := make(map[string]struct{}, len(interfaces))
	for _, i := range interfaces {
		want[i] = struct{}{}
	}

	result := make(map[string]Counters)
	for _, row := range tableRows(text) {
		tokens := strings.Fields(row)
		if _, ok := want[tokens[0]]; !ok {
			continue
		}
		if len(tokens) < 4 {
			return nil, &ParseError{Line: row, Reason: fmt.Sprintf("want at least 4 columns, got %d", len(tokens))}
		}
		// counters are non-negative and must fit an int64
		fcs, err := strconv.ParseUint(tokens[1], 10, 63)
		if err != nil {
			return nil, &ParseError{Line: row, Reason: "fcs: " + err.Error()}
		}
		symbol, err := strconv.ParseUint(tokens[3], 10, 63)
		if err != nil {
			return nil, &ParseError{Line: row, Reason: "symbol: " + err.Error()}
		}
		result[tokens[0]] = Counters{FCS: int64(fcs), Symbol: int64(symbol)}
	}
	return result, nil
}
