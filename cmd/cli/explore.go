package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"burnoutlens/domain/filters"
	"burnoutlens/internal/report"
)

const explorePrompt = "burnout> "

// explorer keeps one selection and recomputes the dashboard after every command
type explorer struct {
	builder *report.Builder
	out     io.Writer
	sel     filters.Selection
}

func newExplorer(builder *report.Builder, out io.Writer) *explorer {
	return &explorer{builder: builder, out: out, sel: filters.NewSelection()}
}

// Run reads commands until quit or end of input.
func (e *explorer) Run(in io.Reader) error {
	e.show()
	fmt.Fprint(e.out, explorePrompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := e.apply(scanner.Text())
		if quit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(e.out, warnStyle.Render(err.Error()))
		}
		fmt.Fprint(e.out, explorePrompt)
	}
	return scanner.Err()
}

// apply executes one command line and prints the recomputed dashboard.
func (e *explorer) apply(line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "clear":
		e.sel = filters.NewSelection()
	case "options":
		fmt.Fprint(e.out, renderOptions(e.builder.Options()))
		return false, nil
	default:
		key, values, err := parseAssignment(line)
		if err != nil {
			return false, err
		}
		if _, ok := e.builder.Options().Lookup(key); !ok {
			return false, fmt.Errorf("unknown filter %q", key)
		}
		e.sel.Set(key, values...)
	}
	e.show()
	return false, nil
}

// show recomputes the dashboard and keeps only the selection that was applied, so
// an unavailable value is dropped instead of disabling later filters.
func (e *explorer) show() {
	d := e.builder.Build(e.sel)
	e.sel = d.Selection
	fmt.Fprint(e.out, renderDashboard(d))
}

// parseAssignment splits "key=value". Education values may list several levels
// separated by ';'.
func parseAssignment(line string) (string, []string, error) {
	key, value, ok := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, fmt.Errorf("expected <key>=<value>, got %q", line)
	}
	key = strings.ReplaceAll(strings.ToLower(key), "-", "_")
	if key == filters.KeyEducation {
		return key, filters.SplitTokens(value), nil
	}
	return key, []string{strings.TrimSpace(value)}, nil
}

// Selection returns a copy of the current selection.
func (e *explorer) Selection() filters.Selection {
	return e.sel.Clone()
}
