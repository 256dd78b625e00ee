package lexer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/lexkit"
)

// ReadSpecs reads token specs from a definition file. Every non-blank line
// not starting with '#' holds one definition
//
//    NAME   pattern
//    ~NAME  pattern     (discard matches)
//
// The pattern is the rest of the line after the white space following the
// name. Token kinds are numbered from 1 in order of first appearance of a
// name; a name occuring on more than one line keeps its kind.
func ReadSpecs(r io.Reader) ([]Spec, error) {
	var specs []Spec
	kinds := make(map[string]lexkit.TokType)
	lines := bufio.NewScanner(r)
	lineno := 0
	for lines.Scan() {
		lineno++
		line := strings.TrimRight(lines.Text(), " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}
		spec, err := parseSpecLine(trimmed)
		if err != nil {
			return nil, fmt.Errorf("definitions line %d: %w", lineno, err)
		}
		kind, ok := kinds[spec.Name]
		if !ok {
			kind = lexkit.TokType(len(kinds) + 1)
			kinds[spec.Name] = kind
		}
		spec.Kind = kind
		specs = append(specs, spec)
	}
	if err := lines.Err(); err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	tracer().Debugf("read %d token specs", len(specs))
	return specs, nil
}

func parseSpecLine(line string) (Spec, error) {
	spec := Spec{}
	if line[0] == '~' {
		spec.Discard = true
		line = line[1:]
	}
	i := strings.IndexAny(line, " \t")
	if i <= 0 {
		return spec, fmt.Errorf("expected NAME followed by pattern, have %q", line)
	}
	spec.Name = line[:i]
	spec.Pattern = strings.TrimLeft(line[i:], " \t")
	if spec.Pattern == "" {
		return spec, fmt.Errorf("missing pattern for %s", spec.Name)
	}
	return spec, nil
}

// WriteSpecs writes specs in the format understood by ReadSpecs.
func WriteSpecs(w io.Writer, specs []Spec) error {
	for _, spec := range specs {
		d := ""
		if spec.Discard {
			d = "~"
		}
		if _, err := fmt.Fprintf(w, "%s%s\t%s\n", d, spec.Name, spec.Pattern); err != nil {
			return err
		}
	}
	return nil
}
