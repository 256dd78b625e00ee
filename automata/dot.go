package automata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// GraphViz exports a DFA to the Graphviz Dot format.
func (dfa *DFA) GraphViz(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(dotHeader)
	for _, d := range dfa.states {
		bw.WriteString(fmt.Sprintf("d%03d [shape=%s fillcolor=%s label=\"%d\"]\n",
			d.ID, nodeshape(d.Final), nodecolor(d.Final), d.ID))
	}
	for _, d := range dfa.states {
		// collect transitions per target, to get one edge per target state
		var targets []*DState
		labels := make(map[*DState][]byte)
		for _, b := range dfa.alphabet {
			if t := d.next[b]; t != nil {
				if _, ok := labels[t]; !ok {
					targets = append(targets, t)
				}
				labels[t] = append(labels[t], b)
			}
		}
		for _, t := range targets {
			bw.WriteString(fmt.Sprintf("d%03d -> d%03d [label=\"%s\"]\n", d.ID, t.ID,
				forGraphviz(rangesString(labels[t]))))
		}
	}
	bw.WriteString(fmt.Sprintf("start [shape=point]\nstart -> d%03d\n}\n", dfa.start.ID))
	return bw.Flush()
}

// GraphViz exports the NFA reachable from f.Start to the Graphviz Dot format.
func (a *Arena) GraphViz(f Fragment, w io.Writer) error {
	a.checkFragment("export", f)
	bw := bufio.NewWriter(w)
	bw.WriteString(dotHeader)
	states := a.Reachable(f.Start)
	for _, s := range states {
		final := s.Final || s == f.End
		bw.WriteString(fmt.Sprintf("n%03d [shape=%s fillcolor=%s label=\"%d\"]\n",
			s.ID, nodeshape(final), nodecolor(final), s.ID))
	}
	for _, s := range states {
		s.EachTransition(func(l Label, targets []*State) {
			for _, t := range targets {
				bw.WriteString(fmt.Sprintf("n%03d -> n%03d [label=\"%s\"]\n", s.ID, t.ID,
					forGraphviz(l.String())))
			}
		})
	}
	bw.WriteString(fmt.Sprintf("start [shape=point]\nstart -> n%03d\n}\n", f.Start.ID))
	return bw.Flush()
}

const dotHeader = `digraph {
graph [rankdir=LR, splines=true, fontname=Helvetica, fontsize=10];
node [style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`

func nodeshape(final bool) string {
	if final {
		return "doublecircle"
	}
	return "circle"
}

func nodecolor(final bool) string {
	if final {
		return "lightgray"
	}
	return "white"
}

// rangesString condenses an ascending list of bytes into ranges, e.g. "a-z0".
func rangesString(bs []byte) string {
	var sb strings.Builder
	for i := 0; i < len(bs); {
		j := i
		for j+1 < len(bs) && bs[j+1] == bs[j]+1 {
			j++
		}
		sb.WriteString(byteString(bs[i]))
		if j > i+1 {
			sb.WriteByte('-')
		}
		if j > i {
			sb.WriteString(byteString(bs[j]))
		}
		i = j + 1
	}
	return sb.String()
}

func forGraphviz(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}
