/*
Package errlog implements an append-only log of lexical errors.

A Log is meant to be handed to a scanner as its error handler. When a run is
complete, clients check HasErrors and possibly display the errors on a
terminal.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package errlog

import (
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lexkit.errlog'.
func tracer() tracing.Trace {
	return tracing.Select("lexkit.errlog")
}

// Entry is a single error message together with the line it refers to.
type Entry struct {
	Msg  string
	Line int
}

func (e Entry) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Log collects error entries in order of reporting. It is safe for
// concurrent use.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// New creates an empty error log.
func New() *Log {
	return &Log{}
}

// ReportError appends an error for a line.
func (log *Log) ReportError(msg string, line int) {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.entries = append(log.entries, Entry{Msg: msg, Line: line})
	tracer().Debugf("error at line %d: %s", line, msg)
}

// HasErrors is true if at least one error has been reported.
func (log *Log) HasErrors() bool {
	return log.Len() > 0
}

// Len returns the number of errors reported.
func (log *Log) Len() int {
	log.mu.Lock()
	defer log.mu.Unlock()
	return len(log.entries)
}

// Errors returns a copy of all entries in order of reporting.
func (log *Log) Errors() []Entry {
	log.mu.Lock()
	defer log.mu.Unlock()
	entries := make([]Entry, len(log.entries))
	copy(entries, log.entries)
	return entries
}

// DisplayErrors prints all entries to the terminal, using the pterm error
// prefix.
func (log *Log) DisplayErrors() {
	for _, e := range log.Errors() {
		pterm.Error.Println(e.String())
	}
}

// WriteTo writes one line per entry to w. It implements io.WriterTo.
func (log *Log) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range log.Errors() {
		n, err := fmt.Fprintln(w, e.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
