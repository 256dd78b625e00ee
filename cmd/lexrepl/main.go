package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/lexkit"
	"github.com/npillmayer/lexkit/errlog"
	"github.com/npillmayer/lexkit/lexer"
	"github.com/npillmayer/lexkit/lexer/lexmach"
	"github.com/npillmayer/lexkit/regex"
	"github.com/npillmayer/lexkit/runtime"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// tracer traces with key 'lexkit.repl'.
func tracer() tracing.Trace {
	return tracing.Select("lexkit.repl")
}

// We provide a small set of C-like token definitions as a default, if no
// definitions file is given.
const defaultDefs = `
KW       int|if|else|while|return
ID       [a-zA-Z_][a-zA-Z0-9_]*
NUM      [0-9]+
STRING   "[^"\n]*"
OP       ==|!=|<=|>=|[-+*/=<>!;,(){}]
~WS      [ \t\r\n]+
~COMMENT //[^\n]*
`

// main() starts an interactive CLI ("LEXREPL"), where users may enter lines
// of text. LEXREPL will tokenize every line and print out the tokens found.
// LEXREPL is intended as a sandbox for experiments with token definitions.
// Lines starting with a colon are commands; enter ":help" for a list.
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	defs := flag.String("defs", "", "Token definitions file")
	backend := flag.String("backend", "dfa", "Scanner backend [dfa|lexmachine]")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to LEXREPL")  // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	if *backend != "dfa" && *backend != "lexmachine" {
		pterm.Error.Printf("unknown backend %q\n", *backend)
		os.Exit(2)
	}
	//
	// set up token definitions
	intp := &Intp{defsFile: *defs, backend: *backend}
	if err := intp.load(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	gtrace.SyntaxTracer.SetTraceLevel(traceLevel(*tlevel))
	//
	// tokenize command line arguments, if any
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		intp.Tokenize(input)
	}
	//
	// set up REPL
	repl, err := readline.New("lexrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	defsFile    string
	backend     string
	fingerprint string
	specs       []lexer.Spec
	lexer       *lexer.Lexer
	lm          *lexmach.LMAdapter
	lastTokens  []lexkit.Token
	scopes      *runtime.ScopeStack
	repl        *readline.Instance
}

// load reads token definitions and compiles them, if they have changed since
// the last load.
func (intp *Intp) load() error {
	var specs []lexer.Spec
	var err error
	if intp.defsFile == "" {
		specs, err = lexer.ReadSpecs(strings.NewReader(defaultDefs))
	} else {
		f, ferr := os.Open(intp.defsFile)
		if ferr != nil {
			return fmt.Errorf("unable to open definitions file: %w", ferr)
		}
		defer f.Close()
		specs, err = lexer.ReadSpecs(f)
	}
	if err != nil {
		return err
	}
	fp, err := lexer.Fingerprint(specs)
	if err != nil {
		return err
	}
	if fp == intp.fingerprint {
		tracer().Infof("token definitions unchanged")
		return nil
	}
	lx, err := lexer.Compile(specs)
	if err != nil {
		return err
	}
	var lm *lexmach.LMAdapter
	if intp.backend == "lexmachine" {
		if lm, err = lexmach.NewLMAdapter(specs); err != nil {
			return err
		}
	}
	intp.specs, intp.lexer, intp.lm, intp.fingerprint = specs, lx, lm, fp
	intp.scopes = runtime.NewScopeStack()
	tracer().Infof("loaded %d token definitions [%s]", len(specs), fp)
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			quit, err := intp.Execute(strings.Fields(line[1:]))
			if err != nil {
				pterm.Error.Println(err.Error())
			}
			if quit {
				break
			}
			continue
		}
		intp.Tokenize(line)
	}
	println("Good bye!")
}

// Tokenize scans a line of input and prints the tokens found.
func (intp *Intp) Tokenize(input string) {
	errs := errlog.New()
	var tz lexer.Tokenizer
	str := intp.lexer.Stringer()
	if intp.lm != nil {
		sc, err := intp.lm.Scanner(input, errs)
		if err != nil {
			pterm.Error.Println(err.Error())
			return
		}
		tz = sc
	} else {
		tz = intp.lexer.Scanner(input, errs)
	}
	data := pterm.TableData{{"Kind", "Lexeme", "Line", "Span"}}
	intp.lastTokens = intp.lastTokens[:0]
	for tok := tz.NextToken(); !tok.IsEOF(); tok = tz.NextToken() {
		intp.lastTokens = append(intp.lastTokens, tok)
		data = append(data, []string{str(tok.Kind), strconv.Quote(tok.Lexeme),
			strconv.Itoa(tok.Line), tok.Span.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if errs.HasErrors() {
		errs.DisplayErrors()
	}
}

// Execute runs a REPL command. It returns true if the REPL should quit.
func (intp *Intp) Execute(args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("missing command")
	}
	switch args[0] {
	case "quit", "q":
		return true, nil
	case "help":
		intp.help()
	case "defs":
		intp.showDefinitions()
	case "grammar":
		if _, err := regex.LoadGrammar(); err != nil {
			return false, err
		}
		pterm.Print(regex.Grammar)
	case "reload":
		return false, intp.load()
	case "dot", "nfa", "table":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :%s NAME", args[0])
		}
		def := intp.lexer.Definition(args[1])
		if def == nil {
			return false, fmt.Errorf("no token definition named %s", args[1])
		}
		return false, intp.showAutomaton(args[0], def)
	case "declare":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: :declare NAME")
		}
		return false, intp.declare(args[1])
	default:
		return false, fmt.Errorf("unknown command :%s", args[0])
	}
	return false, nil
}

func (intp *Intp) help() {
	data := pterm.TableData{
		{"Command", "Description"},
		{":defs", "list token definitions"},
		{":dot NAME", "print DFA of definition NAME in GraphViz format"},
		{":nfa NAME", "print NFA of definition NAME in GraphViz format"},
		{":table NAME", "print transition table of definition NAME"},
		{":declare NAME", "enter tokens of kind NAME from last input into symbol table"},
		{":grammar", "print the pattern grammar"},
		{":reload", "re-read token definitions"},
		{":quit", "leave LEXREPL"},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showDefinitions() {
	data := pterm.TableData{{"Kind", "Name", "Pattern", "Discard", "DFA states"}}
	for i, def := range intp.lexer.Definitions() {
		data = append(data, []string{
			strconv.Itoa(int(intp.specs[i].Kind)),
			def.Name(),
			def.Pattern(),
			strconv.FormatBool(def.IsDiscard()),
			strconv.Itoa(def.DFA().Size()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) showAutomaton(cmd string, def *lexer.TokenDefinition) error {
	switch cmd {
	case "dot":
		return def.DFA().GraphViz(os.Stdout)
	case "nfa":
		a, f, err := regex.CompileNFA(def.Pattern())
		if err != nil {
			return err
		}
		return a.GraphViz(f, os.Stdout)
	}
	tt := def.DFA().TransitionTable()
	data := pterm.TableData{{"State", "Transitions"}}
	for i := 0; i < tt.M(); i++ {
		row := tt.Row(i)
		cols := make([]int, 0, len(row))
		for b := range row {
			cols = append(cols, b)
		}
		sort.Ints(cols)
		var sb strings.Builder
		for _, b := range cols {
			fmt.Fprintf(&sb, "%q→%d ", rune(b), row[b])
		}
		data = append(data, []string{strconv.Itoa(i), sb.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func (intp *Intp) declare(name string) error {
	def := intp.lexer.Definition(name)
	if def == nil {
		return fmt.Errorf("no token definition named %s", name)
	}
	for _, dup := range intp.scopes.Declare(intp.lastTokens, def.Kind()) {
		pterm.Error.Printf("%s already declared\n", dup.Lexeme)
	}
	data := pterm.TableData{{"Symbol", "Line", "Span"}}
	intp.scopes.Current().Symbols().Each(func(n string, sym *runtime.Symbol) {
		data = append(data, []string{n, strconv.Itoa(sym.Token.Line), sym.Token.Span.String()})
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
