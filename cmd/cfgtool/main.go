/*
Cfgtool analyzes a context-free grammar written in a minimalist BNF.

It reads a single BNF file and, depending on the flags given, prints the
parsed grammar, its FIRST/FOLLOW sets, its LL(1) predictive table and
conflicts, a left-recursion-eliminated equivalent, and the LR(0), SLR(1),
LR(1), and (optionally) LALR(1) canonical item-set automata, action/goto
tables, and DOT graph dumps. It can also trace a parse of a token stream
against any of the built tables.

Usage:

	cfgtool [flags] BNF_FILE

The flags are:

	-e, --left-elim
		Eliminate left recursion on the input grammar before any other
		analysis runs.
	-g, --grammar
		Print the parsed grammar.
	-f, --first
		Print the FIRST sets.
	-F, --follow
		Print the FOLLOW sets.
	--ll1-table
		Print the LL(1) predictive table.
	--ll1-conflict
		Print conflicts in the LL(1) table.
	--lr-arg-grammar
		Print the augmented LR grammar.
	--lr0-state, --lr0-table, --lr0-transition, --lr0-dfa
	--slr1-state, --slr1-table, --slr1-transition, --slr1-dfa
	--lr1-state, --lr1-table, --lr1-transition, --lr1-dfa
	--lalr1-state, --lalr1-table, --lalr1-transition, --lalr1-dfa
		Print or export the corresponding variant's states, action/goto
		table, transitions, or DOT graph.
	--parse-ll1, --parse-lr0, --parse-slr1, --parse-lr1, --parse-lalr1 SYM_FILE
		Trace a parse of the whitespace-separated symbols in SYM_FILE
		against the named variant's table.
	--repl
		Drop into an interactive, readline-backed REPL instead of running
		one batch of flags.
	--config FILE
		Load defaults from a TOML file; only dot_output_dir, the
		directory DOT dumps are written to, is used.

Each requested artifact is built at most once per run, lazily, on first
use; artifacts nobody asked for are never computed.
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/bnf"
	"github.com/hghwng/cfgtool/internal/cfgerrors"
	"github.com/hghwng/cfgtool/internal/config"
	"github.com/hghwng/cfgtool/internal/grammar"
	"github.com/hghwng/cfgtool/internal/lr"
	"github.com/hghwng/cfgtool/internal/render"
)

const (
	ExitSuccess = iota
	ExitLoadError
	ExitParseError
)

var (
	returnCode = ExitSuccess

	flagLeftElim  = pflag.BoolP("left-elim", "e", false, "Eliminate left recursion on the input grammar")
	flagGrammar   = pflag.BoolP("grammar", "g", false, "Print the parsed grammar")
	flagFirst     = pflag.BoolP("first", "f", false, "Print the FIRST sets")
	flagFollow    = pflag.BoolP("follow", "F", false, "Print the FOLLOW sets")
	flagLL1Table  = pflag.Bool("ll1-table", false, "Print the LL(1) table")
	flagLL1Conf   = pflag.Bool("ll1-conflict", false, "Print LL(1) table conflicts")
	flagArgGrammar = pflag.Bool("lr-arg-grammar", false, "Print the augmented LR grammar")
	flagParseLL1   = pflag.String("parse-ll1", "", "Trace a parse of SYM_FILE against the LL(1) table")

	flagRepl   = pflag.Bool("repl", false, "Start an interactive REPL instead of batch mode")
	flagConfig = pflag.String("config", "", "Load default flags from a TOML config file")

	variantFlags = map[automaton.Variant]*variantFlagSet{}
	parseFlags   = map[automaton.Variant]*string{}
)

type variantFlagSet struct {
	state, table, transition, dfa *bool
}

func registerVariantFlags(name string, v automaton.Variant) {
	variantFlags[v] = &variantFlagSet{
		state:      pflag.Bool(name+"-state", false, "Print "+name+" states"),
		table:      pflag.Bool(name+"-table", false, "Print "+name+" table"),
		transition: pflag.Bool(name+"-transition", false, "Print "+name+" transitions"),
		dfa:        pflag.Bool(name+"-dfa", false, "Export the "+name+" DFA graph"),
	}
	parseFlags[v] = pflag.String("parse-"+name, "", "Trace a parse of SYM_FILE against the "+name+" table")
}

func init() {
	registerVariantFlags("lr0", automaton.LR0)
	registerVariantFlags("slr1", automaton.SLR1)
	registerVariantFlags("lr1", automaton.LR1)
	registerVariantFlags("lalr1", automaton.LALR1)
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			if ie, ok := cfgerrors.IsInternal(panicErr); ok {
				fmt.Fprintf(os.Stderr, "INTERNAL ERROR: %s\n", ie.Error())
				os.Exit(ExitParseError)
			}
			panic(panicErr)
		}
		os.Exit(returnCode)
	}()

	pflag.Parse()

	var cfg config.Config
	if *flagConfig != "" {
		loaded, err := config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			returnCode = ExitLoadError
			return
		}
		cfg = loaded
	}

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: missing BNF_FILE argument")
		returnCode = ExitLoadError
		return
	}
	bnfPath := pflag.Arg(0)

	src, err := os.ReadFile(bnfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitLoadError
		return
	}

	g, err := bnf.Parse(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitLoadError
		return
	}

	if *flagLeftElim {
		g = g.RemoveLeftRecursion()
	}
	if *flagGrammar {
		fmt.Print(render.Grammar(g))
	}

	p := newPipeline(g, cfg)

	if *flagRepl {
		runRepl(p)
		return
	}

	if err := runBatch(p); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		returnCode = ExitParseError
	}
}

// pipeline is the lazy/memoized artifact cache: each artifact is built at
// most once, on first request, mirroring the builder-dict/context-cache
// pattern of the BNF-driven reference tool this project grew from.
type pipeline struct {
	g   grammar.Grammar
	cfg config.Config

	first   *grammar.FirstSets
	follow  *grammar.FollowSets
	ll1     *grammar.LL1Table
	augment *grammar.Grammar
	tables  map[automaton.Variant]*lr.Table
}

func newPipeline(g grammar.Grammar, cfg config.Config) *pipeline {
	return &pipeline{g: g, cfg: cfg, tables: map[automaton.Variant]*lr.Table{}}
}

func (p *pipeline) First() grammar.FirstSets {
	if p.first == nil {
		f := p.g.FIRST()
		p.first = &f
	}
	return *p.first
}

func (p *pipeline) Follow() grammar.FollowSets {
	if p.follow == nil {
		f := p.g.FOLLOW(p.First())
		p.follow = &f
	}
	return *p.follow
}

func (p *pipeline) LL1() (grammar.LL1Table, error) {
	if p.ll1 == nil {
		t, err := p.g.LLParseTable()
		if err != nil {
			return grammar.LL1Table{}, err
		}
		p.ll1 = &t
	}
	return *p.ll1, nil
}

func (p *pipeline) Augmented() grammar.Grammar {
	if p.augment == nil {
		a := p.g.Augmented()
		p.augment = &a
	}
	return *p.augment
}

func (p *pipeline) Table(v automaton.Variant) (lr.Table, error) {
	if t, ok := p.tables[v]; ok {
		return *t, nil
	}
	t, err := lr.Build(p.g, v)
	if err != nil {
		return lr.Table{}, err
	}
	p.tables[v] = &t
	return t, nil
}

func runBatch(p *pipeline) error {
	if *flagFirst {
		fmt.Println("LL(1):")
		fmt.Print(render.FirstSets(p.g, p.First()))
	}
	if *flagFollow {
		fmt.Print(render.FollowSets(p.g, p.Follow()))
	}
	if *flagLL1Table {
		t, err := p.LL1()
		if err != nil {
			return err
		}
		fmt.Print(render.LL1Table(t))
	}
	if *flagLL1Conf {
		t, err := p.LL1()
		if err != nil {
			return err
		}
		fmt.Print(render.LL1Conflicts(t.Conflicts()))
	}
	if *flagArgGrammar {
		fmt.Println("LR:")
		fmt.Print(render.Grammar(p.Augmented()))
	}

	for v, fs := range variantFlags {
		if err := runVariant(p, v, fs); err != nil {
			return err
		}
	}

	if err := runParses(p); err != nil {
		return err
	}
	return nil
}

func variantName(v automaton.Variant) string {
	switch v {
	case automaton.LR0:
		return "lr0"
	case automaton.SLR1:
		return "slr1"
	case automaton.LR1:
		return "lr1"
	case automaton.LALR1:
		return "lalr1"
	default:
		return "?"
	}
}

func runVariant(p *pipeline, v automaton.Variant, fs *variantFlagSet) error {
	if !*fs.state && !*fs.table && !*fs.transition && !*fs.dfa {
		return nil
	}
	t, err := p.Table(v)
	if err != nil {
		return err
	}
	fmt.Printf("%s:\n", v)
	if *fs.state {
		fmt.Print(render.States(t.Collection))
	}
	if *fs.transition {
		fmt.Print(render.Transitions(t.Collection))
	}
	if *fs.table {
		fmt.Print(render.ActionTable(t.Grammar, t))
	}
	if *fs.dfa {
		name := baseName(pflag.Arg(0)) + "." + variantName(v) + ".dot"
		path := name
		if p.cfg.DotOutputDir != "" {
			path = p.cfg.DotOutputDir + "/" + name
		}
		if err := os.WriteFile(path, []byte(render.DOT(t.Collection)), 0o644); err != nil {
			return cfgerrors.WrapLoad(err, "writing DOT file "+path)
		}
	}
	return nil
}

func runParses(p *pipeline) error {
	if *flagParseLL1 != "" {
		syms, err := readSymbols(*flagParseLL1)
		if err != nil {
			return err
		}
		t, err := p.LL1()
		if err != nil {
			return err
		}
		fmt.Println("Parse of LL(1):")
		if err := grammar.ParseLL1(t, p.g.StartSymbol(), syms, func(ev grammar.LL1TraceEvent) { fmt.Println(ev) }); err != nil {
			return err
		}
	}

	for v, symFile := range parseFlags {
		if *symFile == "" {
			continue
		}
		syms, err := readSymbols(*symFile)
		if err != nil {
			return err
		}
		t, err := p.Table(v)
		if err != nil {
			return err
		}
		fmt.Printf("Parse of %s:\n", v)
		if err := lr.Parse(t, syms, func(ev lr.TraceEvent) { fmt.Println(ev) }); err != nil {
			return err
		}
	}
	return nil
}

func baseName(path string) string {
	return filepath.Base(path)
}

func readSymbols(path string) ([]grammar.Symbol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cfgerrors.WrapLoad(err, "reading symbol file "+path)
	}
	return strings.Fields(string(data)), nil
}
