package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"

	"github.com/hghwng/cfgtool/internal/automaton"
	"github.com/hghwng/cfgtool/internal/render"
)

// runRepl drops into an interactive, readline-backed loop: each line is a
// command naming one artifact to build and print against the grammar
// loaded at startup. Artifacts stay memoized across commands via the
// same pipeline batch mode uses.
func runRepl(p *pipeline) {
	rl, err := readline.NewEx(&readline.Config{Prompt: "cfgtool> "})
	if err != nil {
		fmt.Println("ERROR: could not start REPL:", err)
		return
	}
	defer rl.Close()

	fmt.Println("cfgtool REPL — commands: grammar, first, follow, ll1, ll1-conflicts, lr0, slr1, lr1, lalr1, quit")
	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}
		if cmd == "quit" || cmd == "exit" {
			return
		}
		if err := replDispatch(p, cmd); err != nil {
			fmt.Println("ERROR:", err)
		}
	}
}

func replDispatch(p *pipeline, cmd string) error {
	switch cmd {
	case "grammar":
		fmt.Print(render.Grammar(p.g))
	case "first":
		fmt.Print(render.FirstSets(p.g, p.First()))
	case "follow":
		fmt.Print(render.FollowSets(p.g, p.Follow()))
	case "ll1":
		t, err := p.LL1()
		if err != nil {
			return err
		}
		fmt.Print(render.LL1Table(t))
	case "ll1-conflicts":
		t, err := p.LL1()
		if err != nil {
			return err
		}
		fmt.Print(render.LL1Conflicts(t.Conflicts()))
	case "lr0", "slr1", "lr1", "lalr1":
		v := map[string]automaton.Variant{
			"lr0": automaton.LR0, "slr1": automaton.SLR1,
			"lr1": automaton.LR1, "lalr1": automaton.LALR1,
		}[cmd]
		t, err := p.Table(v)
		if err != nil {
			return err
		}
		fmt.Print(render.States(t.Collection))
		fmt.Print(render.ActionTable(t.Grammar, t))
	default:
		fmt.Println("unknown command:", cmd)
	}
	return nil
}
