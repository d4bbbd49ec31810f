package main

import (
	"testing"

	"github.com/hghwng/cfgtool/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_ReplDispatch_KnownCommands(t *testing.T) {
	for _, cmd := range []string{"grammar", "first", "follow", "ll1", "ll1-conflicts", "lr0", "slr1", "lr1", "lalr1"} {
		t.Run(cmd, func(t *testing.T) {
			assert := assert.New(t)
			p := newPipeline(testGrammar(), config.Config{})
			err := replDispatch(p, cmd)
			assert.NoError(err)
		})
	}
}

func Test_ReplDispatch_UnknownCommand(t *testing.T) {
	assert := assert.New(t)
	p := newPipeline(testGrammar(), config.Config{})
	err := replDispatch(p, "bogus")
	assert.NoError(err)
}
