package grammar

// Symbol is a grammar symbol: either a terminal, a nonterminal, or one of
// the two reserved sentinels below. Symbols are plain strings throughout
// this package; no interning is performed, matching the reference
// implementation's own string-keyed representation.
type Symbol = string

const (
	// Epsilon denotes the empty string. It never appears on the
	// left-hand side of a production and is stripped from production
	// bodies by Production normalization except when it is the sole
	// body symbol.
	Epsilon Symbol = "@"

	// EndOfInput is the end-of-input sentinel used to seed FOLLOW(start)
	// and as the lookahead consumed by the augmented accept item.
	EndOfInput Symbol = "$"

	// AugmentedStart is the fresh start symbol introduced by
	// Grammar.Augmented.
	AugmentedStart Symbol = "!S"
)
