// Package ansi provides the neutral baseline dialect. It carries no
// lexical extensions and no render overrides, so output uses the generic
// spellings of every node. It doubles as the source dialect when input is
// already written in portable SQL.
package ansi

import (
	"github.com/leapstack-labs/sqlport/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ANSI is the baseline dialect.
var ANSI = dialect.NewDialect("ansi").Build()
