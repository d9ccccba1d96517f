// Package main provides the sqlport CLI entry point.
package main

import (
	"github.com/leapstack-labs/sqlport/internal/cli"
)

func main() {
	cli.Execute()
}
