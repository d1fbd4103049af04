// Command qsw is the quoteswipe maintenance CLI.
//
// Usage:
//
//	qsw                     Show help
//	qsw export              Dump the visible collection as JSON
//	qsw seed                Print the built-in seed collection
//	qsw authors             Distinct authors, usage-ranked
//	qsw tags                Distinct custom tags, usage-ranked
//	qsw stats               Usage counter statistics
//	qsw clear               Delete every item owned by a user
//	qsw clear-usage         Reset usage counters
package main

import (
	"fmt"
	"os"
)

const usageText = `qsw — quoteswipe maintenance CLI

Usage:
  qsw <command> [flags]

Commands:
  export       Dump the visible collection as JSON
  seed         Print the built-in seed collection as JSON
  authors      List distinct authors, most-used first
  tags         List distinct custom tags, most-used first
  stats        Usage counter statistics
  clear        Delete every item owned by a user
  clear-usage  Reset usage counters

Environment:
  QUOTESWIPE_ENDPOINT         Document store base URL (seed-only when unset)
  QUOTESWIPE_API_KEY          Document store API key
  QUOTESWIPE_OAUTH_CLIENT_ID  OAuth client id (unused by qsw)

Run 'qsw <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usageText)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "export":
		runExport()
	case "seed":
		runSeed()
	case "authors":
		runAuthors()
	case "tags":
		runTags()
	case "stats":
		runStats()
	case "clear":
		runClear()
	case "clear-usage":
		runClearUsage()
	case "-h", "--help", "help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "qsw: unknown command %q\n\n", cmd)
		fmt.Print(usageText)
		os.Exit(1)
	}
}
