// Package internal runs proof scripts.
//
// A script is a text file with one command per line, in the language of
// package syntax. The Engine replays a script against a fresh proof and
// turns every problem it meets into a types.Issue instead of stopping:
//
//   - syntax-error: the line is not a valid command
//   - invalid-step: the command was rejected by the proof engine
//   - open-scope: the script ends with an undischarged assumption
//   - late-premise: a premise follows steps that are not premises
//   - unreachable-command: a command follows quit
//
// Each diagnostic has a default severity that can be overridden from the
// configuration file, or turned off. A "#nolint" or "#nolint:rule,..."
// comment suppresses diagnostics locally; see package nolint.
//
// Usage:
//
//	engine := internal.NewEngine(config.Rules, logger)
//	issues, err := engine.Run("proofs/contraposition.fitch")
//	if err != nil {
//	    // handle error
//	}
//
// Results can be memoized per file with Cache, and Watcher re-checks
// scripts whenever they are written.
package internal
