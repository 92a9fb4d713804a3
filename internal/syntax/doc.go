/*
Package syntax provides a lexer and parser for the textual command language
used to build proofs interactively or from script files.

# Formulas

Formulas are parsed with the usual precedence, from loosest to tightest:

 1. Implication, right associative: "->", "→" or "⇒"
 2. Disjunction, left associative: "|", "∨", "+" or a standalone "v"
 3. Conjunction, left associative: "&", "∧", "^" or "*"
 4. Negation, prefix: "-", "¬" or "~"
 5. Atoms: "bottom" or "⊥", identifiers, and parenthesized formulas

Negation is not a separate connective: "¬p" parses to p → ⊥.

# Commands

One command per line:

	premise <formula>
	assume <formula>
	copy <index>
	discharge            (alias: close)
	undo
	rule <name> <args>
	latex
	show
	help [rule]
	quit                 (alias: exit)

Rule names accept several spellings per rule, for example "and_i", "∧i",
"&i" and "^i" all name conjunction introduction. Arguments are separated
by whitespace or commas:

	rule ->e 1, 2
	rule or_i_lhs 3 q ∧ r
	rule lem p

# Errors

Every parse failure is reported as a *SyntaxError carrying the byte offset
into the input where the problem was found.
*/
package syntax
