package syntax

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gnoswap-labs/fitch/internal/fitch"
)

// RuleInfo describes one inference rule for parsing and help output.
type RuleInfo struct {
	Name      string   // canonical spelling, e.g. "and_i"
	Symbol    string   // as shown in proofs, e.g. "∧i"
	Args      string   // argument synopsis
	Summary   string   // one-line description
	Spellings []string // every accepted name
}

type ruleSpec struct {
	RuleInfo
	build func(p *Parser) (fitch.Rule, error)
}

var (
	andPrefixes       = []string{"and_", "∧", "&", "^"}
	orPrefixes        = []string{"or_", "∨", "|", "v"}
	negPrefixes       = []string{"neg_", "-", "¬"}
	implyPrefixes     = []string{"imply_", "->", "⇒", "→"}
	doubleNegPrefixes = []string{"neg_neg_", "--", "¬¬"}
	bottomPrefixes    = []string{"bottom_", "⊥"}
)

func spellings(prefixes []string, suffix string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, p+suffix)
	}
	return out
}

var ruleSpecs = []ruleSpec{
	{
		RuleInfo{Name: "and_i", Symbol: "∧i", Args: "<φ> <ψ>", Summary: "from φ and ψ derive φ ∧ ψ", Spellings: spellings(andPrefixes, "i")},
		func(p *Parser) (fitch.Rule, error) {
			lhs, rhs, err := twoIndices(p)
			return fitch.AndI{Lhs: lhs, Rhs: rhs}, err
		},
	},
	{
		RuleInfo{Name: "and_e_lhs", Symbol: "∧e_lhs", Args: "<φ ∧ ψ>", Summary: "from φ ∧ ψ derive φ", Spellings: spellings(andPrefixes, "e_lhs")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.AndELhs{Conj: i}, err
		},
	},
	{
		RuleInfo{Name: "and_e_rhs", Symbol: "∧e_rhs", Args: "<φ ∧ ψ>", Summary: "from φ ∧ ψ derive ψ", Spellings: spellings(andPrefixes, "e_rhs")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.AndERhs{Conj: i}, err
		},
	},
	{
		RuleInfo{Name: "or_i_lhs", Symbol: "∨i_lhs", Args: "<φ> ψ", Summary: "from φ derive φ ∨ ψ", Spellings: spellings(orPrefixes, "i_lhs")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			if err != nil {
				return nil, err
			}
			p.separator()
			rhs, err := p.Prop()
			return fitch.OrILhs{Lhs: i, Rhs: rhs}, err
		},
	},
	{
		RuleInfo{Name: "or_i_rhs", Symbol: "∨i_rhs", Args: "φ <ψ>", Summary: "from ψ derive φ ∨ ψ", Spellings: spellings(orPrefixes, "i_rhs")},
		func(p *Parser) (fitch.Rule, error) {
			lhs, err := p.Prop()
			if err != nil {
				return nil, err
			}
			p.separator()
			i, err := p.Index()
			return fitch.OrIRhs{Lhs: lhs, Rhs: i}, err
		},
	},
	{
		RuleInfo{Name: "or_e", Symbol: "∨e", Args: "<φ ∨ ψ> <[φ … χ]> <[ψ … χ]>", Summary: "case analysis: derive χ from both disjuncts", Spellings: spellings(orPrefixes, "e")},
		func(p *Parser) (fitch.Rule, error) {
			disj, lhs, err := twoIndices(p)
			if err != nil {
				return nil, err
			}
			p.separator()
			rhs, err := p.Index()
			return fitch.OrE{Disjunction: disj, LhsBox: lhs, RhsBox: rhs}, err
		},
	},
	{
		RuleInfo{Name: "neg_i", Symbol: "¬i", Args: "<[φ … ⊥]>", Summary: "from a box assuming φ and ending in ⊥ derive ¬φ", Spellings: spellings(negPrefixes, "i")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.NegI{Box: i}, err
		},
	},
	{
		RuleInfo{Name: "neg_e", Symbol: "¬e", Args: "<φ> <¬φ>", Summary: "from φ and ¬φ derive ⊥", Spellings: spellings(negPrefixes, "e")},
		func(p *Parser) (fitch.Rule, error) {
			prop, neg, err := twoIndices(p)
			return fitch.NegE{Prop: prop, NegProp: neg}, err
		},
	},
	{
		RuleInfo{Name: "imply_i", Symbol: "→i", Args: "<[φ … ψ]>", Summary: "from a box assuming φ and ending in ψ derive φ → ψ", Spellings: spellings(implyPrefixes, "i")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.ImplyI{Box: i}, err
		},
	},
	{
		RuleInfo{Name: "imply_e", Symbol: "→e", Args: "<φ → ψ> <φ>", Summary: "modus ponens: from φ → ψ and φ derive ψ", Spellings: spellings(implyPrefixes, "e")},
		func(p *Parser) (fitch.Rule, error) {
			imp, ante, err := twoIndices(p)
			return fitch.ImplyE{Implication: imp, Antecedent: ante}, err
		},
	},
	{
		RuleInfo{Name: "bottom_e", Symbol: "⊥e", Args: "<⊥> φ", Summary: "from ⊥ derive anything", Spellings: spellings(bottomPrefixes, "e")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			if err != nil {
				return nil, err
			}
			p.separator()
			prop, err := p.Prop()
			return fitch.BottomE{Bottom: i, Conclusion: prop}, err
		},
	},
	{
		RuleInfo{Name: "neg_neg_e", Symbol: "¬¬e", Args: "<¬¬φ>", Summary: "from ¬¬φ derive φ", Spellings: spellings(doubleNegPrefixes, "e")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.DoubleNegE{Index: i}, err
		},
	},
	{
		RuleInfo{Name: "mt", Symbol: "MT", Args: "<φ → ψ> <¬ψ>", Summary: "modus tollens: from φ → ψ and ¬ψ derive ¬φ", Spellings: []string{"mt", "MT", "modus_tollens"}},
		func(p *Parser) (fitch.Rule, error) {
			imp, neg, err := twoIndices(p)
			return fitch.ModusTollens{Implication: imp, NegatedRhs: neg}, err
		},
	},
	{
		RuleInfo{Name: "neg_neg_i", Symbol: "¬¬i", Args: "<φ>", Summary: "from φ derive ¬¬φ", Spellings: spellings(doubleNegPrefixes, "i")},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.DoubleNegI{Index: i}, err
		},
	},
	{
		RuleInfo{Name: "pbc", Symbol: "PBC", Args: "<[¬φ … ⊥]>", Summary: "proof by contradiction: from a box assuming ¬φ and ending in ⊥ derive φ", Spellings: []string{"pbc", "PBC", "proof_by_contradiction"}},
		func(p *Parser) (fitch.Rule, error) {
			i, err := p.Index()
			return fitch.ProofByContradiction{Box: i}, err
		},
	},
	{
		RuleInfo{Name: "lem", Symbol: "LEM", Args: "φ", Summary: "law of excluded middle: derive φ ∨ ¬φ", Spellings: []string{"lem", "LEM", "law_of_excluded_middle"}},
		func(p *Parser) (fitch.Rule, error) {
			prop, err := p.Prop()
			return fitch.LawOfExcludedMiddle{Prop: prop}, err
		},
	},
}

var rulesBySpelling = func() map[string]*ruleSpec {
	m := make(map[string]*ruleSpec)
	for i := range ruleSpecs {
		spec := &ruleSpecs[i]
		for _, s := range spec.Spellings {
			if _, dup := m[s]; dup {
				panic("syntax: duplicate rule spelling " + s)
			}
			m[s] = spec
		}
	}
	return m
}()

// Rules lists every inference rule in the order they are documented.
func Rules() []RuleInfo {
	out := make([]RuleInfo, len(ruleSpecs))
	for i, spec := range ruleSpecs {
		out[i] = spec.RuleInfo
	}
	return out
}

// LookupRule finds a rule by any of its spellings.
func LookupRule(name string) (RuleInfo, bool) {
	spec, ok := rulesBySpelling[name]
	if !ok {
		return RuleInfo{}, false
	}
	return spec.RuleInfo, true
}

// ParseRule parses a rule name followed by its arguments, e.g. "->e 1, 2".
func ParseRule(input string) (fitch.Rule, error) {
	return parseRuleAt(input, 0)
}

func parseRuleAt(input string, base int) (fitch.Rule, error) {
	name, nameOffset, args, argsOffset := splitWord(input, base)
	if name == "" {
		return nil, &SyntaxError{Offset: nameOffset, Msg: "expected rule name"}
	}
	spec, ok := rulesBySpelling[name]
	if !ok {
		return nil, &SyntaxError{Offset: nameOffset, Msg: fmt.Sprintf("unknown rule %q", name)}
	}
	rule, err := parseFragment(args, argsOffset, spec.build)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func twoIndices(p *Parser) (fitch.StepIndex, fitch.StepIndex, error) {
	a, err := p.Index()
	if err != nil {
		return 0, 0, err
	}
	p.separator()
	b, err := p.Index()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// splitWord splits off the first whitespace-delimited word of s, which is
// located at offset base. It returns the word with its offset and the
// remainder with its offset.
func splitWord(s string, base int) (word string, wordOffset int, rest string, restOffset int) {
	start := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	end := start + strings.IndexFunc(s[start:], unicode.IsSpace)
	if end < start {
		end = len(s)
	}
	return s[start:end], base + start, s[end:], base + end
}
