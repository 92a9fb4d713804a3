package syntax

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/gnoswap-labs/fitch/internal/fitch"
)

// CommandKind identifies a command of the proof language.
type CommandKind int

const (
	_ CommandKind = iota
	CommandPremise
	CommandAssume
	CommandCopy
	CommandDischarge
	CommandUndo
	CommandRule
	CommandLatex
	CommandShow
	CommandHelp
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandPremise:
		return "premise"
	case CommandAssume:
		return "assume"
	case CommandCopy:
		return "copy"
	case CommandDischarge:
		return "discharge"
	case CommandUndo:
		return "undo"
	case CommandRule:
		return "rule"
	case CommandLatex:
		return "latex"
	case CommandShow:
		return "show"
	case CommandHelp:
		return "help"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one parsed input line. Only the field matching Kind is set:
// Prop for premise and assume, Index for copy, Rule for rule and Topic for
// help.
type Command struct {
	Kind  CommandKind
	Prop  fitch.Prop
	Index fitch.StepIndex
	Rule  fitch.Rule
	Topic string
}

// Mutates reports whether the command changes the proof.
func (c Command) Mutates() bool {
	switch c.Kind {
	case CommandPremise, CommandAssume, CommandCopy, CommandDischarge, CommandUndo, CommandRule:
		return true
	default:
		return false
	}
}

func (c Command) String() string {
	switch c.Kind {
	case CommandPremise, CommandAssume:
		return c.Kind.String() + " " + c.Prop.String()
	case CommandCopy:
		return "copy " + c.Index.String()
	case CommandRule:
		return "rule " + c.Rule.String()
	case CommandHelp:
		if c.Topic != "" {
			return "help " + c.Topic
		}
	}
	return c.Kind.String()
}

var keywords = map[string]CommandKind{
	"premise":   CommandPremise,
	"assume":    CommandAssume,
	"copy":      CommandCopy,
	"discharge": CommandDischarge,
	"close":     CommandDischarge,
	"undo":      CommandUndo,
	"rule":      CommandRule,
	"latex":     CommandLatex,
	"show":      CommandShow,
	"help":      CommandHelp,
	"quit":      CommandQuit,
	"exit":      CommandQuit,
}

// Keywords returns every command word, aliases included, in sorted order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ParseCommand parses one line of input.
func ParseCommand(input string) (Command, error) {
	word, wordOffset, rest, restOffset := splitWord(input, 0)
	if word == "" {
		return Command{}, &SyntaxError{Offset: wordOffset, Msg: "expected command"}
	}
	kind, ok := keywords[word]
	if !ok {
		return Command{}, &SyntaxError{Offset: wordOffset, Msg: fmt.Sprintf("unknown command %q", word)}
	}

	cmd := Command{Kind: kind}
	var err error
	switch kind {
	case CommandPremise, CommandAssume:
		cmd.Prop, err = parseFragment(rest, restOffset, (*Parser).Prop)
	case CommandCopy:
		cmd.Index, err = parseFragment(rest, restOffset, (*Parser).Index)
	case CommandRule:
		cmd.Rule, err = parseRuleAt(rest, restOffset)
	case CommandHelp:
		topic, topicOffset, tail, tailOffset := splitWord(rest, restOffset)
		if err = expectBlank(tail, tailOffset); err != nil {
			break
		}
		if topic != "" {
			if _, ok := LookupRule(topic); !ok {
				err = &SyntaxError{Offset: topicOffset, Msg: fmt.Sprintf("unknown rule %q", topic)}
			}
		}
		cmd.Topic = topic
	default:
		err = expectBlank(rest, restOffset)
	}
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

func expectBlank(s string, base int) error {
	trimmed := strings.TrimLeftFunc(s, unicode.IsSpace)
	if trimmed == "" {
		return nil
	}
	return &SyntaxError{
		Offset: base + len(s) - len(trimmed),
		Msg:    fmt.Sprintf("unexpected %q", strings.TrimSpace(trimmed)),
	}
}
