package engine

import (
	"log/slog"
	"strings"
)

// Classifier turns raw script lines into commands. Classification is pure
// string work; no collaborator state is consulted except the resolver, which
// is needed to assign a speaker index to speech lines.
type Classifier struct {
	resolver Resolver
	log      *slog.Logger

	narratorFallbacks uint64
}

func NewClassifier(resolver Resolver, log *slog.Logger) *Classifier {
	return &Classifier{resolver: resolver, log: log}
}

// Classify determines the kind and operands of a single line.
//
// A line whose first delimiter-separated token matches a keyword exactly
// (case-sensitive) becomes that command, with the remaining tokens as
// operands. A line with no delimiter, or with a delimiter but nothing after
// it, is a comment. Anything else is speech: the first token names the
// speaker and the rest of the line is the dialogue text.
func (c *Classifier) Classify(raw string) Command {
	if raw == "" {
		return Command{Kind: Comment}
	}

	first, rest, found := strings.Cut(raw, Delimiter)
	if kind, ok := keywordTable[first]; ok {
		cmd := Command{Kind: kind}
		if found {
			cmd.Operands = strings.Split(rest, Delimiter)
		}
		return cmd
	}

	if !found || rest == "" {
		return Command{Kind: Comment, Operands: []string{raw}}
	}

	speaker := 0
	if c.resolver != nil {
		if c.resolver.HasCharacter(first) {
			speaker = c.resolver.CharacterIndex(first)
		} else {
			c.narratorFallbacks++
			c.log.Warn("unknown speaker, using narrator", "name", first)
		}
	}
	return Command{Kind: Speech, Operands: []string{rest}, Speaker: speaker}
}

// NarratorFallbacks reports how many speech lines named a speaker that could
// not be resolved.
func (c *Classifier) NarratorFallbacks() uint64 {
	return c.narratorFallbacks
}
