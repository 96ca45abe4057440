package slice

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Strategy names accepted by LookupHydrator.
const (
	StrategyPattern = "pattern"
	StrategyDirect  = "direct"
)

// UnrecognizedLabel is what DirectHydrator reports when a node has no
// usable element.
const UnrecognizedLabel = "Unrecognized structure"

// ErrUnknownStrategy is returned by LookupHydrator for unknown names.
var ErrUnknownStrategy = errors.New("slice: unknown hydration strategy")

// Hydrator attaches a short description to a slice node.
type Hydrator interface {
	Name() string
	Describe(n Node) string
}

// Hydrate describes every node with h. The map is built fresh on every
// call and holds exactly one entry per distinct node.
func Hydrate(h Hydrator, nodes []Node) map[Node]string {
	out := make(map[Node]string, len(nodes))
	for _, n := range nodes {
		out[n] = h.Describe(n)
	}
	return out
}

// LookupHydrator returns the strategy registered under name. language only
// matters for the pattern strategy; an empty language selects Java rules.
func LookupHydrator(name, language string) (Hydrator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", StrategyPattern:
		return NewPatternHydrator(language), nil
	case StrategyDirect:
		return DirectHydrator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Rule labels text matching Pattern. Patterns must match the whole text.
type Rule struct {
	Label   string
	Pattern *regexp.Regexp
}

func fullMatch(expr string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:` + expr + `)$`)
}

// JavaRules classify single lines of Java source.
var JavaRules = []Rule{
	{"Method declaration", fullMatch(`(public|protected|private|static|\s) +[\w<>\[\],\s]+\s+(\w+) *\([^)]*\) *(\{?|[^;])`)},
	{"Return statement", fullMatch(`return .*`)},
	{"Conditional statement", fullMatch(`if(\s)*(.*)(\s)*`)},
	{"Comment", fullMatch(`//.*`)},
}

// GoRules classify single lines of Go source.
var GoRules = []Rule{
	{"Method declaration", fullMatch(`func\s*(\([^)]*\)\s*)?\w+\s*(\[[^\]]*\])?\(.*`)},
	{"Return statement", fullMatch(`return\b.*`)},
	{"Conditional statement", fullMatch(`(if|switch)\b.*`)},
	{"Comment", fullMatch(`//.*`)},
}

var rulesByLanguage = map[string][]Rule{
	"java": JavaRules,
	"go":   GoRules,
}

// PatternHydrator classifies node text with an ordered rule list. The
// first matching rule wins; text matching nothing is still described.
type PatternHydrator struct {
	Rules []Rule
}

// NewPatternHydrator returns a hydrator using the rules for language,
// falling back to Java rules for unknown languages.
func NewPatternHydrator(language string) PatternHydrator {
	rules, ok := rulesByLanguage[strings.ToLower(language)]
	if !ok {
		rules = JavaRules
	}
	return PatternHydrator{Rules: rules}
}

func (PatternHydrator) Name() string { return StrategyPattern }

// Describe implements Hydrator.
func (h PatternHydrator) Describe(n Node) string {
	text := n.Text()
	for _, r := range h.Rules {
		if r.Pattern.MatchString(text) {
			return r.Label + ": " + text
		}
	}
	return "Currently unrecognized structure: " + text
}

// DirectHydrator describes a node by its element's own String form.
type DirectHydrator struct{}

func (DirectHydrator) Name() string { return StrategyDirect }

// Describe implements Hydrator. Failures are logged and reported as
// UnrecognizedLabel.
func (DirectHydrator) Describe(n Node) string {
	s, err := elementString(n)
	if err != nil {
		log.Warn().Err(err).Str("slice", n.Text()).Msg("slice element not renderable")
		return UnrecognizedLabel
	}
	return s
}

var errNoElement = errors.New("no underlying element")

func elementString(n Node) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render element: %v", r)
		}
	}()
	el := n.Element()
	if el == nil {
		return "", errNoElement
	}
	return el.String(), nil
}
