package mathsolve

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Mistake Detector
// ============================================================

//go:embed rules/mistakes.yaml
var mistakesYAML []byte

// MistakeHit is a misconception warning attached to a result.
type MistakeHit struct {
	ID              string `json:"id"`
	WrongApproach   string `json:"wrong_approach"`
	CorrectApproach string `json:"correct_approach"`
	Tip             string `json:"tip"`
}

// MistakeRule pairs a textual matcher with the warning it produces.
type MistakeRule struct {
	ID              string  `yaml:"id"`
	Match           Matcher `yaml:"match"`
	WrongApproach   string  `yaml:"wrong_approach"`
	CorrectApproach string  `yaml:"correct_approach"`
	Tip             string  `yaml:"tip"`
}

// Matcher is a case-insensitive substring predicate.
type Matcher struct {
	Kind      string     `yaml:"kind"`
	Needles   []string   `yaml:"needles,omitempty"`
	Sequences [][]string `yaml:"sequences,omitempty"`
	Inner     string     `yaml:"inner,omitempty"`
	Operator  string     `yaml:"operator,omitempty"`
}

const (
	MatchContains    = "contains"
	MatchSequence    = "sequence"
	MatchEnclosed    = "enclosed"
	MatchZeroOperand = "zero_operand"
)

func (m Matcher) validate() error {
	switch m.Kind {
	case MatchContains:
		if len(m.Needles) == 0 {
			return fmt.Errorf("%s matcher needs needles", m.Kind)
		}
	case MatchSequence:
		if len(m.Sequences) == 0 {
			return fmt.Errorf("%s matcher needs sequences", m.Kind)
		}
	case MatchEnclosed:
		if len(m.Needles) == 0 || m.Inner == "" {
			return fmt.Errorf("%s matcher needs needles and inner", m.Kind)
		}
	case MatchZeroOperand:
		if m.Operator == "" {
			return fmt.Errorf("%s matcher needs an operator", m.Kind)
		}
	default:
		return fmt.Errorf("unknown matcher kind %q", m.Kind)
	}
	return nil
}

// Matches reports whether text satisfies the matcher.
func (m Matcher) Matches(text string) bool {
	text = strings.ToLower(text)
	switch m.Kind {
	case MatchContains:
		for _, n := range m.Needles {
			if strings.Contains(text, strings.ToLower(n)) {
				return true
			}
		}
	case MatchSequence:
		for _, seq := range m.Sequences {
			if containsInOrder(text, seq) {
				return true
			}
		}
	case MatchEnclosed:
		for _, n := range m.Needles {
			if containsInOrder(text, []string{n, m.Inner, ")"}) {
				return true
			}
		}
	case MatchZeroOperand:
		return hasZeroOperand(text, m.Operator)
	}
	return false
}

// containsInOrder reports whether the needles occur in text in order
// without overlapping.
func containsInOrder(text string, needles []string) bool {
	rest := text
	for _, n := range needles {
		n = strings.ToLower(n)
		i := strings.Index(rest, n)
		if i < 0 {
			return false
		}
		rest = rest[i+len(n):]
	}
	return true
}

// hasZeroOperand finds op followed by a lone 0, such as "/0" but not
// "/0.5" or "/05".
func hasZeroOperand(text, op string) bool {
	for from := 0; ; {
		i := strings.Index(text[from:], op)
		if i < 0 {
			return false
		}
		j := from + i + len(op)
		for j < len(text) && text[j] == ' ' {
			j++
		}
		if j < len(text) && text[j] == '0' {
			k := j + 1
			if k >= len(text) || !(isDigitRune(rune(text[k])) || text[k] == '.') {
				return true
			}
		}
		from += i + len(op)
	}
}

type mistakeTable struct {
	Rules []MistakeRule `yaml:"rules"`
}

// LoadMistakeRules parses a YAML rule table.
func LoadMistakeRules(data []byte) ([]MistakeRule, error) {
	var table mistakeTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse mistake rules: %w", err)
	}
	seen := map[string]bool{}
	for _, r := range table.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("mistake rule without id")
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("duplicate mistake rule %q", r.ID)
		}
		seen[r.ID] = true
		if err := r.Match.validate(); err != nil {
			return nil, fmt.Errorf("mistake rule %q: %w", r.ID, err)
		}
	}
	return table.Rules, nil
}

var defaultMistakeRules = mustLoadMistakeRules(mistakesYAML)

func mustLoadMistakeRules(data []byte) []MistakeRule {
	rules, err := LoadMistakeRules(data)
	if err != nil {
		panic("mathsolve: " + err.Error())
	}
	return rules
}

// MistakeRules returns a copy of the built-in rule table.
func MistakeRules() []MistakeRule { return append([]MistakeRule(nil), defaultMistakeRules...) }

// DetectMistakes returns a hit for every built-in rule matching canonical,
// in table order. It never fails and does not need the text to parse.
func DetectMistakes(canonical string) []MistakeHit {
	return detectMistakes(defaultMistakeRules, canonical)
}

func detectMistakes(rules []MistakeRule, canonical string) []MistakeHit {
	hits := []MistakeHit{}
	for _, r := range rules {
		if !r.Match.Matches(canonical) {
			continue
		}
		hits = append(hits, MistakeHit{
			ID:              r.ID,
			WrongApproach:   r.WrongApproach,
			CorrectApproach: r.CorrectApproach,
			Tip:             r.Tip,
		})
	}
	return hits
}
