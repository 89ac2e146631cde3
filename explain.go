package mathsolve

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================
// Explanation Composer
// ============================================================

//go:embed rules/explanations.yaml
var explanationsYAML []byte

// AudienceTier selects the narrative register of an explanation.
type AudienceTier string

const (
	TierA        AudienceTier = "tier_a"
	TierB        AudienceTier = "tier_b"
	TierC        AudienceTier = "tier_c"
	TierStandard AudienceTier = "standard"
)

// defaultTemplateKey names the per-tier fallback template.
const defaultTemplateKey = "default"

const answerPlaceholder = "{answer}"

// ParseAudienceTier maps s onto a known tier; anything unrecognized is
// TierStandard.
func ParseAudienceTier(s string) AudienceTier {
	switch t := AudienceTier(strings.ToLower(strings.TrimSpace(s))); t {
	case TierA, TierB, TierC, TierStandard:
		return t
	}
	return TierStandard
}

type explanationTable struct {
	Tiers map[AudienceTier]map[string]string `yaml:"tiers"`
}

// LoadExplanationTemplates parses a YAML template table. Every tier must
// have a default template and the standard tier must be present.
func LoadExplanationTemplates(data []byte) (map[AudienceTier]map[string]string, error) {
	var table explanationTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse explanation templates: %w", err)
	}
	if _, ok := table.Tiers[TierStandard]; !ok {
		return nil, fmt.Errorf("explanation templates: missing %s tier", TierStandard)
	}
	for tier, family := range table.Tiers {
		if _, ok := family[defaultTemplateKey]; !ok {
			return nil, fmt.Errorf("explanation templates: tier %s has no %s template", tier, defaultTemplateKey)
		}
	}
	return table.Tiers, nil
}

var explanationTemplates = func() map[AudienceTier]map[string]string {
	t, err := LoadExplanationTemplates(explanationsYAML)
	if err != nil {
		panic("mathsolve: " + err.Error())
	}
	return t
}()

// ComposeExplanation renders the narrative for a result of the given class
// and answer in the register of tier. Unknown tiers use TierStandard and
// classes without a template use the tier's default.
func ComposeExplanation(class EquationType, answer string, tier AudienceTier) string {
	family, ok := explanationTemplates[tier]
	if !ok {
		family = explanationTemplates[TierStandard]
	}
	tpl, ok := family[string(class)]
	if !ok {
		tpl = family[defaultTemplateKey]
	}
	return strings.ReplaceAll(tpl, answerPlaceholder, answer)
}
