package mathsolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/mathsolve"
)

// ============================================================
// Explanation Composer
// ============================================================

func TestParseAudienceTier(t *testing.T) {
	assert.Equal(t, mathsolve.TierA, mathsolve.ParseAudienceTier("tier_a"))
	assert.Equal(t, mathsolve.TierB, mathsolve.ParseAudienceTier(" Tier_B "))
	assert.Equal(t, mathsolve.TierC, mathsolve.ParseAudienceTier("TIER_C"))
	assert.Equal(t, mathsolve.TierStandard, mathsolve.ParseAudienceTier(""))
	assert.Equal(t, mathsolve.TierStandard, mathsolve.ParseAudienceTier("grade 12"))
}

func TestComposeExplanation_EveryTierAndClass(t *testing.T) {
	classes := []mathsolve.EquationType{
		mathsolve.TypeVerification, mathsolve.TypeLinear, mathsolve.TypeQuadratic,
		mathsolve.TypePolynomial, mathsolve.TypeArithmetic, mathsolve.TypeAlgebraic,
		mathsolve.TypeNoSolution, mathsolve.TypeComplexOnly, mathsolve.TypeImpossible,
	}
	tiers := []mathsolve.AudienceTier{mathsolve.TierA, mathsolve.TierB, mathsolve.TierC, mathsolve.TierStandard}
	for _, tier := range tiers {
		for _, class := range classes {
			text := mathsolve.ComposeExplanation(class, "ANSWER", tier)
			assert.Contains(t, text, "ANSWER", "%s/%s", tier, class)
			assert.NotContains(t, text, "{answer}", "%s/%s", tier, class)
		}
	}
}

func TestComposeExplanation_FallsBackToTierDefault(t *testing.T) {
	assert.Equal(t,
		"We worked through the problem step by step. The answer is x = 1.",
		mathsolve.ComposeExplanation(mathsolve.TypePolynomial, "x = 1", mathsolve.TierA))
	assert.Equal(t, "Solution: 42", mathsolve.ComposeExplanation("unheard_of", "42", mathsolve.TierStandard))
}

func TestComposeExplanation_UnknownTierUsesStandard(t *testing.T) {
	assert.Equal(t,
		mathsolve.ComposeExplanation(mathsolve.TypeLinear, "x = 2", mathsolve.TierStandard),
		mathsolve.ComposeExplanation(mathsolve.TypeLinear, "x = 2", mathsolve.AudienceTier("expert")))
}

func TestLoadExplanationTemplates(t *testing.T) {
	_, err := mathsolve.LoadExplanationTemplates([]byte(`
tiers:
  tier_a:
    default: "a"
`))
	assert.Error(t, err, "standard tier is required")

	_, err = mathsolve.LoadExplanationTemplates([]byte(`
tiers:
  standard:
    linear: "x"
`))
	assert.Error(t, err, "default template is required")

	tiers, err := mathsolve.LoadExplanationTemplates([]byte(`
tiers:
  standard:
    default: "Solution: {answer}"
`))
	assert.NoError(t, err)
	assert.Equal(t, "Solution: {answer}", tiers[mathsolve.TierStandard]["default"])
}
