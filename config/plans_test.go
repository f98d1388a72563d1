package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlanFallsBackToFree(t *testing.T) {
	assert.Equal(t, Plans[PlanPro], GetPlan("pro"))
	assert.Equal(t, Plans[PlanFree], GetPlan("enterprise"))
	assert.Equal(t, Plans[PlanFree], GetPlan(""))
}

func TestPlanLimitsAreOrdered(t *testing.T) {
	// Each tier strictly dominates the one below it.
	order := []string{PlanGuest, PlanFree, PlanPro, PlanPremium}
	for i := 1; i < len(order); i++ {
		lower, higher := Plans[order[i-1]], Plans[order[i]]
		assert.Greater(t, higher.CharLimit, lower.CharLimit)
		assert.Greater(t, higher.RequestsPerDay, lower.RequestsPerDay)
		assert.GreaterOrEqual(t, higher.MaxDocumentSize, lower.MaxDocumentSize)
	}
	assert.Zero(t, Plans[PlanGuest].MaxDocumentSize)
}

func TestLanguageCatalog(t *testing.T) {
	assert.True(t, IsLanguageSupported("en"))
	assert.True(t, IsLanguageSupported("zh"))
	assert.False(t, IsLanguageSupported("xx"))

	assert.Equal(t, "Spanish", LanguageName("es"))
	// Unknown codes pass through so the LLM prompt still gets something.
	assert.Equal(t, "xx", LanguageName("xx"))
}
