package preimage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miwamasa/xslt-validation/mtt"
	"github.com/miwamasa/xslt-validation/preimage"
	"github.com/miwamasa/xslt-validation/treegrammar"
)

func targetGrammar() *treegrammar.TreeGrammar {
	return &treegrammar.TreeGrammar{
		Root: "Individual",
		Attributes: map[string][]treegrammar.Attribute{
			"Individual": {{Name: "fullname", Type: "string", Required: true}},
		},
		TypeConstraints: map[string]*treegrammar.TypeConstraint{},
	}
}

func TestComputeAcceptsKnownRootElement(t *testing.T) {
	t.Parallel()

	target := targetGrammar()
	m := &mtt.MTT{
		Rules: []*mtt.Rule{
			{
				State:      "q_Person_default",
				LHSPattern: "Person(children)",
				RHSTerm: &mtt.Sequence{Children: []mtt.OutputTerm{
					&mtt.If{Test: "Age >= 0", Then: &mtt.Element{Name: "Individual"}},
				}},
			},
		},
	}

	result := preimage.Compute(target, m)
	require.Len(t, result.AcceptedPatterns, 1)
	assert.Empty(t, result.RejectedPatterns)

	pattern := result.AcceptedPatterns[0]
	assert.Equal(t, "Person", pattern.Element)
	assert.Equal(t, []string{"*"}, pattern.Children)
	assert.Contains(t, pattern.Constraints, "Age >= 0")
	assert.Equal(t, "Person(*) where Age >= 0", pattern.String())

	assert.Equal(t, 1, result.Statistics.TotalRules)
	assert.Equal(t, 1, result.Statistics.AcceptedPatterns)
	assert.Equal(t, 0, result.Statistics.RejectedPatterns)
	assert.Equal(t, 1.0, result.Statistics.Coverage)
}

func TestComputeRejectsUnknownTargetElement(t *testing.T) {
	t.Parallel()

	target := targetGrammar()
	m := &mtt.MTT{
		Rules: []*mtt.Rule{
			{State: "q_Root_default", LHSPattern: "Root(children)", RHSTerm: &mtt.Element{Name: "Alien"}},
		},
	}

	result := preimage.Compute(target, m)
	assert.Empty(t, result.AcceptedPatterns)
	require.Len(t, result.RejectedPatterns, 1)
	assert.Contains(t, result.RejectedPatterns[0].Reason, "not found in target grammar")
}

func TestComputeStatisticsIdentity(t *testing.T) {
	t.Parallel()

	target := targetGrammar()
	m := &mtt.MTT{
		Rules: []*mtt.Rule{
			{LHSPattern: "Person(children)", RHSTerm: &mtt.Element{Name: "Individual"}},
			{LHSPattern: "Other(children)", RHSTerm: &mtt.Element{Name: "Alien"}},
		},
	}

	result := preimage.Compute(target, m)
	assert.Equal(t, result.Statistics.TotalRules, result.Statistics.AcceptedPatterns+result.Statistics.RejectedPatterns)
}

func TestComputeEmptyMTT(t *testing.T) {
	t.Parallel()

	result := preimage.Compute(targetGrammar(), &mtt.MTT{})
	assert.Equal(t, 0, result.Statistics.TotalRules)
	assert.Equal(t, 0.0, result.Statistics.Coverage)
}
