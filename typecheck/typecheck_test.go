package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miwamasa/xslt-validation/mtt"
	"github.com/miwamasa/xslt-validation/treegrammar"
	"github.com/miwamasa/xslt-validation/typecheck"
)

func sourceAndTarget() (*treegrammar.TreeGrammar, *treegrammar.TreeGrammar) {
	source := &treegrammar.TreeGrammar{
		Root: "Person",
		Productions: []*treegrammar.Production{
			{LHS: "Person", RHS: []string{"Name", "Age"}, Kind: treegrammar.KindSequence, Cardinality: treegrammar.Cardinality{Min: 1, Max: 1}},
			{LHS: "Name", RHS: []string{"string"}, Cardinality: treegrammar.Cardinality{Min: 1, Max: 1}},
			{LHS: "Age", RHS: []string{"integer"}, Cardinality: treegrammar.Cardinality{Min: 1, Max: 1}},
		},
		TypeConstraints: map[string]*treegrammar.TypeConstraint{
			"Name": {BaseType: "string"},
			"Age":  {BaseType: "integer"},
		},
	}
	target := &treegrammar.TreeGrammar{
		Root: "Individual",
		Productions: []*treegrammar.Production{
			{LHS: "Individual", RHS: []string{}, Cardinality: treegrammar.Cardinality{Min: 1, Max: 1}},
		},
		TypeConstraints: map[string]*treegrammar.TypeConstraint{
			"Individual": {BaseType: "string"},
		},
	}
	return source, target
}

func TestValidateRootMappedSucceeds(t *testing.T) {
	t.Parallel()

	source, target := sourceAndTarget()
	m := &mtt.MTT{
		States: []string{"q_Person_default"},
		Rules: []*mtt.Rule{
			{LHSPattern: "Person(children)", RHSTerm: &mtt.Element{Name: "Individual"}},
		},
	}

	result := typecheck.Validate(source, target, m)
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.ProofSteps)
	assert.Equal(t, 3, result.CoverageMatrix.SourceElements)
	assert.Equal(t, 1, result.CoverageMatrix.TargetElements)
}

func TestValidateMissingRootRuleFails(t *testing.T) {
	t.Parallel()

	source, target := sourceAndTarget()
	m := &mtt.MTT{Rules: []*mtt.Rule{
		{LHSPattern: "Other(children)", RHSTerm: &mtt.Element{Name: "Individual"}},
	}}

	result := typecheck.Validate(source, target, m)
	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "No transformation rule for root element 'Person'")
}

func TestValidateWarnsOnRestrictions(t *testing.T) {
	t.Parallel()

	source, target := sourceAndTarget()
	target.TypeConstraints["Individual"] = &treegrammar.TypeConstraint{
		BaseType:     "string",
		Restrictions: map[string]string{"minInclusive": "0"},
	}
	m := &mtt.MTT{Rules: []*mtt.Rule{
		{LHSPattern: "Name(children)", RHSTerm: &mtt.Element{Name: "Individual"}},
		{LHSPattern: "Person(children)", RHSTerm: &mtt.Element{Name: "Individual"}},
	}}

	result := typecheck.Validate(source, target, m)
	found := false
	for _, w := range result.Warnings {
		if w == "Target element 'Individual' has minInclusive=0. Ensure source values satisfy this constraint." {
			found = true
		}
	}
	assert.True(t, found)
}
