package mtt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miwamasa/xslt-validation/mtt"
)

func TestCompilePersonTemplate(t *testing.T) {
	t.Parallel()

	m, err := mtt.Compile([]byte(personToIndividualXSLT))
	require.NoError(t, err)

	assert.Equal(t, mtt.InitialState, m.InitialState)
	require.Len(t, m.Rules, 1)

	rule := m.Rules[0]
	assert.Equal(t, "q_Person_default", rule.State)
	assert.Equal(t, "Person(children)", rule.LHSPattern)

	root := mtt.ExtractRootElement(rule.RHSTerm)
	assert.Equal(t, "Individual", root)

	guards := mtt.CollectGuards(rule.RHSTerm)
	assert.Contains(t, guards, "Age >= 0")
}

func TestCompileMatchPatterns(t *testing.T) {
	t.Parallel()

	xslt := `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
		<xsl:template match="/"><Root/></xsl:template>
		<xsl:template match="/Root/Item"><Out/></xsl:template>
		<xsl:template match="Item"><Out/></xsl:template>
	</xsl:stylesheet>`

	m, err := mtt.Compile([]byte(xslt))
	require.NoError(t, err)
	require.Len(t, m.Rules, 3)

	assert.Equal(t, "root(children)", m.Rules[0].LHSPattern)
	assert.Equal(t, "q___default", m.Rules[0].State)

	assert.Equal(t, "Item(children)", m.Rules[1].LHSPattern)
	assert.Equal(t, "Item(children)", m.Rules[2].LHSPattern)
}

func TestCompileForEachAuxiliaryState(t *testing.T) {
	t.Parallel()

	xslt := `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
		<xsl:template match="Items">
			<xsl:for-each select="Item"><xsl:value-of select="."/></xsl:for-each>
		</xsl:template>
	</xsl:stylesheet>`

	m, err := mtt.Compile([]byte(xslt))
	require.NoError(t, err)
	require.Len(t, m.Rules, 1)

	seq, ok := m.Rules[0].RHSTerm.(*mtt.Sequence)
	require.True(t, ok)
	require.Len(t, seq.Children, 1)

	forEach, ok := seq.Children[0].(*mtt.ForEach)
	require.True(t, ok)
	assert.Equal(t, "Item", forEach.Select)
	assert.Contains(t, m.States, forEach.ListState)
}

func TestCompileInvalidXSLT(t *testing.T) {
	t.Parallel()

	_, err := mtt.Compile([]byte("<not xml"))
	require.Error(t, err)
}
