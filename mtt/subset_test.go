package mtt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miwamasa/xslt-validation/mtt"
)

const personToIndividualXSLT = `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform" version="1.0">
  <xsl:template match="Person">
    <xsl:if test="Age &gt;= 0">
      <Individual fullname="{Name}" years="{Age}"/>
    </xsl:if>
  </xsl:template>
</xsl:stylesheet>`

const copyOfXSLT = `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform" version="1.0">
  <xsl:template match="Root">
    <xsl:copy-of select="."/>
  </xsl:template>
</xsl:stylesheet>`

func TestCheckSubsetAccepted(t *testing.T) {
	t.Parallel()

	result := mtt.CheckSubset([]byte(personToIndividualXSLT))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestCheckSubsetDisallowedElement(t *testing.T) {
	t.Parallel()

	result := mtt.CheckSubset([]byte(copyOfXSLT))
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Disallowed XSLT element 'copy-of'")
}

func TestCheckSubsetMalformedXML(t *testing.T) {
	t.Parallel()

	result := mtt.CheckSubset([]byte("<not xml"))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "XML Parse Error")
}

func TestCheckSubsetMissingAttributes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		xslt    string
		wantErr string
	}{
		"template without match": {
			xslt: `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
				<xsl:template><xsl:value-of select="."/></xsl:template>
			</xsl:stylesheet>`,
			wantErr: "Template without 'match' attribute",
		},
		"for-each without select": {
			xslt: `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
				<xsl:template match="/"><xsl:for-each><xsl:value-of select="."/></xsl:for-each></xsl:template>
			</xsl:stylesheet>`,
			wantErr: "'for-each' without 'select' attribute",
		},
		"choose without when": {
			xslt: `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform">
				<xsl:template match="/"><xsl:choose><xsl:otherwise><xsl:text>x</xsl:text></xsl:otherwise></xsl:choose></xsl:template>
			</xsl:stylesheet>`,
			wantErr: "'choose' without 'when'",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := mtt.CheckSubset([]byte(tc.xslt))
			assert.False(t, result.Valid)
			assert.Contains(t, result.Errors[0], tc.wantErr)
		})
	}
}
