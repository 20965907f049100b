package treegrammar_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miwamasa/xslt-validation/treegrammar"
)

const personXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="Person">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="Name" type="xs:string"/>
        <xs:element name="Age" type="xs:integer"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

const individualXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="Individual">
    <xs:complexType>
      <xs:attribute name="fullname" use="required">
        <xs:simpleType>
          <xs:restriction base="xs:string"/>
        </xs:simpleType>
      </xs:attribute>
      <xs:attribute name="years" use="required">
        <xs:simpleType>
          <xs:restriction base="xs:integer">
            <xs:minInclusive value="0"/>
          </xs:restriction>
        </xs:simpleType>
      </xs:attribute>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func TestParsePersonSchema(t *testing.T) {
	t.Parallel()

	g, err := treegrammar.Parse(strings.NewReader(personXSD))
	require.NoError(t, err)

	assert.Equal(t, "Person", g.Root)

	person := g.ProductionsByLHS("Person")
	require.Len(t, person, 1)
	assert.Equal(t, []string{"Name", "Age"}, person[0].RHS)
	assert.Equal(t, treegrammar.KindSequence, person[0].Kind)
	assert.Equal(t, treegrammar.Cardinality{Min: 1, Max: 1}, person[0].Cardinality)

	name := g.ProductionsByLHS("Name")
	require.Len(t, name, 1)
	assert.True(t, name[0].IsLeaf())
	assert.Equal(t, "string", g.TypeConstraints["Name"].BaseType)
	assert.Equal(t, "integer", g.TypeConstraints["Age"].BaseType)
}

func TestParseIndividualSchema(t *testing.T) {
	t.Parallel()

	g, err := treegrammar.Parse(strings.NewReader(individualXSD))
	require.NoError(t, err)

	assert.Equal(t, "Individual", g.Root)
	assert.True(t, g.HasElement("Individual"))

	attrs := g.Attributes["Individual"]
	require.Len(t, attrs, 2)
	assert.Equal(t, "fullname", attrs[0].Name)
	assert.True(t, attrs[0].Required)
	assert.Equal(t, "years", attrs[1].Name)
	assert.Equal(t, "integer", g.TypeConstraints["years"].BaseType)
	assert.Equal(t, "0", g.TypeConstraints["years"].Restrictions["minInclusive"])
}

func TestParseMalformedSchema(t *testing.T) {
	t.Parallel()

	_, err := treegrammar.Parse(strings.NewReader("<not xml"))
	require.Error(t, err)
}

func TestTypeConstraintCompatible(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src, tgt *treegrammar.TypeConstraint
		want     bool
	}{
		"identical": {
			src:  &treegrammar.TypeConstraint{BaseType: "string"},
			tgt:  &treegrammar.TypeConstraint{BaseType: "string"},
			want: true,
		},
		"numeric widening": {
			src:  &treegrammar.TypeConstraint{BaseType: "integer"},
			tgt:  &treegrammar.TypeConstraint{BaseType: "decimal"},
			want: true,
		},
		"string widening": {
			src:  &treegrammar.TypeConstraint{BaseType: "string"},
			tgt:  &treegrammar.TypeConstraint{BaseType: "token"},
			want: true,
		},
		"incompatible": {
			src:  &treegrammar.TypeConstraint{BaseType: "string"},
			tgt:  &treegrammar.TypeConstraint{BaseType: "boolean"},
			want: false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.tgt.Compatible(tc.src))
		})
	}
}
