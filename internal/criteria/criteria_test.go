package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelsBelongToTheirSets(t *testing.T) {
	assert.Contains(t, Exclusion, NationalExclusionGrounds)
	assert.Equal(t, AllSelectionCriteriaSatisfied, Selection[0])
}

func TestLookups(t *testing.T) {
	c, ok := ByField("purelyNationalGrounds")
	require.True(t, ok)
	assert.Equal(t, NationalExclusionGrounds, c)
	assert.Equal(t, VariantPurelyNational, c.Variant)

	c, ok = ByID(AllSelectionCriteriaSatisfied.ID)
	require.True(t, ok)
	assert.Equal(t, "selectionSatisfiesAll", c.Field)

	_, ok = ByField("doesNotExist")
	assert.False(t, ok)
}

func TestAllCoversEverySetOnce(t *testing.T) {
	all := All()
	require.Len(t, all, len(Exclusion)+len(Selection)+len(Other))
	seen := map[string]bool{}
	for _, c := range all {
		assert.False(t, seen[c.Field], "duplicate field %s", c.Field)
		seen[c.Field] = true
		_, err := ParseVariant(string(c.Variant))
		assert.NoError(t, err, c.Field)
	}
}

func TestFamilies(t *testing.T) {
	for _, c := range Exclusion {
		assert.True(t, c.IsExclusion(), c.Field)
	}
	for _, c := range Selection {
		assert.False(t, c.IsExclusion(), c.Field)
	}
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant("taxes")
	require.NoError(t, err)
	assert.Equal(t, VariantTaxes, v)

	_, err = ParseVariant("nope")
	assert.Error(t, err)
	assert.Len(t, Variants(), 13)
}
