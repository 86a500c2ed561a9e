package espd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func sampleDocument() *Document {
	d := &Document{
		ID:             "doc-1",
		ProcedureTitle: "Road maintenance",
		Authority:      &Party{Name: "City of Ghent"},
		UBLCriteria:    []CriterionDescriptor{{ID: "c-1", TypeCode: "EXCLUSION"}},
		CreatedAt:      time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2021, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	d.ActivateEUExclusionGroundsOnly()
	tax := d.ReadCriterion("paymentTaxes").(*TaxesCriterion)
	tax.Country = "BE"
	tax.Amount = &Amount{Value: 99.5, Currency: "EUR"}
	return d
}

func assertSameCriteria(t *testing.T, want, got *Document) {
	t.Helper()
	require.Len(t, got.Criteria, len(want.Criteria))
	for field, c := range want.Criteria {
		g := got.Criteria[field]
		require.NotNil(t, g, field)
		assert.Equal(t, c.Variant(), g.Variant(), field)
		assert.Equal(t, c.GetExists(), g.GetExists(), field)
	}
	tax := got.Criteria["paymentTaxes"].(*TaxesCriterion)
	assert.Equal(t, "BE", tax.Country)
	assert.Equal(t, 99.5, tax.Amount.Value)
}

func TestCriterionSetJSON(t *testing.T) {
	d := sampleDocument()
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var got Document
	require.NoError(t, json.Unmarshal(b, &got))
	assertSameCriteria(t, d, &got)
	assert.Equal(t, d.UBLCriteria, got.UBLCriteria)
}

func TestCriterionSetJSONRejectsUnknownField(t *testing.T) {
	var s CriterionSet
	err := json.Unmarshal([]byte(`{"bogus":{"exists":true}}`), &s)
	assert.ErrorIs(t, err, ErrUnknownField)

	require.NoError(t, json.Unmarshal([]byte(`{"fraud":null}`), &s))
	assert.Empty(t, s)
}

func TestCriterionSetBSON(t *testing.T) {
	d := sampleDocument()
	b, err := bson.Marshal(d)
	require.NoError(t, err)

	var got Document
	require.NoError(t, bson.Unmarshal(b, &got))
	assertSameCriteria(t, d, &got)
	assert.Equal(t, "City of Ghent", got.Authority.Name)
}

func TestEmptyCriterionSetBSON(t *testing.T) {
	b, err := bson.Marshal(&Document{ID: "empty"})
	require.NoError(t, err)
	var got Document
	require.NoError(t, bson.Unmarshal(b, &got))
	assert.Empty(t, got.Criteria)
	assert.Equal(t, "empty", got.ID)
}
