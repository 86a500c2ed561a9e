package espd

import (
	"encoding/json"
	"fmt"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
	"go.mongodb.org/mongo-driver/bson"
)

// CriterionSet holds the criterion values of a document keyed by symbolic
// field name. A missing key means the criterion is absent.
//
// Encoded form (JSON and BSON) is an object keyed by field name. Decoding
// picks the concrete type from the field's variant, so every stored value
// always has the variant its field declares.
type CriterionSet map[string]Criterion

func (s *CriterionSet) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(CriterionSet, len(raw))
	for field, msg := range raw {
		if string(msg) == "null" {
			continue
		}
		c, err := decodeCriterion(field)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(msg, c); err != nil {
			return fmt.Errorf("decode criterion %q: %w", field, err)
		}
		out[field] = c
	}
	*s = out
	return nil
}

func (s CriterionSet) MarshalBSON() ([]byte, error) {
	m := map[string]Criterion(s)
	if m == nil {
		m = map[string]Criterion{}
	}
	return bson.Marshal(m)
}

func (s *CriterionSet) UnmarshalBSON(data []byte) error {
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}
	out := make(CriterionSet, len(elems))
	for _, el := range elems {
		field := el.Key()
		val := el.Value()
		if val.Type == bson.TypeNull {
			continue
		}
		c, err := decodeCriterion(field)
		if err != nil {
			return err
		}
		if err := val.Unmarshal(c); err != nil {
			return fmt.Errorf("decode criterion %q: %w", field, err)
		}
		out[field] = c
	}
	*s = out
	return nil
}

func decodeCriterion(field string) (Criterion, error) {
	meta, ok := criteria.ByField(field)
	if !ok {
		return nil, &AccessError{Op: "decode", Field: field, Err: ErrUnknownField}
	}
	return NewCriterion(meta.Variant)
}
