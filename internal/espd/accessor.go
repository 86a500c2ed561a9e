package espd

import (
	"errors"
	"reflect"
	"sync"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
	"github.com/espd/espd-web/backend/go-services/pkg/logger"
	"github.com/espd/espd-web/backend/go-services/pkg/metrics"
)

var log = logger.For("espd")

// FailureObserver receives every criterion access failure that the
// fail-soft accessors swallowed.
type FailureObserver func(err error)

var (
	observerMu sync.RWMutex
	observer   FailureObserver
)

// SetFailureObserver installs fn as the failure observer and returns a
// function restoring the previous one. A nil fn disables observation.
func SetFailureObserver(fn FailureObserver) (restore func()) {
	observerMu.Lock()
	prev := observer
	observer = fn
	observerMu.Unlock()
	return func() {
		observerMu.Lock()
		observer = prev
		observerMu.Unlock()
	}
}

func reportFailure(err error) {
	log.Errorf("%v", err)
	metrics.CriterionAccessFailures.WithLabelValues(failureKind(err)).Inc()
	observerMu.RLock()
	fn := observer
	observerMu.RUnlock()
	if fn != nil {
		fn(err)
	}
}

func failureKind(err error) string {
	var ie *InstantiationError
	if errors.As(err, &ie) {
		return "instantiation"
	}
	return "access"
}

// CriterionVariant resolves the declared variant of a criterion field.
func CriterionVariant(field string) (criteria.Variant, error) {
	meta, ok := criteria.ByField(field)
	if !ok {
		return "", &AccessError{Op: "resolve", Field: field, Err: ErrUnknownField}
	}
	return meta.Variant, nil
}

// LookupCriterion returns the value of the named criterion field, or nil when
// the field is unset.
func (d *Document) LookupCriterion(field string) (Criterion, error) {
	if _, err := CriterionVariant(field); err != nil {
		return nil, &AccessError{Op: "read", Field: field, Err: ErrUnknownField}
	}
	return d.Criteria[field], nil
}

// isNil reports a nil interface or a nil pointer wrapped in one.
func isNil(c Criterion) bool {
	if c == nil {
		return true
	}
	rv := reflect.ValueOf(c)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// StoreCriterion assigns c to the named criterion field. A nil c, including
// a nil pointer of a variant type, clears it.
func (d *Document) StoreCriterion(field string, c Criterion) error {
	v, err := CriterionVariant(field)
	if err != nil {
		return &AccessError{Op: "write", Field: field, Err: ErrUnknownField}
	}
	if isNil(c) {
		delete(d.Criteria, field)
		return nil
	}
	if c.Variant() != v {
		return &AccessError{Op: "write", Field: field, Err: ErrVariantMismatch}
	}
	if d.Criteria == nil {
		d.Criteria = CriterionSet{}
	}
	d.Criteria[field] = c
	return nil
}

// ReadCriterion is the fail-soft form of LookupCriterion: failures are logged
// and observed, and nil is returned.
func (d *Document) ReadCriterion(field string) Criterion {
	c, err := d.LookupCriterion(field)
	if err != nil {
		reportFailure(err)
		return nil
	}
	return c
}

// WriteCriterion is the fail-soft form of StoreCriterion: failures are logged
// and observed, and the document is left unchanged.
func (d *Document) WriteCriterion(field string, c Criterion) {
	if err := d.StoreCriterion(field, c); err != nil {
		reportFailure(err)
	}
}
