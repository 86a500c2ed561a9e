package espd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
)

// SweepReport describes one bulk activation: how many fields were written
// and which ones failed. Failures were already logged and observed.
type SweepReport struct {
	Touched  int     `json:"touched"`
	Failures []error `json:"-"`
}

// Err joins the failures, or returns nil when the sweep was clean.
func (r SweepReport) Err() error { return errors.Join(r.Failures...) }

// Summary bundles the derived predicates of a document.
type Summary struct {
	AtLeastOneSelectionCriterionSelected  bool `json:"atLeastOneSelectionCriterionSelected"`
	AllSelectionCriteriaSelectedExceptAll bool `json:"allSelectionCriteriaSelectedExceptAll"`
	HasProcurementInformation             bool `json:"hasProcurementInformation"`
}

func (d *Document) Summary() Summary {
	return Summary{
		AtLeastOneSelectionCriterionSelected:  d.HasAnySelectionCriterionSelected(),
		AllSelectionCriteriaSelectedExceptAll: d.HasAllSelectionCriteriaSelectedExceptAggregate(),
		HasProcurementInformation:             d.HasProcurementInformation(),
	}
}

// HasAnySelectionCriterionSelected reports whether at least one selection
// criterion is present with its exists flag set.
func (d *Document) HasAnySelectionCriterionSelected() bool {
	return d.anySelected(criteria.Selection)
}

// HasAllSelectionCriteriaSelectedExceptAggregate reports whether every
// selection criterion other than the "all criteria satisfied" flag is present
// and selected. It is true for an empty set.
func (d *Document) HasAllSelectionCriteriaSelectedExceptAggregate() bool {
	return d.allSelectedExcept(criteria.Selection, criteria.AllSelectionCriteriaSatisfied.ID)
}

func (d *Document) anySelected(set []criteria.Criterion) bool {
	for _, c := range set {
		if v := d.ReadCriterion(c.Field); v != nil && v.GetExists() {
			return true
		}
	}
	return false
}

func (d *Document) allSelectedExcept(set []criteria.Criterion, skipID string) bool {
	for _, c := range set {
		if c.ID == skipID {
			continue
		}
		v := d.ReadCriterion(c.Field)
		if v == nil || !v.GetExists() {
			return false
		}
	}
	return true
}

// ActivateAllExclusionCriteria replaces every exclusion criterion with a fresh
// value whose exists flag is set. Prior answers are discarded.
func (d *Document) ActivateAllExclusionCriteria() SweepReport {
	return d.activate(criteria.Exclusion, always)
}

// ActivateAllSelectionCriteria does the same for every selection criterion.
func (d *Document) ActivateAllSelectionCriteria() SweepReport {
	return d.activate(criteria.Selection, always)
}

// ActivateEUExclusionGroundsOnly is the contracting authority default: every
// exclusion ground is selected except the purely national ones, which need
// country data the authority supplies separately.
func (d *Document) ActivateEUExclusionGroundsOnly() SweepReport {
	return d.activate(criteria.Exclusion, func(c criteria.Criterion) bool {
		return c.ID != criteria.NationalExclusionGrounds.ID
	})
}

func always(criteria.Criterion) bool { return true }

func (d *Document) activate(set []criteria.Criterion, exists func(criteria.Criterion) bool) SweepReport {
	var rep SweepReport
	for _, c := range set {
		if err := d.renew(c.Field, exists(c)); err != nil {
			reportFailure(err)
			rep.Failures = append(rep.Failures, err)
			continue
		}
		rep.Touched++
	}
	return rep
}

func (d *Document) renew(field string, exists bool) error {
	v, err := CriterionVariant(field)
	if err != nil {
		return err
	}
	c, err := NewCriterion(v)
	if err != nil {
		return err
	}
	c.SetExists(exists)
	return d.StoreCriterion(field, c)
}

// HasProcurementInformation reports whether the document identifies the
// procurement at all: a publication reference, procedure details or a named
// contracting authority.
func (d *Document) HasProcurementInformation() bool {
	return d.hasPublicationInformation() || d.hasProcedureInformation() || d.hasProcurerIdentity()
}

func (d *Document) hasPublicationInformation() bool {
	return notBlank(d.OJSNumber) || notBlank(d.TEDURL)
}

func (d *Document) hasProcedureInformation() bool {
	return notBlank(d.ProcedureTitle) || notBlank(d.ProcedureShortDesc) || notBlank(d.FileRefByCA)
}

func (d *Document) hasProcurerIdentity() bool {
	return d.Authority != nil && notBlank(d.Authority.Name)
}

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

// Sweep names a bulk activation.
type Sweep string

const (
	SweepExclusion   Sweep = "exclusion"
	SweepExclusionEU Sweep = "exclusion-eu"
	SweepSelection   Sweep = "selection"
)

// ParseSweep converts a raw string to a Sweep.
func ParseSweep(s string) (Sweep, error) {
	switch sw := Sweep(s); sw {
	case SweepExclusion, SweepExclusionEU, SweepSelection:
		return sw, nil
	}
	return "", fmt.Errorf("unknown sweep %q", s)
}

// Apply runs the named sweep.
func (d *Document) Apply(s Sweep) (SweepReport, error) {
	switch s {
	case SweepExclusion:
		return d.ActivateAllExclusionCriteria(), nil
	case SweepExclusionEU:
		return d.ActivateEUExclusionGroundsOnly(), nil
	case SweepSelection:
		return d.ActivateAllSelectionCriteria(), nil
	}
	return SweepReport{}, fmt.Errorf("unknown sweep %q", string(s))
}
