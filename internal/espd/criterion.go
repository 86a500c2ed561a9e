package espd

import (
	"time"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
)

// Criterion is the value stored for one criterion field. Every variant carries
// the exists flag that marks the criterion as selected in the questionnaire.
type Criterion interface {
	Variant() criteria.Variant
	GetExists() bool
	SetExists(bool)
}

// Base holds the data shared by every criterion variant.
type Base struct {
	Exists bool  `json:"exists" bson:"exists"`
	Answer *bool `json:"answer,omitempty" bson:"answer,omitempty"`
}

func (b *Base) GetExists() bool  { return b.Exists }
func (b *Base) SetExists(v bool) { b.Exists = v }

// AvailableElectronically points at evidence the authority can fetch itself.
type AvailableElectronically struct {
	Answer bool   `json:"answer" bson:"answer"`
	URL    string `json:"url,omitempty" bson:"url,omitempty"`
	Code   string `json:"code,omitempty" bson:"code,omitempty"`
	Issuer string `json:"issuer,omitempty" bson:"issuer,omitempty"`
}

// SelfCleaning describes the measures taken to demonstrate reliability.
type SelfCleaning struct {
	Answer      bool   `json:"answer" bson:"answer"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Period is a length of exclusion.
type Period struct {
	Years  int `json:"years,omitempty" bson:"years,omitempty"`
	Months int `json:"months,omitempty" bson:"months,omitempty"`
	Days   int `json:"days,omitempty" bson:"days,omitempty"`
}

// Amount is a monetary value.
type Amount struct {
	Value    float64 `json:"value" bson:"value"`
	Currency string  `json:"currency,omitempty" bson:"currency,omitempty"`
}

// YearAmount is a turnover figure for one financial year.
type YearAmount struct {
	Year   int    `json:"year" bson:"year"`
	Amount Amount `json:"amount" bson:"amount"`
}

// Reference is a previous contract cited as proof of technical ability.
type Reference struct {
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Amount      *Amount    `json:"amount,omitempty" bson:"amount,omitempty"`
	Date        *time.Time `json:"date,omitempty" bson:"date,omitempty"`
	Recipients  string     `json:"recipients,omitempty" bson:"recipients,omitempty"`
}

type OtherCriterion struct {
	Base        `bson:",inline"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Reference   string `json:"reference,omitempty" bson:"reference,omitempty"`
}

func (*OtherCriterion) Variant() criteria.Variant { return criteria.VariantOther }

type CriminalConvictionsCriterion struct {
	Base                    `bson:",inline"`
	DateOfConviction        *time.Time               `json:"dateOfConviction,omitempty" bson:"dateOfConviction,omitempty"`
	Reason                  string                   `json:"reason,omitempty" bson:"reason,omitempty"`
	Convicted               string                   `json:"convicted,omitempty" bson:"convicted,omitempty"`
	PeriodLength            *Period                  `json:"periodLength,omitempty" bson:"periodLength,omitempty"`
	SelfCleaning            *SelfCleaning            `json:"selfCleaning,omitempty" bson:"selfCleaning,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*CriminalConvictionsCriterion) Variant() criteria.Variant {
	return criteria.VariantCriminalConvictions
}

type TaxesCriterion struct {
	Base                    `bson:",inline"`
	Country                 string                   `json:"country,omitempty" bson:"country,omitempty"`
	Amount                  *Amount                  `json:"amount,omitempty" bson:"amount,omitempty"`
	BreachEstablished       string                   `json:"breachEstablished,omitempty" bson:"breachEstablished,omitempty"`
	DecisionFinalAndBinding bool                     `json:"decisionFinalAndBinding,omitempty" bson:"decisionFinalAndBinding,omitempty"`
	DateOfConviction        *time.Time               `json:"dateOfConviction,omitempty" bson:"dateOfConviction,omitempty"`
	PeriodLength            *Period                  `json:"periodLength,omitempty" bson:"periodLength,omitempty"`
	ObligationsFulfilled    string                   `json:"obligationsFulfilled,omitempty" bson:"obligationsFulfilled,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*TaxesCriterion) Variant() criteria.Variant { return criteria.VariantTaxes }

type LawCriterion struct {
	Base         `bson:",inline"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
	SelfCleaning *SelfCleaning `json:"selfCleaning,omitempty" bson:"selfCleaning,omitempty"`
}

func (*LawCriterion) Variant() criteria.Variant { return criteria.VariantLaw }

type BankruptcyCriterion struct {
	Base                    `bson:",inline"`
	Description             string                   `json:"description,omitempty" bson:"description,omitempty"`
	Reason                  string                   `json:"reason,omitempty" bson:"reason,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*BankruptcyCriterion) Variant() criteria.Variant { return criteria.VariantBankruptcy }

type MisconductDistortionCriterion struct {
	Base         `bson:",inline"`
	Description  string        `json:"description,omitempty" bson:"description,omitempty"`
	SelfCleaning *SelfCleaning `json:"selfCleaning,omitempty" bson:"selfCleaning,omitempty"`
}

func (*MisconductDistortionCriterion) Variant() criteria.Variant {
	return criteria.VariantMisconductDistortion
}

type ConflictInterestCriterion struct {
	Base        `bson:",inline"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

func (*ConflictInterestCriterion) Variant() criteria.Variant {
	return criteria.VariantConflictInterest
}

// PurelyNationalGrounds covers exclusion grounds defined by national law only.
type PurelyNationalGrounds struct {
	Base                    `bson:",inline"`
	Description             string                   `json:"description,omitempty" bson:"description,omitempty"`
	SelfCleaning            *SelfCleaning            `json:"selfCleaning,omitempty" bson:"selfCleaning,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*PurelyNationalGrounds) Variant() criteria.Variant { return criteria.VariantPurelyNational }

// SatisfiesAllCriterion is the single "meets all selection criteria" answer.
type SatisfiesAllCriterion struct {
	Base `bson:",inline"`
}

func (*SatisfiesAllCriterion) Variant() criteria.Variant { return criteria.VariantSatisfiesAll }

type SuitabilityCriterion struct {
	Base                    `bson:",inline"`
	Description             string                   `json:"description,omitempty" bson:"description,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*SuitabilityCriterion) Variant() criteria.Variant { return criteria.VariantSuitability }

type EconomicFinancialStandingCriterion struct {
	Base                    `bson:",inline"`
	Description             string                   `json:"description,omitempty" bson:"description,omitempty"`
	Years                   []YearAmount             `json:"years,omitempty" bson:"years,omitempty"`
	Ratio                   *float64                 `json:"ratio,omitempty" bson:"ratio,omitempty"`
	Amount                  *Amount                  `json:"amount,omitempty" bson:"amount,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*EconomicFinancialStandingCriterion) Variant() criteria.Variant {
	return criteria.VariantEconomicFinancial
}

type TechnicalProfessionalCriterion struct {
	Base                    `bson:",inline"`
	Description             string                   `json:"description,omitempty" bson:"description,omitempty"`
	References              []Reference              `json:"references,omitempty" bson:"references,omitempty"`
	Percentage              *float64                 `json:"percentage,omitempty" bson:"percentage,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*TechnicalProfessionalCriterion) Variant() criteria.Variant {
	return criteria.VariantTechnicalProfessional
}

type QualityAssuranceCriterion struct {
	Base                    `bson:",inline"`
	Description             string                   `json:"description,omitempty" bson:"description,omitempty"`
	AvailableElectronically *AvailableElectronically `json:"availableElectronically,omitempty" bson:"availableElectronically,omitempty"`
}

func (*QualityAssuranceCriterion) Variant() criteria.Variant {
	return criteria.VariantQualityAssurance
}

// factories builds a fresh default value per variant.
var factories = map[criteria.Variant]func() Criterion{
	criteria.VariantOther:                 func() Criterion { return &OtherCriterion{} },
	criteria.VariantCriminalConvictions:   func() Criterion { return &CriminalConvictionsCriterion{} },
	criteria.VariantTaxes:                 func() Criterion { return &TaxesCriterion{} },
	criteria.VariantLaw:                   func() Criterion { return &LawCriterion{} },
	criteria.VariantBankruptcy:            func() Criterion { return &BankruptcyCriterion{} },
	criteria.VariantMisconductDistortion:  func() Criterion { return &MisconductDistortionCriterion{} },
	criteria.VariantConflictInterest:      func() Criterion { return &ConflictInterestCriterion{} },
	criteria.VariantPurelyNational:        func() Criterion { return &PurelyNationalGrounds{} },
	criteria.VariantSatisfiesAll:          func() Criterion { return &SatisfiesAllCriterion{} },
	criteria.VariantSuitability:           func() Criterion { return &SuitabilityCriterion{} },
	criteria.VariantEconomicFinancial:     func() Criterion { return &EconomicFinancialStandingCriterion{} },
	criteria.VariantTechnicalProfessional: func() Criterion { return &TechnicalProfessionalCriterion{} },
	criteria.VariantQualityAssurance:      func() Criterion { return &QualityAssuranceCriterion{} },
}

// NewCriterion returns a zero-valued criterion of the given variant.
func NewCriterion(v criteria.Variant) (Criterion, error) {
	f, ok := factories[v]
	if !ok {
		return nil, &InstantiationError{Variant: v}
	}
	return f(), nil
}
