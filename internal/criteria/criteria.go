// Package criteria defines the ESPD criterion taxonomy: every criterion the
// document can carry, the symbolic field name it is stored under and the
// variant shape of its value.
//
// The sets are ordered; operations that sweep a set visit members in the
// order they are declared here.
package criteria

import "fmt"

// Family groups criteria by their semantic section in the questionnaire.
type Family string

const (
	FamilyConvictions   Family = "exclusion-convictions"
	FamilyContributions Family = "exclusion-contributions"
	FamilySocial        Family = "exclusion-social"
	FamilyBusiness      Family = "exclusion-business"
	FamilyMisconduct    Family = "exclusion-misconduct"
	FamilyConflict      Family = "exclusion-conflict"
	FamilyNational      Family = "exclusion-national"
	FamilySelectionAll  Family = "selection-all"
	FamilySuitability   Family = "selection-suitability"
	FamilyEconomic      Family = "selection-economic"
	FamilyTechnical     Family = "selection-technical"
	FamilyQuality       Family = "selection-quality"
	FamilyOther         Family = "other"
)

// Variant identifies the concrete value shape stored for a criterion.
type Variant string

const (
	VariantOther                 Variant = "other"
	VariantCriminalConvictions   Variant = "criminal-convictions"
	VariantTaxes                 Variant = "taxes"
	VariantLaw                   Variant = "law"
	VariantBankruptcy            Variant = "bankruptcy"
	VariantMisconductDistortion  Variant = "misconduct-distortion"
	VariantConflictInterest      Variant = "conflict-interest"
	VariantPurelyNational        Variant = "purely-national"
	VariantSatisfiesAll          Variant = "satisfies-all"
	VariantSuitability           Variant = "suitability"
	VariantEconomicFinancial     Variant = "economic-financial"
	VariantTechnicalProfessional Variant = "technical-professional"
	VariantQualityAssurance      Variant = "quality-assurance"
)

var variants = []Variant{
	VariantOther, VariantCriminalConvictions, VariantTaxes, VariantLaw, VariantBankruptcy,
	VariantMisconductDistortion, VariantConflictInterest, VariantPurelyNational,
	VariantSatisfiesAll, VariantSuitability, VariantEconomicFinancial,
	VariantTechnicalProfessional, VariantQualityAssurance,
}

// Variants returns every known variant.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// ParseVariant converts a raw string to a Variant, returning an error for
// unknown values.
func ParseVariant(s string) (Variant, error) {
	for _, v := range variants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown criterion variant %q", s)
}

// Criterion is one member of the taxonomy.
type Criterion struct {
	ID      string  `json:"id" yaml:"id"`
	Field   string  `json:"field" yaml:"field"`
	Family  Family  `json:"family" yaml:"family"`
	Variant Variant `json:"variant" yaml:"variant"`
}

// Sentinels consumed by the aggregate document operations.
var (
	AllSelectionCriteriaSatisfied = Criterion{"CRITERION.SELECTION.ALL_SATISFIED", "selectionSatisfiesAll", FamilySelectionAll, VariantSatisfiesAll}
	NationalExclusionGrounds      = Criterion{"CRITERION.EXCLUSION.NATIONAL.OTHER", "purelyNationalGrounds", FamilyNational, VariantPurelyNational}
)

// Exclusion lists the exclusion grounds.
var Exclusion = []Criterion{
	{"CRITERION.EXCLUSION.CONVICTIONS.PARTICIPATION_IN_CRIMINAL_ORGANISATION", "criminalConvictions", FamilyConvictions, VariantCriminalConvictions},
	{"CRITERION.EXCLUSION.CONVICTIONS.CORRUPTION", "corruption", FamilyConvictions, VariantCriminalConvictions},
	{"CRITERION.EXCLUSION.CONVICTIONS.FRAUD", "fraud", FamilyConvictions, VariantCriminalConvictions},
	{"CRITERION.EXCLUSION.CONVICTIONS.TERRORIST_OFFENCES", "terroristOffences", FamilyConvictions, VariantCriminalConvictions},
	{"CRITERION.EXCLUSION.CONVICTIONS.MONEY_LAUNDERING", "moneyLaundering", FamilyConvictions, VariantCriminalConvictions},
	{"CRITERION.EXCLUSION.CONVICTIONS.CHILD_LABOUR-HUMAN_TRAFFICKING", "childLabour", FamilyConvictions, VariantCriminalConvictions},
	{"CRITERION.EXCLUSION.CONTRIBUTIONS.PAYMENT_OF_TAXES", "paymentTaxes", FamilyContributions, VariantTaxes},
	{"CRITERION.EXCLUSION.CONTRIBUTIONS.PAYMENT_OF_SOCIAL_SECURITY", "paymentSocialSecurity", FamilyContributions, VariantTaxes},
	{"CRITERION.EXCLUSION.SOCIAL.ENVIRONMENTAL_LAW", "breachingObligationsEnvironmental", FamilySocial, VariantLaw},
	{"CRITERION.EXCLUSION.SOCIAL.SOCIAL_LAW", "breachingObligationsSocial", FamilySocial, VariantLaw},
	{"CRITERION.EXCLUSION.SOCIAL.LABOUR_LAW", "breachingObligationsLabour", FamilySocial, VariantLaw},
	{"CRITERION.EXCLUSION.BUSINESS.BANKRUPTCY", "bankruptcy", FamilyBusiness, VariantBankruptcy},
	{"CRITERION.EXCLUSION.BUSINESS.INSOLVENCY", "insolvency", FamilyBusiness, VariantBankruptcy},
	{"CRITERION.EXCLUSION.BUSINESS.CREDITORS_ARRANGEMENT", "arrangementWithCreditors", FamilyBusiness, VariantBankruptcy},
	{"CRITERION.EXCLUSION.BUSINESS.BANKRUPTCY_ANALOGOUS", "analogousSituation", FamilyBusiness, VariantBankruptcy},
	{"CRITERION.EXCLUSION.BUSINESS.LIQUIDATOR_ADMINISTERED", "assetsAdministeredByLiquidator", FamilyBusiness, VariantBankruptcy},
	{"CRITERION.EXCLUSION.BUSINESS.BUSINESS_ACTIVITIES_SUSPENDED", "businessActivitiesSuspended", FamilyBusiness, VariantBankruptcy},
	{"CRITERION.EXCLUSION.MISCONDUCT.MC_PROFESSIONAL", "guiltyGrave", FamilyMisconduct, VariantMisconductDistortion},
	{"CRITERION.EXCLUSION.MISCONDUCT.MARKET_DISTORTION", "agreementsWithOtherEO", FamilyMisconduct, VariantMisconductDistortion},
	{"CRITERION.EXCLUSION.CONFLICT_OF_INTEREST.PROCEDURE_PARTICIPATION", "conflictInterest", FamilyConflict, VariantConflictInterest},
	{"CRITERION.EXCLUSION.CONFLICT_OF_INTEREST.PROCEDURE_PREPARATION", "involvementPreparationProcurement", FamilyConflict, VariantConflictInterest},
	{"CRITERION.EXCLUSION.CONFLICT_OF_INTEREST.EARLY_TERMINATION", "earlyTermination", FamilyConflict, VariantConflictInterest},
	{"CRITERION.EXCLUSION.CONFLICT_OF_INTEREST.MISINTERPRETATION", "guiltyMisinterpretation", FamilyConflict, VariantConflictInterest},
	NationalExclusionGrounds,
}

// Selection lists the selection criteria, starting with the aggregate
// "all criteria satisfied" flag.
var Selection = []Criterion{
	AllSelectionCriteriaSatisfied,
	{"CRITERION.SELECTION.SUITABILITY.PROFESSIONAL_REGISTER_ENROLMENT", "enrolmentProfessionalRegister", FamilySuitability, VariantSuitability},
	{"CRITERION.SELECTION.SUITABILITY.TRADE_REGISTER_ENROLMENT", "enrolmentTradeRegister", FamilySuitability, VariantSuitability},
	{"CRITERION.SELECTION.SUITABILITY.AUTHORISATION", "serviceContractsAuthorisation", FamilySuitability, VariantSuitability},
	{"CRITERION.SELECTION.SUITABILITY.MEMBERSHIP", "serviceContractsMembership", FamilySuitability, VariantSuitability},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.TURNOVER.GENERAL_YEARLY", "generalYearlyTurnover", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.TURNOVER.GENERAL_AVERAGE", "averageYearlyTurnover", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.TURNOVER.SPECIFIC_YEARLY", "specificYearlyTurnover", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.TURNOVER.SPECIFIC_AVERAGE", "specificAverageTurnover", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.TURNOVER.SET_UP", "setupEconomicOperator", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.FINANCIAL_RATIO", "financialRatio", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.RISK_INDEMNITY_INSURANCE", "professionalRiskInsurance", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.ECONOMIC_FINANCIAL_STANDING.OTHER_REQUIREMENTS", "otherEconomicFinancialRequirements", FamilyEconomic, VariantEconomicFinancial},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.REFERENCES.WORKS_PERFORMANCE", "workContractsPerformanceOfWorks", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.REFERENCES.SUPPLIES_DELIVERY_PERFORMANCE", "supplyContractsPerformanceDeliveries", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.REFERENCES.SERVICES_DELIVERY_PERFORMANCE", "serviceContractsPerformanceServices", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.TECHNICAL.TECHNICIANS_FOR_QUALITY_CONTROL", "techniciansTechnicalBodies", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.TECHNICAL.TECHNICIANS_FOR_PUBLIC_WORKS", "workContractsTechnicians", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.TECHNICAL.TECHNICAL_FACILITIES_AND_MEASURES", "technicalFacilitiesMeasures", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.TECHNICAL.STUDY_RESEARCH_FACILITIES", "studyResearchFacilities", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.TECHNICAL.SUPPLY_CHAIN_MANAGEMENT", "supplyChainManagement", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CHECKS.ALLOWANCE_OF_CHECKS", "allowanceOfChecks", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CERTIFICATES.EDUCATIONAL_AND_PROFESSIONAL_QUALIFICATIONS", "educationalProfessionalQualifications", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.MANAGEMENT.ENVIRONMENTAL_MEASURES", "environmentalManagementFeatures", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.MANAGEMENT.NUMBER_OF_MANAGERIAL_STAFF", "numberManagerialStaff", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.MANAGEMENT.AVERAGE_ANNUAL_MANPOWER", "averageAnnualManpower", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.MANAGEMENT.TOOLS_PLANT_TECHNICAL_EQUIPMENT", "toolsPlantTechnicalEquipment", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.MANAGEMENT.SUBCONTRACTING_PROPORTION", "subcontractingProportion", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CERTIFICATES.SUPPLY_CONTRACTS.SAMPLES_DESCRIPTIONS_WITHOUT_CA", "supplyContractsSamplesDescriptionsWithoutCa", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CERTIFICATES.SUPPLY_CONTRACTS.SAMPLES_DESCRIPTIONS_WITH_CA", "supplyContractsSamplesDescriptionsWithCa", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CERTIFICATES.SUPPLY_CONTRACTS.CONFORMITY", "supplyContractsCertificatesQc", FamilyTechnical, VariantTechnicalProfessional},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CERTIFICATES.QUALITY_ASSURANCE.QA_INDEPENDENT_CERTIFICATES", "certificateIndependentBodiesAboutQa", FamilyQuality, VariantQualityAssurance},
	{"CRITERION.SELECTION.TECHNICAL_PROFESSIONAL_ABILITY.CERTIFICATES.ENVIRONMENTAL_MANAGEMENT.ENV_INDEPENDENT_CERTIFICATES", "certificateIndependentBodiesAboutEnvironmental", FamilyQuality, VariantQualityAssurance},
}

// Other lists the award and miscellaneous criteria (reserved procurement,
// pre-qualification, reliance on other entities, subcontracting).
var Other = []Criterion{
	{"CRITERION.OTHER.EO_DATA.SHELTERED_WORKSHOP", "procurementReserved", FamilyOther, VariantOther},
	{"CRITERION.OTHER.EO_DATA.REGISTERED_IN_OFFICIAL_LIST", "eoRegistered", FamilyOther, VariantOther},
	{"CRITERION.OTHER.EO_DATA.TOGETHER_WITH_OTHERS", "eoParticipatingProcurementProcedure", FamilyOther, VariantOther},
	{"CRITERION.OTHER.EO_DATA.RELIES_ON_OTHER_CAPACITIES", "eoReliesCapacities", FamilyOther, VariantOther},
	{"CRITERION.OTHER.EO_DATA.MEETS_THE_OBJECTIVE", "meetsObjective", FamilyOther, VariantOther},
	{"CRITERION.OTHER.EO_DATA.SUBCONTRACTS_WITH_THIRD_PARTIES", "subcontractingThirdParties", FamilyOther, VariantOther},
}

var (
	byField = map[string]Criterion{}
	byID    = map[string]Criterion{}
)

func init() {
	for _, set := range [][]Criterion{Exclusion, Selection, Other} {
		for _, c := range set {
			if _, dup := byField[c.Field]; dup {
				panic("criteria: duplicate field " + c.Field)
			}
			if _, dup := byID[c.ID]; dup {
				panic("criteria: duplicate id " + c.ID)
			}
			byField[c.Field] = c
			byID[c.ID] = c
		}
	}
}

// ByField returns the criterion stored under the given symbolic field name.
func ByField(field string) (Criterion, bool) {
	c, ok := byField[field]
	return c, ok
}

// ByID returns the criterion with the given stable identifier.
func ByID(id string) (Criterion, bool) {
	c, ok := byID[id]
	return c, ok
}

// All returns every criterion: exclusion, then selection, then other.
func All() []Criterion {
	out := make([]Criterion, 0, len(Exclusion)+len(Selection)+len(Other))
	out = append(out, Exclusion...)
	out = append(out, Selection...)
	return append(out, Other...)
}

// IsExclusion reports whether the criterion belongs to an exclusion family.
func (c Criterion) IsExclusion() bool {
	switch c.Family {
	case FamilyConvictions, FamilyContributions, FamilySocial, FamilyBusiness,
		FamilyMisconduct, FamilyConflict, FamilyNational:
		return true
	}
	return false
}
