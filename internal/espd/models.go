package espd

import (
	"time"
)

// Party identifies the contracting authority.
type Party struct {
	Name               string   `json:"name" bson:"name"`
	RegistrationNumber string   `json:"registrationNumber,omitempty" bson:"registrationNumber,omitempty"`
	VATNumber          string   `json:"vatNumber,omitempty" bson:"vatNumber,omitempty"`
	Website            string   `json:"website,omitempty" bson:"website,omitempty"`
	Address            *Address `json:"address,omitempty" bson:"address,omitempty"`
	ContactName        string   `json:"contactName,omitempty" bson:"contactName,omitempty"`
	ContactEmail       string   `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone       string   `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
}

// EconomicOperator identifies the bidder answering the questionnaire.
type EconomicOperator struct {
	Party                  `bson:",inline"`
	IsSmallSizedEnterprise bool   `json:"isSmallSizedEnterprise,omitempty" bson:"isSmallSizedEnterprise,omitempty"`
	Representative         string `json:"representative,omitempty" bson:"representative,omitempty"`
}

type Address struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

// RequestMetadata describes the ESPD request a response was built from.
type RequestMetadata struct {
	ID          string     `json:"id,omitempty" bson:"id,omitempty"`
	URL         string     `json:"url,omitempty" bson:"url,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	IssueDate   *time.Time `json:"issueDate,omitempty" bson:"issueDate,omitempty"`
}

// CriterionDescriptor is a UBL criterion carried through unchanged from an
// imported document. Its content is not interpreted.
type CriterionDescriptor struct {
	ID          string            `json:"id" bson:"id"`
	TypeCode    string            `json:"typeCode,omitempty" bson:"typeCode,omitempty"`
	Name        string            `json:"name,omitempty" bson:"name,omitempty"`
	Description string            `json:"description,omitempty" bson:"description,omitempty"`
	Properties  map[string]string `json:"properties,omitempty" bson:"properties,omitempty"`
}

// Document is one ESPD questionnaire: procurement metadata, the parties
// involved and the criteria selected or answered so far.
//
// A Document is a plain mutable value. It is not safe for concurrent
// mutation; callers sharing one instance across goroutines must serialize
// access themselves.
type Document struct {
	ID               string            `json:"id" bson:"id"`
	ExtendCE         *bool             `json:"extendCe,omitempty" bson:"extendCe,omitempty"`
	HTML             string            `json:"html,omitempty" bson:"html,omitempty"`
	Authority        *Party            `json:"authority,omitempty" bson:"authority,omitempty"`
	EconomicOperator *EconomicOperator `json:"economicOperator,omitempty" bson:"economicOperator,omitempty"`

	OJSNumber          string `json:"ojsNumber,omitempty" bson:"ojsNumber,omitempty"`
	NGOJNumber         string `json:"ngojNumber,omitempty" bson:"ngojNumber,omitempty"`
	ProcedureType      string `json:"procedureType,omitempty" bson:"procedureType,omitempty"`
	ProcedureTitle     string `json:"procedureTitle,omitempty" bson:"procedureTitle,omitempty"`
	ProcedureShortDesc string `json:"procedureShortDesc,omitempty" bson:"procedureShortDesc,omitempty"`
	LotConcerned       string `json:"lotConcerned,omitempty" bson:"lotConcerned,omitempty"`
	FileRefByCA        string `json:"fileRefByCA,omitempty" bson:"fileRefByCA,omitempty"`
	TEDURL             string `json:"tedUrl,omitempty" bson:"tedUrl,omitempty"` // aka OJS URL
	ConsortiumName     string `json:"consortiumName,omitempty" bson:"consortiumName,omitempty"`

	RequestMetadata *RequestMetadata `json:"requestMetadata,omitempty" bson:"requestMetadata,omitempty"`
	TEDReceptionID  string           `json:"tedReceptionId,omitempty" bson:"tedReceptionId,omitempty"`
	DocumentDate    *time.Time       `json:"documentDate,omitempty" bson:"documentDate,omitempty"`
	Location        string           `json:"location,omitempty" bson:"location,omitempty"`

	Criteria    CriterionSet          `json:"criteria,omitempty" bson:"criteria,omitempty"`
	UBLCriteria []CriterionDescriptor `json:"ublCriteria,omitempty" bson:"ublCriteria,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
