package entity

import (
	"time"

	"tender-drafting-api/internal/common"

	"github.com/google/uuid"
)

// db model
type TenderProcess struct {
	Id           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Status       string     `json:"status" db:"status"`
	LastModified string     `json:"lastModified" db:"last_modified"`
	TenderData   TenderData `json:"tenderData" db:"tender_data"`
}

// TenderData is the full form-state tree of one tender. Each stage maps to
// one step of the drafting wizard.
type TenderData struct {
	Stage1 Stage1Data `json:"stage1"`
	Stage2 Stage2Data `json:"stage2"`
	Stage3 Stage3Data `json:"stage3"`
	Stage4 Stage4Data `json:"stage4"`
	Stage5 Stage5Data `json:"stage5"`
}

type FileAttachment struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Content string `json:"content,omitempty"` // base64
}

type Stage1Data struct {
	ExpedientNumber          string `json:"expedientNumber"`
	ServiceName              string `json:"serviceName"`
	ContractingAuthorityName string `json:"contractingAuthorityName"`
	ResponsibleName          string `json:"responsibleName"`

	Needs           VersionedDocument `json:"needs"`
	InitialDuration string            `json:"initialDuration"`
	Extensions      string            `json:"extensions"`
	Modifications   string            `json:"modifications"`

	InfoSystemUsesAI   TriState `json:"infoSystemUsesAI"`
	InfoSystemInEurope TriState `json:"infoSystemInEurope"`
	InfoSystemName     string   `json:"infoSystemName"`
	InfoSystemDetails  string   `json:"infoSystemDetails"`

	UsesProtectedData    TriState          `json:"usesProtectedData"`
	UsesPersonalData     TriState          `json:"usesPersonalData"`
	ProtectedDataDetails VersionedDocument `json:"protectedDataDetails"`
}

type EvaluationCriteria struct {
	ValueJudgment VersionedDocument `json:"valueJudgment"`
	Quantifiable  string            `json:"quantifiable"`
}

type NecessityReport struct {
	Background         VersionedDocument  `json:"background"`
	EvaluationCriteria EvaluationCriteria `json:"evaluationCriteria"`
	TechnicalDraft     *FileAttachment    `json:"technicalDraft"`
}

type CreditCertificate struct {
	BudgetItem     string `json:"budgetItem"`
	BasePrice      string `json:"basePrice"`
	EstimatedPrice string `json:"estimatedPrice"`
	VatRate        string `json:"vatRate"`
}

type ContractApproval struct {
	NecessityReportDate   string `json:"necessityReportDate"`
	CreditCertificateDate string `json:"creditCertificateDate"`
	BoardApprovalDate     string `json:"boardApprovalDate"`
	LegalReportDate       string `json:"legalReportDate"`
	FinancialControlDate  string `json:"financialControlDate"`
}

type Stage2Data struct {
	NecessityReport         NecessityReport   `json:"necessityReport"`
	CreditCertificate       CreditCertificate `json:"creditCertificate"`
	ContractApproval        ContractApproval  `json:"contractApproval"`
	ContractType            string            `json:"contractType,omitempty"`
	AISuggestedContractType string            `json:"aiSuggestedContractType,omitempty"`
}

type Stage4Data struct {
	PublicationDate string `json:"publicationDate"`
	Platform        string `json:"platform"`
	Link            string `json:"link"`
	ProcedureType   string `json:"procedureType"`
}

type LegalReportChecklist struct {
	Procedure     bool `json:"procedure"`
	Clauses       bool `json:"clauses"`
	Compatibility bool `json:"compatibility"`
}

type Stage5Data struct {
	Checklist      LegalReportChecklist `json:"checklist"`
	ValidationDate string               `json:"validationDate"`
	ValidatorName  string               `json:"validatorName"`
	ReportContent  VersionedDocument    `json:"reportContent"`
	Status         string               `json:"status,omitempty"`
}

// NewBlankTenderData builds the initial data tree for a fresh tender: every
// long-text field is seeded with a one-version document and every question
// starts unanswered.
func NewBlankTenderData() TenderData {
	return TenderData{
		Stage1: Stage1Data{
			Needs:                NewVersionedDocument(),
			ProtectedDataDetails: NewVersionedDocument(),
		},
		Stage2: Stage2Data{
			NecessityReport: NecessityReport{
				Background: NewVersionedDocument(),
				EvaluationCriteria: EvaluationCriteria{
					ValueJudgment: NewVersionedDocument(),
				},
			},
			CreditCertificate: CreditCertificate{VatRate: "21"},
		},
		Stage3: NewBlankStage3Data(),
		Stage4: Stage4Data{ProcedureType: "open"},
		Stage5: Stage5Data{
			ReportContent: NewVersionedDocument(),
			Status:        "favorable",
		},
	}
}

// NewTenderProcess builds a brand new draft tender. The zero UUID marks that
// the backing store has not assigned an identity yet.
func NewTenderProcess(name string) TenderProcess {
	return TenderProcess{
		Id:           uuid.Nil,
		Name:         name,
		Status:       common.Draft,
		LastModified: time.Now().Format(time.RFC3339),
		TenderData:   NewBlankTenderData(),
	}
}
