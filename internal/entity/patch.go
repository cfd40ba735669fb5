package entity

import (
	"encoding/json"
	"fmt"

	"tender-drafting-api/internal/common"
)

// StagePatch is a partial update to one stage of a tender's data tree.
// Applying a patch is a shallow merge at the stage level: fields present in
// the patch replace the stage's fields wholesale, absent fields are kept.
type StagePatch interface {
	StageKey() string
	Apply(data *TenderData)
}

// DecodeStagePatch parses a JSON partial update for the given stage key into
// its typed patch.
func DecodeStagePatch(stageKey string, body []byte) (StagePatch, error) {
	var patch StagePatch
	switch stageKey {
	case common.StageKey1:
		patch = &Stage1Patch{}
	case common.StageKey2:
		patch = &Stage2Patch{}
	case common.StageKey3:
		patch = &Stage3Patch{}
	case common.StageKey4:
		patch = &Stage4Patch{}
	case common.StageKey5:
		patch = &Stage5Patch{}
	default:
		return nil, fmt.Errorf("unknown stage key %q", stageKey)
	}

	if err := json.Unmarshal(body, patch); err != nil {
		return nil, err
	}

	return patch, nil
}

type Stage1Patch struct {
	ExpedientNumber          *string `json:"expedientNumber"`
	ServiceName              *string `json:"serviceName"`
	ContractingAuthorityName *string `json:"contractingAuthorityName"`
	ResponsibleName          *string `json:"responsibleName"`

	Needs           *VersionedDocument `json:"needs"`
	InitialDuration *string            `json:"initialDuration"`
	Extensions      *string            `json:"extensions"`
	Modifications   *string            `json:"modifications"`

	InfoSystemUsesAI   *TriState `json:"infoSystemUsesAI"`
	InfoSystemInEurope *TriState `json:"infoSystemInEurope"`
	InfoSystemName     *string   `json:"infoSystemName"`
	InfoSystemDetails  *string   `json:"infoSystemDetails"`

	UsesProtectedData    *TriState          `json:"usesProtectedData"`
	UsesPersonalData     *TriState          `json:"usesPersonalData"`
	ProtectedDataDetails *VersionedDocument `json:"protectedDataDetails"`
}

func (p *Stage1Patch) StageKey() string { return common.StageKey1 }

func (p *Stage1Patch) Apply(data *TenderData) {
	s := &data.Stage1
	setString(&s.ExpedientNumber, p.ExpedientNumber)
	setString(&s.ServiceName, p.ServiceName)
	setString(&s.ContractingAuthorityName, p.ContractingAuthorityName)
	setString(&s.ResponsibleName, p.ResponsibleName)
	setDocument(&s.Needs, p.Needs)
	setString(&s.InitialDuration, p.InitialDuration)
	setString(&s.Extensions, p.Extensions)
	setString(&s.Modifications, p.Modifications)
	setTriState(&s.InfoSystemUsesAI, p.InfoSystemUsesAI)
	setTriState(&s.InfoSystemInEurope, p.InfoSystemInEurope)
	setString(&s.InfoSystemName, p.InfoSystemName)
	setString(&s.InfoSystemDetails, p.InfoSystemDetails)
	setTriState(&s.UsesProtectedData, p.UsesProtectedData)
	setTriState(&s.UsesPersonalData, p.UsesPersonalData)
	setDocument(&s.ProtectedDataDetails, p.ProtectedDataDetails)
}

type Stage2Patch struct {
	NecessityReport         *NecessityReport   `json:"necessityReport"`
	CreditCertificate       *CreditCertificate `json:"creditCertificate"`
	ContractApproval        *ContractApproval  `json:"contractApproval"`
	ContractType            *string            `json:"contractType"`
	AISuggestedContractType *string            `json:"aiSuggestedContractType"`
}

func (p *Stage2Patch) StageKey() string { return common.StageKey2 }

func (p *Stage2Patch) Apply(data *TenderData) {
	s := &data.Stage2
	if p.NecessityReport != nil {
		s.NecessityReport = *p.NecessityReport
	}
	if p.CreditCertificate != nil {
		s.CreditCertificate = *p.CreditCertificate
	}
	if p.ContractApproval != nil {
		s.ContractApproval = *p.ContractApproval
	}
	setString(&s.ContractType, p.ContractType)
	setString(&s.AISuggestedContractType, p.AISuggestedContractType)
}

type Stage3Patch struct {
	JustificationText      *string              `json:"justificationText"`
	LegalChecklist         *LegalChecklist      `json:"legalChecklist"`
	JustificationDocuments []FileAttachment     `json:"justificationDocuments"`
	Pcap                   *VersionedDocument   `json:"pcap"`
	PptData                *PPTData             `json:"pptData"`
	Characteristics        *VersionedDocument   `json:"characteristics"`
	CharacteristicsData    *CharacteristicsData `json:"characteristicsData"`
}

func (p *Stage3Patch) StageKey() string { return common.StageKey3 }

func (p *Stage3Patch) Apply(data *TenderData) {
	s := &data.Stage3
	setString(&s.JustificationText, p.JustificationText)
	if p.LegalChecklist != nil {
		s.LegalChecklist = *p.LegalChecklist
	}
	if p.JustificationDocuments != nil {
		s.JustificationDocuments = p.JustificationDocuments
	}
	setDocument(&s.Pcap, p.Pcap)
	if p.PptData != nil {
		s.PptData = *p.PptData
	}
	setDocument(&s.Characteristics, p.Characteristics)
	if p.CharacteristicsData != nil {
		s.CharacteristicsData = *p.CharacteristicsData
	}
}

type Stage4Patch struct {
	PublicationDate *string `json:"publicationDate"`
	Platform        *string `json:"platform"`
	Link            *string `json:"link"`
	ProcedureType   *string `json:"procedureType"`
}

func (p *Stage4Patch) StageKey() string { return common.StageKey4 }

func (p *Stage4Patch) Apply(data *TenderData) {
	s := &data.Stage4
	setString(&s.PublicationDate, p.PublicationDate)
	setString(&s.Platform, p.Platform)
	setString(&s.Link, p.Link)
	setString(&s.ProcedureType, p.ProcedureType)
}

type Stage5Patch struct {
	Checklist      *LegalReportChecklist `json:"checklist"`
	ValidationDate *string               `json:"validationDate"`
	ValidatorName  *string               `json:"validatorName"`
	ReportContent  *VersionedDocument    `json:"reportContent"`
	Status         *string               `json:"status"`
}

func (p *Stage5Patch) StageKey() string { return common.StageKey5 }

func (p *Stage5Patch) Apply(data *TenderData) {
	s := &data.Stage5
	if p.Checklist != nil {
		s.Checklist = *p.Checklist
	}
	setString(&s.ValidationDate, p.ValidationDate)
	setString(&s.ValidatorName, p.ValidatorName)
	setDocument(&s.ReportContent, p.ReportContent)
	setString(&s.Status, p.Status)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setTriState(dst *TriState, src *TriState) {
	if src != nil {
		*dst = *src
	}
}

func setDocument(dst *VersionedDocument, src *VersionedDocument) {
	if src != nil {
		*dst = *src
	}
}
