package entity

import (
	"fmt"
	"sort"
)

// DocumentField addresses one versioned long-text field inside the tender
// data tree. Doc returns a pointer into the given tree, so mutations through
// it must operate on a caller-owned copy.
type DocumentField struct {
	Identifier string
	Doc        func(data *TenderData) *VersionedDocument
}

var documentFields = map[string]DocumentField{}

func registerField(identifier string, doc func(data *TenderData) *VersionedDocument) {
	documentFields[identifier] = DocumentField{Identifier: identifier, Doc: doc}
}

func init() {
	registerField("stage1.needs", func(d *TenderData) *VersionedDocument { return &d.Stage1.Needs })
	registerField("stage1.protectedDataDetails", func(d *TenderData) *VersionedDocument { return &d.Stage1.ProtectedDataDetails })

	registerField("stage2.necessityReport.background", func(d *TenderData) *VersionedDocument { return &d.Stage2.NecessityReport.Background })
	registerField("stage2.necessityReport.valueJudgment", func(d *TenderData) *VersionedDocument {
		return &d.Stage2.NecessityReport.EvaluationCriteria.ValueJudgment
	})

	registerField("stage3.pcap", func(d *TenderData) *VersionedDocument { return &d.Stage3.Pcap })
	registerField("stage3.characteristics", func(d *TenderData) *VersionedDocument { return &d.Stage3.Characteristics })

	registerField("stage3.ppt.object", func(d *TenderData) *VersionedDocument { return &d.Stage3.PptData.Object })
	registerField("stage3.ppt.serviceDescription", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.PptData.ServiceDescription.Description
	})
	registerField("stage3.ppt.scope", func(d *TenderData) *VersionedDocument { return &d.Stage3.PptData.Scope })
	registerField("stage3.ppt.infoSystem", func(d *TenderData) *VersionedDocument { return &d.Stage3.PptData.InfoSystem })
	registerField("stage3.ppt.personnelResources", func(d *TenderData) *VersionedDocument { return &d.Stage3.PptData.PersonnelResources })
	registerField("stage3.ppt.materialResources", func(d *TenderData) *VersionedDocument { return &d.Stage3.PptData.MaterialResources })

	registerField("stage3.characteristics.object", func(d *TenderData) *VersionedDocument { return &d.Stage3.CharacteristicsData.Object })
	registerField("stage3.characteristics.lotDivisionJustification", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.LotDivisionJustification
	})
	registerField("stage3.characteristics.subcontractingDetails", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.SubcontractingDetails
	})
	registerField("stage3.characteristics.assignmentDetails", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.AssignmentDetails
	})
	registerField("stage3.characteristics.solvencyIntegrationCriteria", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.SolvencyIntegrationCriteria
	})
	registerField("stage3.characteristics.materialResourcesDetails", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.MaterialResourcesDetails
	})
	registerField("stage3.characteristics.personalResourcesDetails", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.PersonalResourcesDetails
	})
	registerField("stage3.characteristics.abnormallyLowTendersDetails", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.AbnormallyLowTendersDetails
	})
	registerField("stage3.characteristics.otherAwardDocumentation", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.OtherAwardDocumentation
	})
	registerField("stage3.characteristics.envelopeDocumentationIntro", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.EnvelopeDocumentationIntro
	})
	registerField("stage3.characteristics.workProgramDetails", func(d *TenderData) *VersionedDocument {
		return &d.Stage3.CharacteristicsData.WorkProgramDetails
	})

	registerField("stage5.reportContent", func(d *TenderData) *VersionedDocument { return &d.Stage5.ReportContent })
}

// LookupDocumentField resolves a field identifier. Lot descriptions are
// addressed separately because lots are created at runtime.
func LookupDocumentField(identifier string) (DocumentField, error) {
	f, ok := documentFields[identifier]
	if !ok {
		return DocumentField{}, fmt.Errorf("unknown document field %q", identifier)
	}

	return f, nil
}

// DocumentFieldIdentifiers lists every fixed long-text field, sorted.
func DocumentFieldIdentifiers() []string {
	ids := make([]string, 0, len(documentFields))
	for id := range documentFields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
