package entity

// Stage 3 carries the internal documents of the dossier: the justification,
// the administrative clauses draft (PCAP), the technical prescriptions (PPT)
// and the characteristics sheet. It is by far the widest part of the tree.

type LegalChecklist struct {
	NecessityAndEfficiency  bool `json:"necessityAndEfficiency"`
	LegalityAndTransparency bool `json:"legalityAndTransparency"`
	EqualityAndCompetition  bool `json:"equalityAndCompetition"`
}

type Stage3Data struct {
	JustificationText      string               `json:"justificationText"`
	LegalChecklist         LegalChecklist       `json:"legalChecklist"`
	JustificationDocuments []FileAttachment     `json:"justificationDocuments"`
	Pcap                   VersionedDocument    `json:"pcap"`
	PptData                PPTData              `json:"pptData"`
	Characteristics        VersionedDocument    `json:"characteristics"`
	CharacteristicsData    CharacteristicsData  `json:"characteristicsData"`
}

type Lot struct {
	Id                           string            `json:"id"`
	Title                        string            `json:"title"`
	Description                  VersionedDocument `json:"description"`
	EconomicSolvencyTypes        map[string]bool   `json:"economicSolvencyTypes,omitempty"`
	EconomicSolvencyAmount       string            `json:"economicSolvencyAmount,omitempty"`
	EconomicSolvencyOtherDetails string            `json:"economicSolvencyOtherDetails,omitempty"`
	TechnicalSolvencyCriteria    map[string]bool   `json:"technicalSolvencyCriteria,omitempty"`
	TechnicalSolvencyCriteriaOther string          `json:"technicalSolvencyCriteriaOther,omitempty"`
}

type Annuity struct {
	Id     string `json:"id"`
	Year   string `json:"year"`
	Months string `json:"months"`
	Amount string `json:"amount"`
}

type EnvelopeLot struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Criteria string `json:"criteria"`
}

type ExecutionConditions struct {
	EthicalPrinciples   bool `json:"ethicalPrinciples"`
	EnvironmentalSocial bool `json:"environmentalSocial"`
	GenderPerspective   bool `json:"genderPerspective"`
	CommunicationDesign bool `json:"communicationDesign"`
	DataProtection      bool `json:"dataProtection"`
	Labor               bool `json:"labor"`
	Ute                 bool `json:"ute"`
	HealthAndSafety     bool `json:"healthAndSafety"`
}

// CharacteristicsData is the characteristics sheet of the dossier: object,
// lots, budget, procedure, guarantees and solvency requirements.
type CharacteristicsData struct {
	Object            VersionedDocument `json:"object"`
	CpvCodes          string            `json:"cpvCodes"`
	LegalNature       string            `json:"legalNature"`
	InnovativePurchase TriState         `json:"innovativePurchase"`

	LotDivision              string            `json:"lotDivision"`
	NumberOfLots             string            `json:"numberOfLots"`
	Lots                     []Lot             `json:"lots"`
	LotDivisionJustification VersionedDocument `json:"lotDivisionJustification"`

	PriceDetermination string `json:"priceDetermination"`
	BillingType        string `json:"billingType"`
	BaseBudget         string `json:"baseBudget"`
	ModificationsAmount string `json:"modificationsAmount"`
	ExtensionsAmount   string `json:"extensionsAmount"`

	AllLotsMandatory          bool            `json:"allLotsMandatory"`
	CanBidOnOneOrAllLots      bool            `json:"canBidOnOneOrAllLots"`
	MinLotsToBidRequired      bool            `json:"minLotsToBidRequired"`
	MinLotsToBidCount         string          `json:"minLotsToBidCount"`
	MinLotsToBidSelection     map[string]bool `json:"minLotsToBidSelection,omitempty"`
	MandatoryLotsToBid        bool            `json:"mandatoryLotsToBid"`
	MandatoryLotsToBidSelection map[string]bool `json:"mandatoryLotsToBidSelection,omitempty"`
	MustBidOnFullLots         bool            `json:"mustBidOnFullLots"`

	MultiYearSupply             string    `json:"multiYearSupply"`
	MultiYearSupplyApprovalDate string    `json:"multiYearSupplyApprovalDate"`
	Annuities                   []Annuity `json:"annuities"`
	AnticipatedExpenditure      TriState  `json:"anticipatedExpenditure"`

	EstimatedStartDate      string   `json:"estimatedStartDate"`
	ContractDuration        string   `json:"contractDuration"`
	PartialTerms            TriState `json:"partialTerms"`
	PartialTermsDetails     string   `json:"partialTermsDetails"`
	ExtensionsPossible      TriState `json:"extensionsPossible"`
	ExtensionsCount         string   `json:"extensionsCount"`
	ExtensionDuration       string   `json:"extensionDuration"`
	VariantsAdmission       TriState `json:"variantsAdmission"`
	VariantsAdmissionDetails string  `json:"variantsAdmissionDetails"`

	Procedure            string   `json:"procedure"`
	ProcessingType       string   `json:"processingType"`
	HarmonizedRegulation TriState `json:"harmonizedRegulation"`
	PriorNotice          TriState `json:"priorNotice"`
	DigitalEnvelope      TriState `json:"digitalEnvelope"`
	ElectronicAuction    TriState `json:"electronicAuction"`
	MaxProposalDate      string   `json:"maxProposalDate"`

	SamplesDelivery       string `json:"samplesDelivery"`
	SamplesProducts       string `json:"samplesProducts"`
	SamplesLocation       string `json:"samplesLocation"`
	SamplesUnitCount      string `json:"samplesUnitCount"`
	SamplesIdentification string `json:"samplesIdentification"`
	SamplesSubmissionTime string `json:"samplesSubmissionTime"`

	ProvisionalGuarantee             TriState `json:"provisionalGuarantee"`
	ProvisionalGuaranteePerLot       TriState `json:"provisionalGuaranteePerLot"`
	ProvisionalGuaranteeLotAmount    string   `json:"provisionalGuaranteeLotAmount"`
	ProvisionalGuaranteeConstitution string   `json:"provisionalGuaranteeConstitution"`
	DefinitiveGuarantee              TriState `json:"definitiveGuarantee"`
	DefinitiveGuaranteeDetails       string   `json:"definitiveGuaranteeDetails"`
	DefinitiveGuaranteeConstitution  string   `json:"definitiveGuaranteeConstitution"`
	ComplementaryGuarantee           TriState `json:"complementaryGuarantee"`
	ComplementaryGuaranteeDetails    string   `json:"complementaryGuaranteeDetails"`
	ComplementaryGuaranteeConstitution string `json:"complementaryGuaranteeConstitution"`
	GuaranteeTerm                    TriState `json:"guaranteeTerm"`
	GuaranteeTermDuration            string   `json:"guaranteeTermDuration"`
	GuaranteeTermStartDate           string   `json:"guaranteeTermStartDate"`
	PriceReview                      TriState `json:"priceReview"`
	PriceReviewDetails               string   `json:"priceReviewDetails"`

	Subcontracting        TriState          `json:"subcontracting"`
	SubcontractingDetails VersionedDocument `json:"subcontractingDetails"`
	Assignment            TriState          `json:"assignment"`
	AssignmentDetails     VersionedDocument `json:"assignmentDetails"`

	SolvencyClassificationCategory string          `json:"solvencyClassificationCategory"`
	SolvencyClassificationGroup    string          `json:"solvencyClassificationGroup"`
	SolvencyClassificationSubgroup string          `json:"solvencyClassificationSubgroup"`
	SolvencyEconomicPerLot         TriState        `json:"solvencyEconomicPerLot"`
	EconomicSolvencyTypes          map[string]bool `json:"economicSolvencyTypes,omitempty"`
	EconomicSolvencyAmount         string          `json:"economicSolvencyAmount"`
	EconomicSolvencyOtherDetails   string          `json:"economicSolvencyOtherDetails"`
	SolvencyTechnicalPerLot        TriState        `json:"solvencyTechnicalPerLot"`
	SolvencyTechnicalCriteria      map[string]bool `json:"solvencyTechnicalCriteria,omitempty"`
	SolvencyTechnicalCriteriaOther string          `json:"solvencyTechnicalCriteriaOther"`
	SolvencyIntegrationExternalMeans TriState      `json:"solvencyIntegrationExternalMeans"`
	SolvencyIntegrationCriteria    VersionedDocument `json:"solvencyIntegrationCriteria"`
	SolvencyIntegrationCriteriaDetails string      `json:"solvencyIntegrationCriteriaDetails"`

	QualityStandardsRequired             TriState `json:"qualityStandardsRequired"`
	QualityStandardsDetails              string   `json:"qualityStandardsDetails"`
	QualityStandardsAccreditationDetails string   `json:"qualityStandardsAccreditationDetails"`
	NonHarmonizedCriteria                TriState `json:"nonHarmonizedCriteria"`
	NonHarmonizedCriteriaSelection       map[string]bool `json:"nonHarmonizedCriteriaSelection,omitempty"`

	MaterialPersonalResources       TriState          `json:"materialPersonalResources"`
	MaterialResourcesDetails        VersionedDocument `json:"materialResourcesDetails"`
	MaterialResourcesAdscriptionDetails string        `json:"materialResourcesAdscriptionDetails"`
	PersonalResourcesDetails        VersionedDocument `json:"personalResourcesDetails"`
	AbnormallyLowTenders            TriState          `json:"abnormallyLowTenders"`
	AbnormallyLowTendersDetails     VersionedDocument `json:"abnormallyLowTendersDetails"`
	OtherAwardDocumentation         VersionedDocument `json:"otherAwardDocumentation"`

	EnvelopeDocumentationIntro VersionedDocument `json:"envelopeDocumentation_intro"`
	EnvelopeDocumentationA     string            `json:"envelopeDocumentation_A"`
	EnvelopeDocumentationB     []EnvelopeLot     `json:"envelopeDocumentation_B"`
	EnvelopeDocumentationC     []EnvelopeLot     `json:"envelopeDocumentation_C"`

	ExecutionConditions ExecutionConditions `json:"executionConditions"`

	WorkProgramRequired TriState          `json:"workProgramRequired"`
	WorkProgramDetails  VersionedDocument `json:"workProgramDetails"`

	PromotingUnit             string   `json:"promotingUnit"`
	FacilityVisitRequired     TriState `json:"facilityVisitRequired"`
	FacilityVisitIsExclusionary TriState `json:"facilityVisitIsExclusionary"`
}

type ServiceDescription struct {
	Description     VersionedDocument `json:"description"`
	TechnicalParams string            `json:"technicalParams"`
}

type CompanyObligations struct {
	Service     string `json:"service"`
	Regulatory  string `json:"regulatory"`
	QualityCerts string `json:"qualityCerts"`
	Other       string `json:"other"`
}

type Penalties struct {
	Serious string `json:"serious"`
	Minor   string `json:"minor"`
	Other   string `json:"other"`
}

type Maintenance struct {
	Preventive      string `json:"preventive"`
	Corrective      string `json:"corrective"`
	Normative       string `json:"normative"`
	WasteManagement string `json:"wasteManagement"`
}

// PPTData is the technical prescriptions document of the dossier.
type PPTData struct {
	Object               VersionedDocument  `json:"object"`
	ServiceDescription   ServiceDescription `json:"serviceDescription"`
	Scope                VersionedDocument  `json:"scope"`
	InfoSystem           VersionedDocument  `json:"infoSystem"`
	PersonnelResources   VersionedDocument  `json:"personnelResources"`
	MaterialResources    VersionedDocument  `json:"materialResources"`
	PersonnelSubrogation string             `json:"personnelSubrogation"`
	ServiceTransitionPlan string            `json:"serviceTransitionPlan"`
	CompanyObligations   CompanyObligations `json:"companyObligations"`
	Penalties            Penalties          `json:"penalties"`
	LiabilityInsurance   string             `json:"liabilityInsurance"`
	Maintenance          Maintenance        `json:"maintenance"`
	Sla                  string             `json:"sla"`
	RiskPrevention       string             `json:"riskPrevention"`
}

const defaultPromotingUnit = "Direcció Serveis Generals i Infraestructures del CSA"

func NewBlankStage3Data() Stage3Data {
	return Stage3Data{
		JustificationDocuments: make([]FileAttachment, 0),
		Pcap:                   NewVersionedDocument(),
		Characteristics:        NewVersionedDocument(),
		PptData: PPTData{
			Object: NewVersionedDocument(),
			ServiceDescription: ServiceDescription{
				Description: NewVersionedDocument(),
			},
			Scope:              NewVersionedDocument(),
			InfoSystem:         NewVersionedDocument(),
			PersonnelResources: NewVersionedDocument(),
			MaterialResources:  NewVersionedDocument(),
		},
		CharacteristicsData: CharacteristicsData{
			Object:                      NewVersionedDocument(),
			Lots:                        make([]Lot, 0),
			LotDivisionJustification:    NewVersionedDocument(),
			Annuities:                   make([]Annuity, 0),
			SubcontractingDetails:       NewVersionedDocument(),
			AssignmentDetails:           NewVersionedDocument(),
			SolvencyIntegrationCriteria: NewVersionedDocument(),
			MaterialResourcesDetails:    NewVersionedDocument(),
			PersonalResourcesDetails:    NewVersionedDocument(),
			AbnormallyLowTendersDetails: NewVersionedDocument(),
			OtherAwardDocumentation:     NewVersionedDocument(),
			EnvelopeDocumentationIntro:  NewVersionedDocument(),
			EnvelopeDocumentationB:      make([]EnvelopeLot, 0),
			EnvelopeDocumentationC:      make([]EnvelopeLot, 0),
			WorkProgramDetails:          NewVersionedDocument(),
			PromotingUnit:               defaultPromotingUnit,
		},
	}
}
