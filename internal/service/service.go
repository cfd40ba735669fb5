package service

import (
	"context"
	"time"

	"tender-drafting-api/internal/ai"
	"tender-drafting-api/internal/editor"
	"tender-drafting-api/internal/entity"
	"tender-drafting-api/internal/repo"

	"github.com/rs/zerolog"
)

type Diagnostics interface {
	Ping() error
}

// Tender is the store and autosave controller: it owns the in-memory tender
// list and mediates every read and write between handlers and the backing
// store.
type Tender interface {
	LoadAll(ctx context.Context) error
	Loaded() bool
	Saving() bool
	FlushPendingSave()

	Tenders() []entity.TenderOutputModel
	GetTender(tenderId string) (*entity.TenderDetailsOutputModel, error)
	CreateTender(ctx context.Context) (*entity.TenderDetailsOutputModel, error)
	UpdateTenderMeta(ctx context.Context, tenderId string, input *entity.TenderMetaInput) (*entity.TenderOutputModel, error)
	DeleteTender(ctx context.Context, tenderId string) error

	SelectTender(tenderId string) error
	ActiveTenderId() string
	Progress() (currentStage int, completedStages []int)
	AdvanceStage(ctx context.Context) error
	PrevStage()
	SetStage(stage int) error

	PatchStageData(tenderId string, patch entity.StagePatch) (*entity.TenderOutputModel, error)
}

// Document mediates all mutations of the versioned long-text fields.
type Document interface {
	GetDocument(tenderId string, field string) (*entity.VersionedDocument, error)
	SelectVersion(tenderId string, field string, versionId string) (*entity.VersionedDocument, error)

	BeginEdit(tenderId string, field string) error
	SetEditBuffer(tenderId string, field string, content string) error
	CommitEdit(tenderId string, field string) (*entity.VersionedDocument, error)
	CancelEdit(tenderId string, field string) error

	ApplyAIAction(ctx context.Context, tenderId string, field string, action ai.Action) (*entity.VersionedDocument, error)
	TriggerWorkflow(ctx context.Context, tenderId string, field string) error
}

// Generator is the generative-text collaborator consumed by the document
// operations.
type Generator interface {
	ProcessText(ctx context.Context, tenderName string, data *entity.TenderData, fieldIdentifier string, action ai.Action, currentText string) (string, error)
	TriggerWorkflow(ctx context.Context, tenderId string, fieldIdentifier string) error
}

// ActivePrefs persists the active tender pointer across sessions.
type ActivePrefs interface {
	ActiveTenderId() (string, error)
	SetActiveTenderId(id string) error
}

type Services struct {
	Diagnostics Diagnostics
	Tender      Tender
	Document    Document
}

func NewServices(repos *repo.Repositories, generator Generator, activePrefs ActivePrefs, autosaveDebounce time.Duration, log zerolog.Logger) *Services {
	tenderService := NewTenderService(repos.Tender, generator, activePrefs, editor.NewManager(), autosaveDebounce, log)

	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Tender:      tenderService,
		Document:    tenderService,
	}
}
