package repo

import (
	"context"
	"tender-drafting-api/internal/entity"
	"tender-drafting-api/internal/repo/pgdb"
	"tender-drafting-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Tender interface {
	ListTenders(ctx context.Context) ([]entity.TenderProcess, error)
	InsertTender(ctx context.Context, tender *entity.TenderProcess) (uuid.UUID, error)
	UpdateTender(ctx context.Context, tender *entity.TenderProcess) error
	SaveTenderData(ctx context.Context, tender *entity.TenderProcess) error
	DeleteTender(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	Diagnostics
	Tender
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Tender:      pgdb.NewTenderRepo(p),
	}
}
