package pgdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"tender-drafting-api/internal/entity"
	"tender-drafting-api/internal/repo/repo_errors"
	"tender-drafting-api/pkg/postgres"

	"github.com/google/uuid"
)

type TenderRepo struct {
	*postgres.Postgres
}

func NewTenderRepo(pgdb *postgres.Postgres) *TenderRepo {
	return &TenderRepo{pgdb}
}

// ListTenders returns every tender ordered by most-recently-modified first.
func (r *TenderRepo) ListTenders(ctx context.Context) ([]entity.TenderProcess, error) {
	listSql, args, _ := r.SqlBuilder.
		Select("id", "name", "status", "last_modified", "tender_data").
		From("tender").
		OrderBy("last_modified DESC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenders := make([]entity.TenderProcess, 0)
	for rows.Next() {
		var tender entity.TenderProcess
		var lastModified time.Time
		var rawData []byte
		if err := rows.Scan(&tender.Id, &tender.Name, &tender.Status, &lastModified, &rawData); err != nil {
			return tenders, err
		}

		if err := json.Unmarshal(rawData, &tender.TenderData); err != nil {
			return tenders, err
		}

		tender.LastModified = lastModified.Format(time.RFC3339)
		tenders = append(tenders, tender)
	}
	if err = rows.Err(); err != nil {
		return tenders, err
	}

	return tenders, nil
}

// InsertTender stores a new tender and returns the id the store assigned.
func (r *TenderRepo) InsertTender(ctx context.Context, tender *entity.TenderProcess) (uuid.UUID, error) {
	rawData, err := json.Marshal(tender.TenderData)
	if err != nil {
		return uuid.Nil, err
	}

	lastModified, err := time.Parse(time.RFC3339, tender.LastModified)
	if err != nil {
		return uuid.Nil, err
	}

	insertSql, args, _ := r.SqlBuilder.
		Insert("tender").
		Columns("name", "status", "last_modified", "tender_data").
		Values(tender.Name, tender.Status, lastModified, rawData).
		Suffix("RETURNING id").
		ToSql()

	var tenderId uuid.UUID
	if err := r.Database.QueryRowContext(ctx, insertSql, args...).Scan(&tenderId); err != nil {
		return uuid.Nil, err
	}

	return tenderId, nil
}

// UpdateTender writes the full record: metadata and data tree.
func (r *TenderRepo) UpdateTender(ctx context.Context, tender *entity.TenderProcess) error {
	rawData, err := json.Marshal(tender.TenderData)
	if err != nil {
		return err
	}

	lastModified, err := time.Parse(time.RFC3339, tender.LastModified)
	if err != nil {
		return err
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("name", tender.Name).
		Set("status", tender.Status).
		Set("last_modified", lastModified).
		Set("tender_data", rawData).
		Where("id = ?", tender.Id).
		ToSql()

	return r.exec(ctx, updateSql, args)
}

// SaveTenderData is the autosave write: only the data tree and the
// modification timestamp change.
func (r *TenderRepo) SaveTenderData(ctx context.Context, tender *entity.TenderProcess) error {
	rawData, err := json.Marshal(tender.TenderData)
	if err != nil {
		return err
	}

	lastModified, err := time.Parse(time.RFC3339, tender.LastModified)
	if err != nil {
		return err
	}

	saveSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("last_modified", lastModified).
		Set("tender_data", rawData).
		Where("id = ?", tender.Id).
		ToSql()

	return r.exec(ctx, saveSql, args)
}

func (r *TenderRepo) DeleteTender(ctx context.Context, id uuid.UUID) error {
	deleteSql, args, _ := r.SqlBuilder.
		Delete("tender").
		Where("id = ?", id).
		ToSql()

	return r.exec(ctx, deleteSql, args)
}

func (r *TenderRepo) exec(ctx context.Context, query string, args []interface{}) error {
	result, err := r.Database.ExecContext(ctx, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repo_errors.ErrNotFound
		}

		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
