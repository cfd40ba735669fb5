package service

import (
	"context"
	"fmt"
	"time"

	"tender-drafting-api/internal/ai"
	"tender-drafting-api/internal/entity"

	"github.com/google/uuid"
)

// Document operations. Every mutation goes through updateDocument, so a new
// revision or a repointed active version rides the same optimistic-update and
// debounced-save path as a stage patch.

func (s *TenderService) GetDocument(tenderId string, field string) (*entity.VersionedDocument, error) {
	docField, id, err := s.resolveField(tenderId, field)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findTender(s.tenders, id)
	if idx < 0 {
		return nil, ErrTenderNotFound
	}

	doc := *docField.Doc(&s.tenders[idx].TenderData)

	return &doc, nil
}

// SelectVersion repoints the active version. No new version is created.
// Rejected while the field is being edited, so the buffer and the active
// pointer cannot diverge.
func (s *TenderService) SelectVersion(tenderId string, field string, versionId string) (*entity.VersionedDocument, error) {
	if s.editSessions.IsEditing(tenderId, field) {
		return nil, ErrEditInProgress
	}

	return s.updateDocument(tenderId, field, func(doc entity.VersionedDocument) (entity.VersionedDocument, error) {
		selected, err := doc.SelectVersion(versionId)
		if err != nil {
			return entity.VersionedDocument{}, ErrVersionNotFound
		}

		return selected, nil
	})
}

// BeginEdit opens an edit session seeded with the active content. The
// document itself is not touched until commit.
func (s *TenderService) BeginEdit(tenderId string, field string) error {
	doc, err := s.GetDocument(tenderId, field)
	if err != nil {
		return err
	}

	if err := s.editSessions.Begin(tenderId, field, doc.ActiveContent()); err != nil {
		return ErrEditInProgress
	}

	return nil
}

func (s *TenderService) SetEditBuffer(tenderId string, field string, content string) error {
	return s.editSessions.SetBuffer(tenderId, field, content)
}

// CommitEdit turns the session buffer into a new version and makes it
// active. The prior version stays browsable.
func (s *TenderService) CommitEdit(tenderId string, field string) (*entity.VersionedDocument, error) {
	content, err := s.editSessions.Commit(tenderId, field)
	if err != nil {
		return nil, err
	}

	return s.updateDocument(tenderId, field, func(doc entity.VersionedDocument) (entity.VersionedDocument, error) {
		return doc.AppendVersion(content, "edited"), nil
	})
}

func (s *TenderService) CancelEdit(tenderId string, field string) error {
	return s.editSessions.Cancel(tenderId, field)
}

// ApplyAIAction runs one generation action against the field's active content
// and commits the result as a new annotated version. A failed generation
// leaves the document unchanged.
func (s *TenderService) ApplyAIAction(ctx context.Context, tenderId string, field string, action ai.Action) (*entity.VersionedDocument, error) {
	if s.editSessions.IsEditing(tenderId, field) {
		return nil, ErrEditInProgress
	}

	docField, id, err := s.resolveField(tenderId, field)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	idx := findTender(s.tenders, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrTenderNotFound
	}
	snapshot := s.tenders[idx]
	s.mu.Unlock()

	currentText := docField.Doc(&snapshot.TenderData).ActiveContent()

	text, err := s.generator.ProcessText(ctx, snapshot.Name, &snapshot.TenderData, field, action, currentText)
	if err != nil {
		return nil, err
	}

	return s.updateDocument(tenderId, field, func(doc entity.VersionedDocument) (entity.VersionedDocument, error) {
		return doc.AppendVersion(text, action.Annotation()), nil
	})
}

// TriggerWorkflow fires the external generation workflow for a field. The
// acknowledgement only means the request was accepted.
func (s *TenderService) TriggerWorkflow(ctx context.Context, tenderId string, field string) error {
	if _, _, err := s.resolveField(tenderId, field); err != nil {
		return err
	}

	s.mu.Lock()
	id, _ := uuid.Parse(tenderId)
	idx := findTender(s.tenders, id)
	s.mu.Unlock()
	if idx < 0 {
		return ErrTenderNotFound
	}

	if err := s.generator.TriggerWorkflow(ctx, tenderId, field); err != nil {
		return fmt.Errorf("triggering generation workflow: %w", err)
	}

	return nil
}

func (s *TenderService) resolveField(tenderId string, field string) (entity.DocumentField, uuid.UUID, error) {
	docField, err := entity.LookupDocumentField(field)
	if err != nil {
		return entity.DocumentField{}, uuid.Nil, ErrDocumentFieldUnknown
	}

	id, err := uuid.Parse(tenderId)
	if err != nil {
		return entity.DocumentField{}, uuid.Nil, ErrTenderNotFound
	}

	return docField, id, nil
}

func (s *TenderService) updateDocument(tenderId string, field string, mutate func(entity.VersionedDocument) (entity.VersionedDocument, error)) (*entity.VersionedDocument, error) {
	docField, id, err := s.resolveField(tenderId, field)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, ErrTendersNotLoaded
	}

	idx := findTender(s.tenders, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrTenderNotFound
	}

	updated := s.tenders[idx]
	docPtr := docField.Doc(&updated.TenderData)

	newDoc, err := mutate(*docPtr)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	*docPtr = newDoc
	updated.LastModified = time.Now().Format(time.RFC3339)

	s.tenders = replaceTender(s.tenders, updated)
	saver := s.saver
	s.mu.Unlock()

	saver.Trigger(updated)

	return &newDoc, nil
}
