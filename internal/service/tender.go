package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tender-drafting-api/internal/common"
	"tender-drafting-api/internal/editor"
	"tender-drafting-api/internal/entity"
	"tender-drafting-api/internal/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const remoteSaveTimeout = 30 * time.Second

// TenderService owns the authoritative in-memory tender list and the policy
// for propagating edits to the backing store: structural operations are
// remote-confirmed, metadata updates are optimistic with rollback, and the
// keystroke-level stage patches are applied locally at once and persisted
// through a debounced save.
//
// All list mutations compute the next list from the previous one under one
// mutex; the debounce timer fires on its own goroutine and works on a
// snapshot that carries its own tender id.
type TenderService struct {
	tenderRepo   repo.Tender
	generator    Generator
	activePrefs  ActivePrefs
	editSessions *editor.Manager
	log          zerolog.Logger

	autosaveDebounce time.Duration

	mu              sync.Mutex
	loaded          bool
	tenders         []entity.TenderProcess
	activeId        uuid.UUID
	currentStage    int
	completedStages []int
	saver           *debouncedSaver

	inFlight atomic.Int32
}

func NewTenderService(tenderRepo repo.Tender, generator Generator, activePrefs ActivePrefs, editSessions *editor.Manager, autosaveDebounce time.Duration, log zerolog.Logger) *TenderService {
	return &TenderService{
		tenderRepo:       tenderRepo,
		generator:        generator,
		activePrefs:      activePrefs,
		editSessions:     editSessions,
		autosaveDebounce: autosaveDebounce,
		log:              log,
		currentStage:     1,
	}
}

// LoadAll replaces the in-memory list with the backing store's contents. On
// failure the list stays empty and the error is retryable; no partial data is
// kept. On success the persisted active tender id is re-adopted only if that
// tender still exists, and the debounced save binding is recreated so pending
// saves against the old list are dropped.
func (s *TenderService) LoadAll(ctx context.Context) error {
	tenders, err := s.tenderRepo.ListTenders(ctx)
	if err != nil {
		s.mu.Lock()
		s.loaded = false
		s.tenders = nil
		s.mu.Unlock()

		return fmt.Errorf("loading tenders: %w", err)
	}

	savedId, prefErr := s.activePrefs.ActiveTenderId()
	if prefErr != nil {
		s.log.Warn().Err(prefErr).Msg("could not read persisted active tender id")
		savedId = ""
	}

	s.mu.Lock()
	if s.saver != nil {
		s.saver.Stop()
	}
	s.saver = newDebouncedSaver(s.autosaveDebounce, s.persistSnapshot)

	s.tenders = tenders
	s.loaded = true
	s.currentStage = 1
	s.completedStages = nil

	s.activeId = uuid.Nil
	staleActiveId := false
	if savedId != "" {
		if parsed, parseErr := uuid.Parse(savedId); parseErr == nil && findTender(tenders, parsed) >= 0 {
			s.activeId = parsed
		} else {
			staleActiveId = true
		}
	}
	s.mu.Unlock()

	if staleActiveId {
		if err := s.activePrefs.SetActiveTenderId(""); err != nil {
			s.log.Warn().Err(err).Msg("could not clear stale active tender id")
		}
	}

	s.log.Info().Int("tenders", len(tenders)).Msg("tender list loaded")

	return nil
}

func (s *TenderService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loaded
}

// Saving reports whether a remote write is in flight.
func (s *TenderService) Saving() bool {
	return s.inFlight.Load() > 0
}

// FlushPendingSave sends any debounce-pending snapshot immediately. Called on
// shutdown so the last burst of edits reaches the store.
func (s *TenderService) FlushPendingSave() {
	s.mu.Lock()
	saver := s.saver
	s.mu.Unlock()

	if saver != nil {
		saver.Flush()
	}
}

func (s *TenderService) Tenders() []entity.TenderOutputModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	return mapTenders(s.tenders)
}

func (s *TenderService) GetTender(tenderId string) (*entity.TenderDetailsOutputModel, error) {
	id, err := uuid.Parse(tenderId)
	if err != nil {
		return nil, ErrTenderNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := findTender(s.tenders, id)
	if idx < 0 {
		return nil, ErrTenderNotFound
	}

	return mapTenderDetails(&s.tenders[idx]), nil
}

// CreateTender builds a blank draft and stores it remotely first. The local
// list only picks it up under the identity the backing store assigned; on
// remote failure nothing is added locally.
func (s *TenderService) CreateTender(ctx context.Context) (*entity.TenderDetailsOutputModel, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return nil, ErrTendersNotLoaded
	}
	name := fmt.Sprintf("Nueva Licitación %d", len(s.tenders)+1)
	s.mu.Unlock()

	tender := entity.NewTenderProcess(name)

	s.inFlight.Add(1)
	id, err := s.tenderRepo.InsertTender(ctx, &tender)
	s.inFlight.Add(-1)
	if err != nil {
		return nil, fmt.Errorf("creating tender: %w", err)
	}
	tender.Id = id

	s.mu.Lock()
	s.tenders = append([]entity.TenderProcess{tender}, s.tenders...)
	s.activeId = id
	s.currentStage = 1
	s.completedStages = nil
	s.mu.Unlock()

	if err := s.activePrefs.SetActiveTenderId(id.String()); err != nil {
		s.log.Warn().Err(err).Msg("could not persist active tender id")
	}

	return mapTenderDetails(&tender), nil
}

// UpdateTenderMeta applies a partial name/status update optimistically: the
// in-memory list changes first, and a failed remote write restores the
// pre-update list.
func (s *TenderService) UpdateTenderMeta(ctx context.Context, tenderId string, input *entity.TenderMetaInput) (*entity.TenderOutputModel, error) {
	id, err := uuid.Parse(tenderId)
	if err != nil {
		return nil, ErrTenderNotFound
	}

	s.mu.Lock()
	idx := findTender(s.tenders, id)
	if idx < 0 {
		s.mu.Unlock()
		return nil, ErrTenderNotFound
	}

	updated := s.tenders[idx]
	if input.Status != nil {
		if !common.IsValidStatus(*input.Status) {
			s.mu.Unlock()
			return nil, ErrInvalidStatus
		}
		if !common.IsValidStatusTransition(updated.Status, *input.Status) {
			s.mu.Unlock()
			return nil, ErrInvalidStatusTransition
		}
		updated.Status = *input.Status
	}
	if input.Name != nil {
		updated.Name = *input.Name
	}
	updated.LastModified = time.Now().Format(time.RFC3339)

	original := s.tenders
	s.tenders = replaceTender(s.tenders, updated)
	s.mu.Unlock()

	s.inFlight.Add(1)
	err = s.tenderRepo.UpdateTender(ctx, &updated)
	s.inFlight.Add(-1)
	if err != nil {
		s.mu.Lock()
		s.tenders = original
		s.mu.Unlock()

		return nil, fmt.Errorf("updating tender: %w", err)
	}

	return mapTender(&updated), nil
}

// DeleteTender removes a tender remote-first; the local list keeps the entry
// when the remote delete fails. Deleting the active tender selects another
// remaining tender, or none.
func (s *TenderService) DeleteTender(ctx context.Context, tenderId string) error {
	id, err := uuid.Parse(tenderId)
	if err != nil {
		return ErrTenderNotFound
	}

	s.mu.Lock()
	if findTender(s.tenders, id) < 0 {
		s.mu.Unlock()
		return ErrTenderNotFound
	}
	s.mu.Unlock()

	s.inFlight.Add(1)
	err = s.tenderRepo.DeleteTender(ctx, id)
	s.inFlight.Add(-1)
	if err != nil {
		return fmt.Errorf("deleting tender: %w", err)
	}

	s.mu.Lock()
	remaining := make([]entity.TenderProcess, 0, len(s.tenders))
	for _, t := range s.tenders {
		if t.Id != id {
			remaining = append(remaining, t)
		}
	}
	s.tenders = remaining

	activeChanged := false
	if s.activeId == id {
		activeChanged = true
		s.activeId = uuid.Nil
		if len(remaining) > 0 {
			s.activeId = remaining[0].Id
		}
		s.currentStage = 1
		s.completedStages = nil
	}
	newActive := s.activeId
	s.mu.Unlock()

	s.editSessions.DropTender(tenderId)

	if activeChanged {
		value := ""
		if newActive != uuid.Nil {
			value = newActive.String()
		}
		if err := s.activePrefs.SetActiveTenderId(value); err != nil {
			s.log.Warn().Err(err).Msg("could not persist active tender id")
		}
	}

	return nil
}

// SelectTender makes a tender active for editing and resets the wizard
// progress sub-state.
func (s *TenderService) SelectTender(tenderId string) error {
	id, err := uuid.Parse(tenderId)
	if err != nil {
		return ErrTenderNotFound
	}

	s.mu.Lock()
	if findTender(s.tenders, id) < 0 {
		s.mu.Unlock()
		return ErrTenderNotFound
	}
	s.activeId = id
	s.currentStage = 1
	s.completedStages = nil
	s.mu.Unlock()

	if err := s.activePrefs.SetActiveTenderId(id.String()); err != nil {
		s.log.Warn().Err(err).Msg("could not persist active tender id")
	}

	return nil
}

func (s *TenderService) ActiveTenderId() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeId == uuid.Nil {
		return ""
	}

	return s.activeId.String()
}

func (s *TenderService) Progress() (int, []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	completed := make([]int, len(s.completedStages))
	copy(completed, s.completedStages)

	return s.currentStage, completed
}

// AdvanceStage marks the current stage completed and moves to the next one.
// Completing the final stage marks the tender ready to publish and returns
// the user home.
func (s *TenderService) AdvanceStage(ctx context.Context) error {
	s.mu.Lock()
	if s.activeId == uuid.Nil {
		s.mu.Unlock()
		return ErrNoActiveTender
	}

	if !containsStage(s.completedStages, s.currentStage) {
		s.completedStages = append(s.completedStages, s.currentStage)
	}

	if s.currentStage < common.StagesCount {
		s.currentStage++
		s.mu.Unlock()
		return nil
	}

	activeId := s.activeId.String()
	s.mu.Unlock()

	status := common.ReadyToPublish
	if _, err := s.UpdateTenderMeta(ctx, activeId, &entity.TenderMetaInput{Status: &status}); err != nil {
		return err
	}

	s.mu.Lock()
	s.activeId = uuid.Nil
	s.currentStage = 1
	s.completedStages = nil
	s.mu.Unlock()

	if err := s.activePrefs.SetActiveTenderId(""); err != nil {
		s.log.Warn().Err(err).Msg("could not clear active tender id")
	}

	return nil
}

func (s *TenderService) PrevStage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentStage > 1 {
		s.currentStage--
	}
}

// SetStage jumps to a stage the user already completed or passed through.
func (s *TenderService) SetStage(stage int) error {
	if stage < 1 || stage > common.StagesCount {
		return ErrUnknownStage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if containsStage(s.completedStages, stage) || stage < s.currentStage {
		s.currentStage = stage
	}

	return nil
}

// PatchStageData is the hot path: the partial update is merged into the
// stage, the list is replaced immediately so every keystroke is visible, and
// the full updated record is queued for one debounced remote write. The
// remote store may briefly lag behind; a failed save reconciles via reload
// instead of rolling back.
func (s *TenderService) PatchStageData(tenderId string, patch entity.StagePatch) (*entity.TenderOutputModel, error) {
	id, err := uuid.Parse(tenderId)
	if err != nil {
		return nil, ErrTenderNotFound
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
	patch.Apply(&updated.TenderData)
	updated.LastModified = time.Now().Format(time.RFC3339)

	s.tenders = replaceTender(s.tenders, updated)
	saver := s.saver
	s.mu.Unlock()

	saver.Trigger(updated)

	return mapTender(&updated), nil
}

// persistSnapshot is the debounced save target. A failed autosave is not
// rolled back; the list is reloaded from the store so both sides agree again.
func (s *TenderService) persistSnapshot(snapshot entity.TenderProcess) {
	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	ctx, cancel := context.WithTimeout(context.Background(), remoteSaveTimeout)
	defer cancel()

	if err := s.tenderRepo.SaveTenderData(ctx, &snapshot); err != nil {
		s.log.Error().Err(err).Str("tenderId", snapshot.Id.String()).Msg("autosave failed, reloading list to reconcile")

		reloadCtx, reloadCancel := context.WithTimeout(context.Background(), remoteSaveTimeout)
		defer reloadCancel()
		if reloadErr := s.LoadAll(reloadCtx); reloadErr != nil {
			s.log.Error().Err(reloadErr).Msg("reconciliation reload failed")
		}

		return
	}

	s.log.Debug().Str("tenderId", snapshot.Id.String()).Msg("autosave flushed")
}

func findTender(tenders []entity.TenderProcess, id uuid.UUID) int {
	for i := range tenders {
		if tenders[i].Id == id {
			return i
		}
	}

	return -1
}

func replaceTender(tenders []entity.TenderProcess, updated entity.TenderProcess) []entity.TenderProcess {
	next := make([]entity.TenderProcess, len(tenders))
	copy(next, tenders)
	for i := range next {
		if next[i].Id == updated.Id {
			next[i] = updated
		}
	}

	return next
}

func containsStage(stages []int, stage int) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}

	return false
}
