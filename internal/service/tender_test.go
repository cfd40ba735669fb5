package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tender-drafting-api/internal/ai"
	"tender-drafting-api/internal/common"
	"tender-drafting-api/internal/editor"
	"tender-drafting-api/internal/entity"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

type fakeTenderRepo struct {
	mu sync.Mutex

	// what the "store" holds, returned by ListTenders
	stored []entity.TenderProcess

	listErr   error
	insertErr error
	updateErr error
	saveErr   error
	deleteErr error

	listCalls   int
	insertCalls []entity.TenderProcess
	updateCalls []entity.TenderProcess
	saveCalls   []entity.TenderProcess
	deleteCalls []uuid.UUID
}

func (f *fakeTenderRepo) ListTenders(ctx context.Context) ([]entity.TenderProcess, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]entity.TenderProcess, len(f.stored))
	copy(out, f.stored)

	return out, nil
}

func (f *fakeTenderRepo) InsertTender(ctx context.Context, tender *entity.TenderProcess) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.insertCalls = append(f.insertCalls, *tender)
	if f.insertErr != nil {
		return uuid.Nil, f.insertErr
	}

	stored := *tender
	stored.Id = uuid.New()
	f.stored = append([]entity.TenderProcess{stored}, f.stored...)

	return stored.Id, nil
}

func (f *fakeTenderRepo) UpdateTender(ctx context.Context, tender *entity.TenderProcess) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updateCalls = append(f.updateCalls, *tender)

	return f.updateErr
}

func (f *fakeTenderRepo) SaveTenderData(ctx context.Context, tender *entity.TenderProcess) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saveCalls = append(f.saveCalls, *tender)

	return f.saveErr
}

func (f *fakeTenderRepo) DeleteTender(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleteCalls = append(f.deleteCalls, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}

	remaining := make([]entity.TenderProcess, 0, len(f.stored))
	for _, t := range f.stored {
		if t.Id != id {
			remaining = append(remaining, t)
		}
	}
	f.stored = remaining

	return nil
}

func (f *fakeTenderRepo) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.saveCalls)
}

func (f *fakeTenderRepo) lastSaved() entity.TenderProcess {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.saveCalls[len(f.saveCalls)-1]
}

type fakePrefs struct {
	mu     sync.Mutex
	active string
	getErr error
	setErr error
}

func (f *fakePrefs) ActiveTenderId() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.active, f.getErr
}

func (f *fakePrefs) SetActiveTenderId(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return f.setErr
	}
	f.active = id

	return nil
}

type fakeGenerator struct {
	mu sync.Mutex

	text string
	err  error

	processCalls  int
	lastField     string
	lastAction    ai.Action
	lastCurrent   string
	workflowCalls []string
	workflowErr   error
}

func (f *fakeGenerator) ProcessText(ctx context.Context, tenderName string, data *entity.TenderData, fieldIdentifier string, action ai.Action, currentText string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.processCalls++
	f.lastField = fieldIdentifier
	f.lastAction = action
	f.lastCurrent = currentText

	return f.text, f.err
}

func (f *fakeGenerator) TriggerWorkflow(ctx context.Context, tenderId string, fieldIdentifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.workflowCalls = append(f.workflowCalls, tenderId+"/"+fieldIdentifier)

	return f.workflowErr
}

func newTestService(t *testing.T, repo *fakeTenderRepo, gen *fakeGenerator, prefs *fakePrefs) *TenderService {
	t.Helper()

	if gen == nil {
		gen = &fakeGenerator{}
	}
	if prefs == nil {
		prefs = &fakePrefs{}
	}

	return NewTenderService(repo, gen, prefs, editor.NewManager(), testDebounce, zerolog.Nop())
}

func storedTender(name string) entity.TenderProcess {
	p := entity.NewTenderProcess(name)
	p.Id = uuid.New()

	return p
}

func TestLoadAll_ReplacesListMostRecentFirst(t *testing.T) {
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{storedTender("B"), storedTender("A")}}
	svc := newTestService(t, repo, nil, nil)

	require.NoError(t, svc.LoadAll(context.Background()))
	require.True(t, svc.Loaded())

	tenders := svc.Tenders()
	require.Len(t, tenders, 2)
	require.Equal(t, "B", tenders[0].Name)
}

func TestLoadAll_FailureKeepsEmptyRetryableState(t *testing.T) {
	repo := &fakeTenderRepo{listErr: errors.New("connection refused")}
	svc := newTestService(t, repo, nil, nil)

	require.Error(t, svc.LoadAll(context.Background()))
	require.False(t, svc.Loaded())
	require.Empty(t, svc.Tenders())

	// the error state is retryable: a later load succeeds
	repo.mu.Lock()
	repo.listErr = nil
	repo.stored = []entity.TenderProcess{storedTender("A")}
	repo.mu.Unlock()

	require.NoError(t, svc.LoadAll(context.Background()))
	require.Len(t, svc.Tenders(), 1)
}

func TestLoadAll_AdoptsPersistedActiveIdOnlyIfPresent(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	prefs := &fakePrefs{active: existing.Id.String()}
	svc := newTestService(t, repo, nil, prefs)

	require.NoError(t, svc.LoadAll(context.Background()))
	require.Equal(t, existing.Id.String(), svc.ActiveTenderId())
}

func TestLoadAll_ClearsStaleActiveId(t *testing.T) {
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{storedTender("A")}}
	prefs := &fakePrefs{active: uuid.NewString()}
	svc := newTestService(t, repo, nil, prefs)

	require.NoError(t, svc.LoadAll(context.Background()))
	require.Equal(t, "", svc.ActiveTenderId())
	require.Equal(t, "", prefs.active)
}

func TestCreateTender_RemoteConfirmedIdentity(t *testing.T) {
	repo := &fakeTenderRepo{}
	prefs := &fakePrefs{}
	svc := newTestService(t, repo, nil, prefs)
	require.NoError(t, svc.LoadAll(context.Background()))

	created, err := svc.CreateTender(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Nueva Licitación 1", created.Name)
	require.Equal(t, common.Draft, created.Status)

	// local list adopts the store-assigned id
	tenders := svc.Tenders()
	require.Len(t, tenders, 1)
	require.Equal(t, created.Id, tenders[0].Id)
	require.NotEqual(t, uuid.Nil.String(), created.Id)

	require.Equal(t, created.Id, svc.ActiveTenderId())
	require.Equal(t, created.Id, prefs.active)
}

func TestCreateTender_RemoteFailureAddsNothing(t *testing.T) {
	repo := &fakeTenderRepo{insertErr: errors.New("rls policy missing")}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	_, err := svc.CreateTender(context.Background())
	require.Error(t, err)
	require.Empty(t, svc.Tenders())
	require.Equal(t, "", svc.ActiveTenderId())
}

func TestUpdateTenderMeta_OptimisticRollbackOnFailure(t *testing.T) {
	existing := storedTender("Old name")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	before := svc.Tenders()

	repo.mu.Lock()
	repo.updateErr = errors.New("write rejected")
	repo.mu.Unlock()

	name := "New name"
	_, err := svc.UpdateTenderMeta(context.Background(), existing.Id.String(), &entity.TenderMetaInput{Name: &name})
	require.Error(t, err)

	// list equals the pre-update snapshot
	require.Equal(t, before, svc.Tenders())
}

func TestUpdateTenderMeta_Success(t *testing.T) {
	existing := storedTender("Old name")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	name := "Licitación de impresoras"
	out, err := svc.UpdateTenderMeta(context.Background(), existing.Id.String(), &entity.TenderMetaInput{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, out.Name)
	require.Equal(t, name, svc.Tenders()[0].Name)
	require.Len(t, repo.updateCalls, 1)
}

func TestUpdateTenderMeta_StatusWorkflowValidation(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	bogus := "archived"
	_, err := svc.UpdateTenderMeta(context.Background(), existing.Id.String(), &entity.TenderMetaInput{Status: &bogus})
	require.ErrorIs(t, err, ErrInvalidStatus)

	backwards := common.Draft
	status := common.InternalReview
	_, err = svc.UpdateTenderMeta(context.Background(), existing.Id.String(), &entity.TenderMetaInput{Status: &status})
	require.NoError(t, err)

	_, err = svc.UpdateTenderMeta(context.Background(), existing.Id.String(), &entity.TenderMetaInput{Status: &backwards})
	require.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestDeleteTender_RemoteFirst(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}, deleteErr: errors.New("forbidden")}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	require.Error(t, svc.DeleteTender(context.Background(), existing.Id.String()))
	require.Len(t, svc.Tenders(), 1)

	repo.mu.Lock()
	repo.deleteErr = nil
	repo.mu.Unlock()

	require.NoError(t, svc.DeleteTender(context.Background(), existing.Id.String()))
	require.Empty(t, svc.Tenders())
}

func TestDeleteTender_ActiveFallsBackToRemaining(t *testing.T) {
	first := storedTender("A")
	second := storedTender("B")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{first, second}}
	prefs := &fakePrefs{}
	svc := newTestService(t, repo, nil, prefs)
	require.NoError(t, svc.LoadAll(context.Background()))
	require.NoError(t, svc.SelectTender(first.Id.String()))

	require.NoError(t, svc.DeleteTender(context.Background(), first.Id.String()))
	require.Equal(t, second.Id.String(), svc.ActiveTenderId())
	require.Equal(t, second.Id.String(), prefs.active)

	require.NoError(t, svc.DeleteTender(context.Background(), second.Id.String()))
	require.Equal(t, "", svc.ActiveTenderId())
}

func TestPatchStageData_AppliedLocallyAtOnce(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	exp := "EXP-1"
	_, err := svc.PatchStageData(existing.Id.String(), &entity.Stage1Patch{ExpedientNumber: &exp})
	require.NoError(t, err)

	details, err := svc.GetTender(existing.Id.String())
	require.NoError(t, err)
	require.Equal(t, "EXP-1", details.TenderData.Stage1.ExpedientNumber)

	// the remote write has not happened yet
	require.Equal(t, 0, repo.savedCount())
}

func TestPatchStageData_DebounceCoalescesBurstIntoOneWrite(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	id := existing.Id.String()
	exp := "EXP-1"
	service := "Servicio de limpieza"
	duration := "24 meses"

	_, err := svc.PatchStageData(id, &entity.Stage1Patch{ExpedientNumber: &exp})
	require.NoError(t, err)
	_, err = svc.PatchStageData(id, &entity.Stage1Patch{ServiceName: &service})
	require.NoError(t, err)
	_, err = svc.PatchStageData(id, &entity.Stage1Patch{InitialDuration: &duration})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return repo.savedCount() == 1 }, time.Second, 5*time.Millisecond)

	// no further write arrives after the burst
	time.Sleep(4 * testDebounce)
	require.Equal(t, 1, repo.savedCount())

	// the single payload merges all patches in issue order
	saved := repo.lastSaved()
	require.Equal(t, existing.Id, saved.Id)
	require.Equal(t, "EXP-1", saved.TenderData.Stage1.ExpedientNumber)
	require.Equal(t, "Servicio de limpieza", saved.TenderData.Stage1.ServiceName)
	require.Equal(t, "24 meses", saved.TenderData.Stage1.InitialDuration)
}

func TestPatchStageData_FailedSaveReconcilesByReload(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}, saveErr: errors.New("timeout")}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))
	listCallsAfterLoad := repo.listCalls

	exp := "EXP-1"
	_, err := svc.PatchStageData(existing.Id.String(), &entity.Stage1Patch{ExpedientNumber: &exp})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.listCalls > listCallsAfterLoad
	}, time.Second, 5*time.Millisecond)

	// local-only edits are lost: the list equals what the store reports
	require.Eventually(t, func() bool {
		details, getErr := svc.GetTender(existing.Id.String())
		return getErr == nil && details.TenderData.Stage1.ExpedientNumber == ""
	}, time.Second, 5*time.Millisecond)
}

func TestPatchStageData_LateSaveKeyedByPayloadTender(t *testing.T) {
	first := storedTender("A")
	second := storedTender("B")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{first, second}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	exp := "EXP-A"
	_, err := svc.PatchStageData(first.Id.String(), &entity.Stage1Patch{ExpedientNumber: &exp})
	require.NoError(t, err)

	// the user navigates away before the debounce fires
	require.NoError(t, svc.SelectTender(second.Id.String()))

	require.Eventually(t, func() bool { return repo.savedCount() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, first.Id, repo.lastSaved().Id)
}

func TestFlushPendingSave_SendsImmediately(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))

	exp := "EXP-1"
	_, err := svc.PatchStageData(existing.Id.String(), &entity.Stage1Patch{ExpedientNumber: &exp})
	require.NoError(t, err)

	svc.FlushPendingSave()
	require.Equal(t, 1, repo.savedCount())
}

func TestProgress_SelectResetsAndAdvanceCompletes(t *testing.T) {
	existing := storedTender("A")
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	svc := newTestService(t, repo, nil, nil)
	require.NoError(t, svc.LoadAll(context.Background()))
	require.NoError(t, svc.SelectTender(existing.Id.String()))

	require.NoError(t, svc.AdvanceStage(context.Background()))
	require.NoError(t, svc.AdvanceStage(context.Background()))

	stage, completed := svc.Progress()
	require.Equal(t, 3, stage)
	require.Equal(t, []int{1, 2}, completed)

	svc.PrevStage()
	stage, _ = svc.Progress()
	require.Equal(t, 2, stage)

	require.NoError(t, svc.SetStage(1))
	stage, _ = svc.Progress()
	require.Equal(t, 1, stage)

	require.NoError(t, svc.SelectTender(existing.Id.String()))
	stage, completed = svc.Progress()
	require.Equal(t, 1, stage)
	require.Empty(t, completed)
}

func TestAdvanceStage_FinalStageMarksReadyToPublish(t *testing.T) {
	existing := storedTender("A")
	existing.Status = common.LegalReview
	repo := &fakeTenderRepo{stored: []entity.TenderProcess{existing}}
	prefs := &fakePrefs{}
	svc := newTestService(t, repo, nil, prefs)
	require.NoError(t, svc.LoadAll(context.Background()))
	require.NoError(t, svc.SelectTender(existing.Id.String()))

	for i := 0; i < common.StagesCount; i++ {
		require.NoError(t, svc.AdvanceStage(context.Background()))
	}

	tenders := svc.Tenders()
	require.Equal(t, common.ReadyToPublish, tenders[0].Status)
	require.Equal(t, "", svc.ActiveTenderId())
	require.Equal(t, "", prefs.active)
}
