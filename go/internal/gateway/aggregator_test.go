package gateway

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/quizdeck/triviacast/go/internal/models"
)

type fakeStore struct {
	session    models.Session
	teams      []models.Team
	categories []models.Category
	questions  map[uuid.UUID]models.Question

	failSession bool
	failTeams   bool
}

func (f *fakeStore) GetSession(context.Context) (*models.Session, error) {
	if f.failSession {
		return nil, errors.New("db down")
	}
	s := f.session
	return &s, nil
}

func (f *fakeStore) ListTeams(context.Context) ([]models.Team, error) {
	if f.failTeams {
		return nil, errors.New("db down")
	}
	return f.teams, nil
}

func (f *fakeStore) ListCategories(context.Context) ([]models.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) GetQuestion(_ context.Context, id uuid.UUID) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, errors.New("question not found")
	}
	return &q, nil
}

type fakeBroadcaster struct {
	snapshots []*GameSnapshot
}

func (f *fakeBroadcaster) BroadcastSnapshot(snap *GameSnapshot) {
	f.snapshots = append(f.snapshots, snap)
}

func TestResyncBuildsSnapshot(t *testing.T) {
	cat := models.Category{ID: uuid.New(), Name: "Geography"}
	q := models.Question{ID: uuid.New(), CategoryID: cat.ID, Difficulty: models.RoundEasy, QuestionText: "q"}

	s := models.DefaultSession()
	s.CurrentCategoryID = &cat.ID
	s.CurrentQuestionID = &q.ID

	store := &fakeStore{
		session:    s,
		teams:      []models.Team{{ID: uuid.New(), Name: "Alpha"}},
		categories: []models.Category{cat},
		questions:  map[uuid.UUID]models.Question{q.ID: q},
	}
	bc := &fakeBroadcaster{}
	agg := NewAggregator(store, bc, clockwork.NewFakeClock())

	agg.Resync(context.Background())

	snap := agg.Current()
	if snap == nil {
		t.Fatal("Current() = nil after resync")
	}
	if snap.CurrentCategoryName != "Geography" {
		t.Errorf("CurrentCategoryName = %q, want Geography", snap.CurrentCategoryName)
	}
	if snap.CurrentQuestion == nil || snap.CurrentQuestion.ID != q.ID {
		t.Errorf("CurrentQuestion = %v, want %v", snap.CurrentQuestion, q.ID)
	}
	if snap.CurrentQuestionCategory != "Geography" {
		t.Errorf("CurrentQuestionCategory = %q, want Geography", snap.CurrentQuestionCategory)
	}
	if len(snap.Teams) != 1 {
		t.Errorf("Teams = %d, want 1", len(snap.Teams))
	}
	if len(bc.snapshots) != 1 {
		t.Errorf("broadcasts = %d, want 1", len(bc.snapshots))
	}
}

func TestResyncDanglingCategory(t *testing.T) {
	deleted := uuid.New()
	s := models.DefaultSession()
	s.CurrentCategoryID = &deleted

	store := &fakeStore{session: s}
	agg := NewAggregator(store, &fakeBroadcaster{}, clockwork.NewFakeClock())

	agg.Resync(context.Background())

	if got := agg.Current().CurrentCategoryName; got != UnknownCategoryName {
		t.Errorf("CurrentCategoryName = %q, want %q", got, UnknownCategoryName)
	}
}

func TestResyncQuestionWithDeletedCategory(t *testing.T) {
	deleted := uuid.New()
	q := models.Question{ID: uuid.New(), CategoryID: deleted, Difficulty: models.RoundEasy, QuestionText: "q"}

	s := models.DefaultSession()
	s.CurrentQuestionID = &q.ID

	store := &fakeStore{
		session:   s,
		questions: map[uuid.UUID]models.Question{q.ID: q},
	}
	agg := NewAggregator(store, &fakeBroadcaster{}, clockwork.NewFakeClock())

	agg.Resync(context.Background())

	snap := agg.Current()
	if snap.CurrentQuestion == nil {
		t.Fatal("CurrentQuestion = nil, question should still be served")
	}
	if snap.CurrentQuestionCategory != "" {
		t.Errorf("CurrentQuestionCategory = %q, want empty for a deleted category", snap.CurrentQuestionCategory)
	}
}

func TestResyncSessionFailureKeepsPreviousSnapshot(t *testing.T) {
	store := &fakeStore{session: models.DefaultSession()}
	bc := &fakeBroadcaster{}
	agg := NewAggregator(store, bc, clockwork.NewFakeClock())

	agg.Resync(context.Background())
	previous := agg.Current()

	store.failSession = true
	agg.Resync(context.Background())

	if agg.Current() != previous {
		t.Error("failed resync replaced the previous snapshot")
	}
	if len(bc.snapshots) != 1 {
		t.Errorf("broadcasts = %d, want 1", len(bc.snapshots))
	}
}

func TestResyncTeamsFailureDegrades(t *testing.T) {
	store := &fakeStore{
		session:   models.DefaultSession(),
		teams:     []models.Team{{ID: uuid.New(), Name: "Alpha"}},
		failTeams: true,
	}
	agg := NewAggregator(store, &fakeBroadcaster{}, clockwork.NewFakeClock())

	agg.Resync(context.Background())

	snap := agg.Current()
	if snap == nil {
		t.Fatal("Current() = nil, degraded resync should still produce a snapshot")
	}
	if snap.Teams != nil {
		t.Errorf("Teams = %v, want nil", snap.Teams)
	}
}

func TestResyncMissingQuestionDegrades(t *testing.T) {
	gone := uuid.New()
	s := models.DefaultSession()
	s.CurrentQuestionID = &gone

	store := &fakeStore{session: s}
	agg := NewAggregator(store, &fakeBroadcaster{}, clockwork.NewFakeClock())

	agg.Resync(context.Background())

	if snap := agg.Current(); snap.CurrentQuestion != nil {
		t.Errorf("CurrentQuestion = %v, want nil", snap.CurrentQuestion)
	}
}

func TestNotifyCoalesces(t *testing.T) {
	agg := NewAggregator(&fakeStore{session: models.DefaultSession()}, &fakeBroadcaster{}, clockwork.NewFakeClock())

	for i := 0; i < 10; i++ {
		agg.Notify()
	}

	if got := len(agg.trigger); got != 1 {
		t.Errorf("pending triggers = %d, want 1", got)
	}
}
