package viewer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/quizdeck/triviacast/go/internal/game/events"
	"github.com/quizdeck/triviacast/go/internal/gateway"
	"github.com/quizdeck/triviacast/go/internal/models"
)

func snapshotWith(categoryID, questionID *uuid.UUID) *gateway.GameSnapshot {
	s := models.DefaultSession()
	s.CurrentCategoryID = categoryID
	s.CurrentQuestionID = questionID

	snap := &gateway.GameSnapshot{Session: s}
	if categoryID != nil {
		snap.CurrentCategoryName = "Geography"
	}
	if questionID != nil {
		snap.CurrentQuestion = &models.Question{ID: *questionID, QuestionText: "q"}
	}
	return snap
}

func TestPendingCategoryShownUntilAuthoritativeArrives(t *testing.T) {
	v := NewView()
	v.ApplySnapshot(snapshotWith(nil, nil))

	v.SetPendingCategory(models.Category{ID: uuid.New(), Name: "History"})

	name, ok := v.CategoryName()
	if !ok || name != "History" {
		t.Fatalf("CategoryName() = %q, %t, want History", name, ok)
	}

	// An authoritative snapshot still without a category keeps the pending
	// value alive.
	v.ApplySnapshot(snapshotWith(nil, nil))
	if name, ok := v.CategoryName(); !ok || name != "History" {
		t.Fatalf("CategoryName() = %q, %t after empty snapshot, want History", name, ok)
	}
}

func TestConfirmingSnapshotDropsPendingCategory(t *testing.T) {
	v := NewView()
	drawn := models.Category{ID: uuid.New(), Name: "History"}
	v.SetPendingCategory(drawn)

	v.ApplySnapshot(snapshotWith(&drawn.ID, nil))

	name, ok := v.CategoryName()
	if !ok || name != "Geography" {
		t.Fatalf("CategoryName() = %q, %t, want authoritative Geography", name, ok)
	}

	// The pending slot is gone, not just masked: an empty snapshot leaves
	// nothing to show.
	v.ApplySnapshot(snapshotWith(nil, nil))
	if name, ok := v.CategoryName(); ok {
		t.Fatalf("CategoryName() = %q after confirmed drop, want none", name)
	}
}

func TestStaleSnapshotKeepsPendingCategory(t *testing.T) {
	v := NewView()
	redrawn := models.Category{ID: uuid.New(), Name: "History"}
	v.SetPendingCategory(redrawn)

	// A resync from before the redraw still carries the old category; the
	// redraw's value must stay visible until the feed catches up.
	stale := uuid.New()
	v.ApplySnapshot(snapshotWith(&stale, nil))

	name, ok := v.CategoryName()
	if !ok || name != "History" {
		t.Fatalf("CategoryName() = %q, %t with stale snapshot, want History", name, ok)
	}
}

func TestConfirmingSnapshotDropsPendingQuestion(t *testing.T) {
	v := NewView()
	pending := models.Question{ID: uuid.New(), QuestionText: "pending"}
	v.SetPendingQuestion(pending)

	if q := v.Question(); q == nil || q.ID != pending.ID {
		t.Fatal("pending question not shown before snapshot")
	}

	catID := uuid.New()
	v.ApplySnapshot(snapshotWith(&catID, &pending.ID))
	v.ApplySnapshot(snapshotWith(nil, nil))

	if q := v.Question(); q != nil {
		t.Fatalf("Question() = %v after confirmed drop, want nil", q)
	}
}

func TestStaleSnapshotKeepsPendingQuestion(t *testing.T) {
	v := NewView()
	pending := models.Question{ID: uuid.New(), QuestionText: "pending"}
	v.SetPendingQuestion(pending)

	catID, stale := uuid.New(), uuid.New()
	v.ApplySnapshot(snapshotWith(&catID, &stale))

	q := v.Question()
	if q == nil || q.ID != pending.ID {
		t.Fatalf("Question() = %v with stale snapshot, want pending %v", q, pending.ID)
	}
}

func TestPendingCategoryClearsStaleQuestion(t *testing.T) {
	v := NewView()
	v.SetPendingQuestion(models.Question{ID: uuid.New(), QuestionText: "old"})

	v.SetPendingCategory(models.Category{ID: uuid.New(), Name: "History"})

	if q := v.Question(); q != nil {
		t.Errorf("Question() = %v after redraw, want nil", q)
	}
}

func TestTurnBoundaryClearsPendingSlots(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		cleared   bool
	}{
		{name: "turn advanced", eventType: events.TypeTurnAdvanced, cleared: true},
		{name: "game reset", eventType: events.TypeGameReset, cleared: true},
		{name: "unrelated event", eventType: events.TypeSpinningChanged, cleared: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView()
			v.SetPendingCategory(models.Category{ID: uuid.New(), Name: "History"})
			v.SetPendingQuestion(models.Question{ID: uuid.New(), QuestionText: "q"})

			v.HandleEvent(tt.eventType)

			_, hasCategory := v.CategoryName()
			hasQuestion := v.Question() != nil
			if tt.cleared && (hasCategory || hasQuestion) {
				t.Error("pending slots survived turn boundary")
			}
			if !tt.cleared && (!hasCategory || !hasQuestion) {
				t.Error("pending slots cleared by unrelated event")
			}
		})
	}
}
