package viewer

import (
	"sync"

	"github.com/quizdeck/triviacast/go/internal/game/events"
	"github.com/quizdeck/triviacast/go/internal/gateway"
	"github.com/quizdeck/triviacast/go/internal/models"
)

// View is a station's local copy of the game state. It layers at most two
// optimistic values, the category and question the operator just acted on,
// over the last authoritative snapshot, so the acting station renders its own
// write immediately instead of waiting for the round trip through the store
// and change feed.
type View struct {
	mu sync.RWMutex

	snapshot *gateway.GameSnapshot

	pendingCategory *models.Category
	pendingQuestion *models.Question
}

func NewView() *View {
	return &View{}
}

// SetPendingCategory records an optimistic category right after a draw.
func (v *View) SetPendingCategory(cat models.Category) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingCategory = &cat
	v.pendingQuestion = nil
}

// SetPendingQuestion records an optimistic question right after a reveal.
func (v *View) SetPendingQuestion(q models.Question) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pendingQuestion = &q
}

// ApplySnapshot replaces the authoritative state. An optimistic value is
// dropped once the authoritative state confirms it, identified by id; a
// snapshot carrying a different value for the slot is stale (from before
// the optimistic write, e.g. a pre-redraw resync) and leaves the pending
// value in place until the feed catches up or the turn ends.
func (v *View) ApplySnapshot(snap *gateway.GameSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.snapshot = snap
	if v.pendingCategory != nil && snap.Session.CurrentCategoryID != nil &&
		*snap.Session.CurrentCategoryID == v.pendingCategory.ID {
		v.pendingCategory = nil
	}
	if v.pendingQuestion != nil && snap.Session.CurrentQuestionID != nil &&
		*snap.Session.CurrentQuestionID == v.pendingQuestion.ID {
		v.pendingQuestion = nil
	}
}

// HandleEvent clears both optimistic slots on turn boundaries so stale
// optimism never leaks into the next turn.
func (v *View) HandleEvent(eventType string) {
	switch eventType {
	case events.TypeTurnAdvanced, events.TypeGameReset:
		v.mu.Lock()
		v.pendingCategory = nil
		v.pendingQuestion = nil
		v.mu.Unlock()
	}
}

// Snapshot returns the last authoritative snapshot, nil before the first.
func (v *View) Snapshot() *gateway.GameSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshot
}

// CategoryName returns the category to display: the optimistic one while the
// authoritative slot is empty, the authoritative name otherwise.
func (v *View) CategoryName() (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.pendingCategory != nil {
		return v.pendingCategory.Name, true
	}
	if v.snapshot != nil && v.snapshot.Session.CurrentCategoryID != nil {
		return v.snapshot.CurrentCategoryName, true
	}
	return "", false
}

// Question returns the question to display, optimistic first.
func (v *View) Question() *models.Question {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.pendingQuestion != nil {
		q := *v.pendingQuestion
		return &q
	}
	if v.snapshot != nil {
		return v.snapshot.CurrentQuestion
	}
	return nil
}
