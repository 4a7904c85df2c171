package team

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/quizdeck/triviacast/go/internal/game/events"
	"github.com/quizdeck/triviacast/go/internal/models"
)

type fakeRepo struct {
	teams []models.Team
}

func (f *fakeRepo) CreateTeam(_ context.Context, name string) (*models.Team, error) {
	t := models.Team{ID: uuid.New(), Name: name, IsActive: true}
	f.teams = append(f.teams, t)
	return &t, nil
}

func (f *fakeRepo) GetTeam(_ context.Context, id uuid.UUID) (*models.Team, error) {
	for _, t := range f.teams {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) ListTeams(context.Context) ([]models.Team, error) {
	return f.teams, nil
}

func (f *fakeRepo) ListActiveTeams(context.Context) ([]models.Team, error) {
	var active []models.Team
	for _, t := range f.teams {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	for i := range f.teams {
		if f.teams[i].ID == id {
			f.teams[i].IsActive = active
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) DeleteTeam(_ context.Context, id uuid.UUID) error {
	for i, t := range f.teams {
		if t.ID == id {
			f.teams = append(f.teams[:i], f.teams[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type fakeOutbox struct {
	types []string
}

func (f *fakeOutbox) Insert(_ context.Context, eventType string, _ []byte) error {
	f.types = append(f.types, eventType)
	return nil
}

func TestCreateTeam(t *testing.T) {
	tests := []struct {
		name     string
		teamName string
		wantName string
		wantErr  bool
	}{
		{name: "valid", teamName: "Alpha", wantName: "Alpha"},
		{name: "trims whitespace", teamName: "  Alpha  ", wantName: "Alpha"},
		{name: "empty", teamName: "", wantErr: true},
		{name: "whitespace only", teamName: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outbox := &fakeOutbox{}
			app := NewApp(&fakeRepo{}, outbox)

			created, err := app.CreateTeam(context.Background(), tt.teamName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateTeam(%q) error = %v, wantErr %t", tt.teamName, err, tt.wantErr)
			}
			if tt.wantErr {
				if len(outbox.types) != 0 {
					t.Errorf("outbox events = %v, want none", outbox.types)
				}
				return
			}
			if created.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", created.Name, tt.wantName)
			}
			if len(outbox.types) != 1 || outbox.types[0] != events.TypeTeamsChanged {
				t.Errorf("outbox events = %v, want [TeamsChanged]", outbox.types)
			}
		})
	}
}

func TestSetActiveAndDeleteEmitEvents(t *testing.T) {
	outbox := &fakeOutbox{}
	repo := &fakeRepo{}
	app := NewApp(repo, outbox)

	created, err := app.CreateTeam(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if err := app.SetActive(context.Background(), created.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if err := app.DeleteTeam(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteTeam() error = %v", err)
	}

	if len(outbox.types) != 3 {
		t.Errorf("outbox events = %v, want three TeamsChanged", outbox.types)
	}
}
