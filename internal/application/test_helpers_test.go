package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/scholarship-tracker/internal/db"
	"github.com/jonathan/scholarship-tracker/internal/llm"
)

// fakeStore is an in-memory Store for unit tests
type fakeStore struct {
	scholarships map[uuid.UUID]*db.Scholarship
	applications map[uuid.UUID]*db.Application
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		scholarships: make(map[uuid.UUID]*db.Scholarship),
		applications: make(map[uuid.UUID]*db.Application),
	}
}

func (f *fakeStore) GetScholarship(_ context.Context, id uuid.UUID) (*db.Scholarship, error) {
	return f.scholarships[id], nil
}

func (f *fakeStore) GetApplication(_ context.Context, id uuid.UUID) (*db.Application, error) {
	if app, ok := f.applications[id]; ok {
		copied := *app
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeStore) GetApplicationByPair(_ context.Context, userID, scholarshipID uuid.UUID) (*db.Application, error) {
	for _, app := range f.applications {
		if app.UserID == userID && app.ScholarshipID == scholarshipID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateApplication(_ context.Context, userID, scholarshipID uuid.UUID) (*db.Application, error) {
	now := time.Now()
	app := &db.Application{
		ID:            uuid.New(),
		UserID:        userID,
		ScholarshipID: scholarshipID,
		Status:        db.ApplicationStatusInProgress,
		CurrentStage:  db.StageEssay,
		Stages:        db.NewStages(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.applications[app.ID] = app
	return app, nil
}

func (f *fakeStore) ListApplicationsByUser(_ context.Context, userID uuid.UUID) ([]db.Application, error) {
	var apps []db.Application
	for _, app := range f.applications {
		if app.UserID == userID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (f *fakeStore) UpdateApplication(_ context.Context, id uuid.UUID, mutate func(*db.Application) error) (*db.Application, error) {
	app, ok := f.applications[id]
	if !ok {
		return nil, nil
	}
	copied := *app
	if err := mutate(&copied); err != nil {
		return nil, err
	}
	copied.UpdatedAt = time.Now()
	f.applications[id] = &copied
	result := copied
	return &result, nil
}

// fakeLLM is a canned llm.Client for unit tests
type fakeLLM struct {
	response string
	err      error
	calls    int
}

var _ llm.Client = (*fakeLLM)(nil)

func (f *fakeLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) GenerateWithSystem(_ context.Context, _, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

// openScholarship returns a scholarship accepting applications right now
func openScholarship() *db.Scholarship {
	return &db.Scholarship{
		ID:                   uuid.New(),
		Title:                "STEM Futures Scholarship",
		Provider:             "Futures Foundation",
		Status:               db.ScholarshipStatusOpen,
		OpeningDate:          time.Now().Add(-24 * time.Hour),
		ClosingDate:          time.Now().Add(24 * time.Hour),
		EssayQuestion:        "Why do you deserve this scholarship?",
		GroupTaskDescription: "Design a community recycling program.",
		InterviewFocusAreas:  []string{"leadership", "goals"},
	}
}

// fixture wires a Service over fresh fakes
type fixture struct {
	store   *fakeStore
	llm     *fakeLLM
	service *Service
	userID  uuid.UUID
	sch     *db.Scholarship
}

func newFixture() *fixture {
	store := newFakeStore()
	fake := &fakeLLM{response: "generated guidance"}
	sch := openScholarship()
	store.scholarships[sch.ID] = sch
	return &fixture{
		store:   store,
		llm:     fake,
		service: NewService(store, fake),
		userID:  uuid.New(),
		sch:     sch,
	}
}

// start creates an application for the fixture user, panicking on failure
func (fx *fixture) start() *db.Application {
	app, err := fx.service.Start(context.Background(), fx.userID, fx.sch.ID)
	if err != nil {
		panic(fmt.Sprintf("fixture start failed: %v", err))
	}
	return app
}
