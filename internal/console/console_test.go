package console

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/madik/projectdesk/internal/model"
)

// fakeAPI is an in-memory API with call counters and switchable
// failure modes.
type fakeAPI struct {
	projects []model.Project
	nextID   int64

	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int

	failWith error
}

func newFakeAPI(projects ...model.Project) *fakeAPI {
	nextID := int64(1)
	for _, p := range projects {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}
	return &fakeAPI{projects: projects, nextID: nextID}
}

func (f *fakeAPI) ListProjects(_ context.Context) ([]model.Project, error) {
	f.listCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	// Deep copy, as a real client decodes a fresh value per response.
	encoded, err := json.Marshal(f.projects)
	if err != nil {
		return nil, err
	}
	var out []model.Project
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeAPI) CreateProject(_ context.Context, payload model.Project) (*model.Project, error) {
	f.createCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	payload.ID = f.nextID
	f.nextID++
	f.projects = append(f.projects, payload)
	return &payload, nil
}

func (f *fakeAPI) UpdateProject(_ context.Context, id int64, payload model.Project) (*model.Project, error) {
	f.updateCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	payload.ID = id
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i] = payload
			return &payload, nil
		}
	}
	return nil, errors.New("project not found")
}

func (f *fakeAPI) DeleteProject(_ context.Context, id int64) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}
	kept := f.projects[:0]
	for _, p := range f.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.projects = kept
	return nil
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Error(msg string)   { n.errors = append(n.errors, msg) }

type staticConfirmer struct {
	answer bool
}

func (c staticConfirmer) Confirm(string) bool { return c.answer }

type testEnv struct {
	api      *fakeAPI
	session  *Session
	notify   *recordingNotifier
	routes   []string
	confirm  *staticConfirmer
	buildEnv Env
}

func newTestEnv(api *fakeAPI) *testEnv {
	session := NewSession(NewMemoryTokenStore())
	_ = session.SetToken("tok-123")

	te := &testEnv{
		api:     api,
		session: session,
		notify:  &recordingNotifier{},
		confirm: &staticConfirmer{answer: true},
	}
	te.buildEnv = Env{
		API:     api,
		Session: session,
		Notify:  te.notify,
		Confirm: te.confirm,
		Navigate: func(route string) {
			te.routes = append(te.routes, route)
		},
	}
	return te
}

func studentProject(id int64, title, studentName, phone string, totalFee, paid float64) model.Project {
	return model.Project{
		ID:          id,
		ProjectType: model.ProjectTypeStudent,
		Title:       title,
		Description: "desc",
		Technology:  "Go",
		TotalFee:    totalFee,
		Status:      model.ProjectStatusInProgress,
		Students:    []model.Student{{Name: studentName, Phone: phone}},
		Guides:      []model.Guide{{Name: "Prof. K"}},
		Payments: []model.Payment{{
			PaidAmount:    paid,
			BalanceAmount: totalFee - paid,
			PaymentStatus: model.DerivePaymentStatus(totalFee, paid),
			PaymentMethod: model.DefaultPaymentMethod,
		}},
	}
}

func clientProject(id int64, title, clientName, phone string, totalFee, paid float64) model.Project {
	p := studentProject(id, title, "", "", totalFee, paid)
	p.ProjectType = model.ProjectTypeClient
	p.Students = nil
	p.Client = &model.Client{Name: clientName, Phone: phone}
	return p
}
