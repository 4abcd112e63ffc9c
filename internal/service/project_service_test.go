package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/madik/projectdesk/internal/model"
)

// fakeProjectStore is an in-memory ProjectStore recording write calls.
type fakeProjectStore struct {
	projects    map[int64]model.Project
	nextID      int64
	createCalls int
	updateCalls int
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[int64]model.Project{}, nextID: 1}
}

func (f *fakeProjectStore) List(_ context.Context) ([]model.Project, error) {
	var out []model.Project
	for id := int64(1); id < f.nextID; id++ {
		if p, ok := f.projects[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) Get(_ context.Context, id int64) (*model.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProjectStore) Create(_ context.Context, project model.Project) (*model.Project, error) {
	f.createCalls++
	project.ID = f.nextID
	f.nextID++
	f.projects[project.ID] = project
	return &project, nil
}

func (f *fakeProjectStore) Update(_ context.Context, project model.Project) (*model.Project, error) {
	f.updateCalls++
	if _, ok := f.projects[project.ID]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	f.projects[project.ID] = project
	return &project, nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.projects, id)
	return nil
}

func newTestService() (*ProjectService, *fakeProjectStore) {
	store := newFakeProjectStore()
	return NewProjectService(store, nil, nil), store
}

func studentPayload(totalFee, paid float64) model.Project {
	return model.Project{
		ProjectType: model.ProjectTypeStudent,
		Title:       "Portal",
		Description: "A campus portal",
		Technology:  "Go",
		TotalFee:    totalFee,
		Status:      model.ProjectStatusNotStarted,
		Students:    []model.Student{{Name: "Asel", Phone: "111"}},
		Guides:      []model.Guide{{Name: "Prof. K"}},
		Payments:    []model.Payment{{PaidAmount: paid}},
	}
}

func clientPayload(totalFee, paid float64) model.Project {
	p := studentPayload(totalFee, paid)
	p.ProjectType = model.ProjectTypeClient
	p.Students = nil
	p.Client = &model.Client{Name: "Acme", Phone: "333"}
	return p
}

func TestCreateDerivesPaymentFields(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), studentPayload(1000, 1000))
	require.NoError(t, err)
	require.Len(t, created.Payments, 1)
	assert.Equal(t, 0.0, created.Payments[0].BalanceAmount)
	assert.Equal(t, model.PaymentStatusPaid, created.Payments[0].PaymentStatus)
	assert.Equal(t, model.DefaultPaymentMethod, created.Payments[0].PaymentMethod)

	created, err = svc.Create(context.Background(), studentPayload(1000, 400))
	require.NoError(t, err)
	assert.Equal(t, 600.0, created.Payments[0].BalanceAmount)
	assert.Equal(t, model.PaymentStatusPending, created.Payments[0].PaymentStatus)
}

func TestCreateRejectsOverpaymentBeforeStore(t *testing.T) {
	svc, store := newTestService()

	_, err := svc.Create(context.Background(), studentPayload(1000, 1500))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, store.createCalls)
}

func TestCreateValidatesRequiredFields(t *testing.T) {
	svc, store := newTestService()

	for _, mutate := range []func(*model.Project){
		func(p *model.Project) { p.Title = " " },
		func(p *model.Project) { p.Description = "" },
		func(p *model.Project) { p.Technology = "" },
		func(p *model.Project) { p.TotalFee = -1 },
		func(p *model.Project) { p.Status = "DONE" },
		func(p *model.Project) { p.Payments = nil },
		func(p *model.Project) { p.Students = nil },
	} {
		payload := studentPayload(1000, 100)
		mutate(&payload)
		_, err := svc.Create(context.Background(), payload)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
	assert.Zero(t, store.createCalls)
}

func TestCreateDiscardsInactiveBranch(t *testing.T) {
	svc, _ := newTestService()

	payload := studentPayload(1000, 100)
	payload.Client = &model.Client{Name: "stray"}
	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Nil(t, created.Client)
	assert.NotEmpty(t, created.Students)

	payload = clientPayload(1000, 100)
	payload.Students = []model.Student{{Name: "stray"}}
	created, err = svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Nil(t, created.Students)
	require.NotNil(t, created.Client)
	assert.Equal(t, "Acme", created.Client.Name)
}

func TestCreateRequiresTypeMatchingBranch(t *testing.T) {
	svc, _ := newTestService()

	payload := studentPayload(1000, 100)
	payload.Students = nil
	_, err := svc.Create(context.Background(), payload)
	assert.ErrorIs(t, err, ErrInvalidInput)

	payload = clientPayload(1000, 100)
	payload.Client = nil
	_, err = svc.Create(context.Background(), payload)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRederivesPaymentFields(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), studentPayload(1000, 1000))
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusPaid, created.Payments[0].PaymentStatus)

	// Raising the fee reopens the payment even if the submitted record
	// still claims PAID.
	edited := *created
	edited.TotalFee = 2000
	updated, err := svc.Update(context.Background(), created.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, updated.Payments[0].BalanceAmount)
	assert.Equal(t, model.PaymentStatusPending, updated.Payments[0].PaymentStatus)
}

func TestUpdateRejectsOverpayment(t *testing.T) {
	svc, store := newTestService()

	created, err := svc.Create(context.Background(), studentPayload(1000, 400))
	require.NoError(t, err)

	edited := *created
	edited.Payments = []model.Payment{{PaidAmount: 5000}}
	_, err = svc.Update(context.Background(), created.ID, edited)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, store.updateCalls)
}

func TestUpdateUnknownProject(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), 42, studentPayload(1000, 100))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), studentPayload(1000, 100))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)
}

func TestPendingPaymentsAcrossTypes(t *testing.T) {
	svc, _ := newTestService()

	paid, err := svc.Create(context.Background(), studentPayload(1000, 1000))
	require.NoError(t, err)
	pendingStudent, err := svc.Create(context.Background(), studentPayload(1000, 400))
	require.NoError(t, err)
	pendingClient, err := svc.Create(context.Background(), clientPayload(2000, 500))
	require.NoError(t, err)

	rows, err := svc.PendingPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ids := []int64{rows[0].ProjectID, rows[1].ProjectID}
	assert.NotContains(t, ids, paid.ID)
	assert.Contains(t, ids, pendingStudent.ID)
	assert.Contains(t, ids, pendingClient.ID)

	assert.Equal(t, "Asel", rows[0].ContactName)
	assert.Equal(t, "111", rows[0].ContactPhone)
	assert.Equal(t, 600.0, rows[0].BalanceAmount)

	assert.Equal(t, "Acme", rows[1].ContactName)
	assert.Equal(t, "333", rows[1].ContactPhone)
	assert.Equal(t, 1500.0, rows[1].BalanceAmount)
}
