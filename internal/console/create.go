package console

import (
	"context"
	"errors"
	"strings"

	"github.com/madik/projectdesk/internal/model"
)

// ErrValidation marks a submission rejected locally, before any network
// call.
var ErrValidation = errors.New("validation failed")

// CreateProjectForm is the multi-section creation screen: project core,
// one student or one client depending on the type, a guide common to
// both, and a single payment. The balance is recomputed whenever the
// total fee or the paid amount changes, so it is never derived from a
// stale fee.
type CreateProjectForm struct {
	env Env

	ProjectType model.ProjectType
	Title       string
	Description string
	Technology  string
	Status      model.ProjectStatus

	Student model.Student
	Client  model.Client
	Guide   model.Guide

	PaymentDate   *model.Date
	PaymentMethod string

	totalFee   float64
	paidAmount float64
	balance    float64

	inFlight bool
}

func NewCreateProjectForm(env Env) *CreateProjectForm {
	return &CreateProjectForm{
		env:         env,
		ProjectType: model.ProjectTypeStudent,
		Status:      model.ProjectStatusNotStarted,
	}
}

func (f *CreateProjectForm) SetTotalFee(fee float64) {
	f.totalFee = fee
	f.recompute()
}

func (f *CreateProjectForm) SetPaidAmount(amount float64) {
	f.paidAmount = amount
	f.recompute()
}

func (f *CreateProjectForm) TotalFee() float64   { return f.totalFee }
func (f *CreateProjectForm) PaidAmount() float64 { return f.paidAmount }

// Balance is the live-derived remaining amount shown next to the
// payment fields.
func (f *CreateProjectForm) Balance() float64 { return f.balance }

func (f *CreateProjectForm) recompute() {
	f.balance = model.Balance(f.totalFee, f.paidAmount)
}

// InFlight reports whether a submission is outstanding; the submit
// control stays disabled until it completes or fails.
func (f *CreateProjectForm) InFlight() bool { return f.inFlight }

// Payload builds the creation payload: the branch inactive for the
// selected project type is not included, the guide is attached for both
// types, and the payment's balance and status are derived from the
// submitted values.
func (f *CreateProjectForm) Payload() model.Project {
	payload := model.Project{
		ProjectType: f.ProjectType,
		Title:       f.Title,
		Description: f.Description,
		Technology:  f.Technology,
		TotalFee:    f.totalFee,
		Status:      f.Status,
		Students:    []model.Student{},
		Guides:      []model.Guide{f.Guide},
		Payments: []model.Payment{{
			PaidAmount:    f.paidAmount,
			BalanceAmount: model.Balance(f.totalFee, f.paidAmount),
			PaymentStatus: model.DerivePaymentStatus(f.totalFee, f.paidAmount),
			PaymentDate:   f.PaymentDate,
			PaymentMethod: defaultMethod(f.PaymentMethod),
		}},
	}

	switch f.ProjectType {
	case model.ProjectTypeStudent:
		payload.Students = []model.Student{f.Student}
	case model.ProjectTypeClient:
		client := f.Client
		payload.Client = &client
	}
	return payload
}

// Submit validates locally, then creates the project. A paid amount
// above the total fee is rejected before any network call.
func (f *CreateProjectForm) Submit(ctx context.Context) (*model.Project, error) {
	if f.inFlight {
		return nil, ErrRowBusy
	}

	if msg := f.validate(); msg != "" {
		f.env.Notify.Error(msg)
		return nil, ErrValidation
	}

	f.inFlight = true
	created, err := f.env.API.CreateProject(ctx, f.Payload())
	f.inFlight = false
	if err != nil {
		f.env.handleRequestError(err, "Failed to create project")
		return nil, err
	}

	f.env.Notify.Success("Project created successfully")
	if f.env.Navigate != nil {
		f.env.Navigate(RouteProjects)
	}
	return created, nil
}

// validate returns the user-facing message of the first failed check,
// or "" when the form may be submitted.
func (f *CreateProjectForm) validate() string {
	if f.paidAmount > f.totalFee {
		return "Paid amount cannot exceed total fee"
	}
	if strings.TrimSpace(f.Title) == "" {
		return "Title is required"
	}
	if strings.TrimSpace(f.Description) == "" {
		return "Description is required"
	}
	if strings.TrimSpace(f.Technology) == "" {
		return "Technology is required"
	}
	if f.totalFee < 0 {
		return "Total fee must not be negative"
	}
	return ""
}

func defaultMethod(method string) string {
	if strings.TrimSpace(method) == "" {
		return model.DefaultPaymentMethod
	}
	return method
}
