package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/madik/projectdesk/internal/model"
)

// ProjectStore is the persistence surface the project service needs.
type ProjectStore interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id int64) (*model.Project, error)
	Create(ctx context.Context, project model.Project) (*model.Project, error)
	Update(ctx context.Context, project model.Project) (*model.Project, error)
	Delete(ctx context.Context, id int64) error
}

type ExcelGenerator interface {
	Generate(rows []model.PendingPayment) ([]byte, error)
}

type PDFGenerator interface {
	Generate(project model.Project) ([]byte, error)
}

type ProjectService struct {
	repo  ProjectStore
	excel ExcelGenerator
	pdf   PDFGenerator
}

func NewProjectService(repo ProjectStore, excel ExcelGenerator, pdf PDFGenerator) *ProjectService {
	return &ProjectService{repo: repo, excel: excel, pdf: pdf}
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.List(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// Create validates the payload, discards the branch inactive for the
// project type, derives every payment's balance and status and stores
// the project with its nested records as one atomic write. Exactly one
// payment is attached at creation.
func (s *ProjectService) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	if err := validateCore(&project); err != nil {
		return nil, err
	}
	if len(project.Payments) != 1 {
		return nil, fmt.Errorf("%w: exactly one payment is required at creation", ErrInvalidInput)
	}
	normalize(&project)
	return s.repo.Create(ctx, project)
}

// Update replaces the whole project record. Balance and payment status
// are re-derived from the submitted paid_amount and total_fee on every
// update; a stored status is never trusted over the derivation.
func (s *ProjectService) Update(ctx context.Context, id int64, project model.Project) (*model.Project, error) {
	project.ID = id
	if err := validateCore(&project); err != nil {
		return nil, err
	}
	normalize(&project)

	updated, err := s.repo.Update(ctx, project)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// PendingPayments flattens every PENDING payment across all projects.
func (s *ProjectService) PendingPayments(ctx context.Context) ([]model.PendingPayment, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.PendingPayments(projects), nil
}

type ExportResult struct {
	FileName string
	Content  []byte
}

// ExportPendingPayments renders the pending-payments projection as a
// workbook.
func (s *ProjectService) ExportPendingPayments(ctx context.Context) (*ExportResult, error) {
	rows, err := s.PendingPayments(ctx)
	if err != nil {
		return nil, err
	}
	content, err := s.excel.Generate(rows)
	if err != nil {
		return nil, err
	}
	return &ExportResult{FileName: "pending-payments.xlsx", Content: content}, nil
}

// ProjectStatement renders a single project's payment statement as PDF.
func (s *ProjectService) ProjectStatement(ctx context.Context, id int64) (*ExportResult, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(*project)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("project-%d-statement.pdf", project.ID),
		Content:  content,
	}, nil
}

// validateCore enforces the invariants shared by create and update:
// required text fields, a non-negative fee, a known type and status,
// the type-matching counterparty branch, and paid_amount never above
// total_fee on any payment.
func validateCore(project *model.Project) error {
	if strings.TrimSpace(project.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(project.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if strings.TrimSpace(project.Technology) == "" {
		return fmt.Errorf("%w: technology is required", ErrInvalidInput)
	}
	if project.TotalFee < 0 {
		return fmt.Errorf("%w: total_fee must not be negative", ErrInvalidInput)
	}

	switch project.ProjectType {
	case model.ProjectTypeStudent:
		if len(project.Students) == 0 {
			return fmt.Errorf("%w: a STUDENT project requires at least one student", ErrInvalidInput)
		}
	case model.ProjectTypeClient:
		if project.Client == nil {
			return fmt.Errorf("%w: a CLIENT project requires a client", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: invalid project_type", ErrInvalidInput)
	}

	if _, ok := model.ParseProjectStatus(string(project.Status)); !ok {
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	for _, payment := range project.Payments {
		if payment.PaidAmount < 0 {
			return fmt.Errorf("%w: paid_amount must not be negative", ErrInvalidInput)
		}
		if payment.PaidAmount > project.TotalFee {
			return fmt.Errorf("%w: paid amount cannot exceed total fee", ErrInvalidInput)
		}
	}
	return nil
}

// normalize discards the inactive counterparty branch and re-derives
// payment balances and statuses from the submitted values.
func normalize(project *model.Project) {
	switch project.ProjectType {
	case model.ProjectTypeStudent:
		project.Client = nil
	case model.ProjectTypeClient:
		project.Students = nil
	}

	for i := range project.Payments {
		project.Payments[i].Derive(project.TotalFee)
	}
}
