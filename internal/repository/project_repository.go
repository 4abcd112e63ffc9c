package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/madik/projectdesk/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type projectRow struct {
	ID          int64
	ProjectType model.ProjectType
	Title       string
	Description string
	Technology  string
	TotalFee    float64
	Status      model.ProjectStatus
	CreatedAt   time.Time
}

type studentRow struct {
	ID        int64
	ProjectID int64
	Name      string
	College   string
	Batch     string
	Phone     string
	Email     string
}

type clientRow struct {
	ID        int64
	ProjectID int64
	Name      string
	Company   string
	Phone     string
	Email     string
}

type guideRow struct {
	ID        int64
	ProjectID int64
	Name      string
	Phone     string
	Email     string
}

type paymentRow struct {
	ID            int64
	ProjectID     int64
	PaidAmount    float64
	BalanceAmount float64
	PaymentStatus model.PaymentStatus
	PaymentDate   *time.Time
	PaymentMethod string
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	var rows []projectRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_type, title, description, technology, total_fee, status, created_at
		FROM projects
		ORDER BY id ASC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	projects := make([]model.Project, 0, len(rows))
	index := make(map[int64]int, len(rows))
	for _, row := range rows {
		projects = append(projects, projectFromRow(row))
		index[row.ID] = len(projects) - 1
	}
	if len(projects) == 0 {
		return projects, nil
	}

	if err := r.attachChildren(ctx, projects, index, nil); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	var row projectRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_type, title, description, technology, total_fee, status, created_at
		FROM projects
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	projects := []model.Project{projectFromRow(row)}
	index := map[int64]int{row.ID: 0}
	if err := r.attachChildren(ctx, projects, index, &id); err != nil {
		return nil, err
	}
	return &projects[0], nil
}

func (r *ProjectRepository) Create(ctx context.Context, project model.Project) (*model.Project, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO projects (project_type, title, description, technology, total_fee, status)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			project.ProjectType,
			project.Title,
			project.Description,
			project.Technology,
			project.TotalFee,
			project.Status,
		).Scan(&id).Error
		if err != nil {
			return err
		}
		return insertChildren(tx, id, project)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update replaces the whole project record: the row is updated and all
// nested records are deleted and reinserted from the payload.
func (r *ProjectRepository) Update(ctx context.Context, project model.Project) (*model.Project, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(`
			UPDATE projects
			SET project_type = ?, title = ?, description = ?, technology = ?, total_fee = ?, status = ?
			WHERE id = ?
		`,
			project.ProjectType,
			project.Title,
			project.Description,
			project.Technology,
			project.TotalFee,
			project.Status,
			project.ID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		for _, table := range []string{"students", "clients", "guides", "payments"} {
			if err := tx.Exec(`DELETE FROM `+table+` WHERE project_id = ?`, project.ID).Error; err != nil {
				return err
			}
		}
		return insertChildren(tx, project.ID, project)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, project.ID)
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM projects WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func insertChildren(tx *gorm.DB, projectID int64, project model.Project) error {
	for i, student := range project.Students {
		if err := tx.Exec(`
			INSERT INTO students (project_id, position, name, college, batch, phone, email)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, projectID, i, student.Name, student.College, student.Batch, student.Phone, student.Email).Error; err != nil {
			return err
		}
	}

	if project.Client != nil {
		if err := tx.Exec(`
			INSERT INTO clients (project_id, name, company, phone, email)
			VALUES (?, ?, ?, ?, ?)
		`, projectID, project.Client.Name, project.Client.Company, project.Client.Phone, project.Client.Email).Error; err != nil {
			return err
		}
	}

	for i, guide := range project.Guides {
		if err := tx.Exec(`
			INSERT INTO guides (project_id, position, name, phone, email)
			VALUES (?, ?, ?, ?, ?)
		`, projectID, i, guide.Name, guide.Phone, guide.Email).Error; err != nil {
			return err
		}
	}

	for i, payment := range project.Payments {
		var paymentDate *time.Time
		if payment.PaymentDate != nil && !payment.PaymentDate.IsZero() {
			paymentDate = &payment.PaymentDate.Time
		}
		if err := tx.Exec(`
			INSERT INTO payments (project_id, position, paid_amount, balance_amount, payment_status, payment_date, payment_method)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, projectID, i, payment.PaidAmount, payment.BalanceAmount, payment.PaymentStatus, paymentDate, payment.PaymentMethod).Error; err != nil {
			return err
		}
	}
	return nil
}

// attachChildren loads nested records for the given projects in one
// query per table. scope narrows the queries to a single project id.
func (r *ProjectRepository) attachChildren(ctx context.Context, projects []model.Project, index map[int64]int, scope *int64) error {
	where, args := "", []interface{}{}
	if scope != nil {
		where, args = " WHERE project_id = ?", []interface{}{*scope}
	}

	var students []studentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, name, college, batch, phone, email
		FROM students`+where+`
		ORDER BY project_id, position, id
	`, args...).Scan(&students).Error; err != nil {
		return err
	}
	for _, row := range students {
		if pos, ok := index[row.ProjectID]; ok {
			projects[pos].Students = append(projects[pos].Students, model.Student{
				ID:      row.ID,
				Name:    row.Name,
				College: row.College,
				Batch:   row.Batch,
				Phone:   row.Phone,
				Email:   row.Email,
			})
		}
	}

	var clients []clientRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, name, company, phone, email
		FROM clients`+where+`
		ORDER BY project_id, id
	`, args...).Scan(&clients).Error; err != nil {
		return err
	}
	for _, row := range clients {
		if pos, ok := index[row.ProjectID]; ok {
			projects[pos].Client = &model.Client{
				ID:      row.ID,
				Name:    row.Name,
				Company: row.Company,
				Phone:   row.Phone,
				Email:   row.Email,
			}
		}
	}

	var guides []guideRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, name, phone, email
		FROM guides`+where+`
		ORDER BY project_id, position, id
	`, args...).Scan(&guides).Error; err != nil {
		return err
	}
	for _, row := range guides {
		if pos, ok := index[row.ProjectID]; ok {
			projects[pos].Guides = append(projects[pos].Guides, model.Guide{
				ID:    row.ID,
				Name:  row.Name,
				Phone: row.Phone,
				Email: row.Email,
			})
		}
	}

	var payments []paymentRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, project_id, paid_amount, balance_amount, payment_status, payment_date, payment_method
		FROM payments`+where+`
		ORDER BY project_id, position, id
	`, args...).Scan(&payments).Error; err != nil {
		return err
	}
	for _, row := range payments {
		if pos, ok := index[row.ProjectID]; ok {
			var paymentDate *model.Date
			if row.PaymentDate != nil {
				paymentDate = model.NewDate(*row.PaymentDate)
			}
			projects[pos].Payments = append(projects[pos].Payments, model.Payment{
				ID:            row.ID,
				PaidAmount:    row.PaidAmount,
				BalanceAmount: row.BalanceAmount,
				PaymentStatus: row.PaymentStatus,
				PaymentDate:   paymentDate,
				PaymentMethod: row.PaymentMethod,
			})
		}
	}
	return nil
}

func projectFromRow(row projectRow) model.Project {
	return model.Project{
		ID:          row.ID,
		ProjectType: row.ProjectType,
		Title:       row.Title,
		Description: row.Description,
		Technology:  row.Technology,
		TotalFee:    row.TotalFee,
		Status:      row.Status,
		Students:    []model.Student{},
		Guides:      []model.Guide{},
		Payments:    []model.Payment{},
		CreatedAt:   row.CreatedAt,
	}
}
