package console

import (
	"context"

	"github.com/madik/projectdesk/internal/model"
)

// PendingPaymentsView is the read-only flattened projection of every
// PENDING payment across all projects. It fetches its own copy of the
// collection; there is no cross-view cache.
type PendingPaymentsView struct {
	env  Env
	rows []model.PendingPayment
}

func NewPendingPaymentsView(env Env) *PendingPaymentsView {
	return &PendingPaymentsView{env: env}
}

func (v *PendingPaymentsView) Load(ctx context.Context) error {
	projects, err := v.env.API.ListProjects(ctx)
	if err != nil {
		v.env.handleRequestError(err, "Failed to fetch payments")
		return err
	}
	v.rows = model.PendingPayments(projects)
	return nil
}

func (v *PendingPaymentsView) Rows() []model.PendingPayment { return v.rows }
