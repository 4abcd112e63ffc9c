package model

// PendingPayment is one row of the pending-payments projection: a
// PENDING payment flattened together with its parent project and the
// contact resolved for the project's variant.
type PendingPayment struct {
	ProjectID     int64         `json:"project_id"`
	ProjectTitle  string        `json:"project_title"`
	ContactName   string        `json:"contact_name"`
	ContactPhone  string        `json:"contact_phone"`
	TotalFee      float64       `json:"total_fee"`
	PaidAmount    float64       `json:"paid_amount"`
	BalanceAmount float64       `json:"balance_amount"`
	PaymentDate   *Date         `json:"payment_date"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// PendingPayments flattens every PENDING payment across the given
// projects, preserving project order and payment order within a
// project.
func PendingPayments(projects []Project) []PendingPayment {
	var rows []PendingPayment
	for i := range projects {
		project := &projects[i]
		name, phone := project.Party()
		for _, payment := range project.Payments {
			if payment.PaymentStatus != PaymentStatusPending {
				continue
			}
			rows = append(rows, PendingPayment{
				ProjectID:     project.ID,
				ProjectTitle:  project.Title,
				ContactName:   name,
				ContactPhone:  phone,
				TotalFee:      project.TotalFee,
				PaidAmount:    payment.PaidAmount,
				BalanceAmount: payment.BalanceAmount,
				PaymentDate:   payment.PaymentDate,
				PaymentMethod: payment.PaymentMethod,
				PaymentStatus: payment.PaymentStatus,
			})
		}
	}
	return rows
}
