package model

import (
	"strings"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusPending PaymentStatus = "PENDING"
)

const DefaultPaymentMethod = "CASH"

type Payment struct {
	ID            int64         `json:"id,omitempty"`
	PaidAmount    float64       `json:"paid_amount"`
	BalanceAmount float64       `json:"balance_amount"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaymentDate   *Date         `json:"payment_date"`
	PaymentMethod string        `json:"payment_method"`
}

// Balance is the remaining amount owed against the project's total fee.
func Balance(totalFee, paidAmount float64) float64 {
	return totalFee - paidAmount
}

// DerivePaymentStatus settles a payment iff the paid amount exactly
// equals the total fee. Comparison is on the submitted values, never on
// a previously stored balance.
func DerivePaymentStatus(totalFee, paidAmount float64) PaymentStatus {
	if paidAmount == totalFee {
		return PaymentStatusPaid
	}
	return PaymentStatusPending
}

// Derive recomputes the payment's balance and status from the given
// total fee and defaults the payment method when empty.
func (p *Payment) Derive(totalFee float64) {
	p.BalanceAmount = Balance(totalFee, p.PaidAmount)
	p.PaymentStatus = DerivePaymentStatus(totalFee, p.PaidAmount)
	if strings.TrimSpace(p.PaymentMethod) == "" {
		p.PaymentMethod = DefaultPaymentMethod
	}
}

func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	switch PaymentStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case PaymentStatusPaid:
		return PaymentStatusPaid, true
	case PaymentStatusPending:
		return PaymentStatusPending, true
	default:
		return "", false
	}
}
