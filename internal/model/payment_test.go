package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceDerivation(t *testing.T) {
	cases := []struct {
		name     string
		totalFee float64
		paid     float64
		balance  float64
		status   PaymentStatus
	}{
		{"fully paid", 1000, 1000, 0, PaymentStatusPaid},
		{"partially paid", 1000, 400, 600, PaymentStatusPending},
		{"nothing paid", 500, 0, 500, PaymentStatusPending},
		{"zero fee zero paid", 0, 0, 0, PaymentStatusPaid},
		{"fractional", 99.99, 99.99, 0, PaymentStatusPaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.balance, Balance(tc.totalFee, tc.paid))
			assert.Equal(t, tc.status, DerivePaymentStatus(tc.totalFee, tc.paid))
		})
	}

	t.Run("fractional pending", func(t *testing.T) {
		assert.InDelta(t, 0.01, Balance(99.99, 99.98), 1e-9)
		assert.Equal(t, PaymentStatusPending, DerivePaymentStatus(99.99, 99.98))
	})
}

func TestPaymentDerive(t *testing.T) {
	p := Payment{PaidAmount: 400}
	p.Derive(1000)

	assert.Equal(t, 600.0, p.BalanceAmount)
	assert.Equal(t, PaymentStatusPending, p.PaymentStatus)
	assert.Equal(t, DefaultPaymentMethod, p.PaymentMethod)

	p = Payment{PaidAmount: 1000, PaymentMethod: "UPI"}
	p.Derive(1000)

	assert.Equal(t, 0.0, p.BalanceAmount)
	assert.Equal(t, PaymentStatusPaid, p.PaymentStatus)
	assert.Equal(t, "UPI", p.PaymentMethod)
}

func TestPartyResolution(t *testing.T) {
	student := Project{
		ProjectType: ProjectTypeStudent,
		Students: []Student{
			{Name: "Asel", Phone: "111"},
			{Name: "Bek", Phone: "222"},
		},
	}
	name, phone := student.Party()
	assert.Equal(t, "Asel, Bek", name)
	assert.Equal(t, "111, 222", phone)

	clientProject := Project{
		ProjectType: ProjectTypeClient,
		Client:      &Client{Name: "Acme", Phone: "333"},
	}
	name, phone = clientProject.Party()
	assert.Equal(t, "Acme", name)
	assert.Equal(t, "333", phone)

	empty := Project{ProjectType: ProjectTypeClient}
	name, phone = empty.Party()
	assert.Empty(t, name)
	assert.Empty(t, phone)
}

func TestPendingPaymentsProjection(t *testing.T) {
	projects := []Project{
		{
			ID:          1,
			ProjectType: ProjectTypeStudent,
			Title:       "Portal",
			TotalFee:    1000,
			Students:    []Student{{Name: "Asel", Phone: "111"}},
			Payments: []Payment{
				{PaidAmount: 400, BalanceAmount: 600, PaymentStatus: PaymentStatusPending},
			},
		},
		{
			ID:          2,
			ProjectType: ProjectTypeClient,
			Title:       "Billing",
			TotalFee:    2000,
			Client:      &Client{Name: "Acme", Phone: "333"},
			Payments: []Payment{
				{PaidAmount: 2000, BalanceAmount: 0, PaymentStatus: PaymentStatusPaid},
				{PaidAmount: 100, BalanceAmount: 1900, PaymentStatus: PaymentStatusPending},
			},
		},
		{
			ID:          3,
			ProjectType: ProjectTypeStudent,
			Title:       "Settled",
			TotalFee:    500,
			Students:    []Student{{Name: "Dana", Phone: "444"}},
			Payments: []Payment{
				{PaidAmount: 500, BalanceAmount: 0, PaymentStatus: PaymentStatusPaid},
			},
		},
	}

	rows := PendingPayments(projects)
	require.Len(t, rows, 2)

	assert.Equal(t, int64(1), rows[0].ProjectID)
	assert.Equal(t, "Portal", rows[0].ProjectTitle)
	assert.Equal(t, "Asel", rows[0].ContactName)
	assert.Equal(t, "111", rows[0].ContactPhone)
	assert.Equal(t, 600.0, rows[0].BalanceAmount)

	assert.Equal(t, int64(2), rows[1].ProjectID)
	assert.Equal(t, "Acme", rows[1].ContactName)
	assert.Equal(t, "333", rows[1].ContactPhone)
	assert.Equal(t, 1900.0, rows[1].BalanceAmount)
}

func TestDateJSON(t *testing.T) {
	date := NewDate(time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC))
	encoded, err := json.Marshal(date)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14"`, string(encoded))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-14"`), &decoded))
	assert.Equal(t, 2025, decoded.Year())
	assert.Equal(t, time.March, decoded.Month())
	assert.Equal(t, 14, decoded.Day())

	require.NoError(t, json.Unmarshal([]byte(`null`), &decoded))
	assert.True(t, decoded.IsZero())

	var payment Payment
	require.NoError(t, json.Unmarshal([]byte(`{"paid_amount":10,"payment_date":null}`), &payment))
	assert.Nil(t, payment.PaymentDate)

	assert.Error(t, json.Unmarshal([]byte(`"14/03/2025"`), &decoded))
}
