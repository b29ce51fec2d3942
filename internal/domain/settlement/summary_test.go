package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	bills := []Bill{
		openBill(1, "ACME", "200", "200", day(1)),
		openBill(2, "ACME", "300", "100", day(3)),
		openBill(3, "ACME", "50", "0", day(2)),
	}

	s := Summarize("ACME", bills)

	assert.Equal(t, "ACME", s.Party)
	assert.Equal(t, 3, s.BillCount)
	assert.True(t, s.TotalAmount.Equal(dec("550")))
	assert.True(t, s.ReceivedAmount.Equal(dec("300")))
	assert.True(t, s.Balance.Equal(dec("250")))
	assert.Equal(t, 2, s.OpenBills)
	assert.Equal(t, 1, s.PartialBills)
	assert.Equal(t, 1, s.UnpaidBills)
	require.NotNil(t, s.FirstSeen)
	require.NotNil(t, s.LastSeen)
	assert.Equal(t, day(1), *s.FirstSeen)
	assert.Equal(t, day(3), *s.LastSeen)
	assert.Equal(t, StatusPartial, s.Status)
	// Oldest open bill is where the next payment lands.
	assert.Equal(t, bills[2].Number, s.PrimaryBillNumber)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize("nobody", nil)

	assert.Zero(t, s.BillCount)
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.Balance.IsZero())
	assert.Nil(t, s.FirstSeen)
	assert.Equal(t, StatusPaid, s.Status)
}

func TestClassifyParty(t *testing.T) {
	assert.Equal(t, StatusPaid, ClassifyParty(0, dec("10")))
	assert.Equal(t, StatusPartial, ClassifyParty(2, dec("10")))
	assert.Equal(t, StatusUnpaid, ClassifyParty(2, decimal.Zero))
}

func TestGroupByParty(t *testing.T) {
	bills := []Bill{
		openBill(1, "Zeta", "10", "0", day(5)),
		openBill(2, "Alpha", "10", "10", day(5)),
		openBill(3, "Mid", "10", "0", day(3)),
		openBill(4, "Mid", "10", "5", day(1)),
	}

	groups := GroupByParty(bills)

	require.Len(t, groups, 3)
	assert.Equal(t, "Alpha", groups[0].Party)
	assert.Equal(t, "Zeta", groups[1].Party)
	assert.Equal(t, "Mid", groups[2].Party)
	assert.Equal(t, 2, groups[2].BillCount)
	assert.Equal(t, StatusPartial, groups[2].Status)

	unpaid := FilterByStatus(groups, StatusUnpaid)
	require.Len(t, unpaid, 1)
	assert.Equal(t, "Zeta", unpaid[0].Party)
	assert.Len(t, FilterByStatus(groups, ""), 3)
}
