package balances

import (
	"testing"

	"expense_share/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateUserCreatorPaysFullAmount(t *testing.T) {
	expenses := []models.Expense{expense("e1", "a", "300", models.SplitEqual, 0)}
	splits := Materialize("e1", dec("300"), models.SplitEqual, []models.SplitInput{
		{UserID: "a"}, {UserID: "b"}, {UserID: "c"},
	})

	summary := AggregateUser(expenses, splits, "a")

	assertDecimal(t, "300", summary.Paid)
	assertDecimal(t, "0", summary.Owed)
	assertDecimal(t, "300", summary.Net())
	require.Len(t, summary.Counterparties, 2)
	assertDecimal(t, "100", summary.Counterparties["b"].Total)
	assertDecimal(t, "100", summary.Counterparties["c"].Total)

	summary = AggregateUser(expenses, splits, "b")
	assertDecimal(t, "0", summary.Paid)
	assertDecimal(t, "100", summary.Owed)
	assertDecimal(t, "-100", summary.Counterparties["a"].Total)
	assert.NotContains(t, summary.Counterparties, "c")
}

func TestAggregatePercentage(t *testing.T) {
	expenses := []models.Expense{expense("e2", "a", "100", models.SplitPercentage, 0)}
	splits := Materialize("e2", dec("100"), models.SplitPercentage, []models.SplitInput{
		{UserID: "a", Percentage: decp("60")},
		{UserID: "b", Percentage: decp("40")},
	})

	balances := Aggregate(expenses, splits, "")

	assertDecimal(t, "40", balances.Get("b", "a"))
	assertDecimal(t, "0", balances.Get("a", "b"))
	assert.NotContains(t, balances, "a", "creator's own share is not a debt")
}

func TestAggregateUserFilter(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", "a", "60", models.SplitExact, 0),
		expense("e2", "c", "40", models.SplitExact, 1),
	}
	splits := []models.Split{
		split("e1", "a", "30"), split("e1", "b", "30"),
		split("e2", "c", "20"), split("e2", "d", "20"),
	}

	all := Aggregate(expenses, splits, "")
	assertDecimal(t, "30", all.Get("b", "a"))
	assertDecimal(t, "20", all.Get("d", "c"))

	filtered := Aggregate(expenses, splits, "d")
	assertDecimal(t, "20", filtered.Get("d", "c"))
	assert.NotContains(t, filtered, "b")
}

func TestAggregateIsIdempotent(t *testing.T) {
	expenses := []models.Expense{
		expense("e1", "a", "100", models.SplitEqual, 0),
		expense("e2", "b", "75.50", models.SplitExact, 1),
	}
	splits := append(
		Materialize("e1", dec("100"), models.SplitEqual, participants(3)),
		split("e2", "a", "25.50"), split("e2", "b", "50"),
	)

	first := FormatPairwise(Aggregate(expenses, splits, ""), nil)
	second := FormatPairwise(Aggregate(expenses, splits, ""), nil)
	assert.Equal(t, first, second)
}
