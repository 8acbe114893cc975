package balances

import (
	"expense_share/internal/models"

	"github.com/shopspring/decimal"
)

// Materialize expands validated split inputs into one Split per participant,
// in input order. The returned splits always sum to amount exactly when the
// inputs allow it:
//
//   - EQUAL: amount/n truncated to cents; the leftover cents go one each to
//     the first participants, so shares differ by at most one cent.
//   - EXACT: the declared amounts, unchanged.
//   - PERCENTAGE: amount*pct/100 rounded to cents, then the residual against
//     amount is spread a cent at a time over the participants with a
//     non-zero percentage. The declared percentages are kept as given.
func Materialize(expenseID string, amount decimal.Decimal, splitType models.SplitType, inputs []models.SplitInput) []models.Split {
	splits := make([]models.Split, len(inputs))
	for i, in := range inputs {
		splits[i] = models.Split{ExpenseID: expenseID, UserID: in.UserID}
	}

	switch splitType {
	case models.SplitEqual:
		for i, share := range equalShares(amount, len(inputs)) {
			splits[i].Amount = share
		}

	case models.SplitExact:
		for i, in := range inputs {
			splits[i].Amount = valueOrZero(in.Amount)
		}

	case models.SplitPercentage:
		for i, in := range inputs {
			pct := valueOrZero(in.Percentage)
			splits[i].Amount = amount.Mul(pct).Div(hundred).Round(2)
			splits[i].Percentage = decimal.NewNullDecimal(pct)
		}
		spreadResidual(splits, amount)
	}

	return splits
}

func equalShares(amount decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	count := decimal.NewFromInt(int64(n))
	base := amount.Div(count).Truncate(2)

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = base
	}

	leftover := int(amount.Sub(base.Mul(count)).Shift(2).IntPart())
	for i := 0; i < leftover && i < n; i++ {
		shares[i] = shares[i].Add(cent)
	}
	return shares
}

func spreadResidual(splits []models.Split, total decimal.Decimal) {
	sum := decimal.Zero
	var eligible []int
	for i, s := range splits {
		sum = sum.Add(s.Amount)
		if s.Percentage.Valid && s.Percentage.Decimal.IsPositive() {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return
	}

	cents := total.Sub(sum).Shift(2).IntPart()
	step := cent
	if cents < 0 {
		step = cent.Neg()
		cents = -cents
	}
	for k := int64(0); k < cents; k++ {
		i := eligible[int(k)%len(eligible)]
		splits[i].Amount = splits[i].Amount.Add(step)
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
