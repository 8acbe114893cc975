package balances

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"expense_share/internal/models"
	"expense_share/pkg/utils"

	"github.com/shopspring/decimal"
)

// toleranceCents is the amount, in cents, below which sums and balances are
// treated as exactly zero.
const toleranceCents = 1

var (
	tolerance = decimal.New(toleranceCents, -2)
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

const maxNameLength = 100

// ValidateExpense checks a create-expense request before anything is stored.
func ValidateExpense(e models.NewExpense) error {
	name := strings.TrimSpace(e.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return utils.NewValidationError("name", "must be between 1 and %d characters", maxNameLength)
	}
	if e.CreatedBy == "" {
		return utils.NewValidationError("created_by", "is required")
	}
	if !e.SplitType.Valid() {
		return utils.NewValidationError("split_type", "must be one of EQUAL, EXACT, PERCENTAGE")
	}
	if !e.Amount.IsPositive() {
		return utils.NewValidationError("amount", "must be greater than 0")
	}
	if !hasCents(e.Amount) {
		return utils.NewValidationError("amount", "must have at most 2 decimal places")
	}
	return ValidateSplits(e.Amount, e.SplitType, e.Splits)
}

// ValidateSplits reports whether splits can be materialized against amount
// for the given split type. Missing amounts or percentages count as zero.
func ValidateSplits(amount decimal.Decimal, splitType models.SplitType, splits []models.SplitInput) error {
	if len(splits) == 0 {
		return utils.NewValidationError("splits", "at least one split is required")
	}

	seen := make(map[string]struct{}, len(splits))
	for i, s := range splits {
		if s.UserID == "" {
			return utils.NewValidationError(fmt.Sprintf("splits[%d].user_id", i), "is required")
		}
		if _, dup := seen[s.UserID]; dup {
			return utils.NewValidationError("splits", "user %s appears more than once", s.UserID)
		}
		seen[s.UserID] = struct{}{}
	}

	switch splitType {
	case models.SplitEqual:
		return nil

	case models.SplitPercentage:
		total := decimal.Zero
		for i, s := range splits {
			if s.Percentage == nil {
				continue
			}
			p := *s.Percentage
			if p.IsNegative() || p.GreaterThan(hundred) {
				return utils.NewValidationError(fmt.Sprintf("splits[%d].percentage", i), "must be between 0 and 100")
			}
			if !hasCents(p) {
				return utils.NewValidationError(fmt.Sprintf("splits[%d].percentage", i), "must have at most 2 decimal places")
			}
			total = total.Add(p)
		}
		if !withinTolerance(total, hundred) {
			return utils.NewValidationError("splits", "percentage splits must sum to 100%% (got %s%%)", total.String())
		}
		return nil

	case models.SplitExact:
		total := decimal.Zero
		for i, s := range splits {
			if s.Amount == nil {
				continue
			}
			a := *s.Amount
			if a.IsNegative() {
				return utils.NewValidationError(fmt.Sprintf("splits[%d].amount", i), "must not be negative")
			}
			if !hasCents(a) {
				return utils.NewValidationError(fmt.Sprintf("splits[%d].amount", i), "must have at most 2 decimal places")
			}
			total = total.Add(a)
		}
		if !withinTolerance(total, amount) {
			return utils.NewValidationError("splits", "exact splits must sum to total amount %s (got %s)",
				amount.StringFixed(2), total.StringFixed(2))
		}
		return nil

	default:
		return utils.NewValidationError("split_type", "unknown split type %q", string(splitType))
	}
}

func withinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

func isSettled(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(tolerance)
}

func hasCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
