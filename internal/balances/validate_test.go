package balances

import (
	"strings"
	"testing"

	"expense_share/internal/models"
	"expense_share/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidateSplits(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		splitType models.SplitType
		splits    []models.SplitInput
		wantErr   bool
	}{
		{
			name:      "empty split list",
			amount:    "100",
			splitType: models.SplitEqual,
			wantErr:   true,
		},
		{
			name:      "equal needs only participants",
			amount:    "300",
			splitType: models.SplitEqual,
			splits:    []models.SplitInput{{UserID: "a"}, {UserID: "b"}, {UserID: "c"}},
		},
		{
			name:      "percentages sum to 100",
			amount:    "100",
			splitType: models.SplitPercentage,
			splits: []models.SplitInput{
				{UserID: "a", Percentage: decp("60")},
				{UserID: "b", Percentage: decp("40")},
			},
		},
		{
			name:      "percentages within tolerance below",
			amount:    "100",
			splitType: models.SplitPercentage,
			splits: []models.SplitInput{
				{UserID: "a", Percentage: decp("60")},
				{UserID: "b", Percentage: decp("39.99")},
			},
		},
		{
			name:      "percentages within tolerance above",
			amount:    "100",
			splitType: models.SplitPercentage,
			splits: []models.SplitInput{
				{UserID: "a", Percentage: decp("50")},
				{UserID: "b", Percentage: decp("50.01")},
			},
		},
		{
			name:      "percentages short of 100",
			amount:    "100",
			splitType: models.SplitPercentage,
			splits: []models.SplitInput{
				{UserID: "a", Percentage: decp("60")},
				{UserID: "b", Percentage: decp("39.98")},
			},
			wantErr: true,
		},
		{
			name:      "missing percentage counts as zero",
			amount:    "100",
			splitType: models.SplitPercentage,
			splits: []models.SplitInput{
				{UserID: "a", Percentage: decp("100")},
				{UserID: "b"},
			},
		},
		{
			name:      "percentage above 100",
			amount:    "100",
			splitType: models.SplitPercentage,
			splits: []models.SplitInput{
				{UserID: "a", Percentage: decp("120")},
				{UserID: "b", Percentage: decp("-20")},
			},
			wantErr: true,
		},
		{
			name:      "exact sums match",
			amount:    "50.00",
			splitType: models.SplitExact,
			splits: []models.SplitInput{
				{UserID: "a", Amount: decp("20.00")},
				{UserID: "b", Amount: decp("30.00")},
			},
		},
		{
			name:      "exact sums mismatch",
			amount:    "45",
			splitType: models.SplitExact,
			splits: []models.SplitInput{
				{UserID: "a", Amount: decp("20.00")},
				{UserID: "b", Amount: decp("30.00")},
			},
			wantErr: true,
		},
		{
			name:      "exact within tolerance",
			amount:    "50.01",
			splitType: models.SplitExact,
			splits: []models.SplitInput{
				{UserID: "a", Amount: decp("20.00")},
				{UserID: "b", Amount: decp("30.00")},
			},
		},
		{
			name:      "exact negative amount",
			amount:    "10",
			splitType: models.SplitExact,
			splits: []models.SplitInput{
				{UserID: "a", Amount: decp("20")},
				{UserID: "b", Amount: decp("-10")},
			},
			wantErr: true,
		},
		{
			name:      "duplicate participant",
			amount:    "10",
			splitType: models.SplitEqual,
			splits:    []models.SplitInput{{UserID: "a"}, {UserID: "a"}},
			wantErr:   true,
		},
		{
			name:      "blank participant",
			amount:    "10",
			splitType: models.SplitEqual,
			splits:    []models.SplitInput{{UserID: ""}},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSplits(dec(tt.amount), tt.splitType, tt.splits)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, utils.IsValidation(err), "want ValidationError, got %T", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateExpense(t *testing.T) {
	valid := func() models.NewExpense {
		return models.NewExpense{
			Name:      "Dinner",
			Amount:    dec("300"),
			SplitType: models.SplitEqual,
			CreatedBy: "a",
			Splits:    []models.SplitInput{{UserID: "a"}, {UserID: "b"}},
		}
	}

	assert.NoError(t, ValidateExpense(valid()))

	mutations := map[string]func(e *models.NewExpense){
		"blank name":         func(e *models.NewExpense) { e.Name = "  " },
		"long name":          func(e *models.NewExpense) { e.Name = strings.Repeat("x", 101) },
		"missing creator":    func(e *models.NewExpense) { e.CreatedBy = "" },
		"zero amount":        func(e *models.NewExpense) { e.Amount = dec("0") },
		"negative amount":    func(e *models.NewExpense) { e.Amount = dec("-5") },
		"sub-cent amount":    func(e *models.NewExpense) { e.Amount = dec("10.005") },
		"unknown split type": func(e *models.NewExpense) { e.SplitType = "SHARES" },
		"no splits":          func(e *models.NewExpense) { e.Splits = nil },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			e := valid()
			mutate(&e)
			err := ValidateExpense(e)
			assert.True(t, utils.IsValidation(err), "want ValidationError, got %v", err)
		})
	}
}
