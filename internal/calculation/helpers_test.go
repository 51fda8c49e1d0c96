package calculation

import (
	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func band(min string, max string, rate string) domain.LevyBand {
	b := domain.LevyBand{Min: dec(min), Rate: dec(rate)}
	if max != "" {
		b.Max = decPtr(max)
	}
	return b
}

// australia2425 mirrors the au-2024-25 entry of the embedded regulatory data
func australia2425() domain.TaxSystem {
	return domain.TaxSystem{
		Code:          "au-2024-25",
		Name:          "Australia 2024-25",
		Currency:      "AUD",
		FinancialYear: "2024-25",
		Brackets: []domain.TaxBracket{
			{Min: dec("0"), Max: decPtr("18200"), Rate: dec("0")},
			{Min: dec("18200"), Max: decPtr("45000"), Rate: dec("16")},
			{Min: dec("45000"), Max: decPtr("135000"), Rate: dec("30")},
			{Min: dec("135000"), Max: decPtr("190000"), Rate: dec("37")},
			{Min: dec("190000"), Rate: dec("45")},
		},
		Rules: domain.SalaryRules{
			SuperGuaranteeRate:   dec("11.5"),
			ConcessionalCap:      dec("30000"),
			ConcessionalTaxRate:  dec("15"),
			AssumedMarginalRate:  dec("32.5"),
			StandardWeeklyHours:  dec("38"),
			FringeBenefitGrossUp: dec("1.8868"),
			MedicareLevy: domain.MedicareLevyRules{
				Rate:         dec("2"),
				PhaseInLower: dec("24276"),
				PhaseInUpper: dec("30345"),
				PhaseInRate:  dec("10"),
			},
			LoanRepaymentBands: []domain.LevyBand{
				band("54435", "62850", "1"),
				band("62850", "66620", "2"),
				band("66620", "70618", "2.5"),
				band("70618", "74855", "3"),
				band("74855", "79346", "3.5"),
				band("79346", "84107", "4"),
				band("84107", "89154", "4.5"),
				band("89154", "94503", "5"),
				band("94503", "100174", "5.5"),
				band("100174", "106185", "6"),
				band("106185", "112556", "6.5"),
				band("112556", "119309", "7"),
				band("119309", "126467", "7.5"),
				band("126467", "134056", "8"),
				band("134056", "142100", "8.5"),
				band("142100", "150626", "9"),
				band("150626", "159663", "9.5"),
				band("159663", "", "10"),
			},
			LowIncomeOffset: &domain.LowIncomeOffsetRules{
				Maximum:         dec("700"),
				FullThreshold:   dec("37500"),
				FirstTaperRate:  dec("5"),
				SecondThreshold: dec("45000"),
				SecondTaperRate: dec("1.5"),
			},
		},
	}
}
