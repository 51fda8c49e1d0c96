package calculation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rgehrsitz/paycalc/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.record(format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.record(format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.record(format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.record(format, args...) }

func newAustralianEngine(t *testing.T) *CalculationEngine {
	t.Helper()
	engine, err := NewCalculationEngine(australia2425())
	require.NoError(t, err)
	return engine
}

func TestNewCalculationEngine(t *testing.T) {
	engine := newAustralianEngine(t)

	assert.NotNil(t, engine.Evaluator(), "Should build an evaluator")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should default to the no-op logger")
	assert.Equal(t, "au-2024-25", engine.System().Code)
}

func TestNewCalculationEngine_InvalidTables(t *testing.T) {
	system := australia2425()
	system.Brackets[1].Min = dec("18000")

	_, err := NewCalculationEngine(system)
	require.Error(t, err)
	var bracketErr *InvalidBracketsError
	assert.ErrorAs(t, err, &bracketErr)
	assert.Contains(t, err.Error(), "au-2024-25")

	system = australia2425()
	system.Rules.LoanRepaymentBands = []domain.LevyBand{band("1000", "2000", "1")}
	_, err = NewCalculationEngine(system)
	assert.ErrorAs(t, err, &bracketErr)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := newAustralianEngine(t)

	custom := &recordingLogger{}
	engine.SetLogger(custom)
	assert.Equal(t, custom, engine.Logger, "Should set custom logger")

	engine.Calculate(domain.SalaryInput{Salary: dec("80000"), Frequency: domain.Annually})
	assert.NotEmpty(t, custom.lines, "Should log the derivation")

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestDeriveAnnualResults_HighEarnerClampsVoluntary(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("200000"),
		Frequency: domain.Annually,
		Settings: domain.TaxSettings{
			VoluntarySuper:          true,
			VoluntarySuperAmount:    dec("10000"),
			VoluntarySuperFrequency: domain.Annually,
		},
	})

	assert.True(t, r.Superannuation.Equal(dec("23000")), "super: %s", r.Superannuation)
	assert.True(t, r.RemainingCap.Equal(dec("7000")), "remaining cap: %s", r.RemainingCap)
	assert.True(t, r.RequestedVoluntary.Equal(dec("10000")), "requested: %s", r.RequestedVoluntary)
	assert.True(t, r.VoluntarySuper.Equal(dec("7000")), "voluntary: %s", r.VoluntarySuper)
	assert.True(t, r.TaxableIncome.Equal(dec("193000")), "taxable: %s", r.TaxableIncome)
	assert.True(t, r.IncomeTax.Equal(dec("52988")), "tax: %s", r.IncomeTax)
	assert.True(t, r.TaxSavingsEstimate.Equal(dec("1225")), "savings: %s", r.TaxSavingsEstimate)
	assert.True(t, r.MarginalRate.Equal(dec("45")), "marginal: %s", r.MarginalRate)
	assert.True(t, r.NetIncome.Equal(dec("140012")), "net: %s", r.NetIncome)
}

func TestDeriveAnnualResults_MiddleEarnerRemainingCap(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{Salary: dec("100000"), Frequency: domain.Annually})

	assert.True(t, r.Superannuation.Equal(dec("11500")), "super: %s", r.Superannuation)
	assert.True(t, r.RemainingCap.Equal(dec("18500")), "remaining cap: %s", r.RemainingCap)
	assert.True(t, r.VoluntarySuper.IsZero(), "voluntary disabled")
}

func TestDeriveAnnualResults_OlderCapIsConfiguration(t *testing.T) {
	system := australia2425()
	system.Rules.ConcessionalCap = dec("27500")
	engine, err := NewCalculationEngine(system)
	require.NoError(t, err)

	r := engine.DeriveAnnualResults(domain.SalaryInput{Salary: dec("100000"), Frequency: domain.Annually})
	assert.True(t, r.RemainingCap.Equal(dec("16000")), "remaining cap: %s", r.RemainingCap)
}

func TestDeriveAnnualResults_FlatSystem(t *testing.T) {
	engine, err := NewCalculationEngine(NewFlatTaxSystem(dec("20")))
	require.NoError(t, err)

	r := engine.DeriveAnnualResults(domain.SalaryInput{Salary: dec("50000"), Frequency: domain.Annually})

	assert.True(t, r.IncomeTax.Equal(dec("10000")), "tax: %s", r.IncomeTax)
	assert.True(t, r.NetIncome.Equal(dec("40000")), "net: %s", r.NetIncome)
	assert.True(t, r.EffectiveRate.Equal(dec("20")), "effective: %s", r.EffectiveRate)
}

func TestDeriveAnnualResults_PlainAnnualSalary(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{Salary: dec("105000"), Frequency: domain.Annually})

	assert.True(t, r.AnnualSalary.Equal(dec("105000")))
	assert.True(t, r.TotalAnnualIncome.Equal(r.AnnualSalary))
	assert.True(t, r.TotalOvertime.IsZero())
	assert.True(t, r.TotalSalarySacrifice.IsZero())
	assert.True(t, r.TotalFringeBenefits.IsZero())
}

func TestDeriveAnnualResults_ProRata(t *testing.T) {
	engine := newAustralianEngine(t)

	tests := []struct {
		name     string
		prorata  *domain.ProRata
		expected string
	}{
		{"no pro-rata", nil, "100000"},
		{"half week", &domain.ProRata{Hours: dec("19"), Frequency: domain.Weekly}, "50000"},
		{"full week", &domain.ProRata{Hours: dec("38"), Frequency: domain.Weekly}, "100000"},
		{"half fortnight", &domain.ProRata{Hours: dec("38"), Frequency: domain.Fortnightly}, "50000"},
		{"zero hours", &domain.ProRata{Hours: dec("0"), Frequency: domain.Weekly}, "0"},
		{"negative hours", &domain.ProRata{Hours: dec("-5"), Frequency: domain.Weekly}, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := engine.DeriveAnnualResults(domain.SalaryInput{
				Salary:    dec("100000"),
				Frequency: domain.Annually,
				ProRata:   tt.prorata,
			})
			assert.True(t, r.AnnualSalary.Equal(dec(tt.expected)), "Expected %s, got %s", tt.expected, r.AnnualSalary)
		})
	}
}

func TestDeriveAnnualResults_OvertimeFeedsSuperBase(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("100000"),
		Frequency: domain.Annually,
		Overtime: []domain.OvertimeEntry{
			{Hours: dec("10"), Rate: dec("50"), Frequency: domain.Weekly, IncludeSuper: true},
			{Hours: dec("5"), Rate: dec("80"), Frequency: domain.Monthly},
		},
	})

	assert.True(t, r.TotalOvertime.Equal(dec("30800")), "overtime: %s", r.TotalOvertime)
	assert.True(t, r.OvertimeSuperBase.Equal(dec("26000")), "super base: %s", r.OvertimeSuperBase)
	assert.True(t, r.TotalAnnualIncome.Equal(dec("130800")), "income: %s", r.TotalAnnualIncome)
	assert.True(t, r.Superannuation.Equal(dec("14490")), "super: %s", r.Superannuation)
}

func TestDeriveAnnualResults_SalarySacrificeSplit(t *testing.T) {
	engine, err := NewCalculationEngine(NewFlatTaxSystem(dec("20")))
	require.NoError(t, err)

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("100000"),
		Frequency: domain.Annually,
		SalarySacrifice: []domain.SalarySacrificeEntry{
			{Description: "Car lease", Amount: dec("500"), Frequency: domain.Monthly, IsTaxDeductible: true},
			{Description: "Gym", Amount: dec("100"), Frequency: domain.Weekly},
			{Description: "Typo", Amount: dec("-300"), Frequency: domain.Monthly, IsTaxDeductible: true},
		},
	})

	assert.True(t, r.TaxDeductibleSacrifice.Equal(dec("6000")), "deductible: %s", r.TaxDeductibleSacrifice)
	assert.True(t, r.NonTaxDeductibleSacrifice.Equal(dec("5200")), "non-deductible: %s", r.NonTaxDeductibleSacrifice)
	assert.True(t, r.TotalSalarySacrifice.Equal(dec("11200")))
	assert.True(t, r.TaxableIncome.Equal(dec("94000")), "taxable: %s", r.TaxableIncome)
	assert.True(t, r.IncomeTax.Equal(dec("18800")), "tax: %s", r.IncomeTax)
	assert.True(t, r.NetIncome.Equal(dec("70000")), "net: %s", r.NetIncome)
}

func TestDeriveAnnualResults_Levies(t *testing.T) {
	engine := newAustralianEngine(t)
	base := domain.SalaryInput{Salary: dec("90000"), Frequency: domain.Annually}

	tests := []struct {
		name     string
		settings domain.TaxSettings
		medicare string
		loan     string
	}{
		{"no levies", domain.TaxSettings{}, "0", "0"},
		{"medicare", domain.TaxSettings{IncludeMedicareLevy: true}, "1800", "0"},
		{"medicare exempt", domain.TaxSettings{IncludeMedicareLevy: true, MedicareExempt: true}, "0", "0"},
		{"private health disables medicare", domain.TaxSettings{IncludeMedicareLevy: true, PrivateHealth: true}, "0", "0"},
		{"loan repayment", domain.TaxSettings{IncludeLoanRepayment: true}, "0", "4500"},
		{"both", domain.TaxSettings{IncludeMedicareLevy: true, IncludeLoanRepayment: true}, "1800", "4500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.Settings = tt.settings
			r := engine.DeriveAnnualResults(in)

			assert.True(t, r.MedicareLevy.Equal(dec(tt.medicare)), "medicare: expected %s, got %s", tt.medicare, r.MedicareLevy)
			assert.True(t, r.LoanRepayment.Equal(dec(tt.loan)), "loan: expected %s, got %s", tt.loan, r.LoanRepayment)
			assert.True(t, r.TotalLevies.Equal(r.MedicareLevy.Add(r.LoanRepayment)))

			expectedNet := dec("90000").Sub(dec("17788")).Sub(r.TotalLevies)
			assert.True(t, r.NetIncome.Equal(expectedNet), "net: expected %s, got %s", expectedNet, r.NetIncome)
		})
	}
}

func TestDeriveAnnualResults_LowIncomeOffset(t *testing.T) {
	engine := newAustralianEngine(t)
	in := domain.SalaryInput{
		Salary:    dec("40000"),
		Frequency: domain.Annually,
		Settings:  domain.TaxSettings{IncludeMedicareLevy: true},
	}

	r := engine.DeriveAnnualResults(in)
	assert.True(t, r.LowIncomeOffset.IsZero(), "offsets are opt-in")
	assert.True(t, r.NetIncome.Equal(dec("35712")), "net: %s", r.NetIncome)

	in.Settings.ApplyTaxOffsets = true
	r = engine.DeriveAnnualResults(in)
	assert.True(t, r.IncomeTax.Equal(dec("3488")), "tax: %s", r.IncomeTax)
	assert.True(t, r.LowIncomeOffset.Equal(dec("575")), "offset: %s", r.LowIncomeOffset)
	assert.True(t, r.MedicareLevy.Equal(dec("800")), "medicare: %s", r.MedicareLevy)
	assert.True(t, r.NetIncome.Equal(dec("36287")), "net: %s", r.NetIncome)
	assert.True(t, r.TotalTax().Equal(dec("3713")), "total tax: %s", r.TotalTax())
}

func TestDeriveAnnualResults_OffsetCappedAtIncomeTax(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("20000"),
		Frequency: domain.Annually,
		Settings:  domain.TaxSettings{ApplyTaxOffsets: true},
	})

	assert.True(t, r.IncomeTax.Equal(dec("288")), "tax: %s", r.IncomeTax)
	assert.True(t, r.LowIncomeOffset.Equal(dec("288")), "offset: %s", r.LowIncomeOffset)
	assert.True(t, r.NetIncome.Equal(dec("20000")), "net: %s", r.NetIncome)
}

func TestDeriveAnnualResults_FringeBenefitsNeverReduceNet(t *testing.T) {
	engine := newAustralianEngine(t)
	in := domain.SalaryInput{Salary: dec("80000"), Frequency: domain.Annually}
	without := engine.DeriveAnnualResults(in)

	in.FringeBenefits = []domain.FringeBenefitEntry{
		{Description: "Car", Amount: dec("1000"), Frequency: domain.Monthly, Type: domain.FringeBenefitTaxable, Reportable: true},
		{Description: "Phone", Amount: dec("500"), Frequency: domain.Annually, Type: domain.FringeBenefitExempt, Reportable: true},
		{Description: "Parking", Amount: dec("100"), Frequency: domain.Monthly, Type: domain.FringeBenefitTaxable},
	}
	with := engine.DeriveAnnualResults(in)

	assert.True(t, with.TotalFringeBenefits.Equal(dec("13700")), "total: %s", with.TotalFringeBenefits)
	assert.True(t, with.ReportableFringeBenefits.Equal(dec("22641.6")), "reportable: %s", with.ReportableFringeBenefits)
	assert.True(t, with.NetIncome.Equal(without.NetIncome))
	assert.True(t, with.TaxableIncome.Equal(without.TaxableIncome))
}

func TestDeriveAnnualResults_NeverNegative(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("-1000"),
		Frequency: domain.Annually,
		SalarySacrifice: []domain.SalarySacrificeEntry{
			{Amount: dec("500"), Frequency: domain.Weekly, IsTaxDeductible: true},
		},
		Settings: domain.TaxSettings{IncludeMedicareLevy: true, IncludeLoanRepayment: true},
	})

	assert.True(t, r.AnnualSalary.IsZero())
	assert.True(t, r.TaxableIncome.IsZero())
	assert.True(t, r.IncomeTax.IsZero())
	assert.True(t, r.NetIncome.IsZero())
	assert.True(t, r.EffectiveRate.IsZero())
}

func TestDeriveAnnualResults_SuperRateOverride(t *testing.T) {
	engine := newAustralianEngine(t)
	rate := dec("15")

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("100000"),
		Frequency: domain.Annually,
		Settings:  domain.TaxSettings{SuperRate: &rate},
	})

	assert.True(t, r.SuperRate.Equal(rate))
	assert.True(t, r.Superannuation.Equal(dec("15000")), "super: %s", r.Superannuation)
}

func TestDeriveAnnualResults_VoluntaryAnnualised(t *testing.T) {
	engine := newAustralianEngine(t)

	r := engine.DeriveAnnualResults(domain.SalaryInput{
		Salary:    dec("100000"),
		Frequency: domain.Annually,
		Settings: domain.TaxSettings{
			VoluntarySuper:          true,
			VoluntarySuperAmount:    dec("200"),
			VoluntarySuperFrequency: domain.Fortnightly,
		},
	})

	assert.True(t, r.VoluntarySuper.Equal(dec("5200")), "voluntary: %s", r.VoluntarySuper)
	assert.True(t, r.TaxableIncome.Equal(dec("94800")), "taxable: %s", r.TaxableIncome)
}

func TestCalculationEngine_Calculate(t *testing.T) {
	engine := newAustralianEngine(t)

	calc := engine.Calculate(domain.SalaryInput{Salary: dec("1000"), Frequency: domain.Weekly})

	assert.Equal(t, "au-2024-25", calc.TaxSystem)
	assert.Equal(t, "AUD", calc.Currency)
	require.Len(t, calc.Breakdown, 4)
	assert.True(t, calc.Summary.TaxableIncome.Equal(dec("52000")))
	assert.True(t, calc.Summary.RemainingCap.Equal(dec("24020")), "remaining: %s", calc.Summary.RemainingCap)

	weekly, ok := calc.Row(domain.Weekly)
	require.True(t, ok)
	assert.Equal(t, "1000.00", weekly.GrossIncome.StringFixed(2))
}

func TestCalculationEngine_MemoNeverStale(t *testing.T) {
	engine := newAustralianEngine(t)
	first := domain.SalaryInput{Salary: dec("60000"), Frequency: domain.Annually}
	second := domain.SalaryInput{Salary: dec("120000"), Frequency: domain.Annually}

	a := engine.Calculate(first)
	b := engine.Calculate(second)
	c := engine.Calculate(first)

	assert.True(t, a.Annual.NetIncome.Equal(c.Annual.NetIncome))
	assert.False(t, a.Annual.NetIncome.Equal(b.Annual.NetIncome), "changed input must recompute")

	// toggling a setting on the same salary is a new snapshot
	toggled := first
	toggled.Settings.IncludeMedicareLevy = true
	d := engine.Calculate(toggled)
	assert.True(t, d.Annual.MedicareLevy.Equal(dec("1200")), "medicare: %s", d.Annual.MedicareLevy)
}

func TestCalculationEngine_MemoReturnsCopies(t *testing.T) {
	engine := newAustralianEngine(t)
	in := domain.SalaryInput{Salary: dec("70000"), Frequency: domain.Annually}

	a := engine.Calculate(in)
	a.Breakdown[0].NetIncome = decimal.NewFromInt(-1)

	b := engine.Calculate(in)
	assert.False(t, b.Breakdown[0].NetIncome.Equal(decimal.NewFromInt(-1)), "memoized result must not be shared")
}

func TestCalculationEngine_ConcurrentCalculate(t *testing.T) {
	engine := newAustralianEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			salary := decimal.NewFromInt(int64(50000 + (i%2)*50000))
			calc := engine.Calculate(domain.SalaryInput{Salary: salary, Frequency: domain.Annually})
			assert.True(t, calc.Annual.TotalAnnualIncome.Equal(salary))
		}(i)
	}
	wg.Wait()
}
