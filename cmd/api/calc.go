package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/mortgage"
	"github.com/Dan9191/mortgage-service/internal/utils"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute a monthly payment breakdown",
	Example: `  api calc --price 450000 --down-percent 20 --rate 6.5 --years 30
  api calc --price 320000 --down 16000 --rate 7 --years 15 --hoa 275 --schedule`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		price, _ := flags.GetFloat64("price")
		down, _ := flags.GetFloat64("down")
		downPercent, _ := flags.GetFloat64("down-percent")
		rate, _ := flags.GetFloat64("rate")
		years, _ := flags.GetInt("years")
		tax, _ := flags.GetFloat64("tax")
		insurance, _ := flags.GetFloat64("insurance")
		pmi, _ := flags.GetFloat64("pmi")
		hoa, _ := flags.GetFloat64("hoa")
		schedule, _ := flags.GetBool("schedule")

		in := models.LoanInputs{
			HomePrice:           price,
			InterestRate:        rate,
			LoanTermYears:       years,
			PropertyTaxRate:     tax,
			HomeInsuranceAnnual: insurance,
			HOAMonthly:          hoa,
		}
		// an explicit amount wins over the percent default
		if flags.Changed("down") {
			in.DownPayment = down
		} else {
			in.DownPaymentPercent = downPercent
		}

		session := mortgage.NewSession(in)
		if flags.Changed("pmi") {
			session.SetPMIRate(pmi)
		}
		if err := mortgage.Validate(session.Inputs()); err != nil {
			return err
		}
		return printBreakdown(cmd.OutOrStdout(), session.Inputs(), session.Breakdown(), schedule)
	},
}

func init() {
	calcCmd.Flags().Float64("price", 450000, "home price in dollars")
	calcCmd.Flags().Float64("down", 0, "down payment in dollars")
	calcCmd.Flags().Float64("down-percent", 20, "down payment as percent of price")
	calcCmd.Flags().Float64("rate", 6.5, "annual interest rate, percent")
	calcCmd.Flags().Int("years", 30, "loan term in years (10, 15, 20, 30)")
	calcCmd.Flags().Float64("tax", 1.2, "annual property tax rate, percent of price")
	calcCmd.Flags().Float64("insurance", 1800, "annual home insurance in dollars")
	calcCmd.Flags().Float64("pmi", mortgage.DefaultPMIRatePercent, "annual PMI rate, percent (below 20% down only)")
	calcCmd.Flags().Float64("hoa", 0, "monthly HOA fee in dollars")
	calcCmd.Flags().Bool("schedule", false, "print the yearly amortization schedule")
}

func printBreakdown(out io.Writer, in models.LoanInputs, b models.PaymentBreakdown, schedule bool) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := [][2]string{
		{"Home price", utils.FormatUSD(in.HomePrice)},
		{"Down payment", fmt.Sprintf("%s (%s)", utils.FormatUSD(in.DownPayment), utils.FormatPercent(in.DownPaymentPercent))},
		{"Loan amount", utils.FormatUSD(b.FinancedPrincipal)},
		{"Principal & interest", utils.FormatUSD(b.PrincipalAndInterest)},
		{"Property tax", utils.FormatUSD(b.MonthlyPropertyTax)},
		{"Home insurance", utils.FormatUSD(b.MonthlyInsurance)},
		{"PMI", utils.FormatUSD(b.MonthlyPMI)},
		{"HOA", utils.FormatUSD(b.MonthlyHOA)},
		{"Total monthly payment", utils.FormatUSD(b.TotalMonthlyPayment)},
		{"Total of payments", utils.FormatUSD(b.TotalOfPayments)},
		{"Total interest", utils.FormatUSD(b.TotalInterestPaid)},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", row[0], row[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !schedule {
		return nil
	}

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Year\tPrincipal\tInterest\tBalance\t")
	for _, y := range mortgage.YearlySummary(mortgage.Schedule(in)) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t\n", y.Year,
			utils.FormatUSD(y.PrincipalPaid), utils.FormatUSD(y.InterestPaid), utils.FormatUSD(y.EndBalance))
	}
	return tw.Flush()
}
