package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/mortgage"
	"github.com/Dan9191/mortgage-service/internal/utils"
)

const (
	defaultLeadsLimit = 50
	maxLeadsLimit     = 500
)

// SubmitLead validates and stores a lead, then notifies the agent inbox.
// A failed notification is logged and does not fail the submission.
func (s *Service) SubmitLead(ctx context.Context, req models.LeadRequest) (*models.Lead, error) {
	lead := &models.Lead{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Phone:  strings.TrimSpace(req.Phone),
		Source: strings.TrimSpace(req.Source),
		Notes:  strings.TrimSpace(req.Notes),
	}
	if lead.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrLeadInvalid)
	}
	if _, err := mail.ParseAddress(lead.Email); err != nil {
		return nil, fmt.Errorf("%w: email is invalid", ErrLeadInvalid)
	}
	if lead.Source == "" {
		lead.Source = models.LeadSourceMortgageCalculator
	}
	if lead.Notes == "" && req.Inputs != nil {
		in := mortgage.Normalize(*req.Inputs)
		if err := mortgage.Validate(in); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLeadInvalid, err)
		}
		lead.Notes = BuildNotes(in, mortgage.ComputeBreakdown(in))
	}

	if err := s.leads.CreateLead(ctx, lead); err != nil {
		return nil, err
	}
	s.log.Infof("Lead captured: %d from %s", lead.ID, lead.Source)

	if err := s.notifier.SendLeadNotification(lead); err != nil {
		s.log.Warnf("Lead %d stored but notification failed: %v", lead.ID, err)
	}
	return lead, nil
}

// ListLeads returns the most recent leads. limit is clamped to a sane range.
func (s *Service) ListLeads(ctx context.Context, limit int) ([]models.Lead, error) {
	if limit <= 0 {
		limit = defaultLeadsLimit
	}
	if limit > maxLeadsLimit {
		limit = maxLeadsLimit
	}
	return s.leads.ListLeads(ctx, limit)
}

// BuildNotes summarizes a computed breakdown for the agent following up on a lead
func BuildNotes(in models.LoanInputs, b models.PaymentBreakdown) string {
	lines := []string{
		fmt.Sprintf("Home price: %s, down payment: %s (%s)",
			utils.FormatUSD(in.HomePrice), utils.FormatUSD(in.DownPayment), utils.FormatPercent(in.DownPaymentPercent)),
		fmt.Sprintf("Loan: %s at %s for %d years",
			utils.FormatUSD(b.FinancedPrincipal), utils.FormatPercent(in.InterestRate), in.LoanTermYears),
		fmt.Sprintf("Principal & interest: %s", utils.FormatUSD(b.PrincipalAndInterest)),
		fmt.Sprintf("Property tax: %s, insurance: %s, PMI: %s, HOA: %s",
			utils.FormatUSD(b.MonthlyPropertyTax), utils.FormatUSD(b.MonthlyInsurance),
			utils.FormatUSD(b.MonthlyPMI), utils.FormatUSD(b.MonthlyHOA)),
		fmt.Sprintf("Total monthly payment: %s", utils.FormatUSD(b.TotalMonthlyPayment)),
		fmt.Sprintf("Total of payments: %s, total interest: %s",
			utils.FormatUSD(b.TotalOfPayments), utils.FormatUSD(b.TotalInterestPaid)),
	}
	return strings.Join(lines, "\n")
}
