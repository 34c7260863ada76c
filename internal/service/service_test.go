package service

import (
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/mortgage-service/internal/config"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/mortgage"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type MockLeadStore struct {
	Leads      []models.Lead
	ForceError bool
}

func (m *MockLeadStore) CreateLead(_ context.Context, lead *models.Lead) error {
	if m.ForceError {
		return errors.New("save error")
	}
	lead.ID = int64(len(m.Leads) + 1)
	m.Leads = append(m.Leads, *lead)
	return nil
}

func (m *MockLeadStore) ListLeads(_ context.Context, limit int) ([]models.Lead, error) {
	if limit < len(m.Leads) {
		return m.Leads[:limit], nil
	}
	return m.Leads, nil
}

type MockNotifier struct {
	Sent       []*models.Lead
	ForceError bool
}

func (m *MockNotifier) SendLeadNotification(lead *models.Lead) error {
	m.Sent = append(m.Sent, lead)
	if m.ForceError {
		return errors.New("smtp down")
	}
	return nil
}

type MockRateSource struct {
	Rate       float64
	Disabled   bool
	ForceError bool
}

func (m *MockRateSource) Enabled() bool { return !m.Disabled }

func (m *MockRateSource) GetRate(context.Context) (models.BenchmarkRate, error) {
	if m.ForceError {
		return models.BenchmarkRate{}, errors.New("feed down")
	}
	return models.BenchmarkRate{Rate: m.Rate, FetchedAt: time.Now()}, nil
}

type countingCache struct {
	*repository.MemoryCache
	hits int
}

func (c *countingCache) Get(ctx context.Context, key string) (string, bool) {
	val, ok := c.MemoryCache.Get(ctx, key)
	if ok {
		c.hits++
	}
	return val, ok
}

func newTestService(t *testing.T) (*Service, *MockLeadStore, *MockNotifier, *MockRateSource) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		AdminEmail:        "admin@example.com",
		AdminPasswordHash: string(hash),
	}

	leads := &MockLeadStore{}
	notifier := &MockNotifier{}
	rates := &MockRateSource{Rate: 6.875}
	svc := NewService(leads, repository.NewMemoryCache(), notifier, rates, logger, cfg)
	return svc, leads, notifier, rates
}

func TestCalculate_UsesCache(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	cache := &countingCache{MemoryCache: repository.NewMemoryCache()}
	svc.cache = cache

	in := svc.DefaultInputs()
	first, err := svc.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.hits != 1 {
		t.Errorf("expected one cache hit, got %d", cache.hits)
	}
	if first != second {
		t.Errorf("cached breakdown differs: %+v vs %+v", first, second)
	}
	if math.Abs(first.PrincipalAndInterest-2275.44) > 0.01 {
		t.Errorf("unexpected P&I %.2f", first.PrincipalAndInterest)
	}
}

func TestCalculate_RejectsInvalidInputs(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	in := svc.DefaultInputs()
	in.HomePrice = 0

	_, err := svc.Calculate(context.Background(), in)
	var verr *mortgage.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCalculate_DownPaymentPair(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	missingPercent := svc.DefaultInputs()
	missingPercent.DownPaymentPercent = 0
	missingPercent.PMIRate = 0.5

	missingAmount := svc.DefaultInputs()
	missingAmount.DownPayment = 0
	missingAmount.DownPaymentPercent = 5
	missingAmount.PMIRate = 0.5

	lowPercent := svc.DefaultInputs()
	lowPercent.DownPayment = 10000
	lowPercent.DownPaymentPercent = 50

	highPercent := svc.DefaultInputs()
	highPercent.DownPayment = 225000

	tests := []struct {
		name      string
		in        models.LoanInputs
		wantField string
		wantPMI   float64
	}{
		{"percent derived from amount", missingPercent, "", 0},
		{"amount derived from percent", missingAmount, "", 427500 * 0.005 / 12},
		{"percent above amount share", lowPercent, "downPaymentPercent", 0},
		{"percent below amount share", highPercent, "downPaymentPercent", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := svc.Calculate(context.Background(), tt.in)
			if tt.wantField != "" {
				var verr *mortgage.ValidationError
				if !errors.As(err, &verr) || verr.Field != tt.wantField {
					t.Fatalf("expected validation error on %s, got %v", tt.wantField, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(b.MonthlyPMI-tt.wantPMI) > 0.005 {
				t.Errorf("expected PMI %.2f, got %.2f", tt.wantPMI, b.MonthlyPMI)
			}
		})
	}
}

func TestAmortize(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	in := svc.DefaultInputs()
	in.LoanTermYears = 15

	years, err := svc.Amortize(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(years) != 15 {
		t.Errorf("expected 15 years, got %d", len(years))
	}
}

func TestSyncDownPayment(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	percent := 20.0
	amount := 125000.0

	gotAmount, gotPercent, err := svc.SyncDownPayment(500000, nil, &percent)
	if err != nil || gotAmount != 100000 || gotPercent != 20 {
		t.Errorf("percent sync: got %.2f %.2f %v", gotAmount, gotPercent, err)
	}

	gotAmount, gotPercent, err = svc.SyncDownPayment(500000, &amount, nil)
	if err != nil || gotAmount != 125000 || gotPercent != 25 {
		t.Errorf("amount sync: got %.2f %.2f %v", gotAmount, gotPercent, err)
	}

	if _, _, err := svc.SyncDownPayment(0, &amount, nil); err == nil {
		t.Error("expected error for zero home price")
	}
	if _, _, err := svc.SyncDownPayment(500000, nil, nil); err == nil {
		t.Error("expected error when neither field is set")
	}
}

func TestSyncDownPayment_OutOfRange(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		homePrice float64
		amount    *float64
		percent   *float64
		wantField string
	}{
		{"percent above 100", 500000, nil, f(150), "downPaymentPercent"},
		{"negative percent", 500000, nil, f(-5), "downPaymentPercent"},
		{"NaN percent", 500000, nil, f(math.NaN()), "downPaymentPercent"},
		{"amount above price", 500000, f(600000), nil, "downPayment"},
		{"negative amount", 500000, f(-1), nil, "downPayment"},
		{"infinite amount", 500000, f(math.Inf(1)), nil, "downPayment"},
		{"infinite price", math.Inf(1), f(1000), nil, "homePrice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SyncDownPayment(tt.homePrice, tt.amount, tt.percent)
			var verr *mortgage.ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.wantField {
				t.Errorf("expected validation error on %s, got %v", tt.wantField, err)
			}
		})
	}
}

func TestSubmitLead_BuildsNotesFromInputs(t *testing.T) {
	svc, leads, notifier, _ := newTestService(t)
	in := svc.DefaultInputs()

	lead, err := svc.SubmitLead(context.Background(), models.LeadRequest{
		Name:   " Sam Rivera ",
		Email:  "sam@example.com",
		Phone:  "555-0101",
		Inputs: &in,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Name != "Sam Rivera" {
		t.Errorf("expected trimmed name, got %q", lead.Name)
	}
	if lead.Source != models.LeadSourceMortgageCalculator {
		t.Errorf("expected default source, got %q", lead.Source)
	}
	if !strings.Contains(lead.Notes, "Total monthly payment: $2,875.44") {
		t.Errorf("unexpected notes:\n%s", lead.Notes)
	}
	if len(leads.Leads) != 1 || len(notifier.Sent) != 1 {
		t.Errorf("expected lead stored and notified, got %d/%d", len(leads.Leads), len(notifier.Sent))
	}
}

func TestSubmitLead_KeepsExplicitNotes(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	in := svc.DefaultInputs()

	lead, err := svc.SubmitLead(context.Background(), models.LeadRequest{
		Name: "Sam", Email: "sam@example.com", Source: "contact", Notes: "call after 5pm", Inputs: &in,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.Notes != "call after 5pm" || lead.Source != "contact" {
		t.Errorf("unexpected lead %+v", lead)
	}
}

func TestSubmitLead_Invalid(t *testing.T) {
	svc, leads, _, _ := newTestService(t)
	bad := svc.DefaultInputs()
	bad.LoanTermYears = 7
	mismatched := svc.DefaultInputs()
	mismatched.DownPayment = 10000
	mismatched.DownPaymentPercent = 50

	tests := []struct {
		name string
		req  models.LeadRequest
	}{
		{"missing name", models.LeadRequest{Email: "a@example.com"}},
		{"bad email", models.LeadRequest{Name: "A", Email: "not-an-email"}},
		{"bad inputs", models.LeadRequest{Name: "A", Email: "a@example.com", Inputs: &bad}},
		{"mismatched down payment", models.LeadRequest{Name: "A", Email: "a@example.com", Inputs: &mismatched}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitLead(context.Background(), tt.req)
			if !errors.Is(err, ErrLeadInvalid) {
				t.Errorf("expected ErrLeadInvalid, got %v", err)
			}
		})
	}
	if len(leads.Leads) != 0 {
		t.Errorf("invalid leads must not be stored")
	}
}

func TestSubmitLead_NotificationFailureIsNotFatal(t *testing.T) {
	svc, leads, notifier, _ := newTestService(t)
	notifier.ForceError = true

	if _, err := svc.SubmitLead(context.Background(), models.LeadRequest{Name: "A", Email: "a@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads.Leads) != 1 {
		t.Errorf("expected lead to be stored")
	}
}

func TestSubmitLead_StoreFailure(t *testing.T) {
	svc, leads, notifier, _ := newTestService(t)
	leads.ForceError = true

	if _, err := svc.SubmitLead(context.Background(), models.LeadRequest{Name: "A", Email: "a@example.com"}); err == nil {
		t.Fatal("expected error")
	}
	if len(notifier.Sent) != 0 {
		t.Errorf("notification must not be sent for unsaved lead")
	}
}

func TestListLeads_ClampsLimit(t *testing.T) {
	svc, leads, _, _ := newTestService(t)
	for i := 0; i < 3; i++ {
		leads.Leads = append(leads.Leads, models.Lead{ID: int64(i + 1)})
	}

	got, err := svc.ListLeads(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 leads, got %d", len(got))
	}
}

func TestLogin(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	tokenString, err := svc.Login("Admin@Example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != "admin@example.com" {
		t.Errorf("unexpected subject %q", claims.Subject)
	}

	if _, err := svc.Login("admin@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login("other@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
		t.Errorf("hash does not match: %v", err)
	}
	if _, err := HashPassword(""); err == nil {
		t.Error("expected error for empty password")
	}
}

func TestRefreshRate(t *testing.T) {
	svc, _, _, rates := newTestService(t)

	if _, ok := svc.CurrentRate(); ok {
		t.Fatal("expected no rate before refresh")
	}
	if svc.DefaultInputs().InterestRate != defaultInterestRate {
		t.Errorf("expected fallback rate")
	}

	if _, err := svc.RefreshRate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.DefaultInputs().InterestRate; got != 6.875 {
		t.Errorf("expected refreshed rate 6.875, got %v", got)
	}

	rates.ForceError = true
	if _, err := svc.RefreshRate(context.Background()); err == nil {
		t.Error("expected error from failing feed")
	}
	if current, _ := svc.CurrentRate(); current.Rate != 6.875 {
		t.Errorf("expected previous rate kept, got %v", current.Rate)
	}

	rates.Disabled = true
	if _, err := svc.RefreshRate(context.Background()); !errors.Is(err, ErrRateUnavailable) {
		t.Errorf("expected ErrRateUnavailable, got %v", err)
	}
}
