package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Dan9191/mortgage-service/internal/config"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLeadInvalid        = errors.New("invalid lead")
	ErrRateUnavailable    = errors.New("benchmark rate unavailable")
)

// LeadStore persists captured leads
type LeadStore interface {
	CreateLead(ctx context.Context, lead *models.Lead) error
	ListLeads(ctx context.Context, limit int) ([]models.Lead, error)
}

// Notifier tells the brokerage about a new lead
type Notifier interface {
	SendLeadNotification(lead *models.Lead) error
}

// RateSource provides the benchmark mortgage rate
type RateSource interface {
	Enabled() bool
	GetRate(ctx context.Context) (models.BenchmarkRate, error)
}

// Service handles business logic
type Service struct {
	leads    LeadStore
	cache    repository.Cache
	notifier Notifier
	rates    RateSource
	log      *logrus.Logger
	config   *config.Config

	mu   sync.RWMutex
	rate *models.BenchmarkRate
}

// NewService initializes a new service
func NewService(leads LeadStore, cache repository.Cache, notifier Notifier, rates RateSource, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		leads:    leads,
		cache:    cache,
		notifier: notifier,
		rates:    rates,
		log:      log,
		config:   cfg,
	}
}

// Login authenticates the back-office admin and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	admin := s.admin()
	if !strings.EqualFold(strings.TrimSpace(email), admin.Email) || admin.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   admin.Email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("Admin logged in: %s", admin.Email)
	return tokenString, nil
}

// admin returns the single back-office account configured for this deployment
func (s *Service) admin() models.AdminUser {
	return models.AdminUser{
		Email:        s.config.AdminEmail,
		PasswordHash: s.config.AdminPasswordHash,
	}
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
