package ratefeed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/mortgage-service/internal/config"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// Client fetches the benchmark mortgage rate from an XML feed
type Client struct {
	url    string
	path   string
	soap   bool
	margin float64
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rate feed client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:    cfg.RateFeedURL,
		path:   cfg.RateFeedPath,
		soap:   cfg.RateFeedSOAP,
		margin: cfg.LenderMargin,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Enabled reports whether a feed URL is configured
func (c *Client) Enabled() bool {
	return c.url != ""
}

// buildSOAPRequest creates a SOAP request for the benchmark rate over the last 30 days
func (c *Client) buildSOAPRequest(now time.Time) string {
	fromDate := now.AddDate(0, 0, -30).Format("2006-01-02")
	toDate := now.Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<BenchmarkRate>
					<fromDate>%s</fromDate>
					<toDate>%s</toDate>
				</BenchmarkRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

// sendRequest fetches the raw feed document
func (c *Client) sendRequest(ctx context.Context) ([]byte, error) {
	var (
		req *http.Request
		err error
	)
	if c.soap {
		body := c.buildSOAPRequest(time.Now())
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(body))
		if err == nil {
			req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("Rate feed XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts the first rate found at the configured path
func (c *Client) parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	path, err := etree.CompilePath(c.path)
	if err != nil {
		return 0, fmt.Errorf("invalid rate path %q: %w", c.path, err)
	}
	rateElement := doc.FindElementPath(path)
	if rateElement == nil {
		return 0, fmt.Errorf("no rate data found at %s", c.path)
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateElement.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate: %w", err)
	}
	return rate, nil
}

// GetRate retrieves the current benchmark rate and adds the lender margin
func (c *Client) GetRate(ctx context.Context) (models.BenchmarkRate, error) {
	if !c.Enabled() {
		return models.BenchmarkRate{}, fmt.Errorf("rate feed URL is not configured")
	}

	body, err := c.sendRequest(ctx)
	if err != nil {
		return models.BenchmarkRate{}, err
	}

	rate, err := c.parseXMLResponse(body)
	if err != nil {
		return models.BenchmarkRate{}, err
	}

	result := models.BenchmarkRate{
		Rate:      rate + c.margin,
		Margin:    c.margin,
		Source:    c.url,
		FetchedAt: time.Now().UTC(),
	}
	c.log.Infof("Retrieved benchmark rate: %.3f%% (including %.3f%% lender margin)", result.Rate, c.margin)
	return result, nil
}
