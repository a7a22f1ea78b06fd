package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DefaultTimeout = 10 * time.Second

// HTTPSource reads quotes from a JSON endpoint:
//
//	GET {baseURL}/quote?symbol=AAPL  ->  {"symbol":"AAPL","price":189.91}
//
// The price may be a JSON number or a quoted decimal string.
type HTTPSource struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPSource creates a quote client. An empty token sends no
// Authorization header; a zero timeout uses DefaultTimeout.
func NewHTTPSource(baseURL, token string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type quoteResponse struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"price"`
	Time   *time.Time      `json:"time,omitempty"`
}

func (c *HTTPSource) Quote(ctx context.Context, symbol string) (Quote, error) {
	if symbol == "" {
		return Quote{}, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	apiURL := fmt.Sprintf("%s/quote?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return Quote{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Quote{}, fmt.Errorf("%s: %w", symbol, ErrNoQuote)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Quote{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var qr quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return Quote{}, fmt.Errorf("decode response: %w", err)
	}
	if !qr.Price.IsPositive() {
		return Quote{}, fmt.Errorf("%s: non-positive price %s", symbol, qr.Price)
	}

	q := Quote{Symbol: symbol, Price: qr.Price.InexactFloat64(), Time: time.Now()}
	if qr.Time != nil {
		q.Time = *qr.Time
	}
	return q, nil
}
