package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jpillora/backoff"

	"github.com/nicoortuno/econtrack/core"
	"github.com/nicoortuno/econtrack/metric"
)

// ---------------------
// Constants and Errors
// ---------------------

const (
	defaultP2PEndpoint = "https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"
	defaultPageRows    = 20
	maxFetchAttempts   = 3
)

var (
	// ErrNoQuotes is returned when a side of the book comes back empty
	ErrNoQuotes = errors.New("no quotes found")
)

// ---------------------
// Types
// ---------------------

// P2PConfig holds the query parameters for the C2C advertisement search.
type P2PConfig struct {
	Endpoint string
	Fiat     string
	Asset    string
	Country  string
	PageRows int
	Client   *http.Client
}

// P2PFeed takes one order-book snapshot of a fiat/asset P2P market per
// refresh and exposes it as a single-row batch. It implements
// core.Source.
type P2PFeed struct {
	config P2PConfig
	log    core.Logger
}

type advSearchRequest struct {
	Fiat      string   `json:"fiat"`
	Asset     string   `json:"asset"`
	TradeType string   `json:"tradeType"`
	Page      int      `json:"page"`
	Rows      int      `json:"rows"`
	Countries []string `json:"countries"`
}

type advSearchResponse struct {
	Data []struct {
		Adv struct {
			Price string `json:"price"`
		} `json:"adv"`
	} `json:"data"`
}

// ---------------------
// Constructor
// ---------------------

// NewP2PFeed creates a P2P order-book snapshot source.
func NewP2PFeed(config P2PConfig, log core.Logger) *P2PFeed {
	if config.Endpoint == "" {
		config.Endpoint = defaultP2PEndpoint
	}
	if config.PageRows == 0 {
		config.PageRows = defaultPageRows
	}
	if config.Client == nil {
		config.Client = &http.Client{Timeout: 20 * time.Second}
	}
	return &P2PFeed{config: config, log: log}
}

// Name identifies the source by its market.
func (f *P2PFeed) Name() string {
	return fmt.Sprintf("p2p-%s-%s", f.config.Asset, f.config.Fiat)
}

// Rows fetches both sides of the book and condenses them into one raw
// row. The best bid is the highest buy-page quote and the best ask the
// lowest sell-page quote. A side that cannot be fetched leaves its cells
// out of the row so derived metrics degrade to "no value" downstream.
func (f *P2PFeed) Rows(ctx context.Context) ([]core.Row, error) {
	row := core.Row{
		"ts": time.Now().Format("2006-01-02 15:04:05"),
	}

	buy, buyErr := f.fetchSide(ctx, "BUY")
	if buyErr != nil {
		f.log.WithError(buyErr).Warn("buy page unavailable")
	} else {
		fillSide(row, "buy", buy)
		row["best_bid"] = maxOf(buy)
	}

	sell, sellErr := f.fetchSide(ctx, "SELL")
	if sellErr != nil {
		f.log.WithError(sellErr).Warn("sell page unavailable")
	} else {
		fillSide(row, "sell", sell)
		row["best_ask"] = minOf(sell)
	}

	if buyErr != nil && sellErr != nil {
		return nil, fmt.Errorf("%w for %s", ErrNoQuotes, f.Name())
	}
	return []core.Row{row}, nil
}

// ---------------------
// Fetching
// ---------------------

func (f *P2PFeed) fetchSide(ctx context.Context, tradeType string) ([]float64, error) {
	retry := &backoff.Backoff{
		Min: 100 * time.Millisecond,
		Max: 1 * time.Second,
	}

	var lastErr error
	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		prices, err := f.postSearch(ctx, tradeType)
		if err == nil {
			return prices, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retry.Duration()):
		}
	}
	return nil, lastErr
}

func (f *P2PFeed) postSearch(ctx context.Context, tradeType string) ([]float64, error) {
	payload, err := json.Marshal(advSearchRequest{
		Fiat:      f.config.Fiat,
		Asset:     f.config.Asset,
		TradeType: tradeType,
		Page:      1,
		Rows:      f.config.PageRows,
		Countries: []string{f.config.Country},
	})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	response, err := f.config.Client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adv search returned status %d", response.StatusCode)
	}

	var decoded advSearchResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	prices := make([]float64, 0, len(decoded.Data))
	for _, item := range decoded.Data {
		if price := core.ToNumeric(item.Adv.Price); price.Valid {
			prices = append(prices, price.Float64)
		}
	}
	if len(prices) == 0 {
		return nil, ErrNoQuotes
	}
	return prices, nil
}

// ---------------------
// Page statistics
// ---------------------

func fillSide(row core.Row, side string, prices []float64) {
	row[side+"_count"] = len(prices)
	row[side+"_min"] = minOf(prices)
	row[side+"_max"] = maxOf(prices)
	if median := metric.Median(prices); median.Valid {
		row[side+"_median"] = median.Float64
	}
}

func minOf(prices []float64) float64 {
	out := prices[0]
	for _, p := range prices[1:] {
		if p < out {
			out = p
		}
	}
	return out
}

func maxOf(prices []float64) float64 {
	out := prices[0]
	for _, p := range prices[1:] {
		if p > out {
			out = p
		}
	}
	return out
}
