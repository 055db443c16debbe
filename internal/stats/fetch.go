package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"time"

	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

const (
	defaultAPIBase   = "https://mempool.space/api"
	defaultAPIBaseV1 = "https://mempool.space/api/v1"
	userAgent        = "blogsmith-stats/1.0"
)

// Fetcher retrieves network statistics from the mempool.space API.
type Fetcher struct {
	client  *http.Client
	apiBase string // /api
	apiV1   string // /api/v1
}

// NewFetcher creates a fetcher with a 30 second per-request timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiBase: defaultAPIBase,
		apiV1:   defaultAPIBaseV1,
	}
}

// NewFetcherWithBase creates a fetcher against a custom API base (tests).
func NewFetcherWithBase(base string, client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{client: client, apiBase: base, apiV1: base + "/v1"}
}

// Fetch collects Bitcoin and Lightning stats. Individual endpoint failures
// are logged and leave their fields unset; Fetch itself only fails when the
// context is canceled.
func (f *Fetcher) Fetch(ctx context.Context) (*Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &Stats{}
	f.fetchBitcoin(ctx, &s.Bitcoin)
	f.fetchLightning(ctx, &s.Lightning)
	return s, nil
}

func (f *Fetcher) fetchBitcoin(ctx context.Context, out *BitcoinStats) {
	var tip int64
	if err := f.getJSON(ctx, f.apiBase+"/blocks/tip/height", &tip); err != nil {
		slog.Warn("Skipping stats endpoint", logfields.Error(err))
	} else {
		out.BlockHeight = tip
		out.BlockHeightFmt = FormatNumber(float64(tip), 0)
	}

	var hashrate struct {
		CurrentHashrate   float64 `json:"currentHashrate"`
		CurrentDifficulty float64 `json:"currentDifficulty"`
	}
	if err := f.getJSON(ctx, f.apiV1+"/mining/hashrate/3d", &hashrate); err != nil {
		slog.Warn("Skipping stats endpoint", logfields.Error(err))
	} else {
		if hashrate.CurrentHashrate > 0 {
			out.HashrateEH = math.Round(hashrate.CurrentHashrate/1e18*10) / 10
			out.HashrateFmt = fmt.Sprintf("%.1f EH/s", out.HashrateEH)
		}
		if hashrate.CurrentDifficulty > 0 {
			out.Difficulty = hashrate.CurrentDifficulty
			out.DifficultyFmt = FormatNumber(hashrate.CurrentDifficulty, 1)
		}
	}

	var mempool struct {
		Count int64   `json:"count"`
		VSize float64 `json:"vsize"`
	}
	if err := f.getJSON(ctx, f.apiBase+"/mempool", &mempool); err != nil {
		slog.Warn("Skipping stats endpoint", logfields.Error(err))
	} else {
		out.MempoolTxCount = mempool.Count
		out.MempoolTxFmt = FormatNumber(float64(mempool.Count), 0)
		out.MempoolSizeMB = math.Round(mempool.VSize/1e6*10) / 10
	}

	var fees struct {
		FastestFee  int64 `json:"fastestFee"`
		HalfHourFee int64 `json:"halfHourFee"`
		HourFee     int64 `json:"hourFee"`
	}
	if err := f.getJSON(ctx, f.apiV1+"/fees/recommended", &fees); err != nil {
		slog.Warn("Skipping stats endpoint", logfields.Error(err))
	} else {
		out.FeeFast = fees.FastestFee
		out.FeeMedium = fees.HalfHourFee
		out.FeeSlow = fees.HourFee
	}
}

func (f *Fetcher) fetchLightning(ctx context.Context, out *LightningStats) {
	var ln struct {
		Latest struct {
			NodeCount     int64   `json:"node_count"`
			ChannelCount  int64   `json:"channel_count"`
			TotalCapacity float64 `json:"total_capacity"`
		} `json:"latest"`
	}
	if err := f.getJSON(ctx, f.apiV1+"/lightning/statistics/latest", &ln); err != nil {
		slog.Warn("Skipping stats endpoint", logfields.Error(err))
		return
	}

	out.NodeCount = ln.Latest.NodeCount
	out.NodeCountFmt = FormatNumber(float64(ln.Latest.NodeCount), 0)
	out.ChannelCount = ln.Latest.ChannelCount
	out.ChannelCountFmt = FormatNumber(float64(ln.Latest.ChannelCount), 0)
	out.CapacityBTC = math.Round(ln.Latest.TotalCapacity / 1e8)
	out.CapacityBTCFmt = FormatNumber(out.CapacityBTC, 0)

	if ln.Latest.ChannelCount > 0 {
		avg := ln.Latest.TotalCapacity / float64(ln.Latest.ChannelCount)
		out.AvgChannelSat = int64(avg)
		out.AvgChannelFmt = FormatNumber(avg, 0)
	}
}

// getJSON fetches and decodes one endpoint. Every failure comes back as a
// network-category error carrying the URL, so callers log it and leave the
// corresponding fields unset.
func (f *Fetcher) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return berrors.FetchFailed(url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return berrors.FetchFailed(url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return berrors.FetchFailed(url, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return berrors.FetchFailed(url, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return berrors.FetchFailed(url, err)
	}
	return nil
}
