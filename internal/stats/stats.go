// Package stats fetches Bitcoin and Lightning network statistics from the
// mempool.space API and persists them as stats.json for template injection.
//
// Endpoint failures degrade to missing fields; the site build treats the
// whole stats file as optional.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
)

// Stats is the document persisted to stats.json and exposed to templates.
type Stats struct {
	Bitcoin   BitcoinStats   `json:"bitcoin"`
	Lightning LightningStats `json:"lightning"`
}

// BitcoinStats carries base-layer network numbers plus display-formatted variants.
type BitcoinStats struct {
	BlockHeight    int64   `json:"block_height,omitempty"`
	BlockHeightFmt string  `json:"block_height_fmt,omitempty"`
	HashrateEH     float64 `json:"hashrate_eh,omitempty"`
	HashrateFmt    string  `json:"hashrate_fmt,omitempty"`
	Difficulty     float64 `json:"difficulty,omitempty"`
	DifficultyFmt  string  `json:"difficulty_fmt,omitempty"`
	MempoolTxCount int64   `json:"mempool_tx_count,omitempty"`
	MempoolTxFmt   string  `json:"mempool_tx_count_fmt,omitempty"`
	MempoolSizeMB  float64 `json:"mempool_size_mb,omitempty"`
	FeeFast        int64   `json:"fee_fast,omitempty"`
	FeeMedium      int64   `json:"fee_medium,omitempty"`
	FeeSlow        int64   `json:"fee_slow,omitempty"`
}

// LightningStats carries Lightning network numbers plus display-formatted variants.
type LightningStats struct {
	NodeCount       int64   `json:"node_count,omitempty"`
	NodeCountFmt    string  `json:"node_count_fmt,omitempty"`
	ChannelCount    int64   `json:"channel_count,omitempty"`
	ChannelCountFmt string  `json:"channel_count_fmt,omitempty"`
	CapacityBTC     float64 `json:"capacity_btc,omitempty"`
	CapacityBTCFmt  string  `json:"capacity_btc_fmt,omitempty"`
	AvgChannelSat   int64   `json:"avg_channel_sat,omitempty"`
	AvgChannelFmt   string  `json:"avg_channel_sat_fmt,omitempty"`
}

// Empty reports whether no stats were collected at all.
func (s *Stats) Empty() bool {
	return s == nil || (s.Bitcoin == BitcoinStats{} && s.Lightning == LightningStats{})
}

// Load reads a previously fetched stats file. A missing file returns
// (nil, nil): stats are strictly optional for the build.
func Load(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read stats file: %w", err)
	}

	var s Stats
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode stats file %s: %w", path, err)
	}
	return &s, nil
}

// Save writes stats as indented JSON.
func (s *Stats) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	// #nosec G306 -- stats file is public site data
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write stats file: %w", err)
	}
	return nil
}
