package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tterrag131/reimagined-disco/internal/domain"
)

// Decode parses a raw VIZ.json payload into the domain snapshot. Missing
// sections degrade to empty defaults; the only hard failure is a payload
// that is not a JSON object at all.
func Decode(payload []byte) (*domain.Snapshot, error) {
	var doc vizDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	snap := &domain.Snapshot{
		GeneratedAt:        doc.Time,
		CurrentDate:        doc.CurrentDay.Date,
		NetworkPrediction:  float64(doc.CurrentDay.NetworkPrediction),
		DayPredictions:     toPoints(doc.CurrentDay.Predictions),
		NoSameDay:          toPoints(doc.CurrentDay.NoSameDay),
		Actuals:            toPoints(doc.CurrentDay.Actuals),
		PreviousYear:       toPoints(doc.CurrentDay.PreviousYear),
		NextDate:           doc.NextDay.Date,
		NextDayPredictions: toPoints(doc.NextDay.Predictions),
		Extended:           toPoints(doc.ExtendedPredictions.Predictions),
		Ledger:             toLedger(doc.Ledger),
		Trends:             buildTrendTable(doc.HistoricalContext),
		Performance: domain.PerformanceMetrics{
			CurrentDayTotal: float64(doc.Performance.CurrentDayTotal),
			NextDayTotal:    float64(doc.Performance.NextDayTotal),
			NetworkTarget:   float64(doc.Performance.NetworkTarget),
		},
	}
	return snap, nil
}

// Default returns the empty placeholder snapshot shown when no data could
// be fetched. Every derived figure computed from it is zero.
func Default() *domain.Snapshot {
	return &domain.Snapshot{
		Ledger: domain.Ledger{Metrics: map[string][]float64{}},
		Trends: domain.TrendTable{Daily: map[domain.TrendKey]float64{}},
	}
}

func toPoints(pts []vizPoint) []domain.PredictionPoint {
	if len(pts) == 0 {
		return nil
	}
	out := make([]domain.PredictionPoint, 0, len(pts))
	for _, p := range pts {
		out = append(out, domain.PredictionPoint{
			Time:     p.Time,
			Workable: p.value(),
			Lower:    float64(p.Lower),
			Upper:    float64(p.Upper),
		})
	}
	return out
}

func toLedger(l vizLedger) domain.Ledger {
	metrics := make(map[string][]float64, len(l.Metrics))
	for name, vals := range l.Metrics {
		series := make([]float64, 0, len(vals))
		for _, v := range vals {
			series = append(series, float64(v))
		}
		metrics[name] = series
	}
	return domain.Ledger{TimePoints: l.TimePoints, Metrics: metrics}
}

const (
	trendKeyPrefix = "avg_total_daily_volume_last_"
	trendKeySuffix = "_occurrences"
)

// buildTrendTable flattens the historical-context block into an explicit
// (day, window) lookup, built once here so read paths never reconstruct
// the pipeline's string keys.
func buildTrendTable(h vizHistorical) domain.TrendTable {
	daily := make(map[domain.TrendKey]float64)
	for day, figures := range h.DailySummary {
		for key, val := range figures {
			window, ok := trendWindow(key)
			if !ok {
				continue
			}
			daily[domain.TrendKey{Day: day, Window: window}] = float64(val)
		}
	}
	return domain.TrendTable{Daily: daily}
}

func trendWindow(key string) (int, bool) {
	if !strings.HasPrefix(key, trendKeyPrefix) || !strings.HasSuffix(key, trendKeySuffix) {
		return 0, false
	}
	mid := strings.TrimSuffix(strings.TrimPrefix(key, trendKeyPrefix), trendKeySuffix)
	n, err := strconv.Atoi(mid)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
