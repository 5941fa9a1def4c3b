package snapshot

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Wire structs mirroring the VIZ.json document the forecasting pipeline
// uploads. Field names are the pipeline's, not ours; do not rename them.
// Every section is optional: the decoder fills zero values for anything
// missing so a partial upload still renders.

type vizDocument struct {
	Time                string         `json:"time"`
	CurrentDay          vizCurrentDay  `json:"current_day"`
	NextDay             vizNextDay     `json:"next_day"`
	ExtendedPredictions vizExtended    `json:"extended_predictions"`
	Ledger              vizLedger      `json:"Ledger_Information"`
	HistoricalContext   vizHistorical  `json:"historical_context"`
	Performance         vizPerformance `json:"prophet_performance_metrics"`
}

type vizCurrentDay struct {
	Date              string     `json:"date"`
	NetworkPrediction flexFloat  `json:"network_prediction"`
	Predictions       []vizPoint `json:"sarima_predictions"`
	NoSameDay         []vizPoint `json:"predictions_no_same_day"`
	PreviousYear      []vizPoint `json:"previous_year_data"`
	Actuals           []vizPoint `json:"current_day_data"`
}

type vizNextDay struct {
	Date        string     `json:"date"`
	Predictions []vizPoint `json:"sarima_predictions"`
}

type vizExtended struct {
	Predictions []vizPoint `json:"predictions"`
}

// vizPoint carries one series entry. The pipeline names the value column
// differently per block ("Predicted_Workable", "Workable",
// "Predicted_Workable_No_Same_Day"); whichever is present wins.
type vizPoint struct {
	Time      string    `json:"Time"`
	Predicted flexFloat `json:"Predicted_Workable"`
	Workable  flexFloat `json:"Workable"`
	NoSameDay flexFloat `json:"Predicted_Workable_No_Same_Day"`
	Lower     flexFloat `json:"Lower_Bound"`
	Upper     flexFloat `json:"Upper_Bound"`
}

func (p vizPoint) value() float64 {
	if p.Predicted != 0 {
		return float64(p.Predicted)
	}
	if p.Workable != 0 {
		return float64(p.Workable)
	}
	return float64(p.NoSameDay)
}

type vizLedger struct {
	TimePoints []string               `json:"timePoints"`
	Metrics    map[string][]flexFloat `json:"metrics"`
}

type vizHistorical struct {
	DailySummary map[string]map[string]flexFloat `json:"daily_summary_trends"`
}

type vizPerformance struct {
	CurrentDayTotal flexFloat `json:"current_day_final_prophet_total"`
	NextDayTotal    flexFloat `json:"next_day_final_prophet_total"`
	NetworkTarget   flexFloat `json:"network_prediction_target"`
}

// flexFloat decodes a JSON number, a numeric string, or null to a float64.
// The pipeline's ledger columns occasionally pass through as strings; a
// value that cannot be read becomes 0 rather than failing the document.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}
