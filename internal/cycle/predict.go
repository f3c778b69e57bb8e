package cycle

// Length is the fixed cycle length in days used for every prediction.
const Length = 28

// PredictNext returns the predicted start of the cycle following start.
func PredictNext(start Date) Date {
	return start.AddDays(Length)
}

// Prediction is the current prediction derived from a user's latest cycle.
type Prediction struct {
	LastStart      Date `json:"lastStart"`
	PredictedStart Date `json:"predictedStart"`
	CycleLength    int  `json:"cycleLength"`
}

// Predict builds the Prediction for the given latest start date.
func Predict(lastStart Date) Prediction {
	return Prediction{
		LastStart:      lastStart,
		PredictedStart: PredictNext(lastStart),
		CycleLength:    Length,
	}
}

// Latest returns the most recent date in dates.
// The second return value is false when dates is empty.
func Latest(dates []Date) (Date, bool) {
	if len(dates) == 0 {
		return Date{}, false
	}
	latest := dates[0]
	for _, d := range dates[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, true
}
