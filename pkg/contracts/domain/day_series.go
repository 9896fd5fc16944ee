package domain

// Point is one observation of a day series.
type Point struct {
	// Time is the zero-padded 24-hour "HH:MM" label; seconds are truncated.
	Time string `json:"time"`
	// Value is always finite. Blank or non-numeric cells read as 0.
	Value float64 `json:"value"`
}

// DaySeries is the ordered result of one extraction. Points are stably
// sorted by Time and duplicates are kept. An empty series is a valid result
// meaning "no data for that day".
type DaySeries []Point

// Labels returns the time labels in order.
func (s DaySeries) Labels() []string {
	labels := make([]string, len(s))
	for i, p := range s {
		labels[i] = p.Time
	}
	return labels
}

// Values returns the values in order.
func (s DaySeries) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Empty reports whether the series has no points.
func (s DaySeries) Empty() bool {
	return len(s) == 0
}

// DatasetMeta describes where a series came from and how to label it.
type DatasetMeta struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Unit    string `json:"unit"`
	Village string `json:"village,omitempty"`
	Date    string `json:"date"`
}

// DatasetResult carries either a series or the error that prevented it.
// Exactly one of Series (possibly empty) or Error is meaningful.
type DatasetResult struct {
	DatasetMeta
	Series    DaySeries `json:"series"`
	Error     string    `json:"error,omitempty"`
	ErrorType string    `json:"error_type,omitempty"`
}

// Failed reports whether the dataset could not be extracted.
func (r DatasetResult) Failed() bool {
	return r.Error != ""
}

// DayView is everything the view page shows for one village and date.
// One dataset failing never removes the other's result.
type DayView struct {
	Village  string          `json:"village"`
	Date     string          `json:"date"`
	Datasets []DatasetResult `json:"datasets"`
	// Message joins the per-dataset failures with "; ", empty when none failed.
	Message string `json:"message,omitempty"`
}

// Dataset returns the named result, if present.
func (v *DayView) Dataset(name string) (DatasetResult, bool) {
	for _, d := range v.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return DatasetResult{}, false
}
