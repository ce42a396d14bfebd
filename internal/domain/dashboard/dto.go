package dashboard

// TodayStatsResponse is the attendance aggregate for "today" across all
// active employees, for the HR dashboard pie chart.
type TodayStatsResponse struct {
	Present int64  `json:"present"`
	Late    int64  `json:"late"`
	HalfDay int64  `json:"half_day"`
	WFH     int64  `json:"wfh"`
	OnLeave int64  `json:"on_leave"`
	Absent  int64  `json:"absent"`
	Total   int64  `json:"total"`
	Date    string `json:"date"` // YYYY-MM-DD
}
