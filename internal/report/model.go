package report

// DailyReport counts circulation activity for one calendar day.
type DailyReport struct {
	Date     string `json:"date"`
	Issued   int    `json:"issued"`
	Returned int    `json:"returned"`
}

// FineReport is the fine total collected over a date range.
type FineReport struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Total float64 `json:"total"`
}

// Stats are the dashboard totals.
type Stats struct {
	TotalBooks     int `json:"total_books"`
	AvailableBooks int `json:"available_books"`
	TotalStudents  int `json:"total_students"`
	IssuedBooks    int `json:"issued_books"`
}
