package models

// Report is a document assembled from narrative text and chart images.
type Report struct {
	Header   string          `json:"header"`
	Sections []ReportSection `json:"sections"`
}

// ReportSection starts on a new page when NewPage is set. Body is Markdown.
// Image, when set, is a PNG path placed after the body.
type ReportSection struct {
	Title   string `json:"title"`
	Banner  bool   `json:"banner"`
	Body    string `json:"body"`
	Caption string `json:"caption"`
	Image   string `json:"image"`
	NewPage bool   `json:"new_page"`
}
