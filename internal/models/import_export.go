package models

// ImportRowError describes why one row of an uploaded question file was rejected.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ImportSummary reports the outcome of a bulk question import.
type ImportSummary struct {
	TotalRows        int              `json:"total_rows"`
	SuccessCount     int              `json:"success_count"`
	ErrorCount       int              `json:"error_count"`
	CreatedQuestions []uint           `json:"created_questions"`
	Errors           []ImportRowError `json:"errors,omitempty"`
}
