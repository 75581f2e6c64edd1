package user

// RowError is one failed record in a bulk-create run. Position is the
// 0-based index into the data rows, header excluded.
type RowError struct {
	Position int    `json:"position"`
	Email    string `json:"email"`
	Reason   string `json:"reason"`
}

// BulkCreateResult aggregates a bulk-create run. SuccessCount plus
// FailureCount always equals TotalRecords; rows rejected by validation count
// as failures.
type BulkCreateResult struct {
	TotalRecords     int        `json:"totalRecords"`
	SuccessCount     int        `json:"successCount"`
	FailureCount     int        `json:"failureCount"`
	Errors           []RowError `json:"errors"`
	ElapsedMillis    int64      `json:"elapsedMillis"`
	ElapsedFormatted string     `json:"elapsedFormatted"`
}

// DeleteFailure is one directory user a bulk delete could not remove.
type DeleteFailure struct {
	Email  string `json:"email"`
	UserID string `json:"userId"`
	Reason string `json:"reason"`
}

// BulkDeleteResult aggregates a bulk-delete run.
type BulkDeleteResult struct {
	TotalUsers       int             `json:"totalUsers"`
	DeletedCount     int             `json:"deletedCount"`
	FailedCount      int             `json:"failedCount"`
	Failures         []DeleteFailure `json:"failures"`
	ElapsedMillis    int64           `json:"elapsedMillis"`
	ElapsedFormatted string          `json:"elapsedFormatted"`
}

// Criteria selects which directory users a bulk delete targets.
type Criteria string

const (
	CriteriaAll    Criteria = "all"
	CriteriaByRole Criteria = "role"
)

// DeleteCriteria is the declarative input to a bulk delete. Confirm must be
// set by the caller when Criteria is CriteriaAll.
type DeleteCriteria struct {
	Criteria Criteria `json:"criteria"`
	Role     Role     `json:"role,omitempty"`
	Confirm  bool     `json:"confirm,omitempty"`
}
