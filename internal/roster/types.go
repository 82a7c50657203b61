// Package roster ingests bulk student roster files and reconciles them
// against the student directory, creating or updating accounts and issuing
// one-time credentials.
package roster

// Row is one proposed student record from a roster file. Transient input,
// consumed once per import run.
type Row struct {
	Name      string `json:"name"`
	Matricula string `json:"matricula"`
	Class     string `json:"class"`
}

// Status is the outcome of reconciling one row.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusError   Status = "error"
)

// Record is the per-row outcome. Password is set only when a new account was
// created and carries the one-time credential; it is never recoverable after
// this record is discarded.
type Record struct {
	Row      Row    `json:"row"`
	Status   Status `json:"status"`
	Password string `json:"password,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Summary aggregates one import run.
type Summary struct {
	Total   int `json:"total"`
	Created int `json:"created"`
	Updated int `json:"updated"`
	Errors  int `json:"errors"`
}

// Result is the full report of one import run. Records preserve input order.
type Result struct {
	Summary Summary  `json:"summary"`
	Records []Record `json:"records"`
}
