package model

// EventDetails is the metadata substituted into certificates and sent along
// with a generation request.
type EventDetails struct {
	Name      string `json:"name,omitempty"`
	Location  string `json:"location,omitempty"`
	IssueDate string `json:"issueDate,omitempty"`
}
