package model

// RunAllocationResponse is the API shape of one allocation run.
type RunAllocationResponse struct {
	Results    []AllocationResult  `json:"results"`
	Candidates []ShipmentCandidate `json:"candidates"`
	// SKUs present in the sales input but skipped because they had no
	// warehouse stock or no sales signal. Absence is an expected outcome,
	// not an error.
	SkippedSKUs []string `json:"skipped_skus,omitempty"`
}
