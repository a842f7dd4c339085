package model

// AnalysisRequest is the JSON body of POST /api/analyze
type AnalysisRequest struct {
	PRURL string `json:"pr_url"`
}

// AnalysisResponse is the JSON envelope returned by the analyze endpoint.
// Exactly one of Result/Error is meaningful: the presence of the "error" key
// always marks a failure, regardless of Result.
type AnalysisResponse struct {
	Result string  `json:"result,omitempty"`
	Error  *string `json:"error,omitempty"`
}

// Failed reports whether the envelope carries a backend-reported error
func (r *AnalysisResponse) Failed() bool {
	return r.Error != nil
}
