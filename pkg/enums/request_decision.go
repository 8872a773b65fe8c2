package enums

// RequestDecision represents the reviewer's verdict on a pending request.
type RequestDecision string

const (
	// RequestDecisionApprove applies the requested quantity to the item.
	RequestDecisionApprove RequestDecision = "approve"
	// RequestDecisionReject closes the request without touching the item.
	RequestDecisionReject RequestDecision = "reject"
)

// IsValid reports whether the value is a known RequestDecision.
func (d RequestDecision) IsValid() bool {
	return d == RequestDecisionApprove || d == RequestDecisionReject
}

// String implements fmt.Stringer.
func (d RequestDecision) String() string {
	return string(d)
}
