package domain

// CommandProcessingResult is returned by every command: the affected entity,
// the account's owners and a field-level change log for audit.
type CommandProcessingResult struct {
	EntityID  string         `json:"resourceId"`
	OfficeID  string         `json:"officeId"`
	ClientID  *string        `json:"clientId,omitempty"`
	GroupID   *string        `json:"groupId,omitempty"`
	SavingsID string         `json:"savingsId"`
	Changes   map[string]any `json:"changes,omitempty"`
}

// NewCommandProcessingResult starts a result for entityID on account a.
func NewCommandProcessingResult(a *SavingsAccount, entityID string) *CommandProcessingResult {
	return &CommandProcessingResult{
		EntityID:  entityID,
		OfficeID:  a.OfficeID,
		ClientID:  a.ClientID,
		GroupID:   a.GroupID,
		SavingsID: a.AccountID,
		Changes:   map[string]any{},
	}
}

// With records a change and returns the result for chaining.
func (r *CommandProcessingResult) With(key string, value any) *CommandProcessingResult {
	r.Changes[key] = value
	return r
}

// Merge copies changes reported by a collaborator, such as payment detail capture.
func (r *CommandProcessingResult) Merge(changes map[string]any) *CommandProcessingResult {
	for k, v := range changes {
		r.Changes[k] = v
	}
	return r
}
