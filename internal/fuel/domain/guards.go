package domain

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Err converts a refused guard into a TransitionError.
func (g GuardResult) Err(from, to Status) error {
	if g.Allowed {
		return nil
	}
	return &TransitionError{From: from, To: to, Reason: g.Reason}
}

// TransitionContext provides context for refueling status guards.
type TransitionContext struct {
	RefuelingID   uint
	CurrentStatus Status
}

// CanConfirm evaluates whether a refueling can be confirmed.
// Rules:
// - refueling must be in draft status
func CanConfirm(ctx TransitionContext) GuardResult {
	if ctx.CurrentStatus != StatusDraft {
		return GuardResult{Reason: "only drafts can be confirmed"}
	}
	return GuardResult{Allowed: true}
}

// CanCancel evaluates whether a refueling can be cancelled.
// Rules:
// - refueling must be in confirmed status
func CanCancel(ctx TransitionContext) GuardResult {
	if ctx.CurrentStatus != StatusConfirmed {
		return GuardResult{Reason: "only confirmed refuelings can be cancelled"}
	}
	return GuardResult{Allowed: true}
}

// CanResetToDraft evaluates whether a refueling can return to draft.
// Rules:
// - refueling must be in cancelled status
func CanResetToDraft(ctx TransitionContext) GuardResult {
	if ctx.CurrentStatus != StatusCancelled {
		return GuardResult{Reason: "only cancelled refuelings can be reset to draft"}
	}
	return GuardResult{Allowed: true}
}
