package domain

import "testing"

func TestCanConfirm(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
		wantReason  string
	}{
		{name: "draft can be confirmed", status: StatusDraft, wantAllowed: true},
		{name: "confirmed cannot be confirmed again", status: StatusConfirmed, wantReason: "only drafts can be confirmed"},
		{name: "cancelled cannot be confirmed", status: StatusCancelled, wantReason: "only drafts can be confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanConfirm(TransitionContext{RefuelingID: 1, CurrentStatus: tt.status})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
		wantReason  string
	}{
		{name: "confirmed can be cancelled", status: StatusConfirmed, wantAllowed: true},
		{name: "draft cannot be cancelled", status: StatusDraft, wantReason: "only confirmed refuelings can be cancelled"},
		{name: "cancelled cannot be cancelled again", status: StatusCancelled, wantReason: "only confirmed refuelings can be cancelled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCancel(TransitionContext{RefuelingID: 1, CurrentStatus: tt.status})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanResetToDraft(t *testing.T) {
	tests := []struct {
		name        string
		status      Status
		wantAllowed bool
		wantReason  string
	}{
		{name: "cancelled can be reset", status: StatusCancelled, wantAllowed: true},
		{name: "draft cannot be reset", status: StatusDraft, wantReason: "only cancelled refuelings can be reset to draft"},
		{name: "confirmed cannot be reset", status: StatusConfirmed, wantReason: "only cancelled refuelings can be reset to draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanResetToDraft(TransitionContext{RefuelingID: 1, CurrentStatus: tt.status})
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
