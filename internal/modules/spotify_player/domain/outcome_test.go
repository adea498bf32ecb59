package domain

import (
	"testing"
	"time"
)

func TestBatchSummary_Record(t *testing.T) {
	outcomes := []LoadOutcome{
		{Kind: OutcomeAdded, Position: 0},
		{Kind: OutcomeAdded, Position: 3},
		{Kind: OutcomeRejected},
		{Kind: OutcomeNotFound},
		{Kind: OutcomeLoadError, Message: "boom"},
	}

	var summary BatchSummary
	for _, o := range outcomes {
		summary.Record(o)
	}

	if summary.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", summary.SuccessCount)
	}
	if summary.FailCount != 3 {
		t.Errorf("FailCount = %d, want 3", summary.FailCount)
	}
	if summary.Total() != len(outcomes) {
		t.Errorf("Total() = %d, want %d", summary.Total(), len(outcomes))
	}
}

func TestAccessCredential_IsUsable(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		cred AccessCredential
		want bool
	}{
		{name: "valid", cred: AccessCredential{Token: "t", ExpiresAt: now.Add(time.Minute)}, want: true},
		{name: "expires now", cred: AccessCredential{Token: "t", ExpiresAt: now}, want: false},
		{name: "expired", cred: AccessCredential{Token: "t", ExpiresAt: now.Add(-time.Second)}, want: false},
		{name: "empty token", cred: AccessCredential{ExpiresAt: now.Add(time.Hour)}, want: false},
		{name: "zero value", cred: AccessCredential{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cred.IsUsable(now); got != tt.want {
				t.Errorf("IsUsable() = %v, want %v", got, tt.want)
			}
		})
	}
}
