package models

import (
	"errors"
	"testing"

	"github.com/ghuser/lendshare/services/booking/domain"
)

func TestBooking_Decide(t *testing.T) {
	t.Run("approve waiting booking", func(t *testing.T) {
		b := &Booking{Status: StatusWaiting}
		if err := b.Decide(true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Status != StatusApproved {
			t.Fatalf("expected APPROVED, got %s", b.Status)
		}
	})

	t.Run("reject waiting booking", func(t *testing.T) {
		b := &Booking{Status: StatusWaiting}
		if err := b.Decide(false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Status != StatusRejected {
			t.Fatalf("expected REJECTED, got %s", b.Status)
		}
	})

	t.Run("deciding twice fails", func(t *testing.T) {
		b := &Booking{Status: StatusWaiting}
		if err := b.Decide(true); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := b.Decide(true); !errors.Is(err, domain.ErrNotWaiting) {
			t.Fatalf("expected ErrNotWaiting, got %v", err)
		}
		if b.Status != StatusApproved {
			t.Fatalf("status changed on failed transition: %s", b.Status)
		}
	})

	t.Run("rejected booking cannot be approved", func(t *testing.T) {
		b := &Booking{Status: StatusRejected}
		if err := b.Decide(true); !errors.Is(err, domain.ErrNotWaiting) {
			t.Fatalf("expected ErrNotWaiting, got %v", err)
		}
	})
}

func TestParseStateFilter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StateFilter
		wantErr bool
	}{
		{"empty defaults to ALL", "", FilterAll, false},
		{"ALL", "ALL", FilterAll, false},
		{"CURRENT", "CURRENT", FilterCurrent, false},
		{"PAST", "PAST", FilterPast, false},
		{"FUTURE", "FUTURE", FilterFuture, false},
		{"WAITING", "WAITING", FilterWaiting, false},
		{"REJECTED", "REJECTED", FilterRejected, false},
		{"lowercase is accepted", "current", FilterCurrent, false},
		{"unknown value", "SOMETHING", "", true},
		{"APPROVED is not a filter", "APPROVED", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStateFilter(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrUnknownState) {
					t.Fatalf("expected ErrUnknownState, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
