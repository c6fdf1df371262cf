package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ghuser/lendshare/services/booking/domain"
)

func TestValidateWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"valid future window", now.Add(time.Hour), now.Add(2 * time.Hour), false},
		{"window starting now", now, now.Add(time.Hour), false},
		{"zero start", time.Time{}, now.Add(time.Hour), true},
		{"zero end", now.Add(time.Hour), time.Time{}, true},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), true},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour), true},
		{"start in the past", now.Add(-time.Hour), now.Add(time.Hour), true},
		{"whole window in the past", now.Add(-2 * time.Hour), now.Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end, now)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidWindow) {
					t.Fatalf("expected ErrInvalidWindow, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
