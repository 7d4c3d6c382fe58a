package model

import "testing"

func TestAdvanceRegistration(t *testing.T) {
	tests := []struct {
		name    string
		current RegistrationStatus
		byGuest bool
		want    RegistrationStatus
	}{
		{"staff save releases a new form", RegistrationPendingStaff, false, RegistrationPendingGuest},
		{"staff edit keeps a released form", RegistrationPendingGuest, false, RegistrationPendingGuest},
		{"staff edit keeps a completed form", RegistrationCompleted, false, RegistrationCompleted},
		{"guest submit completes a released form", RegistrationPendingGuest, true, RegistrationCompleted},
		{"guest resubmit stays completed", RegistrationCompleted, true, RegistrationCompleted},
		{"guest submit completes regardless of status", RegistrationPendingStaff, true, RegistrationCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AdvanceRegistration(tt.current, tt.byGuest); got != tt.want {
				t.Errorf("AdvanceRegistration(%q, %v) = %q, want %q",
					tt.current, tt.byGuest, got, tt.want)
			}
		})
	}
}

func TestValidRegistrationStatus(t *testing.T) {
	for _, s := range []RegistrationStatus{RegistrationPendingStaff, RegistrationPendingGuest, RegistrationCompleted} {
		if !ValidRegistrationStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []RegistrationStatus{"", "done", "PENDING_STAFF"} {
		if ValidRegistrationStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
