package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusSubmitted, false},
		{StatusConfirmed, StatusSubmitted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusSubmitted, StatusCancelled, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	if StatusPending.Terminal() || StatusConfirmed.Terminal() {
		t.Fatalf("pending and confirmed must not be terminal")
	}
	if !StatusSubmitted.Terminal() || !StatusCancelled.Terminal() {
		t.Fatalf("submitted and cancelled must be terminal")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusSubmitted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("deleted").Valid() || Status("").Valid() {
		t.Fatalf("unknown statuses must be invalid")
	}
}
