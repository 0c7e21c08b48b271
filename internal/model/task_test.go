package model

import "testing"

func TestStatus_Next(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status Status
		next   Status
		ok     bool
	}{
		{StatusNotStarted, StatusInProgress, true},
		{StatusInProgress, StatusDone, true},
		{StatusDone, StatusDone, false},
		{Status(7), Status(7), false},
	}
	for _, tc := range cases {
		next, ok := tc.status.Next()
		if next != tc.next || ok != tc.ok {
			t.Fatalf("Next(%d): want (%d, %v), got (%d, %v)", tc.status, tc.next, tc.ok, next, ok)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	t.Parallel()

	for s, want := range map[Status]bool{
		StatusNotStarted: true,
		StatusInProgress: true,
		StatusDone:       true,
		Status(-1):       false,
		Status(3):        false,
	} {
		if s.Valid() != want {
			t.Fatalf("Valid(%d): want %v", s, want)
		}
	}
}

func TestStatus_Label(t *testing.T) {
	t.Parallel()

	for s, want := range map[Status]string{
		StatusNotStarted: "not started",
		StatusInProgress: "in progress",
		StatusDone:       "done",
		Status(9):        "unknown",
	} {
		if got := s.Label(); got != want {
			t.Fatalf("Label(%d): want %q, got %q", s, want, got)
		}
	}
}
