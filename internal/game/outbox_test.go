package game

import "testing"

func TestOutboxDefersControlMessages(t *testing.T) {
	var o Outbox

	o.Emit(GoalReached{Frame: 10})
	o.Publish(JumpCue{Frame: 10})

	if o.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", o.Pending())
	}
	// Control messages are not visible until the next tick takes them
	if got := o.Drain(); len(got) != 1 {
		t.Fatalf("Drain() returned %d messages, expected only the cue", len(got))
	}

	taken := o.TakePending()
	if len(taken) != 1 {
		t.Fatalf("TakePending() returned %d messages, expected 1", len(taken))
	}
	if g, ok := taken[0].(GoalReached); !ok || g.Frame != 10 {
		t.Errorf("TakePending()[0] = %#v, expected GoalReached{Frame: 10}", taken[0])
	}
	if o.Pending() != 0 {
		t.Errorf("Pending() after take = %d, expected 0", o.Pending())
	}

	published := o.Drain()
	if len(published) != 1 {
		t.Fatalf("Drain() after take returned %d messages, expected 1", len(published))
	}
	if _, ok := published[0].(GoalReached); !ok {
		t.Errorf("published %#v, expected the taken GoalReached", published[0])
	}
	if len(o.Drain()) != 0 {
		t.Error("second Drain() should be empty")
	}
}

func TestOutboxReset(t *testing.T) {
	var o Outbox
	o.Emit(PlayerDied{Frame: 3})
	o.Publish(HazardActivated{Frame: 3})
	o.Reset()

	if o.Pending() != 0 || len(o.TakePending()) != 0 || len(o.Drain()) != 0 {
		t.Error("Reset() should drop pending and published messages")
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeSurvived, "survived"},
		{OutcomeDied, "died"},
		{OutcomeDefended, "defended"},
		{OutcomeBreached, "breached"},
	}
	for _, tc := range tests {
		if got := tc.outcome.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
