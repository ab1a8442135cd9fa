package bind

import "testing"

func TestClockAdvanceShiftsPrevious(t *testing.T) {
	var c Clock

	c.Advance(1.5)
	if c.Now() != 1.5 || c.Previous() != 0 {
		t.Fatalf("after Advance(1.5): now=%v prev=%v, want 1.5/0", c.Now(), c.Previous())
	}

	c.Advance(2.5)
	if c.Now() != 2.5 || c.Previous() != 1.5 {
		t.Fatalf("after Advance(2.5): now=%v prev=%v, want 2.5/1.5", c.Now(), c.Previous())
	}
}

func TestClockAdvanceSameTickIsNoOp(t *testing.T) {
	var c Clock

	c.Advance(1)
	c.Advance(2)
	c.Advance(2)
	c.Advance(2)

	if c.Now() != 2 {
		t.Fatalf("now = %v, want 2", c.Now())
	}
	if c.Previous() != 1 {
		t.Fatalf("repeated same-tick Advance corrupted previous: got %v, want 1", c.Previous())
	}
}

func TestClockZeroValueUsable(t *testing.T) {
	var c Clock
	if c.Now() != 0 || c.Previous() != 0 {
		t.Fatalf("zero clock: now=%v prev=%v, want 0/0", c.Now(), c.Previous())
	}
}
