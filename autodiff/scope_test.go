package autodiff

import "testing"

func TestCurrentTapeIsStableWithinAGoroutine(t *testing.T) {
	defer DropTape()

	a := CurrentTape()
	b := CurrentTape()
	if a != b {
		t.Fatal("CurrentTape returned different tapes within the same goroutine")
	}
}

func TestDropTapeStartsAFreshTape(t *testing.T) {
	defer DropTape()

	a := CurrentTape()
	a.Var(1)
	if a.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", a.Len())
	}

	DropTape()
	b := CurrentTape()
	if a == b {
		t.Fatal("CurrentTape returned the same tape after DropTape")
	}
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 on a freshly scoped tape", b.Len())
	}
}

func TestCurrentTapeIsolatedAcrossGoroutines(t *testing.T) {
	defer DropTape()

	own := CurrentTape()
	own.Var(1)

	done := make(chan *Tape)
	go func() {
		defer DropTape()
		other := CurrentTape()
		other.Var(2)
		other.Var(3)
		done <- other
	}()
	other := <-done

	if own == other {
		t.Fatal("CurrentTape returned the same tape across different goroutines")
	}
	if own.Len() != 1 {
		t.Fatalf("own tape Len() = %d, want 1", own.Len())
	}
	if other.Len() != 2 {
		t.Fatalf("other goroutine's tape Len() = %d, want 2", other.Len())
	}
}
