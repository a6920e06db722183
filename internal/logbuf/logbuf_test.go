package logbuf

import (
	"fmt"
	"strings"
	"testing"

	"github.com/R-Stev/invest/internal/markup"
)

func TestZeroValueIsEmpty(t *testing.T) {
	var b Buffer
	snap := b.Snapshot()
	if snap.Content != "" || snap.Lines != 0 {
		t.Fatalf("zero value Snapshot() = %+v, want empty", snap)
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	var b Buffer
	var want strings.Builder
	for i := 0; i < 50; i++ {
		frag := markup.Wrap("primary", fmt.Sprintf("line %d", i)) + "\n"
		b.Append(frag)
		want.WriteString(string(frag))
	}

	snap := b.Snapshot()
	if snap.Content != want.String() {
		t.Errorf("Append order violated:\ngot  %q\nwant %q", snap.Content, want.String())
	}
	if snap.Lines != 50 {
		t.Errorf("Lines = %d, want 50", snap.Lines)
	}
}

func TestResetDiscardsPriorContent(t *testing.T) {
	var b Buffer
	b.Append(markup.Wrap("error", "Traceback (most recent call last):") + "\n")
	b.Append(markup.Wrap("", "  boom") + "\n")

	b.Reset()
	b.Append(markup.Wrap("", "X"))

	snap := b.Snapshot()
	if want := string(markup.Wrap("", "X")); snap.Content != want {
		t.Fatalf("after Reset+Append, Content = %q, want %q", snap.Content, want)
	}
}

func TestBulkLoad(t *testing.T) {
	frags := []markup.Fragment{
		markup.Wrap("primary", "one") + "\n",
		markup.Wrap("", "two") + "\n",
		markup.Wrap("error", "three") + "\n",
	}

	var b Buffer
	before := b.Snapshot().Version
	b.BulkLoad(frags)
	snap := b.Snapshot()

	var want strings.Builder
	for _, f := range frags {
		want.WriteString(string(f))
	}
	if snap.Content != want.String() {
		t.Errorf("BulkLoad content = %q, want %q", snap.Content, want.String())
	}
	if snap.Version != before+1 {
		t.Errorf("BulkLoad bumped version %d times, want 1", snap.Version-before)
	}
}

func TestVersionBumpsOnEveryMutation(t *testing.T) {
	var b Buffer
	v0 := b.Snapshot().Version
	b.Append("a")
	v1 := b.Snapshot().Version
	b.Reset()
	v2 := b.Snapshot().Version
	if !(v0 < v1 && v1 < v2) {
		t.Fatalf("versions not monotonic: %d, %d, %d", v0, v1, v2)
	}
}
