package booking

import (
	"strings"
	"testing"
)

func TestVideoLinkDeterministic(t *testing.T) {
	t.Setenv("VIDEO_CALL_BASE_URL", "https://meet.test")

	first := VideoLink(42)
	second := VideoLink(42)
	if first != second {
		t.Fatalf("VideoLink is not deterministic: %q != %q", first, second)
	}
	if !strings.HasPrefix(first, "https://meet.test/") {
		t.Errorf("unexpected link base: %q", first)
	}
}

func TestVideoLinkDiffersPerAppointment(t *testing.T) {
	if VideoLink(1) == VideoLink(2) {
		t.Error("different appointments produced the same link")
	}
}
