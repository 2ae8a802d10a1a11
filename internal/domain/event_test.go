package domain

import (
	"reflect"
	"testing"
)

func TestMerge_SetsKey(t *testing.T) {
	h := EventHistory{}
	out := h.Merge("delivered", EventDetail{Timestamp: "2025-08-01T10:00:00Z"})

	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	if out["delivered"].Timestamp != "2025-08-01T10:00:00Z" {
		t.Errorf("unexpected detail: %+v", out["delivered"])
	}
}

func TestMerge_Idempotent(t *testing.T) {
	detail := EventDetail{Timestamp: "2025-08-01T10:00:00Z", Link: "https://example.com"}

	once := EventHistory{}.Merge("clicked", detail)
	twice := once.Merge("clicked", detail)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merging the same event twice changed the history: %+v vs %+v", once, twice)
	}
}

func TestMerge_SameKindReplaces(t *testing.T) {
	h := EventHistory{}.Merge("opened", EventDetail{Timestamp: "T0"})
	h = h.Merge("opened", EventDetail{Timestamp: "T1"})

	if len(h) != 1 {
		t.Fatalf("expected 1 entry after re-merge, got %d", len(h))
	}
	if h["opened"].Timestamp != "T1" {
		t.Errorf("expected last write to win, got timestamp %s", h["opened"].Timestamp)
	}
}

func TestMerge_DoesNotTouchOtherKeys(t *testing.T) {
	clicked := EventDetail{Timestamp: "T0", Link: "https://x", UserAgent: "UA"}
	h := EventHistory{"clicked": clicked}

	out := h.Merge("opened", EventDetail{Timestamp: "T1"})

	if !reflect.DeepEqual(out["clicked"], clicked) {
		t.Errorf("clicked entry changed: %+v", out["clicked"])
	}
	if out["opened"].Timestamp != "T1" {
		t.Errorf("opened entry missing: %+v", out)
	}
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	h := EventHistory{"sent": {Timestamp: "T0"}}
	_ = h.Merge("sent", EventDetail{Timestamp: "T1"})

	if h["sent"].Timestamp != "T0" {
		t.Errorf("receiver mutated: %+v", h)
	}
}
