package collections

import (
	"encoding/json"
	"sort"
	"testing"
)

func TestSetAddContainsRemove(t *testing.T) {
	s := Of[int]()
	if s.Len() != 0 {
		t.Fatalf("expected empty set, got len %d", s.Len())
	}

	s.Add(1, 2, 3)
	if s.Len() != 3 {
		t.Fatalf("expected len 3, got %d", s.Len())
	}
	if !s.Contains(2) {
		t.Fatal("expected set to contain 2")
	}
	if s.Contains(99) {
		t.Fatal("did not expect set to contain 99")
	}

	s.Remove(2)
	if s.Contains(2) {
		t.Fatal("expected 2 to be removed")
	}
	if s.Len() != 2 {
		t.Fatalf("expected len 2 after removal, got %d", s.Len())
	}
}

func TestSetOf(t *testing.T) {
	s := Of("a", "b", "c")
	if s.Len() != 3 {
		t.Fatalf("expected len 3, got %d", s.Len())
	}
	for _, v := range []string{"a", "b", "c"} {
		if !s.Contains(v) {
			t.Fatalf("expected set to contain %q", v)
		}
	}
}

func TestSetList(t *testing.T) {
	s := Of(3, 1, 2)
	list := s.List()
	sort.Ints(list)
	if len(list) != 3 || list[0] != 1 || list[1] != 2 || list[2] != 3 {
		t.Fatalf("unexpected list contents: %v", list)
	}
}

func TestSetJSONRoundTrip(t *testing.T) {
	s := Of(10, 20, 30)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Set[int]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Len() != 3 {
		t.Fatalf("expected len 3 after round trip, got %d", decoded.Len())
	}
	for _, v := range []int{10, 20, 30} {
		if !decoded.Contains(v) {
			t.Fatalf("expected decoded set to contain %d", v)
		}
	}
}

func TestSetEmptyJSON(t *testing.T) {
	s := Of[int]()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty JSON array, got %s", data)
	}
}
