package exercise

import "testing"

func TestFindQuoteRange(t *testing.T) {
	r, ok := FindQuoteRange("Paris is the capital of France.", "capital of France")
	if !ok {
		t.Fatal("expected quote to be found")
	}
	if r.Start != 13 || r.End != 30 {
		t.Errorf("got {%d, %d}, want {13, 30}", r.Start, r.End)
	}
}

func TestFindQuoteRange_FirstOccurrence(t *testing.T) {
	r, ok := FindQuoteRange("aba aba", "aba")
	if !ok {
		t.Fatal("expected quote to be found")
	}
	if r.Start != 0 || r.End != 3 {
		t.Errorf("got {%d, %d}, want {0, 3}", r.Start, r.End)
	}
}

func TestFindQuoteRange_NotPresent(t *testing.T) {
	r, ok := FindQuoteRange("Paris is the capital of France.", "capital of Spain")
	if ok || r != nil {
		t.Errorf("expected nil range, got %v", r)
	}
}

func TestFindQuoteRange_Empty(t *testing.T) {
	if _, ok := FindQuoteRange("", "x"); ok {
		t.Error("empty passage should not match")
	}
	if _, ok := FindQuoteRange("x", ""); ok {
		t.Error("empty quote should not match")
	}
}

func TestParseKey(t *testing.T) {
	for _, k := range Keys {
		got, err := ParseKey(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKey(%q) = %q, %v", k, got, err)
		}
	}
	if _, err := ParseKey("E"); err == nil {
		t.Error("expected error for key E")
	}
	if _, err := ParseKey("a"); err == nil {
		t.Error("expected error for lowercase key")
	}
}

func TestOptionsGet(t *testing.T) {
	o := Options{A: "one", B: "two", C: "three", D: "four"}
	if o.Get(KeyC) != "three" {
		t.Errorf("Get(C) = %q", o.Get(KeyC))
	}
	if o.Get("E") != "" {
		t.Errorf("Get(E) should be empty")
	}
}
