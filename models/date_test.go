package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("1990-01-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}

	encoded, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(encoded) != `"1990-01-01"` {
		t.Errorf("encoded = %s, want \"1990-01-01\"", encoded)
	}

	var decoded Date
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if !decoded.Equal(d.Time) {
		t.Errorf("round trip changed the value: %v != %v", decoded, d)
	}
}

func TestDateUnmarshalRejectsBadInput(t *testing.T) {
	var d Date
	for _, input := range []string{`"01/01/1990"`, `"1990-13-01"`, `12345`, `""`} {
		if err := json.Unmarshal([]byte(input), &d); err == nil {
			t.Errorf("input %s did not fail", input)
		}
	}
}

func TestDateScan(t *testing.T) {
	want := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	var fromTime Date
	if err := fromTime.Scan(want); err != nil {
		t.Fatalf("Scan(time.Time) returned error: %v", err)
	}
	if !fromTime.Equal(want) {
		t.Errorf("Scan(time.Time) = %v, want %v", fromTime, want)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("1990-01-01")); err != nil {
		t.Fatalf("Scan([]byte) returned error: %v", err)
	}
	if fromBytes.Format(DateLayout) != "1990-01-01" {
		t.Errorf("Scan([]byte) = %v", fromBytes)
	}

	var fromNil Date
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if !fromNil.IsZero() {
		t.Errorf("Scan(nil) = %v, want zero", fromNil)
	}

	var fromInt Date
	if err := fromInt.Scan(42); err == nil {
		t.Error("Scan(int) did not fail")
	}
}

func TestDateValue(t *testing.T) {
	d, _ := ParseDate("2024-02-29")
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if v != "2024-02-29" {
		t.Errorf("Value = %v, want 2024-02-29", v)
	}
}
