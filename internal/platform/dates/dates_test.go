package dates

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse_KeepsCalendarDay_AnyZone(t *testing.T) {
	// El bug clásico: "2024-03-05" parseado como instante UTC se muestra como
	// 4 de marzo en zonas UTC+. Parseando componentes eso no puede pasar.
	d, err := Parse("2024-03-05")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if d.Year != 2024 || d.Month != time.March || d.Day != 5 {
		t.Fatalf("expected 2024-03-05, got %+v", d)
	}
	if d.String() != "2024-03-05" {
		t.Fatalf("round trip broke: %s", d.String())
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	bad := []string{"", "2024-3", "2024/03/05", "2024-13-01", "2024-02-30", "abcd-01-02", "2024-00-10"}
	for _, s := range bad {
		if _, err := Parse(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestParseOptional_EmptyIsNil(t *testing.T) {
	d, err := ParseOptional("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != nil {
		t.Fatalf("expected nil, got %v", d)
	}
}

func TestDaysUntil(t *testing.T) {
	today := Date{Year: 2025, Month: time.June, Day: 10}

	cases := []struct {
		due  Date
		want int
	}{
		{Date{2025, time.June, 10}, 0},
		{Date{2025, time.June, 11}, 1},
		{Date{2025, time.June, 17}, 7},
		{Date{2025, time.June, 9}, -1},
		{Date{2025, time.July, 1}, 21},
	}
	for _, c := range cases {
		if got := DaysUntil(today, c.due); got != c.want {
			t.Fatalf("DaysUntil(%s, %s) = %d, want %d", today, c.due, got, c.want)
		}
	}
}

func TestAddDays_NormalizesMonthEnd(t *testing.T) {
	d := Date{Year: 2024, Month: time.January, Day: 31}
	got := d.AddDays(1)
	if got.String() != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %s", got)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	type payload struct {
		Due  Date  `json:"due"`
		Next *Date `json:"next,omitempty"`
	}

	var p payload
	if err := json.Unmarshal([]byte(`{"due":"2024-03-05"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Due.Day != 5 || p.Next != nil {
		t.Fatalf("unexpected payload: %+v", p)
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"due":"2024-03-05"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}
