package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", -100, true},
		{"-12,34", -1234, true},
		{"+5", 500, true},
		{"0", 0, true},
		{".5", 50, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"-", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyAbs(t *testing.T) {
	if got := (Money{Cents: -1234}).Abs(); got.Cents != 1234 {
		t.Fatalf("expected 1234, got %d", got.Cents)
	}
	if got := (Money{Cents: 1234}).Abs(); got.Cents != 1234 {
		t.Fatalf("expected 1234, got %d", got.Cents)
	}
}

func TestMoneyMulRound(t *testing.T) {
	cases := []struct {
		cents  int64
		factor float64
		out    int64
	}{
		{10000, 1.05, 10500},
		{10000, 3 * 1.03, 30900},
		{10000, 12 * 1.02, 122400},
		{5000, 1.1, 5500},
		{5000, 1.2, 6000},
		{333, 1.5, 500},   // 499.5 rounds half away from zero
		{-333, 1.5, -500},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).MulRound(tc.factor); got.Cents != tc.out {
			t.Fatalf("%d * %v expected %d, got %d", tc.cents, tc.factor, tc.out, got.Cents)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := (Money{Cents: 1234}).MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "12.34" {
		t.Fatalf("expected 12.34, got %s", b)
	}

	var m Money
	if err := m.UnmarshalJSON([]byte("12.34")); err != nil || m.Cents != 1234 {
		t.Fatalf("number unmarshal: got %d (err=%v)", m.Cents, err)
	}
	if err := m.UnmarshalJSON([]byte(`"-5.50"`)); err != nil || m.Cents != -550 {
		t.Fatalf("string unmarshal: got %d (err=%v)", m.Cents, err)
	}
	if err := m.UnmarshalJSON([]byte(`"oops"`)); err == nil {
		t.Fatal("expected error for invalid amount")
	}
}
