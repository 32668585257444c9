package util

import "testing"

func TestParseNullInt64(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		wantVal   int64
	}{
		{"", false, 0},
		{"abc", false, 0},
		{"0", true, 0},
		{"5000", true, 5000},
		{"-10", true, -10},
	}

	for _, tt := range tests {
		got := ParseNullInt64(tt.input)
		if got.Valid != tt.wantValid {
			t.Errorf("ParseNullInt64(%q).Valid = %v; want %v", tt.input, got.Valid, tt.wantValid)
		}
		if got.Valid && got.Int64 != tt.wantVal {
			t.Errorf("ParseNullInt64(%q).Int64 = %d; want %d", tt.input, got.Int64, tt.wantVal)
		}
	}
}

func TestParseNullInt64Positive(t *testing.T) {
	if got := ParseNullInt64Positive("0"); got.Valid {
		t.Error("ParseNullInt64Positive(\"0\") should be invalid")
	}
	if got := ParseNullInt64Positive("-3"); got.Valid {
		t.Error("ParseNullInt64Positive(\"-3\") should be invalid")
	}
	if got := ParseNullInt64Positive("15000"); !got.Valid || got.Int64 != 15000 {
		t.Errorf("ParseNullInt64Positive(\"15000\") = %+v; want valid 15000", got)
	}
}

func TestNullStringOr(t *testing.T) {
	if got := NullStringOr(NullStringFromValue(""), "Unknown User"); got != "Unknown User" {
		t.Errorf("NullStringOr empty = %q; want fallback", got)
	}
	if got := NullStringOr(NullStringFromValue("Asha"), "Unknown User"); got != "Asha" {
		t.Errorf("NullStringOr set = %q; want Asha", got)
	}
}

func TestNullInt64Or(t *testing.T) {
	if got := NullInt64Or(ParseNullInt64(""), 0); got != 0 {
		t.Errorf("NullInt64Or unset = %d; want 0", got)
	}
	if got := NullInt64Or(NullInt64FromValue(12000), 0); got != 12000 {
		t.Errorf("NullInt64Or set = %d; want 12000", got)
	}
}
