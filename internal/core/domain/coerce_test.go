package domain

import (
	"encoding/json"
	"testing"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{`500`, 500, true},
		{`-3`, -3, true},
		{`0`, 0, true},
		{`500.0`, 500, true},
		{`1e3`, 1000, true},
		{`"42"`, 42, true},
		{`" 7 "`, 7, true},
		{`9223372036854775807`, 9223372036854775807, true},
		{`9223372036854775808`, 0, false},
		{`9.223372036854775808e18`, 0, false},
		{`-9.223372036854775808e18`, -9223372036854775808, true},
		{`1e19`, 0, false},
		{`12.5`, 0, false},
		{`"12.5"`, 0, false},
		{`"abc"`, 0, false},
		{`true`, 0, false},
		{`null`, 0, false},
		{`{}`, 0, false},
		{`[]`, 0, false},
		{``, 0, false},
	}

	for _, tt := range tests {
		got, ok := CoerceInt(json.RawMessage(tt.raw))
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CoerceInt(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}
