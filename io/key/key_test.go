// SPDX-License-Identifier: Unlicense OR MIT

package key

import "testing"

func TestModifiersString(t *testing.T) {
	tests := []struct {
		m    Modifiers
		want string
	}{
		{0, ""},
		{ModCtrl, "Ctrl"},
		{ModCtrl | ModShift, "Ctrl-Shift"},
		{ModShift | ModAlt | ModSuper, "Shift-Alt-Super"},
	}
	for _, tc := range tests {
		if got := tc.m.String(); got != tc.want {
			t.Errorf("%#x.String() = %q, want %q", uint32(tc.m), got, tc.want)
		}
	}
	if !(ModCtrl | ModAlt).Contain(ModAlt) {
		t.Error("Contain(ModAlt) = false")
	}
}
