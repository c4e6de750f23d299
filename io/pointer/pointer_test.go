// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"testing"
)

func TestTypeString(t *testing.T) {
	for _, tc := range []struct {
		typ Kind
		res string
	}{
		{Cancel, "Cancel"},
		{Press, "Press"},
		{Release, "Release"},
		{Move, "Move"},
		{DoubleClick, "DoubleClick"},
		{Scroll, "Scroll"},
		{Press | Release, "Press|Release"},
		{Move | Scroll, "Move|Scroll"},
	} {
		t.Run(tc.res, func(t *testing.T) {
			if want, got := tc.res, tc.typ.String(); want != got {
				t.Errorf("got %q; want %q", got, want)
			}
		})
	}
}

func TestButtonsString(t *testing.T) {
	b := ButtonPrimary | ButtonTertiary
	if got, want := b.String(), "ButtonPrimary|ButtonTertiary"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
	if !b.Contain(ButtonPrimary) || b.Contain(ButtonSecondary) {
		t.Errorf("Contain mismatch for %v", b)
	}
}
