package vtengine

import "testing"

func TestColorEqual(t *testing.T) {
	if !Indexed(5).Equal(Indexed(5)) {
		t.Errorf("Indexed(5) should equal Indexed(5)")
	}
	if Indexed(5).Equal(Indexed(6)) {
		t.Errorf("Indexed(5) should not equal Indexed(6)")
	}
	if !RGB(1, 2, 3).Equal(RGB(1, 2, 3)) {
		t.Errorf("RGB(1,2,3) should equal RGB(1,2,3)")
	}
	if RGB(1, 2, 3).Equal(Indexed(1)) {
		t.Errorf("different kinds should never be equal")
	}
}
