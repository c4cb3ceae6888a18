package tryon

import "testing"

func TestSelectMode(t *testing.T) {
	cases := []struct {
		name              string
		hasNewImage       bool
		hasPreviousResult bool
		want              Mode
		wantErr           bool
	}{
		{"first render", false, false, ModeInitial, false},
		{"new garment on existing render", true, true, ModeLayering, false},
		{"text edit of existing render", false, true, ModeTextModify, false},
		{"new garment without a render", true, false, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SelectMode(tc.hasNewImage, tc.hasPreviousResult)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("SelectMode returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("mode = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	if ModeInitial.String() != "initial" || ModeLayering.String() != "layering" || ModeTextModify.String() != "text_modify" {
		t.Fatalf("unexpected mode names: %v %v %v", ModeInitial, ModeLayering, ModeTextModify)
	}
}
