package describe

import (
	"errors"
	"reflect"
	"testing"

	"fitted/internal/domain"
)

func TestParseDescriptionAcceptsFencedAndBareJSON(t *testing.T) {
	want := domain.OutfitDescription{
		Description: "black bomber jacket over a white tee with slim jeans",
		FitNotes:    "relaxed top, slim bottom",
		Colors:      []string{"black", "white", "blue"},
		Style:       "streetwear",
	}
	bare := `{"description":"black bomber jacket over a white tee with slim jeans","fit_notes":"relaxed top, slim bottom","colors":["black","white","blue"],"style":"streetwear"}`
	fenced := "```json\n" + bare + "\n```"

	for _, input := range []string{bare, fenced} {
		got, err := ParseDescription(input)
		if err != nil {
			t.Fatalf("ParseDescription(%q) returned error: %v", input, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("ParseDescription(%q) = %+v, want %+v", input, got, want)
		}
	}
}

func TestParseDescriptionRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"fence only", "```json\n```"},
		{"not json", "The outfit is a black jacket."},
		{"truncated", `{"description":"jacket`},
		{"missing description", `{"fit_notes":"slim","colors":["black"],"style":"casual"}`},
		{"only description", `{"description":"a red shirt"}`},
		{"missing fit_notes", `{"description":"a red shirt","colors":["red"],"style":"casual"}`},
		{"missing colors", `{"description":"a red shirt","fit_notes":"slim","style":"casual"}`},
		{"empty colors", `{"description":"a red shirt","fit_notes":"slim","colors":[],"style":"casual"}`},
		{"missing style", `{"description":"a red shirt","fit_notes":"slim","colors":["red"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseDescription(tc.input); !errors.Is(err, domain.ErrBadModelOutput) {
				t.Fatalf("error = %v, want ErrBadModelOutput", err)
			}
		})
	}
}

func TestTrimCodeFenceKeepsInnerContent(t *testing.T) {
	got := trimCodeFence("```\n{\"a\":1}\n```")
	if got != `{"a":1}` {
		t.Fatalf("trimCodeFence = %q", got)
	}
}
