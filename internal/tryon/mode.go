package tryon

import "errors"

// Mode names the three generation strategies. Layering keeps the previous
// render as canvas and adds one garment on top; text modify re-renders the
// previous result from the edited description.
type Mode int

const (
	ModeInitial Mode = iota
	ModeLayering
	ModeTextModify
)

func (m Mode) String() string {
	switch m {
	case ModeInitial:
		return "initial"
	case ModeLayering:
		return "layering"
	case ModeTextModify:
		return "text_modify"
	default:
		return "unknown"
	}
}

// SelectMode picks the generation strategy from what the refinement request
// carries. A new garment image without a previous render cannot happen in a
// well-formed session (every session starts with an initial render); it is
// rejected rather than guessed at.
func SelectMode(hasNewImage, hasPreviousResult bool) (Mode, error) {
	switch {
	case !hasNewImage && !hasPreviousResult:
		return ModeInitial, nil
	case hasNewImage && hasPreviousResult:
		return ModeLayering, nil
	case !hasNewImage && hasPreviousResult:
		return ModeTextModify, nil
	default:
		return 0, errors.New("tryon: new image without a previous result")
	}
}
