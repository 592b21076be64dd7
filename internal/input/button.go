package input

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonMiddle
	ButtonRight
	ButtonBack
	ButtonForward
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "unknown"
	}
}

// FromCode maps the host's single-button code to a Button.
// Codes outside 0..4 report false and the triggering event is dropped.
func FromCode(code int16) (Button, bool) {
	switch code {
	case 0:
		return ButtonLeft, true
	case 1:
		return ButtonMiddle, true
	case 2:
		return ButtonRight, true
	case 3:
		return ButtonBack, true
	case 4:
		return ButtonForward, true
	default:
		return 0, false
	}
}

// heldBits is the bit layout of the "buttons held" mask. Note that bit 1 is
// Right and bit 2 is Middle, unlike the single-button codes.
var heldBits = [...]struct {
	mask   uint16
	button Button
}{
	{1 << 0, ButtonLeft},
	{1 << 1, ButtonRight},
	{1 << 2, ButtonMiddle},
	{1 << 3, ButtonBack},
	{1 << 4, ButtonForward},
}

// FromBitmask decodes a held-buttons mask into buttons in bit-scan order.
// The result is never nil.
func FromBitmask(bits uint16) []Button {
	buttons := make([]Button, 0, len(heldBits))
	for _, hb := range heldBits {
		if bits&hb.mask != 0 {
			buttons = append(buttons, hb.button)
		}
	}
	return buttons
}
