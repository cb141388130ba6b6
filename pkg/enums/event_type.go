package enums

import "fmt"

// EventType is a funnel stage recorded on a web event.
type EventType string

const (
	EventTypeHome     EventType = "home"
	EventTypeCategory EventType = "category"
	EventTypeProduct  EventType = "product"
	EventTypeCart     EventType = "cart"
	EventTypePurchase EventType = "purchase"
)

// FunnelStages lists the stages in the order a session may progress through
// them. A session always reaches a strict prefix of this sequence.
var FunnelStages = []EventType{
	EventTypeHome,
	EventTypeCategory,
	EventTypeProduct,
	EventTypeCart,
	EventTypePurchase,
}

// String implements fmt.Stringer.
func (e EventType) String() string {
	return string(e)
}

// IsValid reports whether the value is a known EventType.
func (e EventType) IsValid() bool {
	for _, candidate := range FunnelStages {
		if candidate == e {
			return true
		}
	}
	return false
}

// StageIndex returns the position of the stage within the funnel, or -1 for
// unknown values.
func (e EventType) StageIndex() int {
	for i, candidate := range FunnelStages {
		if candidate == e {
			return i
		}
	}
	return -1
}

// ParseEventType converts raw input into an EventType.
func ParseEventType(value string) (EventType, error) {
	for _, candidate := range FunnelStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
