package enums

import "fmt"

// TrafficSource is the acquisition channel attributed to a user.
type TrafficSource string

const (
	TrafficSourceOrganic  TrafficSource = "Organic"
	TrafficSourceSearch   TrafficSource = "Search"
	TrafficSourceEmail    TrafficSource = "Email"
	TrafficSourceFacebook TrafficSource = "Facebook"
	TrafficSourceDisplay  TrafficSource = "Display"
)

var validTrafficSources = []TrafficSource{
	TrafficSourceOrganic,
	TrafficSourceSearch,
	TrafficSourceEmail,
	TrafficSourceFacebook,
	TrafficSourceDisplay,
}

// String implements fmt.Stringer.
func (t TrafficSource) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TrafficSource.
func (t TrafficSource) IsValid() bool {
	for _, candidate := range validTrafficSources {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTrafficSource converts raw input into a TrafficSource.
func ParseTrafficSource(value string) (TrafficSource, error) {
	for _, candidate := range validTrafficSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid traffic source %q", value)
}
