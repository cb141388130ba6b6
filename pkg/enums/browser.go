package enums

// Browser is the browser family attached to a session.
type Browser string

const (
	BrowserChrome  Browser = "Chrome"
	BrowserSafari  Browser = "Safari"
	BrowserFirefox Browser = "Firefox"
	BrowserIE      Browser = "IE"
	BrowserOther   Browser = "Other"
)

// String implements fmt.Stringer.
func (b Browser) String() string {
	return string(b)
}
