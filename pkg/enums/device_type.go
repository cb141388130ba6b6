package enums

// DeviceType is the device class a session was browsed from.
type DeviceType string

const (
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeTablet  DeviceType = "tablet"
)

// String implements fmt.Stringer.
func (d DeviceType) String() string {
	return string(d)
}
