package enums

// Gender is the demographic gender recorded on a user.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// String implements fmt.Stringer.
func (g Gender) String() string {
	return string(g)
}
