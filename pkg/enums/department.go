package enums

// Department splits the catalog into the two storefront departments.
type Department string

const (
	DepartmentWomen Department = "Women"
	DepartmentMen   Department = "Men"
)

// String implements fmt.Stringer.
func (d Department) String() string {
	return string(d)
}
