package modest

// Matrix lists the elements every test covers.
type Matrix struct {
	Tests []Test `json:"tests"`
}

type Test struct {
	Name   string   `json:"name"`
	Covers []string `json:"covers"`
}
