package modest

type Report struct {
	MaxCoverage int           `json:"maxCoverage"`
	Size        int           `json:"size"`
	Suites      []SuiteReport `json:"suites"`
	Stats       Stats         `json:"stats"`
}

type SuiteReport struct {
	Tests []int    `json:"tests"`
	Names []string `json:"names,omitempty"`
}

type Stats struct {
	Tests       int `json:"tests"`
	OracleCalls int `json:"oracleCalls"`
	Pruned      int `json:"pruned"`
	Levels      int `json:"levels"`
}
