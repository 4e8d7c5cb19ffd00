package modest

const (
	FormatLines = "lines"
	FormatJSON  = "json"
	FormatTable = "table"
)

type Config struct {
	// Workers bounds concurrent coverage computations, 0 means one per CPU.
	Workers  int      `json:"workers"`
	LogLevel string   `json:"logLevel,omitempty"`
	Format   string   `json:"format,omitempty"`
	Profiles []string `json:"profiles,omitempty"`
	Matrix   string   `json:"matrix,omitempty"`
}
