package cfg

type Cfg struct {
	// Currents API configuration
	APIKey  string
	Timeout int

	// Result shaping
	DefaultLanguage string
	MaxResults      int

	// Transport configuration
	Port      string
	UserAgent string
	Debug     bool

	// Application metadata
	Version string
}
