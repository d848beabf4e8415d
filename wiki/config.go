package wiki

// Config holds the file-based configuration for the wiki. These are
// bootstrap settings loaded from config.yaml before the database connection
// is established. The cookie secret lives in its own file and is never
// written back to config.yaml.
type Config struct {
	DatabaseFile string `yaml:"dbfile"`
	Host         string `yaml:"host"`
	BaseURL      string `yaml:"base_url"`
	LogFormat    string `yaml:"log_format"`
	LogLevel     string `yaml:"log_level"`
	ReviewLimit  int    `yaml:"review_limit"`
	CookieExpiry int    `yaml:"cookie_expiry"`
	CookieSecret []byte `yaml:"-"`

	MinimumPasswordLength int `yaml:"minimum_password_length"`
}
