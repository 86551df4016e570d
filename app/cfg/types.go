package cfg

type Cfg struct {
	// Document store configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// News search configuration
	GNewsAPIKey  string
	GNewsBaseURL string

	// Identity provider configuration
	GoogleClientID string

	// Application configuration
	TopicsDir string
	Port      string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
