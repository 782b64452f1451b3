package cfg

type Cfg struct {
	// HTTP server configuration
	Port    string
	BaseUrl string

	// Redis cache configuration
	RedisAddr string
	CacheTTL  int

	// Translation service configuration
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	Model            string
	TargetLanguage   string
	TranslateTimeout int

	// Pipeline configuration
	WorkerCount int

	// Application metadata
	FeedsDir    string
	TitlePrefix string
	UserAgent   string
	Timezone    string
	Debug       bool
	Version     string
}
