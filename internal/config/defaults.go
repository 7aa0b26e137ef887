package config

const (
	defaultRateLimitSeconds = 1.5
	defaultTimeoutSeconds   = 10
	defaultTestLimit        = 5
	defaultStoreBaseURL     = "https://store.steampowered.com"
	defaultWebAPIBaseURL    = "https://api.steampowered.com"
	defaultCommunityBaseURL = "https://steamcommunity.com"
	defaultSoftwareFile     = "~/.local/share/steamqueue/software.txt"
	defaultGamesFile        = "~/.local/share/steamqueue/games.txt"
	defaultQueueFile        = "~/.local/share/steamqueue/queue.txt"
	defaultInputFile        = "~/.local/share/steamqueue/input.txt"
	defaultLogFile          = "~/.local/share/steamqueue/steamqueue.log"
	defaultHistoryDB        = "~/.local/share/steamqueue/history.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// defaultDenuvoStrings are the two canonical spellings of the anti-tamper
// product name matched against appdetails drm_notice text.
var defaultDenuvoStrings = []string{"Denuvo Anti-tamper", "Denuvo Antitamper"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			RateLimit:        defaultRateLimitSeconds,
			Timeout:          defaultTimeoutSeconds,
			StoreBaseURL:     defaultStoreBaseURL,
			WebAPIBaseURL:    defaultWebAPIBaseURL,
			CommunityBaseURL: defaultCommunityBaseURL,
		},
		Platforms: Platforms{
			Windows: true,
		},
		Operation: Operation{
			FilterDenuvo:  true,
			TestLimit:     defaultTestLimit,
			EnableLogging: true,
		},
		Files: Files{
			SoftwareFile: defaultSoftwareFile,
			GamesFile:    defaultGamesFile,
			QueueFile:    defaultQueueFile,
			InputFile:    defaultInputFile,
			LogFile:      defaultLogFile,
			HistoryDB:    defaultHistoryDB,
		},
		DRM: DRM{
			DenuvoStrings: append([]string(nil), defaultDenuvoStrings...),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
