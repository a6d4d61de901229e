package domain

// Default values applied when settings are absent.
const (
	// DefaultChunkSize is the default chunk size in characters.
	DefaultChunkSize = 1500

	// DefaultMaxResults is the default maximum number of search
	// results per context assembly.
	DefaultMaxResults = 10

	// DefaultAPIVersion is the lake API version requested when none
	// is configured.
	DefaultAPIVersion = "v1"
)

// ConnectionSettings holds the content-lake connection. The token is
// opaque to the core; it is handed to the HTTP adapter untouched.
type ConnectionSettings struct {
	// Endpoint is the lake API base URL.
	Endpoint string

	// Dataset is the dataset name within the lake.
	Dataset string

	// Token is the bearer token for authenticated requests.
	Token string

	// APIVersion selects the lake API version.
	APIVersion string
}

// IsConfigured reports whether the connection is usable.
func (c ConnectionSettings) IsConfigured() bool {
	return c.Endpoint != "" && c.Dataset != ""
}

// DefaultSettings holds tunable behaviour defaults.
type DefaultSettings struct {
	// ChunkSize is the chunk size in characters.
	ChunkSize int

	// MaxResults is the default maximum search-result count.
	MaxResults int

	// Kinds is an optional default list of searchable kinds. When
	// set, catalog summaries and searches without an explicit kind
	// filter use it instead of discovering kinds from the lake.
	Kinds []string
}

// Settings holds all application settings.
type Settings struct {
	// Connection holds the lake connection.
	Connection ConnectionSettings

	// Defaults holds behaviour defaults.
	Defaults DefaultSettings
}

// NewSettings returns settings with defaults applied and no
// connection configured.
func NewSettings() Settings {
	return Settings{
		Connection: ConnectionSettings{
			APIVersion: DefaultAPIVersion,
		},
		Defaults: DefaultSettings{
			ChunkSize:  DefaultChunkSize,
			MaxResults: DefaultMaxResults,
		},
	}
}

// Normalise fills zero values with defaults.
func (s Settings) Normalise() Settings {
	if s.Connection.APIVersion == "" {
		s.Connection.APIVersion = DefaultAPIVersion
	}
	if s.Defaults.ChunkSize <= 0 {
		s.Defaults.ChunkSize = DefaultChunkSize
	}
	if s.Defaults.MaxResults <= 0 {
		s.Defaults.MaxResults = DefaultMaxResults
	}
	return s
}
