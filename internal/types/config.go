package types

// DisplayConfig represents the configuration for the key display
type DisplayConfig struct {
	Capacity  int    `toml:"capacity"`
	RefreshMs int    `toml:"refresh_ms"`
	ScrollMs  int    `toml:"scroll_ms"`
	FoldCase  bool   `toml:"fold_case"`
	Sink      string `toml:"sink"`
	Text      string `toml:"text"`
}

// ColorsConfig represents the palette as hex strings
type ColorsConfig struct {
	On     string `toml:"on"`
	Off    string `toml:"off"`
	Levels int    `toml:"levels"`
}

// KeyColor pins a static color to one key
type KeyColor struct {
	Row   int    `toml:"row"`
	Col   int    `toml:"col"`
	Color string `toml:"color"`
}

// GPIOConfig represents the configuration for per-key GPIO output
type GPIOConfig struct {
	Chip     string `toml:"chip"`
	Offsets  []int  `toml:"offsets"`
	Consumer string `toml:"consumer"`
}

// FeedConfig represents the configuration for the websocket text feed
type FeedConfig struct {
	URL        string `toml:"url"`
	ReconnectS int    `toml:"reconnect_s"`
}

// LogConfig represents the logging configuration
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
