package config

// RawConfig mirrors Config with optional fields so that an absent key keeps
// its default while an explicit zero is still visible to Validate.
type RawConfig struct {
	Step      *int    `yaml:"step"`
	MinX      *int    `yaml:"min_x"`
	MinY      *int    `yaml:"min_y"`
	MinWidth  *int    `yaml:"min_width"`
	MinHeight *int    `yaml:"min_height"`
	Display   *string `yaml:"display"`
	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`
}
