package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to a fresh session
	DefaultReferenceWidth  int `json:"default_reference_width"`
	DefaultReferenceHeight int `json:"default_reference_height"`
	DefaultScalePercent    int `json:"default_scale_percent"`

	// Application preferences
	LastImageDir  string `json:"last_image_dir"`
	LastOutputDir string `json:"last_output_dir"`
	Theme         string `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultParameters().
func DefaultAppConfig() AppConfig {
	defaults := DefaultParameters()
	return AppConfig{
		DefaultReferenceWidth:  defaults.ReferenceWidth,
		DefaultReferenceHeight: defaults.ReferenceHeight,
		DefaultScalePercent:    defaults.ScalePercent,
		Theme:                  "system",
	}
}

// Parameters converts the configured defaults into GlobalParameters for a
// new session. Invalid stored values fall back to the built-in defaults.
func (c AppConfig) Parameters() GlobalParameters {
	p := GlobalParameters{
		ReferenceWidth:  c.DefaultReferenceWidth,
		ReferenceHeight: c.DefaultReferenceHeight,
		ScalePercent:    c.DefaultScalePercent,
	}
	if p.Validate() != nil {
		return DefaultParameters()
	}
	return p
}
