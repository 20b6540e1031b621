package options

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type ShapesOptions struct {
	Scene        *string
	ConfigFile   *string
	Help         *bool
	Width        *int
	Height       *int
	Record       *bool
	Duration     *float64
	FPS          *int
	OutputFile   *string
	FFMPEGPath   *string
	Translate    *bool // Build shaders from ESSL sources through goshadertranslator
	LogLevel     *string
	LegacyCircle *bool
	Settings     Settings
}

// Settings holds the scene tuning values that can be supplied by a YAML file.
type Settings struct {
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	TransitionStart    float32 `yaml:"transition_start"`
	TransitionDuration float32 `yaml:"transition_duration"`
	RotationSpeed      float32 `yaml:"rotation_speed"` // degrees per second
	CircleSegments     int     `yaml:"circle_segments"`
	CircleRadius       float32 `yaml:"circle_radius"`
	LegacyCircle       bool    `yaml:"legacy_circle"`
}

func DefaultSettings() Settings {
	return Settings{
		Width:              800,
		Height:             800,
		TransitionStart:    5,
		TransitionDuration: 2,
		RotationSpeed:      50,
		CircleSegments:     50,
		CircleRadius:       0.3,
	}
}

// LoadSettings decodes YAML on top of the defaults, so a file only needs the
// keys it changes.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&s); err != nil && err != io.EOF {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()
	return LoadSettings(f)
}

func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", s.Width, s.Height)
	}
	if s.CircleSegments < 1 {
		return fmt.Errorf("circle_segments must be at least 1, got %d", s.CircleSegments)
	}
	if s.CircleRadius <= 0 {
		return fmt.Errorf("circle_radius must be positive, got %v", s.CircleRadius)
	}
	return nil
}

// ValidateRecording checks the flags that only matter with -record.
func (o *ShapesOptions) ValidateRecording() error {
	if o.Record == nil || !*o.Record {
		return nil
	}
	if o.FPS == nil || *o.FPS <= 0 {
		return fmt.Errorf("recording needs a positive fps")
	}
	if o.Duration == nil || *o.Duration <= 0 {
		return fmt.Errorf("recording needs a positive duration")
	}
	return nil
}
