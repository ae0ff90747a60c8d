// Package scene describes what to render in a TOML or YAML file and runs
// the render passes: shadow depth from the light, Phong shading from the
// camera, ambient occlusion and supersampling.
package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/soft3d/linalg"
)

// Scene errors.
var (
	// ErrInvalidConfig is returned when a scene fails validation.
	ErrInvalidConfig = errors.New("scene: invalid config")

	// ErrUnsupportedFormat is returned for unknown scene or image formats.
	ErrUnsupportedFormat = errors.New("scene: unsupported format")
)

// Config formats accepted by Parse.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Default values.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultOutput = "result.tga"
)

// Vec3 is a point or direction in world space.
type Vec3 [3]float64

// Config is a scene file.
type Config struct {
	Output           string   `toml:"output" yaml:"output"`
	Width            int      `toml:"width" yaml:"width"`
	Height           int      `toml:"height" yaml:"height"`
	Supersample      bool     `toml:"supersample" yaml:"supersample"`
	AmbientOcclusion bool     `toml:"ambient_occlusion" yaml:"ambient_occlusion"`
	Camera           Camera   `toml:"camera" yaml:"camera"`
	Light            Light    `toml:"light" yaml:"light"`
	Shadow           Shadow   `toml:"shadow" yaml:"shadow"`
	Objects          []Object `toml:"objects" yaml:"objects"`
}

// Camera places the viewer.
type Camera struct {
	Eye    Vec3 `toml:"eye" yaml:"eye"`
	Center Vec3 `toml:"center" yaml:"center"`
	Up     Vec3 `toml:"up" yaml:"up"`
}

// Light is a directional light shining from Position towards the camera
// center. It also serves as the viewpoint of the shadow pass.
type Light struct {
	Position Vec3 `toml:"position" yaml:"position"`
}

// Shadow configures the shadow map. A zero size uses the size of the
// render buffer.
type Shadow struct {
	Enabled bool `toml:"enabled" yaml:"enabled"`
	Width   int  `toml:"width" yaml:"width"`
	Height  int  `toml:"height" yaml:"height"`
}

// Object is one mesh and its texture maps. Empty map paths leave the
// corresponding map unbound.
type Object struct {
	Mesh     string `toml:"mesh" yaml:"mesh"`
	Diffuse  string `toml:"diffuse" yaml:"diffuse"`
	Normal   string `toml:"normal" yaml:"normal"`
	Specular string `toml:"specular" yaml:"specular"`
}

// Default returns a config with every field except Objects set.
func Default() Config {
	return Config{
		Output:           DefaultOutput,
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		Supersample:      true,
		AmbientOcclusion: true,
		Camera: Camera{
			Eye:    Vec3{1, 1, 3},
			Center: Vec3{0, 0, 0},
			Up:     Vec3{0, 1, 0},
		},
		Light:  Light{Position: Vec3{1, 2, 1}},
		Shadow: Shadow{Enabled: true},
	}
}

// Parse decodes a scene in the given format on top of the defaults.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Default()
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &cfg)
	case FormatYAML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, fmt.Errorf("scene: config format %q: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("scene: decode %s: %w", format, err)
	}
	return &cfg, nil
}

// FormatFor returns the config format implied by a file extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("scene: %s: %w", path, ErrUnsupportedFormat)
}

// Load reads and validates a scene file. Relative paths inside it are
// resolved against the file's directory.
func Load(path string) (*Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("scene: read file: %w", err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolve(dir string) {
	join := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Output = join(c.Output)
	for i := range c.Objects {
		o := &c.Objects[i]
		o.Mesh = join(o.Mesh)
		o.Diffuse = join(o.Diffuse)
		o.Normal = join(o.Normal)
		o.Specular = join(o.Specular)
	}
}

// Validate checks sizes, objects and the camera.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("scene: size %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	case c.Shadow.Width < 0 || c.Shadow.Height < 0:
		return fmt.Errorf("scene: shadow size %dx%d: %w", c.Shadow.Width, c.Shadow.Height, ErrInvalidConfig)
	case len(c.Objects) == 0:
		return fmt.Errorf("scene: no objects: %w", ErrInvalidConfig)
	case c.Camera.Eye == c.Camera.Center:
		return fmt.Errorf("scene: camera eye equals center: %w", ErrInvalidConfig)
	case c.Light.Position == c.Camera.Center:
		return fmt.Errorf("scene: light position equals center: %w", ErrInvalidConfig)
	case alongUp(c.Camera.Eye, c.Camera.Center, c.Camera.Up):
		return fmt.Errorf("scene: camera up %v parallel to view: %w", c.Camera.Up, ErrInvalidConfig)
	case c.Shadow.Enabled && alongUp(c.Light.Position, c.Camera.Center, c.Camera.Up):
		return fmt.Errorf("scene: camera up %v parallel to light direction: %w", c.Camera.Up, ErrInvalidConfig)
	}
	for i, o := range c.Objects {
		if o.Mesh == "" {
			return fmt.Errorf("scene: object %d has no mesh: %w", i, ErrInvalidConfig)
		}
	}
	return nil
}

// alongUp reports whether a look-at from eye to center has no usable up
// axis, which leaves the view basis degenerate.
func alongUp(eye, center, up Vec3) bool {
	dir := linalg.Vec3d(eye).Sub(linalg.Vec3d(center))
	return dir.Cross(linalg.Vec3d(up)).Norm() < 1e-9*dir.Norm()
}

// renderSize is the size of the buffers the passes draw into.
func (c *Config) renderSize() (w, h int) {
	if c.Supersample {
		return c.Width * 2, c.Height * 2
	}
	return c.Width, c.Height
}

// shadowSize is the size of the shadow map.
func (c *Config) shadowSize() (w, h int) {
	w, h = c.renderSize()
	if c.Shadow.Width > 0 {
		w = c.Shadow.Width
	}
	if c.Shadow.Height > 0 {
		h = c.Shadow.Height
	}
	return w, h
}
