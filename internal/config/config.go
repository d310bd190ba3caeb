package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/kjkrol/gokl/pkg/scene"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window         Window   `toml:"window" yaml:"window"`
	Shaders        Shaders  `toml:"shaders" yaml:"shaders"`
	Textures       Textures `toml:"textures" yaml:"textures"`
	LenientShaders bool     `toml:"lenient_shaders" yaml:"lenient_shaders"`
	Watch          bool     `toml:"watch" yaml:"watch"`
	LogLevel       string   `toml:"log_level" yaml:"log_level"`
	Scene          Scene    `toml:"scene" yaml:"scene"`
}

type Window struct {
	Title         string `toml:"title" yaml:"title"`
	Width         int    `toml:"width" yaml:"width"`
	Height        int    `toml:"height" yaml:"height"`
	VSync         bool   `toml:"vsync" yaml:"vsync"`
	CaptureCursor bool   `toml:"capture_cursor" yaml:"capture_cursor"`
	FPS           int    `toml:"fps" yaml:"fps"`
}

type ProgramPaths struct {
	Vertex   string `toml:"vertex" yaml:"vertex"`
	Fragment string `toml:"fragment" yaml:"fragment"`
}

type Shaders struct {
	Box   ProgramPaths `toml:"box" yaml:"box"`
	Light ProgramPaths `toml:"light" yaml:"light"`
}

type Textures struct {
	Diffuse  string `toml:"diffuse" yaml:"diffuse"`
	Specular string `toml:"specular" yaml:"specular"`
}

// Scene overrides parts of scene.Default. Zero values keep the default.
type Scene struct {
	ClearColor  *[3]float32  `toml:"clear_color,omitempty" yaml:"clear_color,omitempty"`
	Camera      *[3]float32  `toml:"camera,omitempty" yaml:"camera,omitempty"`
	Boxes       [][3]float32 `toml:"boxes,omitempty" yaml:"boxes,omitempty"`
	PointLights []Light      `toml:"point_lights,omitempty" yaml:"point_lights,omitempty"`
	DirLights   []Light      `toml:"dir_lights,omitempty" yaml:"dir_lights,omitempty"`
	Flashlight  *bool        `toml:"flashlight,omitempty" yaml:"flashlight,omitempty"`
	Shininess   float32      `toml:"shininess,omitempty" yaml:"shininess,omitempty"`
}

type Light struct {
	Position [3]float32 `toml:"position" yaml:"position"`
	Color    [3]float32 `toml:"color" yaml:"color"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Title:  "gokl",
			Width:  1280,
			Height: 720,
			VSync:  true,
			FPS:    60,
		},
		Shaders: Shaders{
			Box:   ProgramPaths{Vertex: "assets/shaders/box.vert", Fragment: "assets/shaders/box.frag"},
			Light: ProgramPaths{Vertex: "assets/shaders/light.vert", Fragment: "assets/shaders/light.frag"},
		},
		Textures: Textures{
			Diffuse:  "assets/textures/crate.png",
			Specular: "assets/textures/crate_specular.png",
		},
		LogLevel: "info",
	}
}

// Load decodes a TOML or YAML file (by extension) over Default. Relative
// asset paths set in the file are taken relative to the file's directory;
// paths the file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	cfg := Default()
	if err := decode(ext, data, cfg); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	// A second pass over an empty Config shows which asset paths the file set.
	var fromFile Config
	if err := decode(ext, data, &fromFile); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	fromFile.resolve(filepath.Dir(path))
	dst := cfg.assetPaths()
	for i, p := range fromFile.assetPaths() {
		if *p != "" {
			*dst[i] = *p
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(ext string, data []byte, into *Config) error {
	switch ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(into)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(into); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", ext)
	}
}

func (c *Config) resolve(base string) {
	for _, p := range c.assetPaths() {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func (c *Config) assetPaths() []*string {
	return []*string{
		&c.Shaders.Box.Vertex, &c.Shaders.Box.Fragment,
		&c.Shaders.Light.Vertex, &c.Shaders.Light.Fragment,
		&c.Textures.Diffuse, &c.Textures.Specular,
	}
}

// ShaderFiles lists every shader source the renderer builds from.
func (c *Config) ShaderFiles() []string {
	return []string{
		c.Shaders.Box.Vertex, c.Shaders.Box.Fragment,
		c.Shaders.Light.Vertex, c.Shaders.Light.Fragment,
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS < 0 {
		errs = append(errs, fmt.Errorf("fps %d must not be negative", c.Window.FPS))
	}
	for _, p := range c.ShaderFiles() {
		if p == "" {
			errs = append(errs, errors.New("every shader path must be set"))
			break
		}
	}
	if n := len(c.Scene.PointLights); n > scene.MaxPointLights {
		errs = append(errs, fmt.Errorf("%d point lights exceed the shader's %d", n, scene.MaxPointLights))
	}
	if n := len(c.Scene.DirLights); n > scene.MaxDirLights {
		errs = append(errs, fmt.Errorf("%d directional lights exceed the shader's %d", n, scene.MaxDirLights))
	}
	for i, l := range c.Scene.PointLights {
		if l.Color == [3]float32{} {
			errs = append(errs, fmt.Errorf("point light %d has no color", i))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// SceneDefinition is scene.Default with the configured overrides applied.
func (c *Config) SceneDefinition() *scene.Scene {
	s := scene.Default()
	o := c.Scene
	if o.ClearColor != nil {
		s.ClearColor = mgl32.Vec3(*o.ClearColor)
	}
	if o.Camera != nil {
		s.CameraStart = mgl32.Vec3(*o.Camera)
	}
	if len(o.Boxes) > 0 {
		s.Boxes = make([]mgl32.Vec3, len(o.Boxes))
		for i, b := range o.Boxes {
			s.Boxes[i] = mgl32.Vec3(b)
		}
	}
	if len(o.PointLights) > 0 {
		attenuation := s.PointLights[0].Attenuation
		s.PointLights = make([]scene.PointLight, len(o.PointLights))
		for i, l := range o.PointLights {
			s.PointLights[i] = scene.PointLight{
				Position:    mgl32.Vec3(l.Position),
				Phong:       scene.PhongFromColor(mgl32.Vec3(l.Color)),
				Attenuation: attenuation,
			}
		}
	}
	if len(o.DirLights) > 0 {
		s.DirLights = make([]scene.DirLight, len(o.DirLights))
		for i, l := range o.DirLights {
			s.DirLights[i] = scene.DirLight{
				Position: mgl32.Vec3(l.Position),
				Phong:    scene.PhongFromColor(mgl32.Vec3(l.Color)),
			}
		}
	}
	if o.Flashlight != nil {
		s.Flashlight.On = *o.Flashlight
	}
	if o.Shininess > 0 {
		s.Material.Shininess = o.Shininess
	}
	return s
}
