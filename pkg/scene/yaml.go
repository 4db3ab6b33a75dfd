package scene

import (
	"fmt"
	"os"
	"strings"

	"github.com/taigrr/lumen/pkg/math3d"
	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML form of a scene.
//
//	surfaces:
//	  - name: ground
//	    type: plane
//	    position: [0, -5, 0]
//	    normal: [0, 1, 0]
//	    width: 600
//	    height: 400
//	    diffuse: [0, 0, 139]
//	    axis: [1, 0, 0] # optional, the direction width is measured along
//	  - type: sphere
//	    position: [0, 1, -2]
//	    radius: 1
//	    diffuse: [128, 0, 128]
//	    specular: [255, 255, 255]
//	lights:
//	  - position: [100, 150, 150]
//	    intensity: 150000
//
// Colors are 8-bit RGB triples.
type File struct {
	Surfaces []SurfaceFile `yaml:"surfaces"`
	Lights   []LightFile   `yaml:"lights"`
}

// SurfaceFile describes one surface in a scene file.
type SurfaceFile struct {
	Name        string      `yaml:"name,omitempty"`
	Type        string      `yaml:"type"`
	Position    [3]float64  `yaml:"position"`
	Normal      *[3]float64 `yaml:"normal,omitempty"`
	Axis        *[3]float64 `yaml:"axis,omitempty"`
	Width       float64     `yaml:"width,omitempty"`
	Height      float64     `yaml:"height,omitempty"`
	Radius      float64     `yaml:"radius,omitempty"`
	Diffuse     [3]uint8    `yaml:"diffuse"`
	Specular    *[3]uint8   `yaml:"specular,omitempty"`
	CastsShadow *bool       `yaml:"casts_shadow,omitempty"`
}

// LightFile describes one light in a scene file.
type LightFile struct {
	Name      string     `yaml:"name,omitempty"`
	Position  [3]float64 `yaml:"position"`
	Intensity float64    `yaml:"intensity"`
}

// LoadYAML reads a scene description from a YAML file.
func LoadYAML(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a scene description.
func ParseYAML(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return f.Build()
}

// Build converts the file form into a Scene.
func (f *File) Build() (*Scene, error) {
	sc := New()

	for i, sf := range f.Surfaces {
		s, err := sf.surface()
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		sc.Add(s)
	}

	for _, lf := range f.Lights {
		sc.AddLight(Light{
			Name:      lf.Name,
			Position:  vec(lf.Position),
			Intensity: lf.Intensity,
		})
	}

	return sc, nil
}

func (sf SurfaceFile) surface() (Surface, error) {
	diffuse := RGB(sf.Diffuse[0], sf.Diffuse[1], sf.Diffuse[2])

	var s Surface
	switch strings.ToLower(sf.Type) {
	case "plane":
		if sf.Normal == nil {
			return Surface{}, fmt.Errorf("plane %q has no normal", sf.Name)
		}
		n := vec(*sf.Normal)
		if n.LenSq() == 0 {
			return Surface{}, fmt.Errorf("plane %q has a zero normal", sf.Name)
		}
		if sf.Width <= 0 || sf.Height <= 0 {
			return Surface{}, fmt.Errorf("plane %q has non-positive size %gx%g", sf.Name, sf.Width, sf.Height)
		}
		s = NewPlane(sf.Name, vec(sf.Position), n, diffuse, sf.Width, sf.Height)
		if sf.Axis != nil {
			s.Axis = vec(*sf.Axis).Normalize()
		}
	case "sphere":
		if sf.Radius <= 0 {
			return Surface{}, fmt.Errorf("sphere %q has non-positive radius %g", sf.Name, sf.Radius)
		}
		s = NewSphere(sf.Name, vec(sf.Position), sf.Radius, diffuse)
	default:
		return Surface{}, fmt.Errorf("unknown surface type %q", sf.Type)
	}

	if sf.Specular != nil {
		s.Specular = RGB(sf.Specular[0], sf.Specular[1], sf.Specular[2])
	}
	if sf.CastsShadow != nil {
		s.CastsShadow = *sf.CastsShadow
	}
	return s, nil
}

// FileFrom converts a Scene back to its file form.
func FileFrom(sc *Scene) *File {
	f := &File{}
	for _, s := range sc.Surfaces {
		sf := SurfaceFile{
			Name:     s.Name,
			Type:     s.Kind.String(),
			Position: arr(s.Position),
			Diffuse:  rgb8(s.Diffuse),
		}
		switch s.Kind {
		case KindPlane:
			n := arr(s.Normal)
			sf.Normal = &n
			sf.Width = s.Width
			sf.Height = s.Height
			if s.Axis != (math3d.Vec3{}) {
				axis := arr(s.Axis)
				sf.Axis = &axis
			}
		case KindSphere:
			sf.Radius = s.Radius
		}
		if s.Specular != DefaultSpecular {
			spec := rgb8(s.Specular)
			sf.Specular = &spec
		}
		if !s.CastsShadow {
			casts := false
			sf.CastsShadow = &casts
		}
		f.Surfaces = append(f.Surfaces, sf)
	}
	for _, l := range sc.Lights {
		f.Lights = append(f.Lights, LightFile{
			Name:      l.Name,
			Position:  arr(l.Position),
			Intensity: l.Intensity,
		})
	}
	return f
}

// MarshalYAML encodes sc as a scene file.
func MarshalYAML(sc *Scene) ([]byte, error) {
	data, err := yaml.Marshal(FileFrom(sc))
	if err != nil {
		return nil, fmt.Errorf("encode scene: %w", err)
	}
	return data, nil
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

func arr(v math3d.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func rgb8(c math3d.Vec3) [3]uint8 {
	c = c.Clamp(0, 1)
	return [3]uint8{
		uint8(c.X*255 + 0.5),
		uint8(c.Y*255 + 0.5),
		uint8(c.Z*255 + 0.5),
	}
}
