package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/lumen/pkg/math3d"
)

// GLTFImporter builds a Scene from the node hierarchy of a glTF document.
//
// A node becomes a surface or light when its extras carry a "shape" key
// ("sphere", "plane" or "light") or, failing that, when its name starts with
// one of those words (Blender's default object names do). Other nodes are
// only traversed for their children.
//
// Spheres take their radius from the mesh's POSITION bounds times the node
// scale. Planes use +Y of the node as their normal and the X/Z extents of the
// mesh as width/height, measured along the node's own X and Z axes. Recognized extras: "intensity" (lights), "specular"
// ([r, g, b] in 0..1) and "casts_shadow" (bool).
type GLTFImporter struct {
	// DefaultIntensity is used for lights that have no "intensity" extra.
	DefaultIntensity float64
}

// NewGLTFImporter creates an importer with default options.
func NewGLTFImporter() *GLTFImporter {
	return &GLTFImporter{
		DefaultIntensity: 1,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default importer.
func LoadGLTF(path string) (*Scene, error) {
	return NewGLTFImporter().Load(path)
}

// Load opens path and imports its default scene.
func (im *GLTFImporter) Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return im.Import(doc)
}

// Import converts an already decoded document.
func (im *GLTFImporter) Import(doc *gltf.Document) (*Scene, error) {
	sc := New()
	for _, idx := range rootNodes(doc) {
		if err := im.visit(doc, idx, math3d.Identity(), sc, 0); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// rootNodes returns the nodes of the document's default scene, the first
// scene when none is marked default, or every node when there are no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}
	nodes := make([]int, len(doc.Nodes))
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}

// maxDepth bounds node recursion so malformed cyclic hierarchies terminate.
const maxDepth = 64

func (im *GLTFImporter) visit(doc *gltf.Document, idx int, parent math3d.Mat4, sc *Scene, depth int) error {
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	if depth > maxDepth {
		return fmt.Errorf("node %d: hierarchy deeper than %d", idx, maxDepth)
	}

	node := doc.Nodes[idx]
	world := parent.Mul(localTransform(node))
	extras, _ := node.Extras.(map[string]any)

	switch nodeShape(node.Name, extras) {
	case "sphere":
		s := im.sphere(doc, node, world)
		applyExtras(&s, extras)
		sc.Add(s)
	case "plane":
		s := im.plane(doc, node, world)
		applyExtras(&s, extras)
		sc.Add(s)
	case "light":
		intensity := im.DefaultIntensity
		if v, ok := extras["intensity"].(float64); ok {
			intensity = v
		}
		sc.AddLight(Light{
			Name:      node.Name,
			Position:  world.MulVec3(math3d.Zero3()),
			Intensity: intensity,
		})
	}

	for _, child := range node.Children {
		if err := im.visit(doc, child, world, sc, depth+1); err != nil {
			return fmt.Errorf("node %q: %w", node.Name, err)
		}
	}
	return nil
}

func nodeShape(name string, extras map[string]any) string {
	if shape, ok := extras["shape"].(string); ok {
		return strings.ToLower(shape)
	}
	lower := strings.ToLower(name)
	for _, prefix := range []string{"sphere", "plane", "light"} {
		if strings.HasPrefix(lower, prefix) {
			return prefix
		}
	}
	return ""
}

// localTransform returns the node's matrix, or its TRS properties composed
// when the matrix is unset. Zero rotation and scale mean glTF defaults.
func localTransform(node *gltf.Node) math3d.Mat4 {
	m := math3d.Mat4(node.Matrix)
	if m != (math3d.Mat4{}) && m != math3d.Identity() {
		return m
	}

	rot := node.Rotation
	if rot == ([4]float64{}) {
		rot = [4]float64{0, 0, 0, 1}
	}
	scale := node.Scale
	if scale == ([3]float64{}) {
		scale = [3]float64{1, 1, 1}
	}
	return math3d.TRS(vec(node.Translation), rot, vec(scale))
}

func (im *GLTFImporter) sphere(doc *gltf.Document, node *gltf.Node, world math3d.Mat4) Surface {
	radius := 1.0
	if size, ok := meshExtent(doc, node); ok {
		radius = math.Max(size.X, math.Max(size.Y, size.Z)) / 2
	}
	scale := world.AxisScale()
	radius *= math.Max(scale.X, math.Max(scale.Y, scale.Z))

	return NewSphere(node.Name, world.MulVec3(math3d.Zero3()), radius, meshColor(doc, node))
}

func (im *GLTFImporter) plane(doc *gltf.Document, node *gltf.Node, world math3d.Mat4) Surface {
	width, height := 1.0, 1.0
	if size, ok := meshExtent(doc, node); ok {
		width, height = size.X, size.Z
	}
	scale := world.AxisScale()
	normal := world.MulVec3Dir(math3d.Up()).Normalize()

	s := NewPlane(node.Name, world.MulVec3(math3d.Zero3()), normal, meshColor(doc, node),
		width*scale.X, height*scale.Z)
	s.Axis = world.MulVec3Dir(math3d.V3(1, 0, 0)).Normalize()
	return s
}

// meshExtent returns the size of the POSITION bounds of the node's first
// primitive. Bounds are mandatory for POSITION accessors in glTF.
func meshExtent(doc *gltf.Document, node *gltf.Node) (math3d.Vec3, bool) {
	prim := firstPrimitive(doc, node)
	if prim == nil {
		return math3d.Vec3{}, false
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok || posIdx < 0 || posIdx >= len(doc.Accessors) {
		return math3d.Vec3{}, false
	}
	acc := doc.Accessors[posIdx]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return math3d.Vec3{}, false
	}
	return math3d.V3(acc.Max[0]-acc.Min[0], acc.Max[1]-acc.Min[1], acc.Max[2]-acc.Min[2]), true
}

// meshColor returns the base color factor of the node's first primitive
// material, or white (the glTF default).
func meshColor(doc *gltf.Document, node *gltf.Node) math3d.Vec3 {
	white := math3d.V3(1, 1, 1)
	prim := firstPrimitive(doc, node)
	if prim == nil || prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return white
	}
	mat := doc.Materials[*prim.Material]
	if mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return white
	}
	c := mat.PBRMetallicRoughness.BaseColorFactor
	return math3d.V3(c[0], c[1], c[2])
}

func firstPrimitive(doc *gltf.Document, node *gltf.Node) *gltf.Primitive {
	if node.Mesh == nil || *node.Mesh >= len(doc.Meshes) {
		return nil
	}
	mesh := doc.Meshes[*node.Mesh]
	if len(mesh.Primitives) == 0 {
		return nil
	}
	return mesh.Primitives[0]
}

func applyExtras(s *Surface, extras map[string]any) {
	if spec, ok := extras["specular"].([]any); ok && len(spec) == 3 {
		var c [3]float64
		for i, v := range spec {
			c[i], _ = v.(float64)
		}
		s.Specular = vec(c)
	}
	if casts, ok := extras["casts_shadow"].(bool); ok {
		s.CastsShadow = casts
	}
}
