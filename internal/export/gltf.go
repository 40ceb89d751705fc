// Package export writes the surface mesh to interchange formats.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/surfview/internal/surface"
	"github.com/Faultbox/surfview/pkg/math"
)

// Generator is recorded in the glTF asset header.
const Generator = "surfview"

// fallbackNormal replaces normals that cannot be made unit length.
var fallbackNormal = [3]float32{0, 0, 1}

// Document builds a glTF document holding the mesh as one TRIANGLE_STRIP
// primitive. glTF requires unit normals, so normals are normalized here;
// zero or non-finite ones are replaced by +Z.
func Document(m *surface.Mesh, name string) (*gltf.Document, error) {
	n := m.VertexCount()
	if n == 0 {
		return nil, fmt.Errorf("export: mesh has no vertices")
	}

	positions := make([][3]float32, n)
	normals := make([][3]float32, n)
	for i := 0; i < n; i++ {
		positions[i] = m.Position(i).Vec3().Array()
		normals[i] = unitNormal(m.Normal(i))
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = Generator
	doc.Meshes = []*gltf.Mesh{{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{
				gltf.POSITION: modeler.WritePosition(doc, positions),
				gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			},
			Mode: gltf.PrimitiveTriangleStrip,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// WriteGLTF saves the mesh to path. A .glb extension selects the binary
// container; anything else is written as JSON with an embedded buffer.
func WriteGLTF(m *surface.Mesh, path string) error {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := Document(m, name)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".glb") {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

func unitNormal(v math.Vec3d) [3]float32 {
	if !v.IsFinite() {
		return fallbackNormal
	}
	u := v.Normalize()
	if u == (math.Vec3d{}) || !u.IsFinite() {
		return fallbackNormal
	}
	return u.Vec3().Array()
}
