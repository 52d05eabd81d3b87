package metadata

import (
	"fmt"

	"github.com/spaghettifunk/wireframe/engine/math"
)

/** @brief Three fully expanded vertices, in the order the face listed them. */
type Triangle [3]math.Vec3

/**
 * @brief A triangle soup loaded from a mesh file. Meshes are never mutated after
 * loading, so several game objects may point at the same one.
 */
type Mesh struct {
	/** @brief The name of the mesh, usually the file name. */
	Name string
	/** @brief The path the mesh was loaded from. Empty for meshes built in code. */
	Path string
	/** @brief Incremented every time the mesh is reloaded from disk. */
	Generation uint32
	Triangles  []Triangle
}

// Extents returns the bounding box of every vertex of the mesh.
func (m *Mesh) Extents() math.Extents3D {
	points := make([]math.Vec3, 0, len(m.Triangles)*3)
	for _, tri := range m.Triangles {
		points = append(points, tri[0], tri[1], tri[2])
	}
	return math.ExtentsOf(points...)
}

func (m *Mesh) String() string {
	return fmt.Sprintf("Mesh(%s, %d triangles)", m.Name, len(m.Triangles))
}

// Also used as result data from the job.
type MeshLoadParams struct {
	ResourceName string
	OutMesh      *Mesh
	MeshResource *Resource
}
