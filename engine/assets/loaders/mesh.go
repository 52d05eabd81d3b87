package loaders

import (
	"bufio"
	"fmt"
	"io"
	m "math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

// The longest line the mesh parser accepts.
const maxMeshLineLength = 1024 * 1024

type MeshLoader struct{}

func (ml *MeshLoader) Load(path string, params interface{}) (*metadata.Resource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	mesh, err := ParseMesh(filepath.Base(path), file)
	if err != nil {
		return nil, err
	}
	mesh.Path = path

	return &metadata.Resource{
		Type:     metadata.ResourceTypeMesh,
		Name:     mesh.Name,
		FullPath: path,
		DataSize: uint64(info.Size()),
		Data:     mesh,
	}, nil
}

func (ml *MeshLoader) Unload(resource *metadata.Resource) error {
	resource.Data = nil
	return nil
}

func malformed(name string, line int, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s:%d: %s", core.ErrMalformedMesh, name, line, fmt.Sprintf(format, args...))
}

/**
 * @brief Reads a triangle list in the .obj text format.
 *
 * Only two records matter: "v x y z" appends a vertex (anything after z is ignored)
 * and "f a b c" makes a triangle out of three vertices already read. Face entries
 * may carry texture and normal indices ("a/t/n"); only the leading position index
 * is used, counting from 1. Faces are expanded into vertices right away.
 * Comments, blank lines and every other record ("vn", "vt", "o", "g", "usemtl"...)
 * are skipped.
 *
 * @return The mesh, or an error wrapping core.ErrMalformedMesh that names the line.
 */
func ParseMesh(name string, r io.Reader) (*metadata.Mesh, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMeshLineLength)

	mesh := &metadata.Mesh{Name: name}
	vertices := []math.Vec3{}
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())

		// Skip comments and empty lines
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, malformed(name, lineNumber, "vertex needs 3 coordinates, got %d", len(fields)-1)
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, malformed(name, lineNumber, "invalid vertex coordinate %q", fields[i+1])
				}
				if m.IsNaN(f) || m.IsInf(f, 0) {
					return nil, malformed(name, lineNumber, "vertex coordinate %q is not finite", fields[i+1])
				}
				xyz[i] = f
			}
			vertices = append(vertices, math.NewVec3(xyz[0], xyz[1], xyz[2]))
		case "f":
			if len(fields) != 4 {
				return nil, malformed(name, lineNumber, "face must have exactly 3 vertices, got %d", len(fields)-1)
			}
			var tri metadata.Triangle
			for i, group := range fields[1:] {
				position := strings.SplitN(group, "/", 2)[0]
				index, err := strconv.Atoi(position)
				if err != nil {
					return nil, malformed(name, lineNumber, "invalid vertex index %q", group)
				}
				if index < 1 || index > len(vertices) {
					return nil, malformed(name, lineNumber, "vertex index %d out of range [1, %d]", index, len(vertices))
				}
				tri[i] = vertices[index-1]
			}
			mesh.Triangles = append(mesh.Triangles, tri)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", core.ErrMalformedMesh, name, err)
	}

	core.LogDebug("parsed mesh '%s': %d vertices, %d triangles", name, len(vertices), len(mesh.Triangles))
	return mesh, nil
}
