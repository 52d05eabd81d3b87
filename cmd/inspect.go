package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spaghettifunk/wireframe/engine/assets"
	"github.com/spaghettifunk/wireframe/engine/assets/loaders"
	"github.com/spaghettifunk/wireframe/engine/renderer/metadata"
)

// inspectCmd prints what the loaders make of mesh and scene files.
var inspectCmd = &cobra.Command{
	Use:   "inspect [file...]",
	Short: "Print triangle counts and extents of meshes and scenes",
	Long: `Load mesh (.obj) or scene (.toml) files the same way the renderer does and
print a summary. A scene lists its camera and every object with the mesh
it points at, so broken references show up before the scene is run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		am := assets.NewAssetManager(nil)
		defer am.Shutdown()

		out := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		defer out.Flush()

		for _, path := range args {
			if err := inspect(out, am, path); err != nil {
				return err
			}
		}
		return nil
	},
}

func inspect(w io.Writer, am *assets.AssetManager, path string) error {
	resource, err := am.LoadAsset(path, metadata.ResourceTypeNone, nil)
	if err != nil {
		return err
	}
	defer am.UnloadAsset(resource)

	switch data := resource.Data.(type) {
	case *metadata.Mesh:
		printMesh(w, data)
	case *loaders.SceneConfig:
		return printScene(w, am, data)
	default:
		return fmt.Errorf("%w: %s", assets.ErrUnknownAssetType, path)
	}
	return nil
}

func printMesh(w io.Writer, mesh *metadata.Mesh) {
	ext := mesh.Extents()
	fmt.Fprintf(w, "mesh\t%s\t%d triangles\tmin %s\tmax %s\n", mesh.Path, len(mesh.Triangles), ext.Min, ext.Max)
}

func printScene(w io.Writer, am *assets.AssetManager, scene *loaders.SceneConfig) error {
	fmt.Fprintf(w, "scene\t%s\t%d objects\n", scene.Name, len(scene.Objects))
	fmt.Fprintf(w, "camera\tfov %g\tnear %g\tfar %g\n", scene.Camera.Fov, scene.Camera.Near, scene.Camera.Far)

	for _, obj := range scene.Objects {
		meshPath := scene.MeshPath(obj)
		resource, err := am.LoadAsset(meshPath, metadata.ResourceTypeMesh, nil)
		if err != nil {
			return fmt.Errorf("object %s: %w", obj.Name, err)
		}
		mesh := resource.Data.(*metadata.Mesh)
		transform, err := obj.Transform()
		if err != nil {
			return fmt.Errorf("object %s: %w", obj.Name, err)
		}
		fmt.Fprintf(w, "object\t%s\t%s\t%d triangles\tat %s\tcolour %s\n",
			obj.Name, meshPath, len(mesh.Triangles), transform.Position(), obj.Colour)
		_ = am.UnloadAsset(resource)
	}
	return nil
}
