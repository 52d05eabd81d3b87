package metadata

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Anything the engine does not know how to load. */
	ResourceTypeNone ResourceType = iota
	/** @brief Text resource type. */
	ResourceTypeText
	/** @brief Mesh resource type (a triangle list, .obj). */
	ResourceTypeMesh
	/** @brief Scene resource type (camera and objects, .toml). */
	ResourceTypeScene
	/** @brief Custom resource type. Used by loaders outside the core engine. */
	ResourceTypeCustom
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeText:
		return "text"
	case ResourceTypeMesh:
		return "mesh"
	case ResourceTypeScene:
		return "scene"
	case ResourceTypeCustom:
		return "custom"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource. All resource loaders
 * load data into these.
 */
type Resource struct {
	/** @brief The type of the resource, which also selects its loader. */
	Type ResourceType
	/** @brief The name of the resource. */
	Name string
	/** @brief The full file path of the resource. */
	FullPath string
	/** @brief The size of the resource file in bytes. */
	DataSize uint64
	/** @brief The resource data, e.g. *Mesh for ResourceTypeMesh. */
	Data interface{}
}
