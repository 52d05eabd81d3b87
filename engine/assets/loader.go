package assets

import "github.com/spaghettifunk/wireframe/engine/renderer/metadata"

type Loader interface {
	Load(path string, params interface{}) (*metadata.Resource, error) // `interface{}` here allows loaders to take loader specific options
	Unload(*metadata.Resource) error
}
