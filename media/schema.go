package media

import (
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"
)

// Schema describes the catalog file layout accepted by Parse.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.ExpandedStruct = true
	reflector.Namer = func(t reflect.Type) string {
		return filepath.Base(t.PkgPath()) + "." + t.Name()
	}
	return reflector.Reflect(&File{})
}
