package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed shaders/*.kage
var ShadersFS embed.FS

// LoadShader returns Kage source for name, preferring a copy on disk under
// prefabs/shaders so edits can be picked up without a rebuild.
func LoadShader(name string) ([]byte, error) {
	clean := cleanShaderPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ShadersFS.ReadFile(clean)
}

//go:embed *.yaml
var PrefabsFS embed.FS

func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// Dir is the on-disk directory that overrides the embedded prefabs.
const Dir = "prefabs"

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "prefabs/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanShaderPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/shaders/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "shaders/"); ok {
		s = after
	}

	if filepath.Ext(s) == "" {
		s += ".kage"
	}

	return fmt.Sprintf("shaders/%s", s)
}

// SpecFile is the file name a spec loaded as name is read from.
func SpecFile(name string) string {
	return path.Base(cleanPrefabPath(name))
}

// ShaderFile is the file name a shader loaded as name is read from.
func ShaderFile(name string) string {
	return path.Base(cleanShaderPath(name))
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
