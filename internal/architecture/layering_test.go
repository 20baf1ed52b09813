package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "pti/internal/modules/"

var layers = []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"}

type importRef struct {
	file   string
	module string
	layer  string
	target string
}

// walkImports visits every non-test import of a pti package under root.
func walkImports(t *testing.T, root string, visit func(ref importRef)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		slash := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			target := strings.Trim(imp.Path.Value, `"`)
			if !strings.HasPrefix(target, "pti/") {
				continue
			}
			visit(importRef{file: slash, module: moduleOf(slash), layer: layerOf(slash), target: target})
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(ref importRef) {
		if ref.module == "" || ref.layer == "" || !strings.HasPrefix(ref.target, modulesPrefix) {
			return
		}
		if violates(ref) {
			t.Errorf("forbidden import in %s (%s): %s", ref.file, ref.layer, ref.target)
		}
	})
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "platform"), func(ref importRef) {
		if strings.HasPrefix(ref.target, modulesPrefix) {
			t.Errorf("platform package %s imports module %s", ref.file, ref.target)
		}
	})
}

func moduleOf(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func layerOf(path string) string {
	for _, layer := range layers {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

// targetLayer resolves "pti/internal/modules/<m>/<layer>[/...]".
func targetLayer(importPath string) (module, layer string) {
	rest := strings.TrimPrefix(importPath, modulesPrefix)
	module, rest, _ = strings.Cut(rest, "/")
	for _, l := range layers {
		if rest == l || strings.HasPrefix(rest, l+"/") {
			return module, l
		}
	}
	return module, rest
}

func violates(ref importRef) bool {
	module, layer := targetLayer(ref.target)
	if module != ref.module {
		return layer != "port/in" && layer != "dto"
	}
	switch ref.layer {
	case "adapter/in":
		return layer != "port/in" && layer != "dto"
	case "usecase":
		return strings.HasPrefix(layer, "adapter/")
	case "service":
		return strings.HasPrefix(layer, "adapter/") || layer == "usecase"
	case "domain", "dto":
		return layer != "domain" && layer != "dto"
	default:
		return false
	}
}
