package generator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveOutputPath resolves sourceFile's output location under outDir,
// preserving its relative path under whichever includeRoot actually
// contains it — spec.md §6's "preserving the relative path under the
// matched include root," grounded on the original's GeneratorHelper.cpp
// include-root matching (SPEC_FULL.md §9). For an input `foo/bar.hpp` under
// include root `foo` and suffix `.meta.hpp`, the result is
// `<outDir>/bar.meta.hpp`; for an unmatched file (no includeRoots entry is
// a prefix of it), only its base name is kept, so the output lands directly
// under outDir and none of its directory structure is preserved.
func ResolveOutputPath(includeRoots []string, sourceFile, outDir, suffix string) (string, error) {
	absSource, err := filepath.Abs(sourceFile)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}

	var rel string
	matched := false
	for _, root := range includeRoots {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			continue
		}
		r, err := filepath.Rel(absRoot, absSource)
		if err != nil || strings.HasPrefix(r, "..") {
			continue
		}
		rel = r
		matched = true
		break
	}
	if !matched {
		rel = filepath.Base(sourceFile)
	}

	dir := filepath.Dir(rel)
	base := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	name := base + suffix

	if dir == "." {
		return filepath.Join(outDir, name), nil
	}
	return filepath.Join(outDir, dir, name), nil
}

// dynamicRecordPath / dynamicFuncPath derive the two dynamic artifact file
// names spec.md §6 names for a given static output path: swapping its
// suffix for `.meta.cpp` / `.funcs.meta.cpp`.
func dynamicRecordPath(staticPath string) string {
	return swapSuffix(staticPath, ".meta.cpp")
}

func dynamicFuncPath(staticPath string) string {
	return swapSuffix(staticPath, ".funcs.meta.cpp")
}

func swapSuffix(path, newSuffix string) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	// Strip the configured static suffix (whatever it is) down to the bare
	// stem by cutting at the first '.'.
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	return filepath.Join(dir, base+newSuffix)
}
