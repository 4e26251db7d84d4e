package repotree

import (
	"path"
	"strings"
	"unicode"
)

// FileKind is the coarse role of a file, inferred from its path.
type FileKind string

const (
	KindComponent FileKind = "component"
	KindHook      FileKind = "hook"
	KindAPI       FileKind = "api"
	KindPage      FileKind = "page"
	KindTest      FileKind = "test"
	KindStyle     FileKind = "style"
	KindConfig    FileKind = "config"
	KindUtil      FileKind = "util"
	KindType      FileKind = "type"
	KindDocument  FileKind = "document"
	KindModule    FileKind = "module"
	KindOther     FileKind = "other"
)

var sourceExts = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".vue": true, ".svelte": true, ".go": true, ".py": true, ".rb": true, ".java": true,
	".kt": true, ".rs": true, ".php": true, ".cs": true, ".swift": true, ".dart": true,
}

var styleExts = map[string]bool{".css": true, ".scss": true, ".sass": true, ".less": true, ".styl": true}

var configExts = map[string]bool{".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true, ".env": true}

var docExts = map[string]bool{".md": true, ".mdx": true, ".txt": true, ".rst": true}

// DetectKind classifies a path. The checks run most specific first.
func DetectKind(p string) FileKind {
	base := path.Base(p)
	lower := strings.ToLower(base)
	ext := strings.ToLower(path.Ext(base))
	segments := dirSegments(p)

	switch {
	case strings.Contains(lower, ".test.") || strings.Contains(lower, ".spec.") ||
		strings.HasSuffix(lower, "_test.go") || segments["__tests__"] || segments["tests"]:
		return KindTest
	case styleExts[ext]:
		return KindStyle
	case docExts[ext]:
		return KindDocument
	case configExts[ext] || strings.Contains(lower, ".config.") || strings.HasPrefix(lower, "."):
		return KindConfig
	case strings.HasSuffix(lower, ".d.ts") || segments["types"]:
		return KindType
	case !sourceExts[ext]:
		return KindOther
	case segments["api"]:
		return KindAPI
	case isHookName(base):
		return KindHook
	case segments["pages"] || strings.TrimSuffix(lower, ext) == "page":
		return KindPage
	case segments["utils"] || segments["util"] || segments["lib"] || segments["helpers"]:
		return KindUtil
	case ext == ".tsx" || ext == ".jsx" || ext == ".vue" || ext == ".svelte" || segments["components"]:
		return KindComponent
	default:
		return KindModule
	}
}

func dirSegments(p string) map[string]bool {
	segs := make(map[string]bool)
	dir := path.Dir(strings.Trim(p, "/"))
	if dir == "." {
		return segs
	}
	for _, s := range strings.Split(dir, "/") {
		segs[strings.ToLower(s)] = true
	}
	return segs
}

// isHookName matches names like useAuth.ts.
func isHookName(base string) bool {
	if len(base) < 4 || !strings.HasPrefix(base, "use") {
		return false
	}
	return unicode.IsUpper(rune(base[3]))
}
