// Package classify derives a coarse semantic summary of a change set from
// the paths of the files it touches.
package classify

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/huimingz/commitbuddy/internal/log"
)

// UnknownLanguage is reported when no changed file maps to a known language
const UnknownLanguage = "unknown"

// Scope hints in priority order
const (
	ScopeCore   = "core"
	ScopeTest   = "test"
	ScopeConfig = "config"
	ScopeDocs   = "docs"
)

// Change type tags
const (
	ChangeTest   = "test"
	ChangeConfig = "config"
	ChangeDocs   = "docs"
	ChangeUI     = "ui"
	ChangeAPI    = "api"
)

// Framework tags derived from file names rather than manifests
const (
	FrameworkFrontend = "frontend"
	FrameworkBackend  = "backend"
)

// ChangeContext is the classifier's view of a change set. Slices are
// deduplicated; Extensions and Frameworks are sorted, ChangeTypes follow
// the fixed order test, config, docs, ui, api.
type ChangeContext struct {
	Extensions  []string `json:"extensions"`
	Frameworks  []string `json:"frameworks"`
	ChangeTypes []string `json:"change_types"`
	Language    string   `json:"language"`
	Scope       string   `json:"scope"`
	HasTests    bool     `json:"has_tests"`
	HasConfig   bool     `json:"has_config"`
	HasDocs     bool     `json:"has_docs"`
	HasFrontend bool     `json:"has_frontend"`
	HasBackend  bool     `json:"has_backend"`
}

// Empty returns the context used when nothing could be classified
func Empty() ChangeContext {
	return ChangeContext{Language: UnknownLanguage}
}

// Lister lists the staged file paths of a repository
type Lister interface {
	StagedFiles(ctx context.Context) ([]string, error)
}

// FromLister classifies the paths reported by lister. Classification is
// best-effort: a listing failure yields Empty() and is only logged.
func FromLister(ctx context.Context, lister Lister) ChangeContext {
	if lister == nil {
		return Empty()
	}
	paths, err := lister.StagedFiles(ctx)
	if err != nil {
		log.Debug("classification skipped: %v", err)
		return Empty()
	}
	return Classify(paths)
}

// Classify derives a ChangeContext from changed file paths in a single pass
func Classify(paths []string) ChangeContext {
	var (
		extensions = map[string]bool{}
		frameworks = map[string]bool{}
		language   = UnknownLanguage
		hasCore    bool
		result     ChangeContext
	)

	for _, p := range paths {
		p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
		if p == "" {
			continue
		}
		lowerPath := strings.ToLower(p)
		name := path.Base(lowerPath)
		ext := strings.TrimPrefix(path.Ext(name), ".")
		dirs := directories(lowerPath)

		if ext != "" {
			extensions[ext] = true
			if lang, ok := languageByExtension[ext]; ok && language == UnknownLanguage {
				language = lang
			}
		}

		if tag, ok := manifestTag(name); ok {
			frameworks[tag] = true
			result.HasConfig = true
		}

		if len(dirs) > 0 && sourceRoots[dirs[0]] {
			hasCore = true
		}

		if isTestPath(name, dirs) {
			result.HasTests = true
		}

		if strings.Contains(name, "config") || strings.Contains(name, ".env") || configExtensions[ext] {
			result.HasConfig = true
		}

		if strings.Contains(name, "readme") || strings.Contains(name, "doc") || ext == "md" {
			result.HasDocs = true
		}

		if uiExtensions[ext] || containsAny(name, uiNameMarkers) {
			frameworks[FrameworkFrontend] = true
			result.HasFrontend = true
		}

		if containsAny(name, backendNameMarkers) {
			frameworks[FrameworkBackend] = true
			result.HasBackend = true
		}
	}

	result.Language = language
	result.Extensions = sortedKeys(extensions)
	result.Frameworks = sortedKeys(frameworks)
	result.ChangeTypes = changeTypes(result)
	result.Scope = scopeHint(hasCore, result)
	return result
}

// scopeHint applies the fixed priority core > test > config > docs
func scopeHint(hasCore bool, c ChangeContext) string {
	switch {
	case hasCore:
		return ScopeCore
	case c.HasTests:
		return ScopeTest
	case c.HasConfig:
		return ScopeConfig
	case c.HasDocs:
		return ScopeDocs
	default:
		return ""
	}
}

func changeTypes(c ChangeContext) []string {
	var types []string
	if c.HasTests {
		types = append(types, ChangeTest)
	}
	if c.HasConfig {
		types = append(types, ChangeConfig)
	}
	if c.HasDocs {
		types = append(types, ChangeDocs)
	}
	if c.HasFrontend {
		types = append(types, ChangeUI)
	}
	if c.HasBackend {
		types = append(types, ChangeAPI)
	}
	return types
}

func isTestPath(name string, dirs []string) bool {
	if strings.Contains(name, "test") || strings.Contains(name, "spec") {
		return true
	}
	for _, d := range dirs {
		if strings.Contains(d, "test") || strings.Contains(d, "spec") {
			return true
		}
	}
	return false
}

// directories returns the directory segments of a slash-separated path
func directories(p string) []string {
	dir := path.Dir(p)
	if dir == "." || dir == "/" {
		return nil
	}
	return strings.Split(strings.Trim(dir, "/"), "/")
}

func manifestTag(name string) (string, bool) {
	if tag, ok := manifestFiles[name]; ok {
		return tag, true
	}
	for _, m := range manifestPatterns {
		if strings.Contains(name, m.marker) {
			return m.tag, true
		}
	}
	return "", false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
