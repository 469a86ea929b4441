package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubLister struct {
	paths []string
	err   error
}

func (s stubLister) StagedFiles(ctx context.Context) ([]string, error) {
	return s.paths, s.err
}

func TestClassify_MixedChangeSet(t *testing.T) {
	got := Classify([]string{"src/a.ts", "tests/b.spec.ts", "README.md"})

	assert.True(t, got.HasTests)
	assert.True(t, got.HasDocs)
	assert.False(t, got.HasConfig)
	assert.Equal(t, "javascript/typescript", got.Language)
	assert.Equal(t, ScopeCore, got.Scope)
	assert.Equal(t, []string{ChangeTest, ChangeDocs}, got.ChangeTypes)
	assert.Equal(t, []string{"md", "ts"}, got.Extensions)
}

func TestClassify_NodeManifestWithSource(t *testing.T) {
	got := Classify([]string{"package.json", "src/index.ts"})

	assert.True(t, got.HasConfig)
	assert.Equal(t, []string{"node-ecosystem"}, got.Frameworks)
	assert.Equal(t, ScopeCore, got.Scope)
	assert.Equal(t, []string{ChangeConfig}, got.ChangeTypes)
	assert.Equal(t, "javascript/typescript", got.Language)
}

func TestClassify_ScopePriority(t *testing.T) {
	tests := []struct {
		name  string
		paths []string
		want  string
	}{
		{name: "core beats later test", paths: []string{"src/a.go", "pkg/a_test.go"}, want: ScopeCore},
		{name: "core beats earlier test", paths: []string{"pkg/a_test.go", "lib/util.rb"}, want: ScopeCore},
		{name: "core beats earlier docs", paths: []string{"README.md", "src/a.ts"}, want: ScopeCore},
		{name: "core beats earlier manifest", paths: []string{"package.json", "src/index.ts"}, want: ScopeCore},
		{name: "test beats config", paths: []string{"settings.yaml", "e2e/login.test.js"}, want: ScopeTest},
		{name: "config beats docs", paths: []string{"CHANGELOG.md", "app.config.js"}, want: ScopeConfig},
		{name: "docs only", paths: []string{"guide/README.md"}, want: ScopeDocs},
		{name: "nothing matched", paths: []string{"cmd/main.go"}, want: ""},
		{name: "source root must be top level", paths: []string{"pkg/src/main.go"}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.paths).Scope)
		})
	}
}

func TestClassify_LanguageFirstMatchWins(t *testing.T) {
	got := Classify([]string{"notes.txt", "main.py", "lib.rs", "Makefile"})
	assert.Equal(t, "python", got.Language)

	got = Classify([]string{"notes.txt", "image.png"})
	assert.Equal(t, UnknownLanguage, got.Language)
}

func TestClassify_ExtensionsAreLowercasedAndDeduplicated(t *testing.T) {
	got := Classify([]string{"A.GO", "b.go", "c.Go"})
	assert.Equal(t, []string{"go"}, got.Extensions)
	assert.Equal(t, "go", got.Language)
}

func TestClassify_FrontendAndBackend(t *testing.T) {
	got := Classify([]string{"web/Button.tsx", "server/user_controller.rb", "server/payment_service.rb"})

	assert.Equal(t, []string{FrameworkBackend, FrameworkFrontend}, got.Frameworks)
	assert.Equal(t, []string{ChangeUI, ChangeAPI}, got.ChangeTypes)
	assert.True(t, got.HasFrontend)
	assert.True(t, got.HasBackend)
}

func TestClassify_ManifestTags(t *testing.T) {
	got := Classify([]string{"go.mod", "go.sum", "Cargo.toml", "requirements.txt"})

	assert.Equal(t, []string{"go-modules", "python-ecosystem", "rust-ecosystem"}, got.Frameworks)
	assert.True(t, got.HasConfig)
	assert.Equal(t, ScopeConfig, got.Scope)
}

func TestClassify_ConfigMarkers(t *testing.T) {
	for _, p := range []string{".env.local", "settings/app-config.toml", "tsconfig.base.txt", "data.yml"} {
		t.Run(p, func(t *testing.T) {
			assert.True(t, Classify([]string{p}).HasConfig)
		})
	}
}

func TestClassify_Empty(t *testing.T) {
	got := Classify(nil)
	assert.Equal(t, Empty(), got)
	assert.Equal(t, UnknownLanguage, got.Language)
	assert.Empty(t, got.Scope)
}

func TestFromLister(t *testing.T) {
	t.Run("classifies listed paths", func(t *testing.T) {
		got := FromLister(context.Background(), stubLister{paths: []string{"docs/intro.md"}})
		assert.True(t, got.HasDocs)
	})

	t.Run("listing failure is swallowed", func(t *testing.T) {
		got := FromLister(context.Background(), stubLister{err: errors.New("boom")})
		assert.Equal(t, Empty(), got)
	})

	t.Run("nil lister", func(t *testing.T) {
		assert.Equal(t, Empty(), FromLister(context.Background(), nil))
	})
}
