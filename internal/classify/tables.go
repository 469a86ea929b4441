package classify

var languageByExtension = map[string]string{
	"ts":    "javascript/typescript",
	"tsx":   "javascript/typescript",
	"js":    "javascript/typescript",
	"jsx":   "javascript/typescript",
	"mjs":   "javascript/typescript",
	"cjs":   "javascript/typescript",
	"vue":   "javascript/typescript",
	"go":    "go",
	"py":    "python",
	"rs":    "rust",
	"java":  "java/kotlin",
	"kt":    "java/kotlin",
	"kts":   "java/kotlin",
	"scala": "scala",
	"rb":    "ruby",
	"php":   "php",
	"cs":    "csharp",
	"c":     "c/c++",
	"h":     "c/c++",
	"cc":    "c/c++",
	"cpp":   "c/c++",
	"hpp":   "c/c++",
	"swift": "swift",
	"m":     "objective-c",
	"dart":  "dart",
	"ex":    "elixir",
	"exs":   "elixir",
	"lua":   "lua",
	"sh":    "shell",
	"bash":  "shell",
	"sql":   "sql",
}

// manifestFiles maps exact manifest and lock file names to ecosystem tags
var manifestFiles = map[string]string{
	"package.json":      "node-ecosystem",
	"package-lock.json": "node-ecosystem",
	"yarn.lock":         "node-ecosystem",
	"pnpm-lock.yaml":    "node-ecosystem",
	"bun.lockb":         "node-ecosystem",
	"go.mod":            "go-modules",
	"go.sum":            "go-modules",
	"cargo.toml":        "rust-ecosystem",
	"cargo.lock":        "rust-ecosystem",
	"requirements.txt":  "python-ecosystem",
	"pyproject.toml":    "python-ecosystem",
	"pipfile":           "python-ecosystem",
	"pipfile.lock":      "python-ecosystem",
	"poetry.lock":       "python-ecosystem",
	"setup.py":          "python-ecosystem",
	"pom.xml":           "jvm-ecosystem",
	"build.gradle":      "jvm-ecosystem",
	"build.gradle.kts":  "jvm-ecosystem",
	"gemfile":           "ruby-ecosystem",
	"gemfile.lock":      "ruby-ecosystem",
	"composer.json":     "php-ecosystem",
	"composer.lock":     "php-ecosystem",
	"pubspec.yaml":      "dart-ecosystem",
	"mix.exs":           "elixir-ecosystem",
	"dockerfile":        "docker",
	"makefile":          "make",
	"cmakelists.txt":    "cmake",
}

// manifestPatterns catch manifest families whose names vary
var manifestPatterns = []struct {
	marker string
	tag    string
}{
	{marker: ".csproj", tag: "dotnet-ecosystem"},
	{marker: "docker-compose", tag: "docker"},
}

var sourceRoots = map[string]bool{
	"src": true,
	"lib": true,
}

var configExtensions = map[string]bool{
	"json": true,
	"yaml": true,
	"yml":  true,
}

var uiExtensions = map[string]bool{
	"tsx":    true,
	"jsx":    true,
	"vue":    true,
	"svelte": true,
	"css":    true,
	"scss":   true,
	"sass":   true,
	"less":   true,
	"html":   true,
}

var uiNameMarkers = []string{"component", "view", "page", "layout", "widget"}

var backendNameMarkers = []string{"api", "controller", "service", "model", "handler", "route", "middleware"}
