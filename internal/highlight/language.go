package highlight

import (
	"path/filepath"
	"strings"
)

var languageByExt = map[string]string{
	".go":   "go",
	".java": "java",
	".kt":   "kotlin",
	".kts":  "kotlin",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cs":   "csharp",
	".toml": "toml",
}

// DetectLanguage returns the Chroma language identifier for path, or "".
func DetectLanguage(path string) string {
	return languageByExt[strings.ToLower(filepath.Ext(path))]
}
