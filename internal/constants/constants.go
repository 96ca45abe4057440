package constants

// SyntaxTheme is the default Chroma theme for slice text in coloured
// reports. Any Chroma style name works, for example:
//
// Dark themes (recommended for terminals):
//   - monokai           - Classic Sublime Text theme
//   - dracula           - Popular purple/pink theme
//   - nord              - Cool bluish theme
//   - onedark           - Atom's One Dark
//   - github-dark       - GitHub's dark theme
//   - catppuccin-mocha  - Pastel dark theme
//
// Light themes:
//   - github            - GitHub's light theme
//   - solarized-light   - Classic Solarized light
//   - vs                - Visual Studio light
const SyntaxTheme = "github-dark"

// AppName names the data directory and the environment prefix.
const AppName = "reach"

// ConfigFileName is the config file looked up in the data directory.
const ConfigFileName = "config.toml"

// DBFileName is the query log database in the data directory.
const DBFileName = "reach.db"
