// Package config loads pullview's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pullview/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # TOML Format
//
//	threshold = 68
//	pull_step = 17
//	shows_indicators = true
//	shows_content_under_progress_when_loading = true
//	haptics_enabled = false
//	background_color = "#1e1e2e"
//	indicator = "spinner"   # spinner, bar or arrow
//	source = "~/notes/todo.txt"
//	tail_lines = 500
//	log_dir = "~/.local/state/pullview"
//	log_level = "info"
//
// threshold and pull_step are in the same coordinate units the scroll surface
// reports positions in; one wheel tick or key press adds pull_step. Zero means
// "use the default". Negative values are rejected, since the refresh engine
// cannot arm against a non-positive threshold.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and invalid values. A missing file is not
// an error.
package config
