package config

// GetDefaultConfigTemplate returns a fully commented project config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# Changelog Configuration
# See 'changelog --help' for commands, 'changelog check' to validate this file

# Output settings
# output = "CHANGELOG.md"               # Output file (default: CHANGELOG + extension of format)
format = "markdown"                     # markdown | html | yaml | json
# template = "changelog.md.tmpl"        # Custom Go template (markdown and html only)

# Classification settings
scope_policy = "reject"                 # reject | warn: what to do with commits outside 'scopes'
unreleased_label = "Technical preview"  # Name of the group after the last release tag

# Kind token -> section label. Commits with other kinds are skipped.
[kinds]
feat = "Features"
fix = "Bug Fixes"
perf = "Performance"
docs = "Documentation"

# One table per repository, rendered in this order.
[[repositories]]
name = "changelog"
path = "."                              # Relative to this file
# scopes = ["cli", "config"]            # Allowed scopes (empty = any scope)
# range = "v1.0.0..HEAD"                # Revision range (default: all of HEAD)
# link = "https://github.com/owner/repo/commit/{hash}"
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// output: Empty means CHANGELOG plus the extension of format.
		"output": "",
		"format": FormatMarkdown,
		// template: Empty selects the embedded template for format.
		"template": "",
		// scope_policy: "reject" drops commits whose scope is outside the
		// repository allow-list, "warn" only reports them.
		"scope_policy":     string(ScopePolicyReject),
		"unreleased_label": "Technical preview",
	}
}
