package config

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// This is the single source of truth for default values and generator output.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "render.indent_unit", Default: 6, Comment: "Left padding in pixels per list nesting level"},
		{Key: "render.key_attr", Default: "", Comment: "Attribute receiving each list child's key; empty disables keys"},
		{Key: "render.role_attr", Default: "", Comment: "Attribute receiving a list's container role; empty disables roles"},

		{Key: "server.addr", Default: ":8080", Comment: "HTTP listen address for mdlist serve"},
		{Key: "server.token", Default: "", Comment: "Bearer token required by /api routes; empty disables auth"},
		{Key: "server.max_body_bytes", Default: 1 << 20, Comment: "Largest accepted request body in bytes"},

		{Key: "log.level", Default: "info", Comment: "Log level: debug, info, warn or error"},
		{Key: "log.format", Default: "text", Comment: "Log format: text or json"},
	}
}
