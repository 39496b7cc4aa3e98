package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// RenderDefaultTOML renders a TOML config with defaults from GetConfigOptions.
func RenderDefaultTOML() string {
	var b strings.Builder
	b.WriteString("# mdlist configuration (TOML)\n\n")

	sections := make(map[string][]ConfigOption)
	sectionOrder := make([]string, 0)
	for _, o := range GetConfigOptions() {
		parts := strings.SplitN(o.Key, ".", 2)
		section := parts[0]
		if _, ok := sections[section]; !ok {
			sectionOrder = append(sectionOrder, section)
		}
		sections[section] = append(sections[section], ConfigOption{
			Key:     parts[1],
			Default: o.Default,
			Comment: o.Comment,
		})
	}

	for _, section := range sectionOrder {
		b.WriteString("[" + section + "]\n")
		for _, o := range sections[section] {
			writeTOMLOption(&b, o.Key, o.Default, o.Comment)
		}
	}
	return b.String()
}

// RenderEffective lists every known key with its resolved value, one
// `key = value` line each, sorted by key. Tokens are masked.
func RenderEffective(v *viper.Viper) string {
	opts := GetConfigOptions()
	keys := make([]string, 0, len(opts))
	for _, o := range opts {
		keys = append(keys, o.Key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		val := v.Get(key)
		if strings.HasSuffix(key, ".token") && v.GetString(key) != "" {
			val = "********"
		}
		if s, ok := val.(string); ok {
			b.WriteString(fmt.Sprintf("%s = %q\n", key, s))
			continue
		}
		b.WriteString(fmt.Sprintf("%s = %v\n", key, val))
	}
	return b.String()
}

func writeTOMLOption(b *strings.Builder, key string, value any, comment string) {
	if comment != "" {
		b.WriteString("# " + comment + "\n")
	}
	switch v := value.(type) {
	case string:
		b.WriteString(fmt.Sprintf("%s = %q\n\n", key, v))
	default:
		b.WriteString(fmt.Sprintf("%s = %v\n\n", key, v))
	}
}
