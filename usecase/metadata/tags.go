package metadata

import (
	"strings"

	"github.com/platform9/pcdmanager/domain/model"
)

// SplitTags parses the comma-joined tag string: entries are trimmed and empties dropped.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// JoinTags renders tags in the stored comma-joined form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// NormalizeTags trims, drops empties and removes case-insensitive duplicates,
// keeping the first spelling and the original order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t == "" || containsFold(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsFold(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// TagsOf returns the parsed tag list of md.
func TagsOf(md model.Metadata) []string {
	return SplitTags(md.String(model.MetaTags))
}
