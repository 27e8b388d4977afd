// Package memory maintains the per-user weak-skill counters that feed
// roadmap generation and readiness scoring.
package memory

import "strings"

// NormalizeSkillName canonicalizes a weak-topic label so that surface
// variants of the same skill ("Dynamic  Programming", " dynamic programming ")
// collapse onto one counter row. Returns "" for blank input.
func NormalizeSkillName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// DedupeTopics normalizes a topic list and removes duplicates while
// preserving first-occurrence order. Blank entries are dropped.
func DedupeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		normalized := NormalizeSkillName(topic)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
