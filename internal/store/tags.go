package store

import "strings"

// ExtractTags splits raw on single spaces and keeps the tokens that start
// with '@', without the prefix. Order and duplicates are preserved.
func ExtractTags(raw string) []string {
	tags := []string{}
	for _, tok := range strings.Split(raw, " ") {
		if tok == "" || tok[0] != '@' {
			continue
		}
		tags = append(tags, tok[1:])
	}
	return tags
}

func containsTag(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
