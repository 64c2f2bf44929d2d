package entities

import "strings"

// Post is a user note identified by its title within the owner's partition.
type Post struct {
	PostTitle string   `json:"postTitle" validate:"required"`
	PostBody  string   `json:"postBody"`
	PostTags  []string `json:"postTags"`
}

// tagSeparator joins tags in the stored representation.
const tagSeparator = ","

// JoinTags encodes tags into their stored form. A nil or empty list is
// stored as the empty string.
func JoinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// SplitTags decodes a stored tag string. Blank input yields an empty,
// non-nil list so it serializes as []. Trailing empty segments are dropped,
// interior ones are kept: "a,,b," becomes ["a", "", "b"].
func SplitTags(stored string) []string {
	if strings.TrimSpace(stored) == "" {
		return []string{}
	}

	tags := strings.Split(stored, tagSeparator)
	end := len(tags)
	for end > 0 && tags[end-1] == "" {
		end--
	}
	return tags[:end]
}
