package model

import (
	"encoding/json"

	"github.com/gosimple/slug"
)

// Topic is a named category tag attached to posts.
type Topic struct {
	ID   ID     `json:"_id"`
	Name string `json:"name"`
}

// Slug returns the URL-safe tag derived from the topic name.
func (t Topic) Slug() string {
	return slug.Make(t.Name)
}

// TopicRef is a post's topic reference: an embedded topic or a bare ID.
type TopicRef struct {
	ID   ID     `json:"_id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON decodes either an embedded topic object or a bare ID.
func (r *TopicRef) UnmarshalJSON(b []byte) error {
	if isEmbeddedObject(b) {
		type plain TopicRef
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*r = TopicRef(p)
		return nil
	}
	var id ID
	if err := id.UnmarshalJSON(b); err != nil {
		return err
	}
	*r = TopicRef{ID: id}
	return nil
}

// Slug returns the URL-safe tag for the referenced topic, if named.
func (r TopicRef) Slug() string {
	if r.Name == "" {
		return ""
	}
	return slug.Make(r.Name)
}
