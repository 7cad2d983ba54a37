package review

import (
	"errors"
	"strings"
)

const (
	MaxCommentLength = 1000
	MaxTags          = 10
	MaxTagLength     = 50
	MaxPhotos        = 6
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong = errors.New("comment exceeds maximum length")
	ErrTooManyTags    = errors.New("too many tags")
	ErrInvalidTag     = errors.New("tag cannot be empty or exceed maximum length")
	ErrTooManyPhotos  = errors.New("too many photos")
	ErrEmptyPhotoRef  = errors.New("photo reference cannot be empty")
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

// Comment is optional free text; the star rating alone is a valid review.
type Comment struct {
	text string
}

func NewComment(s string) (Comment, error) {
	t := strings.TrimSpace(s)
	if len(t) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{text: t}, nil
}

func (c Comment) String() string { return c.text }
func (c Comment) IsEmpty() bool  { return c.text == "" }

// Tags is a de-duplicated set of short labels ("Professional", "On Time", ...)
// preserving first-seen order.
type Tags struct {
	values []string
}

func NewTags(raw []string) (Tags, error) {
	seen := make(map[string]struct{}, len(raw))
	values := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" || len(t) > MaxTagLength {
			return Tags{}, ErrInvalidTag
		}
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, t)
	}
	if len(values) > MaxTags {
		return Tags{}, ErrTooManyTags
	}
	return Tags{values: values}, nil
}

func (t Tags) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)
	return out
}

func (t Tags) Contains(tag string) bool {
	for _, v := range t.values {
		if strings.EqualFold(v, tag) {
			return true
		}
	}
	return false
}

// Photos is an ordered sequence of opaque storage references; upload mechanics
// live outside the engine.
type Photos struct {
	refs []string
}

func NewPhotos(raw []string) (Photos, error) {
	if len(raw) > MaxPhotos {
		return Photos{}, ErrTooManyPhotos
	}
	refs := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			return Photos{}, ErrEmptyPhotoRef
		}
		refs = append(refs, r)
	}
	return Photos{refs: refs}, nil
}

func (p Photos) Refs() []string {
	out := make([]string, len(p.refs))
	copy(out, p.refs)
	return out
}
