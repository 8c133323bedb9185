// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

// Tag identifies a recognized annotation.
type Tag int

const (
	TagOpaque   Tag = iota // Anything not in the tag table, re-emitted unchanged
	TagParam               // @param name type [desc]
	TagReturn              // @return type [name] [desc]
	TagNoDoc               // @nodoc
	TagClassMod            // @classmod [text]
	TagField               // @field [scope] name type [desc]
	TagUsage               // @usage [text]
	TagClass               // @class Name[: Parent]
	TagSee                 // @see ref [desc]
)

func (t Tag) String() string {
	switch t {
	case TagOpaque:
		return "opaque"
	case TagParam:
		return "param"
	case TagReturn:
		return "return"
	case TagNoDoc:
		return "nodoc"
	case TagClassMod:
		return "classmod"
	case TagField:
		return "field"
	case TagUsage:
		return "usage"
	case TagClass:
		return "class"
	case TagSee:
		return "see"
	default:
		return "unknown"
	}
}

// Annotation is one parsed annotation line. Which fields are set depends
// on Tag; Raw always holds the original comment so that the line can be
// re-emitted unchanged.
type Annotation struct {
	Tag         Tag
	TagName     string // Tag as spelled in the source, without the @
	Name        string // Param, Field, Class name; Return name when detected; See reference
	Type        string // Param, Return, Field type expression
	Description string
	Optional    bool   // Param declared as name?
	Text        string // Remaining text for ClassMod, Usage, NoDoc and Opaque
	Raw         string
	Line        int
}
