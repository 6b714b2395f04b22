package alchemy

import (
	"encoding/json"
	"fmt"
)

// EssenceType identifies the kind of content fragment a page element holds.
// The set is closed: anything else in the source schema is a migration bug.
type EssenceType int

const (
	EssenceUnknown EssenceType = iota
	EssenceText
	EssenceRichText
	EssencePicture
)

const (
	labelText     = "Alchemy::EssenceText"
	labelRichText = "Alchemy::EssenceRichtext"
	labelPicture  = "Alchemy::EssencePicture"
)

// ParseEssenceType maps the polymorphic type label stored in alchemy_contents
// to its enum value. Unrecognized labels map to EssenceUnknown; callers treat
// that as fatal.
func ParseEssenceType(label string) EssenceType {
	switch label {
	case labelText:
		return EssenceText
	case labelRichText:
		return EssenceRichText
	case labelPicture:
		return EssencePicture
	default:
		return EssenceUnknown
	}
}

func (t EssenceType) String() string {
	switch t {
	case EssenceText:
		return labelText
	case EssenceRichText:
		return labelRichText
	case EssencePicture:
		return labelPicture
	default:
		return "unknown"
	}
}

// EssenceRef points at one typed content fragment in authored order.
type EssenceRef struct {
	Type EssenceType
	ID   int64
}

// EssenceData is the resolved value of an EssenceRef. For pictures the value
// is the image file uid, not rendered content.
type EssenceData struct {
	Type  EssenceType
	Value string
}

type essenceRefJSON struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// decodeEssenceRefs parses the JSON essence array built by the credit pages
// query, preserving authored order.
func decodeEssenceRefs(data []byte) ([]EssenceRef, error) {
	var raw []essenceRefJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode essence list: %w", err)
	}
	refs := make([]EssenceRef, 0, len(raw))
	for _, r := range raw {
		refs = append(refs, EssenceRef{Type: ParseEssenceType(r.Type), ID: r.ID})
	}
	return refs, nil
}
