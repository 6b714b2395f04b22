// Package richtext converts Alchemy rich text markup into markdown for the
// Contentful credits field.
package richtext

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// Converter turns HTML fragments into markdown. Cite elements are kept as-is
// because the remote rendering relies on them for attribution styling.
type Converter struct {
	conv *md.Converter
}

// NewConverter builds a converter with the credit-field conventions applied.
func NewConverter() *Converter {
	conv := md.NewConverter("", true, nil)
	conv.Keep("cite")
	return &Converter{conv: conv}
}

// Convert renders an HTML fragment as markdown.
func (c *Converter) Convert(html string) (string, error) {
	out, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert rich text: %w", err)
	}
	return out, nil
}

// ImageEmbed renders a markdown image reference for a protocol-relative asset
// URL as served by the Contentful CDN.
func (c *Converter) ImageEmbed(assetURL string) (string, error) {
	return c.Convert(fmt.Sprintf(`<img src="https:%s"/>`, assetURL))
}
