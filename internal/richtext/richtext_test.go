package richtext

import (
	"strings"
	"testing"
)

func TestConvertBasicMarkup(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert("<p>Curated by <strong>Jane Doe</strong></p>")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out, "**Jane Doe**") {
		t.Errorf("strong text not converted: %q", out)
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("paragraph tag leaked into markdown: %q", out)
	}
}

func TestConvertKeepsCite(t *testing.T) {
	c := NewConverter()
	out, err := c.Convert("<p>From <cite>The Collection</cite></p>")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if !strings.Contains(out, "<cite>The Collection</cite>") {
		t.Errorf("cite element was not kept verbatim: %q", out)
	}
}

func TestImageEmbed(t *testing.T) {
	c := NewConverter()
	out, err := c.ImageEmbed("//images.ctfassets.net/space/sunset.jpg")
	if err != nil {
		t.Fatalf("ImageEmbed failed: %v", err)
	}
	if !strings.Contains(out, "https://images.ctfassets.net/space/sunset.jpg") {
		t.Errorf("embed missing absolute asset URL: %q", out)
	}
	if !strings.Contains(out, "![") {
		t.Errorf("embed is not a markdown image: %q", out)
	}
}
