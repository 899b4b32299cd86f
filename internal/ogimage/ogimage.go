// Package ogimage deterministically renders 1200x630 social-preview images
// as SVG documents. No rasterization engine is involved; the output is plain
// vector markup with a word-wrapped title, optional background image,
// optional category badge, author line, and brand mark.
package ogimage

import (
	"fmt"
	"strings"

	"pressroom/internal/models"
)

// Canvas and layout constants. The title block grows downward from a
// computed top edge so the gradient overlay and author line shift with the
// number of rendered lines.
const (
	CanvasWidth  = 1200
	CanvasHeight = 630

	maxTitleLen   = 80
	maxLineLen    = 35
	maxTitleLines = 3
	lineHeight    = 55

	marginX = 60

	badgeHeight    = 36
	badgeCharWidth = 12
	badgePadding   = 40
)

// escaper covers the five reserved markup characters. Every interpolated
// string passes through it so titles like `<script>&"'` cannot break the
// document.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// truncateTitle caps the title at maxTitleLen characters, appending an
// ellipsis when content was cut.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLen {
		return title
	}
	return string(runes[:maxTitleLen]) + "..."
}

// wrapTitle greedily wraps the title into lines of at most maxLineLen
// characters, capped at maxTitleLines. When content was cut by the line cap,
// the last line's final three characters are replaced with an ellipsis.
func wrapTitle(title string) []string {
	words := strings.Fields(title)
	var lines []string
	var current string

	for _, word := range words {
		tentative := word
		if current != "" {
			tentative = current + " " + word
		}
		if len([]rune(tentative)) <= maxLineLen {
			current = tentative
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}

	if len(lines) > maxTitleLines {
		lines = lines[:maxTitleLines]
		last := []rune(lines[maxTitleLines-1])
		if len(last) > 3 {
			last = last[:len(last)-3]
		}
		lines[maxTitleLines-1] = string(last) + "..."
	}

	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// badgeWidth sizes the category pill from its text length. Cosmetic only,
// but keeps typical category names (up to ~20 chars) inside the pill.
func badgeWidth(category string) int {
	return len([]rune(category))*badgeCharWidth + badgePadding
}

// Render produces the SVG document for the given display parameters.
func Render(p models.OGImageParams) ([]byte, error) {
	lines := wrapTitle(truncateTitle(p.Title))

	contentHeight := 200 + len(lines)*lineHeight
	contentTop := CanvasHeight - contentHeight
	gradientY := CanvasHeight - contentHeight - 100
	if gradientY < 0 {
		gradientY = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`,
		CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)
	b.WriteString(`<defs>`)
	b.WriteString(`<pattern id="dots" width="30" height="30" patternUnits="userSpaceOnUse">` +
		`<circle cx="2" cy="2" r="1.5" fill="#ffffff" opacity="0.05"/></pattern>`)
	b.WriteString(`<linearGradient id="overlay" x1="0" y1="0" x2="0" y2="1">` +
		`<stop offset="0%" stop-color="#0f172a" stop-opacity="0"/>` +
		`<stop offset="100%" stop-color="#0f172a" stop-opacity="0.92"/></linearGradient>`)
	b.WriteString(`</defs>`)

	// Dark base with a subtle dot texture, visible when no image is given.
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#0f172a"/>`, CanvasWidth, CanvasHeight)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="url(#dots)"/>`, CanvasWidth, CanvasHeight)

	if p.ImageURL != "" {
		fmt.Fprintf(&b, `<image href="%s" x="0" y="0" width="%d" height="%d" preserveAspectRatio="xMidYMid slice"/>`,
			escaper.Replace(p.ImageURL), CanvasWidth, CanvasHeight)
	}

	// Legibility overlay under the text block.
	fmt.Fprintf(&b, `<rect x="0" y="%d" width="%d" height="%d" fill="url(#overlay)"/>`,
		gradientY, CanvasWidth, CanvasHeight-gradientY)

	if p.Category != "" {
		w := badgeWidth(p.Category)
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="#3b82f6"/>`,
			marginX, contentTop, w, badgeHeight, badgeHeight/2)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="18" font-weight="600" fill="#ffffff">%s</text>`,
			marginX+w/2, contentTop+24, escaper.Replace(p.Category))
	}

	for i, line := range lines {
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="sans-serif" font-size="44" font-weight="700" fill="#ffffff">%s</text>`,
			marginX, contentTop+80+i*lineHeight, escaper.Replace(line))
	}

	fmt.Fprintf(&b, `<text x="%d" y="%d" font-family="sans-serif" font-size="24" fill="#cbd5e1">By %s</text>`,
		marginX, CanvasHeight-50, escaper.Replace(p.Author))

	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="end" font-family="sans-serif" font-size="22" font-weight="700" fill="#60a5fa">Pressroom</text>`,
		CanvasWidth-marginX, CanvasHeight-50)

	b.WriteString(`</svg>`)

	return []byte(b.String()), nil
}
