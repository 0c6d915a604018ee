// Package marker finds template markers such as "@@marker:filename" in one
// line of template text.
package marker

import "strings"

// Prefix introduces every marker token.
const Prefix = "@@marker:"

// Kind is the part of a marker token following Prefix.
type Kind string

// The closed set of marker kinds understood by the renderers.
const (
	Filename  Kind = "filename"
	Date      Kind = "date"
	Author    Kind = "author"
	Include   Kind = "include"
	Constants Kind = "constants"
	Ifndef    Kind = "ifndef"
	Define    Kind = "define"
	Functions Kind = "functions"
)

// Kinds lists the known marker kinds.
var Kinds = []Kind{Filename, Date, Author, Include, Constants, Ifndef, Define, Functions}

// Token is one marker found in a line.
type Token struct {
	Kind Kind
}

// Text is the literal text of the marker as it appears in the template.
func (t Token) Text() string { return Prefix + string(t.Kind) }

// Known reports whether k belongs to the closed set.
func (k Kind) Known() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Scan returns the markers of line in left-to-right order, or nil when the
// line has none. A marker is any whitespace-delimited word containing Prefix;
// its kind is the rest of the word after Prefix.
func Scan(line string) []Token {
	if !strings.Contains(line, Prefix) {
		return nil
	}
	var tokens []Token
	for _, word := range strings.Fields(line) {
		i := strings.Index(word, Prefix)
		if i < 0 {
			continue
		}
		tokens = append(tokens, Token{Kind: Kind(word[i+len(Prefix):])})
	}
	return tokens
}
