// Package tmpl compiles text templates into Go rendering methods.
//
// A template is plain text with two additions. Lines whose first non-blank
// characters are %% hold a Go statement, and {{ expr }} anywhere in a text
// line appends the value of a Go expression. A line starting with $$ appends
// the value of the expression filling the rest of the line.
//
//	<ul>
//	%% for _, item := range self.Items {
//	  <li>{{ item.Name }}: {{ item.Price }}</li>
//	%% }
//	</ul>
//
// # Pipeline
//
// Compilation is a single forward pass:
//
//  1. [Tokenize] classifies each physical line as text, directive or blank
//     and extracts the expression spans of text lines.
//  2. [Match] groups lines into a tree of control blocks using the braces
//     that end or begin each directive. Indentation is not significant.
//  3. [Flatten] walks the tree in pre-order and emits a [Plan] of literal,
//     expression and control instructions.
//  4. [Generate] serializes plans into Go source, one AppendTemplate method
//     per context type.
//
// Expressions and statements are never parsed here. The Go compiler checks
// them when the generated file is built, and //line directives in that file
// point its diagnostics at the template.
//
// # Chained arms
//
// "} else {" on one line continues the construct it closes. Because Go does
// not allow a newline between "}" and "else", the pair may also be split
// across two adjacent directive lines:
//
//	%% if self.OK {
//	yes
//	%% }
//	%% else {
//	no
//	%% }
//
// Any text or blank line between the two makes the else ambiguous, and it is
// rejected with [ErrAmbiguousArm].
//
// # Escaping
//
// The template's content type is resolved once from its file suffix
// ([ResolveContentType]). An [Escaper] maps it to a [Policy]; for HTML and
// XML every interpolated value is escaped, for everything else values are
// appended as is.
package tmpl
