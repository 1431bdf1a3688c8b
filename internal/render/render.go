package render

import "strings"

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// Answer renders an encyclopedia answer under a bold heading. The answer is
// plain text, so markdown control characters in it are escaped first.
func Answer(title, text string, opts Options) (string, error) {
	var b strings.Builder
	if title != "" {
		b.WriteString("**")
		b.WriteString(EscapeMarkdown(title))
		b.WriteString("**\n\n")
	}
	b.WriteString(EscapeMarkdown(text))
	return Markdown(b.String(), opts)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"|", `\|`,
)

// EscapeMarkdown escapes characters glamour would treat as markup
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
