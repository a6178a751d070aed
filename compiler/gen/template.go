package gen

import (
	"text/template"
	"unicode"
	"unicode/utf8"
)

// classTemplate renders one class. Blank lines and indentation are part of
// the output contract, so keep the trim markers in place.
const classTemplate = `{{ with .Header }}{{ . }}
{{ end }}import java.util.*;

public {{ if .Abstract }}abstract {{ end }}class {{ .Name }}{{ with .Parent }} extends {{ . }}{{ end }} {
{{- range .Fields }}
    private {{ .Type }} {{ .Name }};
{{- end }}
{{- range .Attributes }}
    private {{ typeName . }} {{ .Name }};
{{- end }}

    public {{ .Name }}() {}
{{ range .Attributes }}
    public {{ typeName . }} {{ .Getter }}() {
        return this.{{ .Name }};
    }
{{ end }}
}
`

// Funcs are the template functions available to class templates.
var Funcs = template.FuncMap{
	"typeName":   typeName,
	"capitalize": capitalize,
}

// classView is the data passed to the class template.
type classView struct {
	Header     string
	Name       string
	Parent     string
	Abstract   bool
	Fields     []*Field
	Attributes []*Attribute
}

func parseTemplate(text string) (*template.Template, error) {
	return template.New("class").Funcs(Funcs).Parse(text)
}

// typeName renders the declared type of an attribute.
func typeName(a *Attribute) string {
	if a.Many {
		return "List<" + a.Target + ">"
	}
	return a.Target
}

// capitalize upper-cases the first character of s.
func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
