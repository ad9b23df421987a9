package archetype

import (
	"html/template"
	"strings"
)

var funcs = template.FuncMap{
	"trusted":  trusted,
	"imageSrc": imageSrc,
	"seq":      seq,
	"letter":   letter,
	"inc":      func(i int) int { return i + 1 },
}

// trusted marks authored HTML fields for verbatim output.
func trusted(s string) template.HTML {
	return template.HTML(s) // #nosec G203 -- *Html fields are trusted authored markup
}

// imageSrc lets inline data images through the URL filter; everything else
// goes through the normal html/template URL sanitizer.
func imageSrc(s string) any {
	if strings.HasPrefix(strings.ToLower(s), "data:image/") {
		return template.URL(s) // #nosec G203 -- restricted to image data URIs
	}
	return s
}

func seq(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// letter labels the i-th (zero-based) option: A, B, ... Z, AA, AB ...
func letter(i int) string {
	if i < 0 {
		return ""
	}
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}
