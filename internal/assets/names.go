package assets

// Built-in asset names.
const (
	DefaultStyleName  = "deck"
	DefaultScriptName = "deck"
	ShellTemplateName = "shell"
)

// Logical references of the shell-level assets, resolved against the asset root.
const (
	StylesheetRef = "css/deck.css"
	ScriptRef     = "js/deck.js"
)

// ThemeRef returns the logical reference of a theme stylesheet.
func ThemeRef(theme string) string {
	return "css/themes/" + theme + ".css"
}
