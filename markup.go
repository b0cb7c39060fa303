package pixely

import "html"

// StyleSheetName is the file name the markup links to.
const StyleSheetName = "pixely.css"

// MarkupName is the conventional file name of the markup.
const MarkupName = "pixely.html"

// Markup returns a minimal document linking StyleSheetName, with one empty
// element carrying the class name of cfg.
func Markup(cfg Config) string {
	return `<html><head><meta name="viewport" content="width=device-width, initial-scale=1">` +
		`<link rel="stylesheet" type="text/css" href="` + StyleSheetName + `"></head>` +
		`<body><div class="` + html.EscapeString(cfg.ClassName) + `"></div></body></html>`
}
