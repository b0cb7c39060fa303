package pixely_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/pixely"
)

var _ = Describe("Markup", func() {
	It("links the style sheet and scopes one element", func() {
		cfg := mustConfig("geralt.gif", pixely.WithClassName("pixely-42"))
		Expect(pixely.Markup(cfg)).To(Equal(
			`<html><head><meta name="viewport" content="width=device-width, initial-scale=1">` +
				`<link rel="stylesheet" type="text/css" href="pixely.css"></head>` +
				`<body><div class="pixely-42"></div></body></html>`))
	})

	It("escapes class names it did not validate", func() {
		markup := pixely.Markup(pixely.Config{ClassName: `a"b`})
		Expect(markup).To(ContainSubstring(`class="a&#34;b"`))
	})
})
