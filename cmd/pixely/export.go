package main

import (
	"os"
	"path/filepath"

	"github.com/kevin-cantwell/pixely"
)

// export writes the markup and style sheet into dir, creating it if needed.
func export(dir string, out *pixely.Output) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, pixely.MarkupName), []byte(out.Markup), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, pixely.StyleSheetName), []byte(out.Styles), 0o644)
}
