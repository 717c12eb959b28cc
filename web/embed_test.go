package web

import (
	"io/fs"
	"testing"
)

func TestAssetsContainPages(t *testing.T) {
	assets := Assets()
	for _, name := range []string{"index.html", "auth.html", "style.css"} {
		if _, err := fs.Stat(assets, name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
