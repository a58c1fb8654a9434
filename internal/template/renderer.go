package template

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/ghaggin/portal/internal/profile"
)

const (
	templateDir string = "tmpl"
)

var (
	//go:embed tmpl/*.html
	templates embed.FS

	//go:embed static
	static embed.FS
)

type Data struct {
	PageTitle     string
	Authenticated bool
	Username      string
	Email         string
	Profile       *profile.Profile
}

func Render(w http.ResponseWriter, r *http.Request, tmpl string, td any) error {
	t, err := template.ParseFS(
		templates,
		templateDir+"/"+tmpl,
		templateDir+"/"+"base.html",
		templateDir+"/"+"profile.html",
	)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}

	err = t.Execute(buf, td)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}

// Static serves the embedded assets, mount it with the prefix stripped.
func Static() http.Handler {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
