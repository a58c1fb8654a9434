package web

import (
	"context"
	"net/http"

	"github.com/ghaggin/portal/internal/middleware"
	"github.com/ghaggin/portal/internal/model"
	"github.com/ghaggin/portal/internal/profile"
	"github.com/ghaggin/portal/internal/template"
	"go.uber.org/zap"
)

// API is the part of apiclient.Client the pages use.
type API interface {
	profile.UserGetter
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Signup(ctx context.Context, s model.Signup) (string, error)
}

type pages struct {
	log      *zap.Logger
	sessions *middleware.SessionManager
	api      API
}

func (p *pages) render(w http.ResponseWriter, r *http.Request, tmpl string, td *template.Data) {
	td.Authenticated = p.sessions.Authenticated(r.Context())

	if err := template.Render(w, r, tmpl, td); err != nil {
		p.log.Error("error rendering template", zap.String("template", tmpl), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (p *pages) welcome(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "welcome.html", &template.Data{
		PageTitle: "welcome",
	})
}

func (p *pages) loginForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "login.html", &template.Data{
		PageTitle: "login",
	})
}

// login stores the token and redirects to /main. A failure is logged and
// the form comes back without a message.
func (p *pages) login(w http.ResponseWriter, r *http.Request) {
	creds := model.Credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	token, err := p.api.Login(r.Context(), creds)
	if err != nil {
		p.log.Error("error logging in", zap.String("username", creds.Username), zap.Error(err))
		p.render(w, r, "login.html", &template.Data{
			PageTitle: "login",
			Username:  creds.Username,
		})
		return
	}

	p.authenticate(w, r, token, creds.Username)
}

func (p *pages) signupForm(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "signup.html", &template.Data{
		PageTitle: "signup",
	})
}

func (p *pages) signup(w http.ResponseWriter, r *http.Request) {
	s := model.Signup{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Email:    r.FormValue("email"),
	}

	token, err := p.api.Signup(r.Context(), s)
	if err != nil {
		p.log.Error("error signing up", zap.String("username", s.Username), zap.Error(err))
		p.render(w, r, "signup.html", &template.Data{
			PageTitle: "signup",
			Username:  s.Username,
			Email:     s.Email,
		})
		return
	}

	p.authenticate(w, r, token, s.Username)
}

func (p *pages) authenticate(w http.ResponseWriter, r *http.Request, token, username string) {
	if err := p.sessions.SetAuthenticated(r.Context(), token, username); err != nil {
		p.log.Error("error storing session", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/main", http.StatusSeeOther)
}

// main shows the profile of the session's user, or a bare page when
// nobody is signed in.
func (p *pages) main(w http.ResponseWriter, r *http.Request) {
	td := &template.Data{PageTitle: "main"}

	if s, err := p.sessions.Get(r.Context()); err == nil {
		view := profile.New(p.api, p.log)
		select {
		case <-view.SetUsername(r.Context(), s.Username):
		case <-r.Context().Done():
		}

		snapshot := view.Snapshot()
		td.Profile = &snapshot
	}

	p.render(w, r, "main.html", td)
}
