package render

import (
	"html/template"

	"github.com/teresa-solution/site-builder-service/internal/model"
)

var funcs = template.FuncMap{
	"text": func(d model.ComponentData, key, def string) string {
		return d.String(key, def)
	},
	"or": orDefault,
}

var componentTemplates = template.Must(template.New("components").Funcs(funcs).Parse(`
{{define "navbar/links"}}{{range .Data.Links}}<a href="{{.Href}}" class="nav-link">{{.Name}}</a>{{end}}{{end}}

{{define "navbar/default"}}<nav id="{{.ID}}" class="navbar navbar-default" style="background-color: {{or .Theme.PrimaryColor "#3b82f6"}}">
  <div class="container navbar-row">
    <a href="/" class="navbar-brand">{{text .Data "title" "Logo"}}</a>
    <div class="navbar-links">{{template "navbar/links" .}}</div>
  </div>
</nav>{{end}}

{{define "navbar/centered"}}<nav id="{{.ID}}" class="navbar navbar-centered" style="background-color: {{or .Theme.PrimaryColor "#3b82f6"}}">
  <div class="container navbar-stack">
    <a href="/" class="navbar-brand">{{text .Data "title" "Logo"}}</a>
    <div class="navbar-links">{{template "navbar/links" .}}</div>
  </div>
</nav>{{end}}

{{define "navbar/sidebar"}}<nav id="{{.ID}}" class="navbar navbar-sidebar" style="background-color: {{or .Theme.PrimaryColor "#3b82f6"}}">
  <div class="container navbar-row">
    <a href="/" class="navbar-brand">{{text .Data "title" "Logo"}}</a>
    <details class="navbar-menu">
      <summary aria-label="Open menu">&#9776;</summary>
      <div class="navbar-drawer">{{template "navbar/links" .}}</div>
    </details>
  </div>
</nav>{{end}}

{{define "hero/button"}}{{if .Data.Has "buttonText"}}<a href="{{text .Data "buttonLink" "#"}}" class="button" style="background-color: {{or .Theme.PrimaryColor "#3b82f6"}}">{{text .Data "buttonText" ""}}</a>{{end}}{{end}}

{{define "hero/default"}}<section id="{{.ID}}" class="hero hero-default">
  <div class="container hero-columns">
    <div class="hero-text">
      <h1>{{text .Data "title" "Welcome to Our Site"}}</h1>
      {{if .Data.Has "subtitle"}}<p class="hero-subtitle">{{text .Data "subtitle" ""}}</p>{{end}}
      {{if .Data.Has "description"}}<p class="hero-description">{{text .Data "description" ""}}</p>{{end}}
      {{template "hero/button" .}}
    </div>
    <div class="hero-media">
      <img src="{{text .Data "image" "/placeholder.svg?height=400&width=500"}}" alt="{{text .Data "title" "Hero"}}">
    </div>
  </div>
</section>{{end}}

{{define "hero/centered"}}<section id="{{.ID}}" class="hero hero-centered">
  <div class="container hero-stack">
    <h1>{{text .Data "title" "Welcome to Our Site"}}</h1>
    {{if .Data.Has "subtitle"}}<p class="hero-subtitle">{{text .Data "subtitle" ""}}</p>{{end}}
    {{if .Data.Has "description"}}<p class="hero-description">{{text .Data "description" ""}}</p>{{end}}
    {{template "hero/button" .}}
    {{if .Data.Has "image"}}<img src="{{text .Data "image" ""}}" alt="{{text .Data "title" "Hero"}}">{{end}}
  </div>
</section>{{end}}

{{define "hero/fullscreen"}}<section id="{{.ID}}" class="hero hero-fullscreen">
  {{if .Data.Has "image"}}<img class="hero-backdrop" src="{{text .Data "image" ""}}" alt="">{{end}}
  <div class="hero-overlay" style="background-color: {{or .Theme.SecondaryColor "#1e40af"}}"></div>
  <div class="container hero-stack">
    <h1>{{text .Data "title" "Welcome to Our Site"}}</h1>
    {{if .Data.Has "subtitle"}}<p class="hero-subtitle">{{text .Data "subtitle" ""}}</p>{{end}}
    {{if .Data.Has "description"}}<p class="hero-description">{{text .Data "description" ""}}</p>{{end}}
    {{template "hero/button" .}}
  </div>
</section>{{end}}

{{define "features/default"}}<section id="{{.ID}}" class="features">
  <div class="container">
    <h2>{{text .Data "title" "Our Features"}}</h2>
    {{if .Data.Has "subtitle"}}<p class="section-subtitle">{{text .Data "subtitle" ""}}</p>{{end}}
    <div class="feature-grid">
      {{range .Data.Items}}<div class="feature-card">
        {{if .Icon}}<div class="feature-icon">{{.Icon}}</div>{{end}}
        <h3>{{.Title}}</h3>
        <p>{{.Description}}</p>
      </div>{{end}}
    </div>
  </div>
</section>{{end}}

{{define "contact/default"}}<section id="{{.ID}}" class="contact">
  <div class="container">
    <h2>{{text .Data "title" "Contact Us"}}</h2>
    {{if .Data.Has "subtitle"}}<p class="section-subtitle">{{text .Data "subtitle" ""}}</p>{{end}}
    <div class="contact-columns">
      <form class="contact-form" onsubmit="return false">
        <h3>{{text .Data "formTitle" "Send us a message"}}</h3>
        <input type="text" name="name" placeholder="Your Name">
        <input type="email" name="email" placeholder="Your Email">
        <textarea name="message" rows="4" placeholder="Your Message"></textarea>
        <button type="submit" style="background-color: {{or .Theme.PrimaryColor "#3b82f6"}}">{{text .Data "buttonText" "Send Message"}}</button>
      </form>
      <div class="contact-info">
        <h3>{{text .Data "infoTitle" "Contact Information"}}</h3>
        {{if .Data.Has "email"}}<p><strong>Email:</strong> {{text .Data "email" ""}}</p>{{end}}
        {{if .Data.Has "phone"}}<p><strong>Phone:</strong> {{text .Data "phone" ""}}</p>{{end}}
        {{if .Data.Has "address"}}<p><strong>Address:</strong> {{text .Data "address" ""}}</p>{{end}}
      </div>
    </div>
  </div>
</section>{{end}}

{{define "footer/default"}}<footer id="{{.ID}}" class="footer" style="background-color: {{or .Theme.SecondaryColor "#1e40af"}}">
  <div class="container footer-columns">
    <div>
      <h3>{{text .Data "title" "Company"}}</h3>
      {{if .Data.Has "description"}}<p>{{text .Data "description" ""}}</p>{{end}}
    </div>
    {{with .Data.Links}}<ul class="footer-links">{{range .}}<li><a href="{{.Href}}">{{.Name}}</a></li>{{end}}</ul>{{end}}
  </div>
  <p class="footer-copy">&copy; {{text .Data "title" "Company"}}. All rights reserved.</p>
</footer>{{end}}

{{define "about/default"}}<section id="{{.ID}}" class="about">
  <div class="container">
    <h2>{{text .Data "title" "About Us"}}</h2>
    {{if .Data.Has "content"}}<p>{{text .Data "content" ""}}</p>{{end}}
    {{if .Data.Has "description"}}<p>{{text .Data "description" ""}}</p>{{end}}
  </div>
</section>{{end}}
`))
