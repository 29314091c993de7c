package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

var mailTemplates = map[MailType]*template.Template{
	SubmissionApproved: template.Must(template.New("approved").Parse(`
<h2>Congratulations{{with .OwnerName}}, {{.}}{{end}}!</h2>
<p>Your business <strong>{{.BusinessName}}</strong> was approved on Negosyo Digital.</p>
<p>{{with .CreatorName}}{{.}} will be in touch about your new website.{{else}}We will be in touch about your new website.{{end}}</p>
<p style="color:#888">&copy; {{.Year}} Negosyo Digital</p>`)),

	SitePublished: template.Must(template.New("published").Parse(`
<h2>{{.BusinessName}} is now online!</h2>
<p>{{with .OwnerName}}{{.}}, your{{else}}Your{{end}} website is live at
<a href="{{.SiteURL}}">{{.SiteURL}}</a>.</p>
<p style="color:#888">&copy; {{.Year}} Negosyo Digital</p>`)),

	PayoutCredited: template.Must(template.New("payout").Parse(`
<h2>Payout credited</h2>
<p>Hi {{.CreatorFirstName}}, your payout of <strong>{{.Amount}}</strong> for
<strong>{{.BusinessName}}</strong> was credited. New balance: {{.NewBalance}}.</p>
<p style="color:#888">&copy; {{.Year}} Negosyo Digital</p>`)),
}

// Render produces the HTML body for a mail payload.
func Render(data MailData) (string, error) {
	t, ok := mailTemplates[data.GetMailType()]
	if !ok {
		return "", fmt.Errorf("no template for mail type %s", data.GetMailType())
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error rendering mail body, %v", err)
	}
	return buf.String(), nil
}
