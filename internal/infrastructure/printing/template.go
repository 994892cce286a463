package printing

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	appcontract "github.com/rentals/backend/internal/application/contract"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// humanize turns an enum such as PENDING_VALIDATION into "Pending Validation"
func humanize(s string) string {
	return titleCaser.String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

// formatMoney renders 1234.5 as "1,234.50"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + fracPart
}

func formatTimestamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}

// leaseView is the flattened data both renderers print
type leaseView struct {
	Title       string
	Reference   string
	Status      string
	Property    string
	Address     string
	Period      string
	MonthlyRent string
	Charges     string
	Deposit     string
	Terms       string
	Clauses     []string
	Content     template.HTML
	Signatures  []signatureLine
	GeneratedAt string
}

type signatureLine struct {
	Party    string
	SignedAt string
}

func newLeaseView(data appcontract.ContractPrintData) leaseView {
	c := data.Contract
	view := leaseView{
		Title:       "Residential Lease Agreement",
		Reference:   c.ID.String(),
		Status:      humanize(c.Status),
		Property:    data.PropertyTitle,
		Address:     data.Address,
		Period:      c.StartDate + " to " + c.EndDate,
		MonthlyRent: formatMoney(c.MonthlyRent),
		Charges:     formatMoney(c.Charges),
		Deposit:     formatMoney(c.Deposit),
		Clauses:     c.CustomClauses,
		GeneratedAt: data.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"),
		Signatures: []signatureLine{
			{Party: "Owner", SignedAt: formatTimestamp(c.OwnerSignedAt)},
			{Party: "Tenant", SignedAt: formatTimestamp(c.TenantSignedAt)},
		},
	}
	if c.Terms != nil {
		view.Terms = *c.Terms
	}
	if c.Content != nil {
		// owner-authored markup; scripts are disabled in the browser that prints it
		view.Content = template.HTML(*c.Content)
	}
	return view
}

var leaseTemplate = template.Must(template.New("lease").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; color: #222; }
h1 { font-size: 18pt; margin-bottom: 4px; }
.ref { color: #666; font-size: 9pt; }
table { border-collapse: collapse; width: 100%; margin: 12px 0; }
td { padding: 4px 8px; border-bottom: 1px solid #ddd; }
td.label { width: 35%; font-weight: bold; }
.signature { margin-top: 24px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="ref">Contract {{.Reference}} &middot; {{.Status}}</div>
<table>
<tr><td class="label">Property</td><td>{{.Property}}</td></tr>
<tr><td class="label">Address</td><td>{{.Address}}</td></tr>
<tr><td class="label">Lease period</td><td>{{.Period}}</td></tr>
<tr><td class="label">Monthly rent</td><td>{{.MonthlyRent}}</td></tr>
<tr><td class="label">Charges</td><td>{{.Charges}}</td></tr>
<tr><td class="label">Deposit</td><td>{{.Deposit}}</td></tr>
</table>
{{if .Terms}}<h2>Terms</h2><p>{{.Terms}}</p>{{end}}
{{if .Clauses}}<h2>Additional clauses</h2><ol>{{range .Clauses}}<li>{{.}}</li>{{end}}</ol>{{end}}
{{if .Content}}<section class="content">{{.Content}}</section>{{end}}
<h2>Signatures</h2>
{{range .Signatures}}<div class="signature">{{.Party}}: {{if .SignedAt}}signed {{.SignedAt}}{{else}}not signed{{end}}</div>
{{end}}
<p class="ref">Generated {{.GeneratedAt}}</p>
</body>
</html>
`))

// RenderHTML lays the contract out as a complete HTML document
func RenderHTML(data appcontract.ContractPrintData) (string, error) {
	var buf bytes.Buffer
	if err := leaseTemplate.Execute(&buf, newLeaseView(data)); err != nil {
		return "", NewRenderError(ErrCodeTemplateFailed, "lease template execution failed", err)
	}
	return buf.String(), nil
}
