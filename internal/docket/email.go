package docket

import (
	"bytes"
	"fmt"
	"html/template"
)

// EmailSubject is the subject line of the completion email.
func EmailSubject(docketNo string) string {
	return "Skip Docket Completed: " + docketNo
}

// AttachmentName is the file name of the attached PDF.
func AttachmentName(docketNo string) string {
	return docketNo + ".pdf"
}

var emailTemplate = template.Must(template.New("docket_email").Parse(`<h2>Skip Job Completed</h2>
<p><strong>Docket No:</strong> {{.DocketNo}}</p>
<p><strong>Customer:</strong> {{.Customer}}</p>
<p><strong>Driver:</strong> {{.Driver}}</p>
<p><strong>Truck Reg:</strong> {{.TruckReg}}</p>
<p><strong>Skip Size:</strong> {{.SkipSize}}</p>
<p><strong>Action:</strong> {{.Action}}</p>
{{- if .RemovedSkip}}
<p><strong>Removed Skip:</strong> {{.RemovedSkip}}</p>
{{- end}}
{{- if .LeftOnSite}}
<p><strong>Left on Site:</strong> {{.LeftOnSite}}</p>
{{- end}}
<p><strong>Completed:</strong> {{.Completed}}</p>
{{- if .Drop}}
<h3 style="margin-top: 20px; margin-bottom: 10px;">Drop Location (Site)</h3>
{{- if .Drop.Address}}
<p><strong>Address:</strong> {{.Drop.Address}}</p>
{{- end}}
<p><strong>GPS:</strong> {{.Drop.GPS}}</p>
{{- end}}
{{- if .Finish}}
<h3 style="margin-top: 20px; margin-bottom: 10px;">Job Completion Location</h3>
<p><strong>Where driver finished:</strong> {{.Finish.GPS}}</p>
{{- if .Finish.Accuracy}}
<p><strong>GPS Accuracy:</strong> {{.Finish.Accuracy}}m</p>
{{- end}}
<p><a href="{{.Finish.MapsLink}}" style="color: #2563eb;">View on Google Maps</a></p>
{{- end}}
{{- if .DriverNotes}}
<p style="margin-top: 20px;"><strong>Driver Notes:</strong> {{.DriverNotes}}</p>
{{- end}}
<hr>
<p style="color: #666; font-size: 12px;">PDF docket attached. Generated by Irish Metals Dispatch System.</p>
`))

type emailLocation struct {
	Address  string
	GPS      string
	Accuracy string
	MapsLink template.URL
}

type emailView struct {
	DocketNo    string
	Customer    string
	Driver      string
	TruckReg    string
	SkipSize    string
	Action      string
	RemovedSkip string
	LeftOnSite  string
	Completed   string
	Drop        *emailLocation
	Finish      *emailLocation
	DriverNotes string
}

// RenderEmailHTML renders the office notification body. All values are
// HTML-escaped.
func RenderEmailHTML(d Data) (string, error) {
	if d.Job == nil || d.Completion == nil {
		return "", fmt.Errorf("docket email requires a job and a completion")
	}
	c := d.Completion

	view := emailView{
		DocketNo:    d.Job.DocketNo,
		Customer:    d.CustomerName(),
		Driver:      d.DriverName(),
		TruckReg:    d.Job.TruckReg,
		SkipSize:    orDash(c.SkipSize.Label()),
		Action:      c.Action.Label(),
		RemovedSkip: sizeLabel(c.PickSize),
		LeftOnSite:  sizeLabel(c.DropSize),
		Completed:   FormatDateTime(c.CompletedTime, d.location()),
	}
	if c.DropLat != nil && c.DropLng != nil {
		view.Drop = &emailLocation{
			Address: d.customerAddress(),
			GPS:     formatCoord(*c.DropLat) + ", " + formatCoord(*c.DropLng),
		}
	}
	if c.Lat != nil && c.Lng != nil {
		view.Finish = &emailLocation{
			GPS: formatCoord(*c.Lat) + ", " + formatCoord(*c.Lng),
			// Built from floats only, so it is safe to mark as a URL.
			MapsLink: template.URL(MapsLink(*c.Lat, *c.Lng)), //nolint:gosec
		}
		if c.AccuracyM != nil {
			view.Finish.Accuracy = formatFloat(*c.AccuracyM)
		}
	}
	if c.DriverNotes != nil {
		view.DriverNotes = *c.DriverNotes
	}

	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render docket email: %w", err)
	}
	return buf.String(), nil
}
