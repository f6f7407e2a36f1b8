package docket

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irishmetals/skipdispatch/internal/domain/model"
)

func ptr[T any](v T) *T { return &v }

func sampleData() Data {
	drop := model.SkipSize12
	return Data{
		Job: &model.SkipJob{
			ID:       "job-1",
			DocketNo: "150125-0001-IMR",
			TruckReg: "191-D-12345",
			JobDate:  "2025-01-15",
			Status:   model.JobStatusCompleted,
		},
		Completion: &model.Completion{
			SkipJobID:     "job-1",
			SkipSize:      drop,
			Action:        model.SkipActionDrop,
			DropSize:      &drop,
			DropLat:       ptr(53.35),
			DropLng:       ptr(-6.26),
			Lat:           ptr(53.35),
			Lng:           ptr(-6.26),
			AccuracyM:     ptr(8.5),
			DriverNotes:   ptr("Placed <behind> gate"),
			CompletedTime: time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		Customer:    &model.Customer{Name: "Acme Ltd", Address: ptr("1 Main St, Navan")},
		Driver:      &model.Driver{Name: "J. Doe"},
		GeneratedAt: time.Date(2025, 1, 15, 10, 30, 5, 0, time.UTC),
		Location:    LoadLocation(DefaultTimezone),
	}
}

func TestFormatting(t *testing.T) {
	dublin := LoadLocation("Europe/Dublin")

	summer := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/07/2025, 10:00:00", FormatDateTime(summer, dublin))
	winter := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "15/01/2025, 10:30:00", FormatDateTime(winter, dublin))

	assert.Equal(t, "15/01/2025", FormatJobDate("2025-01-15"))
	assert.Equal(t, "garbage", FormatJobDate("garbage"))

	assert.Equal(t, "https://www.google.com/maps?q=53.35,-6.26", MapsLink(53.35, -6.26))
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
	assert.Equal(t, "Skip Docket Completed: 150125-0001-IMR", EmailSubject("150125-0001-IMR"))
	assert.Equal(t, "150125-0001-IMR.pdf", AttachmentName("150125-0001-IMR"))
}

func TestRenderEmailHTML(t *testing.T) {
	html, err := RenderEmailHTML(sampleData())
	require.NoError(t, err)

	for _, want := range []string{
		"<p><strong>Docket No:</strong> 150125-0001-IMR</p>",
		"<p><strong>Customer:</strong> Acme Ltd</p>",
		"<p><strong>Driver:</strong> J. Doe</p>",
		"<p><strong>Skip Size:</strong> 12y</p>",
		"<p><strong>Action:</strong> Drop</p>",
		"<p><strong>Left on Site:</strong> 12y</p>",
		"<p><strong>Completed:</strong> 15/01/2025, 10:30:00</p>",
		"Drop Location (Site)",
		"<p><strong>Address:</strong> 1 Main St, Navan</p>",
		"<p><strong>GPS:</strong> 53.350000, -6.260000</p>",
		"Job Completion Location",
		"<p><strong>GPS Accuracy:</strong> 8.5m</p>",
		`href="https://www.google.com/maps?q=53.35,-6.26"`,
		"Placed &lt;behind&gt; gate",
		"PDF docket attached. Generated by Irish Metals Dispatch System.",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "Removed Skip")
}

func TestRenderEmailHTML_MissingReferences(t *testing.T) {
	d := sampleData()
	d.Customer = nil
	d.Driver = nil
	d.Completion.DropLat, d.Completion.DropLng = nil, nil
	d.Completion.Lat, d.Completion.Lng = nil, nil
	d.Completion.DriverNotes = nil

	html, err := RenderEmailHTML(d)
	require.NoError(t, err)
	assert.Contains(t, html, "<p><strong>Customer:</strong> N/A</p>")
	assert.Contains(t, html, "<p><strong>Driver:</strong> N/A</p>")
	assert.NotContains(t, html, "Drop Location")
	assert.NotContains(t, html, "Job Completion Location")
	assert.NotContains(t, html, "Driver Notes")

	_, err = RenderEmailHTML(Data{})
	require.Error(t, err)
}

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer(RendererOptions{Compress: false})
	d := sampleData()
	d.Completion.NetWeightKg = ptr(1250.5)

	out, err := r.Render(d)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))

	reader, err := pdf.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	assert.Equal(t, 1, reader.NumPage())

	for _, want := range []string{
		"(SKIP DOCKET)",
		"(Docket No: 150125-0001-IMR)",
		"(Acme Ltd)",
		"(15/01/2025)",
		"(Net Weight:)",
		"(1250.5 kg)",
		"(Drop Location \\(Site\\):)",
		"(Accuracy: 8.5m)",
		"(Driver Signature:)",
		"(Page 1 of 1)",
	} {
		assert.True(t, bytes.Contains(out, []byte(want)), "missing %s", want)
	}
	assert.False(t, bytes.Contains(out, []byte("Pick Location")))
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer(RendererOptions{Compress: true})
	a, err := r.Render(sampleData())
	require.NoError(t, err)
	b, err := r.Render(sampleData())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderer_PickDropAndLongNotes(t *testing.T) {
	d := sampleData()
	pick := model.SkipSize20
	d.Completion.Action = model.SkipActionPickDrop
	d.Completion.PickSize = &pick
	d.Completion.PickLat = ptr(53.7)
	d.Completion.PickLng = ptr(-6.35)
	d.Completion.DriverNotes = ptr(strings.Repeat("Access via rear lane. ", 40))

	out, err := NewRenderer(RendererOptions{}).Render(d)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("(Pick Location \\(Yard\\):)")))
	assert.True(t, bytes.Contains(out, []byte("(Pick & Drop)")))

	reader, err := pdf.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	assert.Equal(t, 1, reader.NumPage())
}

func TestRenderer_RequiresJobAndCompletion(t *testing.T) {
	_, err := NewRenderer(RendererOptions{}).Render(Data{Job: &model.SkipJob{}})
	require.Error(t, err)
}
