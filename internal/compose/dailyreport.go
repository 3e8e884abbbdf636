package compose

import (
	"github.com/a3tai/mcp-field-reports/internal/forms"
	"github.com/a3tai/mcp-field-reports/internal/layout"
)

var dailyReportColumns = []layout.Column{
	{Header: "Beschreibung", Width: 100},
	{Header: "Menge/Std.", Width: 40},
	{Header: "Einheit"},
}

type dailyReport struct {
	rec forms.DailyReport
}

// NewDailyReport binds a daily-report record to the Tagesbericht template.
func NewDailyReport(r forms.DailyReport) Document {
	r.Items = append([]forms.WorkItem(nil), r.Items...)
	return dailyReport{rec: r}
}

func (dailyReport) Template() Template { return DailyReportTemplate }

func (d dailyReport) Date() string { return d.rec.Datum }

// validate accepts a report without populated items when the type of work
// is given instead.
func (d dailyReport) validate() *ValidationError {
	if forms.HasPopulated(d.rec.Items) || d.rec.ArtDerArbeit != "" {
		return nil
	}
	return &ValidationError{
		Template:  DailyReportTemplate,
		Condition: "at least one line item with a description or a type of work",
		Title:     "Fehler",
		Message:   "Bitte fügen Sie mindestens eine Arbeitsposition oder Art der Arbeit hinzu.",
	}
}

// equipment returns the populated machinery lines in their fixed order.
func (d dailyReport) equipment() []string {
	r := d.rec
	group := []struct{ label, value string }{
		{"Kipper/Montage", r.KipperMontage},
		{"Minibagger", r.Minibagger},
		{"Radlader", r.Radlader},
		{"MAN - RB 810", r.ManRb810},
		{"Neusson", r.Neusson},
		{"Container", r.Container},
		{"Atlas", r.Atlas},
		{"Sonstiges", r.Sonstiges},
	}
	var lines []string
	for _, e := range group {
		if e.value != "" {
			lines = append(lines, e.label+": "+e.value)
		}
	}
	return lines
}

func (d dailyReport) layout(m layout.Measurer, a *layout.Artifact) {
	r := d.rec

	letterhead(a, "Rohrnetz Beil GmbH")
	title(a, DailyReportTemplate)

	cur := layout.Start(fieldsY)
	inline(a, cur, marginLeft, 35, "Datum:", layout.FormatDate(r.Datum))
	inline(a, cur, 80, 103, "Wochentag:", layout.OrPlaceholder(r.Wochentag))
	inline(a, cur, 140, 165, "Auftraggeber:", layout.OrPlaceholder(r.Auftraggeber))

	cur = cur.Advance(8)
	inline(a, cur, marginLeft, 28, "Ort:", layout.OrPlaceholder(r.Ort))
	inline(a, cur, 80, 110, "Straße/Haus-Nr.:", layout.OrPlaceholder(r.StrasseHausNr))

	cur = cur.Advance(8)
	inline(a, cur, marginLeft, 56, "Monteur/Arbeitszeit:", layout.OrPlaceholder(r.MonteurArbeitszeit))
	inline(a, cur, 140, 157, "Tel.Nr.:", layout.OrPlaceholder(r.TelNr))

	if r.ArtDerArbeit != "" {
		cur = cur.Advance(10)
		stacked(a, cur, marginLeft, "Art der Arbeit:", r.ArtDerArbeit)
		cur = cur.Advance(10)
	}

	if items := forms.PopulatedItems(r.Items); len(items) > 0 {
		cur = cur.Advance(10)
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{it.Beschreibung, it.Menge, it.Einheit})
		}
		cur = table(a, cur, m, dailyReportColumns, rows)
	}

	if lines := d.equipment(); len(lines) > 0 {
		cur = cur.Advance(5)
		text(a, cur.At(marginLeft), labelStyle, "Geräte und Maschinen:")
		cur = cur.Advance(5)
		for _, line := range lines {
			text(a, cur.At(marginLeft), valueStyle, line)
			cur = cur.Advance(5)
		}
	}

	if r.BsAufgestelltAm != "" {
		cur = cur.Advance(5)
		stacked(a, cur, marginLeft, "BS aufgestellt am:", r.BsAufgestelltAm)
		cur = cur.Advance(10)
	}

	if r.MaterialBeschreibung != "" || r.MaterialMenge != "" {
		cur = cur.Advance(5)
		text(a, cur.At(marginLeft), labelStyle, "Materialverbrauch und Maschinenstunden:")
		cur = cur.Advance(5)
		text(a, cur.At(marginLeft), valueStyle, "Material: "+layout.OrPlaceholder(r.MaterialBeschreibung))
		text(a, cur.At(120), valueStyle, "Menge: "+layout.OrPlaceholder(r.MaterialMenge))
		cur = cur.Advance(10)
	}

	cur = cur.Advance(10)
	signatures(a, cur, r.SignatureKunde, r.SignatureMitarbeiter)
}
