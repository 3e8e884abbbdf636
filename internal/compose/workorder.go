package compose

import (
	"strings"

	"github.com/a3tai/mcp-field-reports/internal/forms"
	"github.com/a3tai/mcp-field-reports/internal/layout"
)

// sonstigesWidth is the wrap width of the free-text remarks.
const sonstigesWidth = 170.0

var workOrderColumns = []layout.Column{
	{Header: "Beschreibung", Width: 40},
	{Header: "Einheit/Netto", Width: 25},
	{Header: "Std./Stück", Width: 22},
	{Header: "m³/m", Width: 20},
	{Header: "km", Width: 15},
	{Header: "Bemerkung"},
}

type workOrder struct {
	rec forms.WorkOrder
}

// NewWorkOrder binds a work-order record to the Leistungsauftrag template.
// The items slice is copied so later edits to w do not leak into the document.
func NewWorkOrder(w forms.WorkOrder) Document {
	w.Items = append([]forms.WorkOrderItem(nil), w.Items...)
	return workOrder{rec: w}
}

func (workOrder) Template() Template { return WorkOrderTemplate }

func (d workOrder) Date() string { return d.rec.Datum }

func (d workOrder) validate() *ValidationError {
	if forms.HasPopulated(d.rec.Items) {
		return nil
	}
	return &ValidationError{
		Template:  WorkOrderTemplate,
		Condition: "at least one line item with a description",
		Title:     "Fehler",
		Message:   "Bitte fügen Sie mindestens eine Leistungsposition hinzu.",
	}
}

func (d workOrder) layout(m layout.Measurer, a *layout.Artifact) {
	w := d.rec

	letterhead(a, "ROHRNETZ Beil GmbH")
	title(a, WorkOrderTemplate)

	cur := layout.Start(fieldsY)
	inline(a, cur, marginLeft, 50, "Einsatzort:", layout.OrPlaceholder(w.Einsatzort))
	inline(a, cur, 120, 140, "Datum:", layout.FormatDate(w.Datum))

	cur = cur.Advance(8)
	stacked(a, cur, marginLeft, "RG – Empfänger:", layout.OrPlaceholder(w.RgEmpfaenger))

	cur = cur.Advance(13)
	stacked(a, cur, marginLeft, "Art der Arbeit:", layout.OrPlaceholder(w.ArtDerArbeit))

	cur = cur.Advance(15)
	var rows [][]string
	for _, it := range forms.PopulatedItems(w.Items) {
		rows = append(rows, []string{it.Beschreibung, it.EinheitNetto, it.StundenStuck, it.M3M, it.Km, it.Bemerkung})
	}
	cur = table(a, cur, m, workOrderColumns, rows)

	stacked(a, cur, marginLeft, "Monteur:", layout.OrPlaceholder(w.Monteur))
	stacked(a, cur, 80, "Telefon Nr.:", layout.OrPlaceholder(w.TelefonNr))

	cur = cur.Advance(13)
	stacked(a, cur, marginLeft, "Blockschrift:", layout.OrPlaceholder(w.Blockschrift))

	cur = cur.Advance(15)
	signatures(a, cur, w.SignatureKunde, w.SignatureMitarbeiter)
	cur = cur.Advance(20)

	if w.Sonstiges != "" {
		cur = cur.Advance(13)
		text(a, cur.At(marginLeft), labelStyle, "Sonstiges:")
		lines := layout.Wrap(m, strings.TrimRight(w.Sonstiges, "\n"), valueStyle, sonstigesWidth)
		text(a, cur.Advance(valueDrop).At(marginLeft), valueStyle, lines...)
	}
}
