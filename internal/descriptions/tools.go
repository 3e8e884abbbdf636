package descriptions

// Tool descriptions with practical examples and use cases

const (
	ComposeWorkOrderDescription = `Create a Leistungsauftrag (work order) PDF from a filled-in record.

**When to use:** A field service job is finished and the billable positions, the customer data and optionally the signatures should become the printable work order.

**Why it's useful:** Produces the same A4 layout as the paper form: letterhead, header fields, the positions table (paginated when long) and both signature slots. Empty optional fields print as "—" so every slot stays visible.

**Record fields:** einsatzort, rgEmpfaenger, artDerArbeit and datum (yyyy-mm-dd) are required. Optional: monteur, telefonNr, blockschrift, sonstiges, signatureKunde, signatureMitarbeiter (PNG data URIs from render_signature). items is a list of {beschreibung, einheitNetto, stundenStuck, m3m, km, bemerkung}; at least one item needs a beschreibung.

**Examples:**
• "Create the work order for the pump installation at Bahnhofstr. 3 on 2024-03-15, 4 hours at 500 EUR"
• "Generate the Leistungsauftrag with the customer signature I just captured"

**Common workflows:**
1. Capture: render_signature for customer and employee → compose_work_order with both payloads
2. Check: compose_work_order → inspect_document on the returned filename

**Best practices:** Keep item order as the customer should read it; rows without beschreibung are dropped.`

	ComposeDailyReportDescription = `Create a Tagesbericht (daily report) PDF from a filled-in record.

**When to use:** At the end of a working day to document work done, machines used and material consumed at a site.

**Why it's useful:** Lays out the report like the paper form. Sections for machinery, the traffic sign date (BS aufgestellt am) and material only appear when they have content.

**Record fields:** datum (yyyy-mm-dd), auftraggeber and ort are required. Optional: wochentag, strasseHausNr, telNr, monteurArbeitszeit, artDerArbeit, kipperMontage, minibagger, radlader, manRb810, neusson, container, atlas, sonstiges, bsAufgestelltAm, materialBeschreibung, materialMenge, signatureKunde, signatureMitarbeiter. items is a list of {beschreibung, menge, einheit}.

**Examples:**
• "Write today's daily report for Weißwasser: 3 hours house connection, minibagger 6h"
• "Create the Tagesbericht for the pipe flushing, no line items, type of work only"

**Common workflows:**
1. Report: compose_daily_report → inspect_document to confirm the page count
2. Sign-off: render_signature → compose_daily_report with signatureMitarbeiter

**Best practices:** Either at least one item with beschreibung or artDerArbeit must be present.`

	RenderSignatureDescription = `Turn recorded pointer or touch events into a signature image payload.

**When to use:** A signature was captured on a canvas in a browser or tablet and the raw events need to become the PNG data URI the compose tools embed.

**Why it's useful:** Replays mousedown/mousemove/mouseup/mouseleave and touchstart/touchmove/touchend/touchcancel events onto a 400×120 surface with a 2 unit round pen, correcting for the size the canvas was displayed at. A "clear" event wipes the surface.

**Examples:**
• "Convert these touch events from the tablet into a signature payload"
• "Render the customer's signature; the canvas was shown 200 px wide at (30, 400)"

**Common workflows:**
1. Capture → render_signature → pass payload as signatureKunde or signatureMitarbeiter
2. Correction: replay events ending with a clear plus the new stroke

**Best practices:** Pass the canvas' bounding client rect as display so strokes land where the pen was. An empty payload means no signature.`

	InspectDocumentDescription = `Read a generated PDF back and report what it contains.

**When to use:** To confirm a document produced by compose_work_order or compose_daily_report is valid and to look at its text.

**Why it's useful:** Validates the file structure, counts pages, returns title, author and the extracted text.

**Examples:**
• "Check Leistungsauftrag_2024-03-15.pdf"
• "How many pages does Tagesbericht_neu.pdf have?"

**Best practices:** Pass the filename returned by the compose tools; only documents in the output directory can be inspected.`

	ServerInfoDescription = `Get server information, available tools, the output directory and the documents it contains.

**When to use:** First call in a session, or to find earlier documents.

**Best practices:** Use the listed filenames with inspect_document.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"compose_work_order":   ComposeWorkOrderDescription,
	"compose_daily_report": ComposeDailyReportDescription,
	"render_signature":     RenderSignatureDescription,
	"inspect_document":     InspectDocumentDescription,
	"server_info":          ServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}
