// Package forms holds the records submitted for document generation: the
// work order ("Leistungsauftrag") and the daily report ("Tagesbericht").
//
// Field names follow the JSON keys the field-service forms have always used,
// so records captured by older clients decode unchanged.
package forms

// WorkOrderItem is one row of the work-order services table.
type WorkOrderItem struct {
	ID           string `json:"id"`
	Beschreibung string `json:"beschreibung"`
	EinheitNetto string `json:"einheitNetto"`
	StundenStuck string `json:"stundenStuck"`
	M3M          string `json:"m3m"`
	Km           string `json:"km"`
	Bemerkung    string `json:"bemerkung"`
}

// ItemID implements Item.
func (i WorkOrderItem) ItemID() string { return i.ID }

// Description implements Item.
func (i WorkOrderItem) Description() string { return i.Beschreibung }

// WorkOrder is the record behind a Leistungsauftrag document.
type WorkOrder struct {
	Einsatzort   string `json:"einsatzort"`
	RgEmpfaenger string `json:"rgEmpfaenger"`
	ArtDerArbeit string `json:"artDerArbeit"`
	Datum        string `json:"datum"`
	Monteur      string `json:"monteur"`
	TelefonNr    string `json:"telefonNr"`
	Blockschrift string `json:"blockschrift"`
	Sonstiges    string `json:"sonstiges"`

	Items []WorkOrderItem `json:"items"`

	SignatureKunde       string `json:"signatureKunde"`
	SignatureMitarbeiter string `json:"signatureMitarbeiter"`
}

// WorkItem is one row of the daily-report work table.
type WorkItem struct {
	ID           string `json:"id"`
	Beschreibung string `json:"beschreibung"`
	Menge        string `json:"menge"`
	Einheit      string `json:"einheit"`
}

// ItemID implements Item.
func (i WorkItem) ItemID() string { return i.ID }

// Description implements Item.
func (i WorkItem) Description() string { return i.Beschreibung }

// DailyReport is the record behind a Tagesbericht document.
type DailyReport struct {
	Datum              string `json:"datum"`
	Wochentag          string `json:"wochentag"`
	Ort                string `json:"ort"`
	StrasseHausNr      string `json:"strasseHausNr"`
	Auftraggeber       string `json:"auftraggeber"`
	TelNr              string `json:"telNr"`
	MonteurArbeitszeit string `json:"monteurArbeitszeit"`
	ArtDerArbeit       string `json:"artDerArbeit"`

	// Equipment and machinery.
	KipperMontage string `json:"kipperMontage"`
	Minibagger    string `json:"minibagger"`
	Radlader      string `json:"radlader"`
	ManRb810      string `json:"manRb810"`
	Neusson       string `json:"neusson"`
	Container     string `json:"container"`
	Atlas         string `json:"atlas"`
	Sonstiges     string `json:"sonstiges"`

	BsAufgestelltAm string `json:"bsAufgestelltAm"`

	MaterialBeschreibung string `json:"materialBeschreibung"`
	MaterialMenge        string `json:"materialMenge"`

	Items []WorkItem `json:"items"`

	SignatureKunde       string `json:"signatureKunde"`
	SignatureMitarbeiter string `json:"signatureMitarbeiter"`
}
