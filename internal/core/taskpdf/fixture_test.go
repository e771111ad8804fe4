package taskpdf

import (
	"time"

	"github.com/joseph-ayodele/freight-orders/internal/core/normalize"
)

// sampleSheet mirrors the text layout of a real task sheet.
func sampleSheet() []string {
	return []string{
		"Transport order",
		"Tournumber:",
		"",
		"* 4711-22 *",
		"Truck, trailer:",
		"",
		"LT-ABC123",
		"AB123 Krone",
		"Vehicle type:",
		"",
		"Mega trailer",
		"Freight rate in €:",
		"",
		"1.250,50 EUR",
		"Load:",
		"Paper rolls",
		"Amount:",
		"33",
		"Unit:",
		"EW-Paletten",
		"Weight:",
		"23.500,00",
		"Loadingmeter:",
		"13,6",
		"Loading reference: LR-100",
		"Unloading reference: UR-200",
		"Loading sequence:",
		"1",
		"Loading",
		"01.06 08:00-10:00",
		"Address:",
		"Acme GmbH , Hauptstr 1 , DE-12345 Berlin",
		"",
		"Unloading sequence:",
		"1",
		"Unloading",
		"03.06 14:00",
		"Address:",
		"Nord UAB , Savanoriu 5 , LT-44000 Kaunas",
		"",
		"2",
		"Unloading",
		"04.06",
		"Address:",
		"Broken address line",
		"Best regards",
		"Contactperson: Jonas Petraitis",
		"Email: dispo@carrier.lt",
		"USt.-ID: DE123456789",
		"Delivery terms FCA Berlin",
		"Container MSCU1234567 type 40HC",
	}
}

func testExtractor() *Extractor {
	return NewExtractor(nil, WithDateParser(normalize.LayoutDateParser{Location: time.UTC, ReferenceYear: 2024}))
}
