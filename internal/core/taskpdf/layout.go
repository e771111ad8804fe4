package taskpdf

// Labels printed on task sheets. Each one sits on a line of its own.
const (
	LabelTourNumber        = "Tournumber:"
	LabelTruckTrailer      = "Truck, trailer:"
	LabelVehicleType       = "Vehicle type:"
	LabelFreightRate       = "Freight rate in €:"
	LabelLoad              = "Load:"
	LabelAmount            = "Amount:"
	LabelUnit              = "Unit:"
	LabelWeight            = "Weight:"
	LabelLoadingMeter      = "Loadingmeter:"
	LabelLoadingSequence   = "Loading sequence:"
	LabelUnloadingSequence = "Unloading sequence:"
	LabelBestRegards       = "Best regards"

	PrefixLoadingReference   = "Loading reference:"
	PrefixUnloadingReference = "Unloading reference:"
)

// Header values are printed as label, blank line, value.
const headerValueOffset = 2

// Cargo values directly follow their label.
const cargoValueOffset = 1

// Each stop in a loading/unloading section spans six lines; the datetime sits
// on the third and the "company, street, CC-postal city" line on the fifth. The
// last stop may lose its trailing line.
const (
	stopBlockSize      = 6
	stopMinLines       = 5
	stopDatetimeOffset = 2
	stopAddressOffset  = 4
)

// referenceSeparator splits "Loading reference: X" into label and value.
const referenceSeparator = ": "

const (
	transportNumberSeparator = " / "
	cargoNumberSeparator     = "; "
	incotermSeparator        = ","
)

// customerSide is the role the counterparty plays on orders built from task sheets.
const customerSide = "none"
