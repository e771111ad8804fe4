package constants

// Incoterms in the order they are reported.
var Incoterms = []string{
	"EXW", "FCA", "CPT", "CIP", "DAP", "DPU", "DDP",
	"FAS", "FOB", "CFR", "CIF",
}

// ContainerTypes is checked in order; the first code contained in a line wins for that line.
var ContainerTypes = []string{
	"20DV", "40DV", "40HC", "45HC", "20HCPW", "40HCPW", "45HCPW",
	"40HR", "20HR", "40NOR", "20NOR", "22G1", "22P1", "22P3",
	"22R1", "22U1", "22T0", "22T5", "2CG1", "42G1", "42P1",
	"42P3", "42R1", "42U1", "45G1", "45R1", "4CG1", "4EG1",
}
