package constants

// PackageType is a canonical package tag; display strings come from the translation catalog.
type PackageType string

const (
	PackageTypePalletOther PackageType = "PALLET_OTHER"
	PackageTypeCarton      PackageType = "CARTON"
	PackageTypeOther       PackageType = "OTHER"
)

// packageTypeMap is keyed by the exact vocabulary printed on task sheets.
var packageTypeMap = map[string]PackageType{
	"EW-Paletten": PackageTypePalletOther,
	"Ladung":      PackageTypeCarton,
	"Stück":       PackageTypeOther,
}

// CanonicalPackageType maps source vocabulary to a tag, falling back to PALLET_OTHER.
// The second result reports whether the input was known.
func CanonicalPackageType(input string) (PackageType, bool) {
	if t, ok := packageTypeMap[input]; ok {
		return t, true
	}
	return PackageTypePalletOther, false
}
