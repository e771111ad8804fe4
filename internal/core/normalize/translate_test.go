package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalogTranslator(t *testing.T) {
	tr, err := NewCatalogTranslator("")
	require.NoError(t, err)
	require.Equal(t, "en", tr.Locale())
	require.Equal(t, "Carton", tr.Translate("package_type.CARTON"))
	require.Equal(t, "package_type.NOPE", tr.Translate("package_type.NOPE"))

	de, err := NewCatalogTranslator("de")
	require.NoError(t, err)
	require.Equal(t, "Karton", de.Translate("package_type.CARTON"))

	_, err = NewCatalogTranslator("xx")
	require.Error(t, err)
}

func TestPackageTypes(t *testing.T) {
	tr, err := NewCatalogTranslator("en")
	require.NoError(t, err)
	pt := PackageTypes{Translator: tr}

	require.Equal(t, "Pallet (other)", pt.Map("EW-Paletten"))
	require.Equal(t, "Carton", pt.Map("Ladung"))
	require.Equal(t, "Other", pt.Map("Stück"))
	require.Equal(t, "Pallet (other)", pt.Map("Gitterbox"))
	// exact match only
	require.Equal(t, "Pallet (other)", pt.Map("ladung"))

	require.Equal(t, "package_type.CARTON", PackageTypes{}.Map("Ladung"))
}

func TestRegionResolver(t *testing.T) {
	r := RegionResolver{}
	cases := map[string]string{
		"DE": "DE",
		"D":  "DE",
		"a":  "AT",
		"LT": "LT",
		"pl": "PL",
		"UK": "GB",
		"FL": "LI",
	}
	for in, want := range cases {
		got, ok := r.Resolve(in)
		require.True(t, ok, in)
		require.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "Q", "ZZ", "123"} {
		_, ok := r.Resolve(in)
		require.False(t, ok, in)
	}
}
