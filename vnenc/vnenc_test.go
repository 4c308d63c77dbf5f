package vnenc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_KnownSpellings(t *testing.T) {
	assert.Equal(t, "BêÙp", Convert("Bếp", Unicode, VNI))
	assert.Equal(t, "BÕp", Convert("Bếp", Unicode, TCVN3))
	assert.Equal(t, "chùöng", Convert("chương", Unicode, VNI))
	assert.Equal(t, "Bếp", Convert("BêÙp", VNI, Unicode))
	assert.Equal(t, "Bếp", Convert("BÕp", TCVN3, Unicode))
}

func TestConvert_RoundTrip(t *testing.T) {
	texts := []string{
		"Chú thích ký hiệu",
		"Chi tiết kết cấu thép",
		"Hệ thống điện",
		"ĂÂÊÔƠƯĐ ăâêôơưđ",
		"Mặt bằng tầng 1 - tỷ lệ 1/100",
	}
	for _, legacy := range []Encoding{VNI, TCVN3} {
		for _, text := range texts {
			enc := Convert(text, Unicode, legacy)
			assert.Equalf(t, text, Convert(enc, legacy, Unicode), "%s round trip of %q", legacy, text)
		}
	}
}

func TestConvert_VNIUpperCaseRoundTrip(t *testing.T) {
	text := "ĐƯỜNG ỐNG THOÁT NƯỚC"
	assert.Equal(t, text, Convert(Convert(text, Unicode, VNI), VNI, Unicode))
}

func TestConvert_TCVNFoldsTonedCapitals(t *testing.T) {
	// TCVN3 keeps capitals in a separate font, so toned capitals share the
	// lower-case code points.
	assert.Equal(t, "ốNG", Convert(Convert("ỐNG", Unicode, TCVN3), TCVN3, Unicode))
	assert.Equal(t, Convert("ố", Unicode, TCVN3), Convert("Ố", Unicode, TCVN3))
}

func TestConvert_SameEncodingIsIdentity(t *testing.T) {
	for _, e := range Encodings() {
		in := "Bếp Õ chùöng"
		assert.Equal(t, in, Convert(in, e, e))
	}
	assert.Equal(t, "", Convert("", Auto, Unicode))
}

func TestConvert_UnmappedPassThrough(t *testing.T) {
	in := "Room 1 / 房间 / €"
	assert.Equal(t, in, Convert(in, Unicode, TCVN3))
	assert.Equal(t, in, Convert(in, Unicode, VNI))
	assert.Equal(t, in, Convert(in, TCVN3, Unicode))
}

func TestConvert_DecomposedInput(t *testing.T) {
	// "ế" written as e + circumflex + acute.
	decomposed := "Be\u0302\u0301p"
	assert.Equal(t, "BÕp", Convert(decomposed, Unicode, TCVN3))
}

func TestConvert_AutoRepairsMojibake(t *testing.T) {
	assert.Equal(t, "chương", Convert("chÆ°Æ¡ng", Auto, Unicode))
}

func TestConvert_AutoDetects(t *testing.T) {
	vni := Convert("Chú thích ký hiệu", Unicode, VNI)
	tcvn := Convert("Hệ thống điện", Unicode, TCVN3)

	assert.Equal(t, "Chú thích ký hiệu", Convert(vni, Auto, Unicode))
	assert.Equal(t, "Hệ thống điện", Convert(tcvn, Auto, Unicode))
	assert.Equal(t, Convert("Chú thích ký hiệu", Unicode, TCVN3), Convert(vni, Auto, TCVN3))
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Encoding
	}{
		{"empty", "", Unicode},
		{"ascii", "Floor plan", Unicode},
		{"unicode", "Mặt bằng tầng 1", Unicode},
		{"vni", Convert("Chú thích ký hiệu", Unicode, VNI), VNI},
		{"vni with directions", Convert("Góc phía bắc", Unicode, VNI), VNI},
		{"tcvn3", Convert("Chi tiết kết cấu thép", Unicode, TCVN3), TCVN3},
		{"tcvn3 rooms", Convert("Phòng khách lớn", Unicode, TCVN3), TCVN3},
		{
			"vni inside mtext",
			`{\fVNI-Times|b0;` + Convert("Chú thích ký hiệu", Unicode, VNI) + `}\P` + Convert("Góc phía bắc", Unicode, VNI),
			VNI,
		},
		{
			"tcvn3 inside mtext",
			`\H2.5;` + Convert("Hệ thống điện", Unicode, TCVN3) + `\P\L` + Convert("Tường gạch", Unicode, TCVN3),
			TCVN3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.in))
		})
	}
}

func TestDetectScores(t *testing.T) {
	enc, sc := DetectScores(Convert("Chi tiết kết cấu thép", Unicode, TCVN3))
	assert.Equal(t, TCVN3, enc)
	assert.Equal(t, Scores{TCVN3: 4, VNI: 1, Unicode: 3}, sc)

	enc, sc = DetectScores("")
	assert.Equal(t, Unicode, enc)
	assert.Zero(t, sc)
}

func TestRepair(t *testing.T) {
	fixed, ok := Repair("Máº·t báº±ng")
	require.True(t, ok)
	assert.Equal(t, "Mặt bằng", fixed)

	for _, in := range []string{"plain", "Mặt bằng", "café", Convert("Phòng khách", Unicode, TCVN3)} {
		got, ok := Repair(in)
		assert.Falsef(t, ok, "Repair(%q)", in)
		assert.Equal(t, in, got)
	}
}

func TestCleanMText(t *testing.T) {
	in := `{\fVNI-Times|b0|i0|c0|p18;Ph\U+00F2ng}\P\U+0110iện`
	assert.Equal(t, `{Phòng}\PĐiện`, CleanMText(in))
	assert.Equal(t, "A°", CleanMText(`AU+00B0`))
}

func TestParseEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want Encoding
	}{
		{"auto", Auto},
		{"", Auto},
		{"Unicode", Unicode},
		{"utf8", Unicode},
		{"VNI", VNI},
		{"tcvn3", TCVN3},
		{"ABC", TCVN3},
	}
	for _, tc := range tests {
		got, err := ParseEncoding(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseEncoding("koi8-r")
	assert.Error(t, err)
}

func TestEncoding_TextAndFlag(t *testing.T) {
	var e Encoding
	require.NoError(t, e.Set("vni"))
	assert.Equal(t, VNI, e)
	assert.Equal(t, "encoding", e.Type())

	b, err := TCVN3.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tcvn3", string(b))

	require.NoError(t, e.UnmarshalText([]byte("unicode")))
	assert.Equal(t, Unicode, e)
	assert.Error(t, e.Set("ebcdic"))
	assert.Equal(t, "Encoding(9)", Encoding(9).String())
}

func TestDecodeBytes(t *testing.T) {
	// "Bếp" in TCVN3 as stored on disk.
	raw := []byte{'B', 0xD5, 'p'}

	s, err := DecodeBytes(raw, "")
	require.NoError(t, err)
	assert.Equal(t, "Bếp", Convert(s, TCVN3, Unicode))

	s, err = DecodeBytes(raw, "latin1")
	require.NoError(t, err)
	assert.Equal(t, "BÕp", s)

	back, err := EncodeString(s, "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, raw, back)

	_, err = DecodeBytes(raw, "no-such-charset")
	assert.Error(t, err)
}
