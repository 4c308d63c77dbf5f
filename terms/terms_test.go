package terms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLang(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "en"},
		{"  ", "en"},
		{"EN", "en"},
		{"auto", "auto"},
		{"AUTO", "auto"},
		{"zh", "zh-CN"},
		{"zh-TW", "zh-CN"},
		{"zh_hans", "zh-CN"},
		{"vi-VN", "vi"},
		{"pt_BR", "pt"},
		{"ja", "ja"},
	}
	for _, tc := range tests {
		assert.Equalf(t, tc.want, NormalizeLang(tc.in), "NormalizeLang(%q)", tc.in)
	}
}

func TestDefault_Languages(t *testing.T) {
	g := Default()
	assert.Equal(t, []string{"vi", "ja", "ko", "zh-CN"}, g.Languages())
	for _, lang := range g.Languages() {
		assert.Len(t, g.Entries(lang), 80, lang)
	}
	assert.Same(t, g, Default())
}

func TestApply_LongestMatchWins(t *testing.T) {
	got := Default().Apply("Section A-A and Section B-B", "en", "vi")
	assert.Equal(t, "Mặt cắt A-A and Mặt cắt B-B", got)

	got = Default().Apply("See Detail 3", "en", "vi")
	assert.Equal(t, "Xem chi tiết 3", got)

	got = Default().Apply("Reinforced Concrete slab, Concrete wall", "en", "vi")
	assert.Equal(t, "Bê tông cốt thép slab, Bê tông wall", got)
}

func TestApply_ReplacedTermsAreFinal(t *testing.T) {
	// "Khối (Block)" must not have its "Block" translated again.
	assert.Equal(t, "Khối (Block)", Default().Apply("Block", "en", "vi"))
}

func TestApply_PivotThroughEnglish(t *testing.T) {
	g := Default()
	assert.Contains(t, g.Apply("断面", "zh-CN", "vi"), "Mặt cắt")
	assert.Equal(t, "Mặt cắt", g.Apply("剖面", "zh", "vi"))
	assert.Equal(t, "平面図", g.Apply("평면도", "ko", "ja"))
	assert.Equal(t, "Mặt bằng kết cấu", g.Apply("構造図", "ja", "vi"))
}

func TestApply_ToEnglish(t *testing.T) {
	g := Default()
	assert.Equal(t, "Floor Plan", g.Apply("Mặt bằng", "vi", "en"))
	assert.Equal(t, "Site Plan", g.Apply("总平面图", "zh-CN", "en"))
	assert.Equal(t, "Storage bãi", g.Apply("Kho bãi", "vi", "en"))
}

func TestApply_AutoDetect(t *testing.T) {
	g := Default()
	assert.Equal(t, "Floor Plan", g.Apply("Mặt bằng", "auto", "en"))
	assert.Equal(t, "Mặt bằng", g.Apply("平面図", "auto", "vi"))
	assert.Equal(t, "Bếp", g.Apply("Kitchen", "auto", "vi"))
	assert.Equal(t, "nothing to see", g.Apply("nothing to see", "auto", "vi"))
}

func TestApply_AutoDetectUsesBuiltinOrder(t *testing.T) {
	g, err := Default().With(File{Lang: "fr", Terms: []Entry{{English: "Kitchen", Local: "Cuisine"}}})
	require.NoError(t, err)
	require.Contains(t, g.Languages(), "fr")

	// added languages take part only when named
	assert.Equal(t, "Cuisine", g.Apply("Cuisine", "auto", "vi"))
	assert.Equal(t, "Bếp", g.Apply("Cuisine", "fr", "vi"))
	assert.Equal(t, "Mặt bằng", g.Apply("平面図", "auto", "vi"))
}

func TestApply_WordBoundaries(t *testing.T) {
	g := Default()
	assert.Equal(t, "Scaled Khối (Block)", g.Apply("Scaled Block", "en", "vi"))
	assert.Equal(t, "WCX", g.Apply("WCX", "en", "vi"))
	assert.Equal(t, "Khoa", g.Apply("Khoa", "vi", "en"))
	// decomposed acute on the last letter keeps the word going
	assert.Equal(t, "Kho\u0301", g.Apply("Kho\u0301", "vi", "en"))
}

func TestApply_Abbreviations(t *testing.T) {
	g := Default()
	assert.Equal(t, "2 Điển hình walls", g.Apply("2 Typ. walls", "en", "vi"))
	assert.Equal(t, "Tỷ lệ: Không theo tỷ lệ.", g.Apply("SCALE: N.T.S.", "en", "vi"))
}

func TestApply_Unchanged(t *testing.T) {
	g := Default()
	assert.Equal(t, "Kitchen", g.Apply("Kitchen", "en", "fr"))
	assert.Equal(t, "Kitchen", g.Apply("Kitchen", "fr", "vi"))
	assert.Equal(t, "Kitchen", g.Apply("Kitchen", "en", "en-US"))
	assert.Equal(t, "Bếp", g.Apply("Bếp", "vi", "vi-VN"))
	assert.Equal(t, "   ", g.Apply("   ", "en", "vi"))
}

func TestBuildPattern(t *testing.T) {
	tests := []struct {
		term, text string
		want       bool
	}{
		{"Scale", "scale 1:100", true},
		{"Scale", "Scaled", false},
		{"Scale", "Upscale", false},
		{"Typ.", "Typ.X", true},
		{"N.T.S", "N.T.S.", true},
		{"断面", "A-A断面図", true},
		{"평면도", "지붕평면도", true},
		{"Bếp", "Nhà bếp", true},
		{"Bếp", "Bếpx", false},
	}
	for _, tc := range tests {
		assert.Equalf(t, tc.want, BuildPattern(tc.term).MatchString(tc.text), "%q in %q", tc.term, tc.text)
	}
}

func TestLookup(t *testing.T) {
	g := Default()

	got, ok := g.Lookup("zh_TW", "section")
	require.True(t, ok)
	assert.Equal(t, "剖面", got)

	_, ok = g.Lookup("vi", "Spaceship")
	assert.False(t, ok)
	_, ok = g.Lookup("fr", "Section")
	assert.False(t, ok)
}

func TestWith_OverridesAndAdds(t *testing.T) {
	user := File{Lang: "vi-VN", Terms: []Entry{
		{English: "kitchen", Local: "Nhà bếp"},
		{English: "Shop Drawing", Local: "Bản vẽ thi công"},
	}}
	g, err := Default().With(user)
	require.NoError(t, err)

	assert.Equal(t, "Nhà bếp, Bản vẽ thi công", g.Apply("Kitchen, Shop Drawing", "en", "vi"))
	assert.Len(t, g.Entries("vi"), 81)
	// the shared default is untouched
	assert.Equal(t, "Bếp", Default().Apply("Kitchen", "en", "vi"))
}

func TestNew_Validation(t *testing.T) {
	_, err := New(File{Terms: []Entry{{English: "A", Local: "B"}}})
	assert.Error(t, err)

	_, err = New(File{Lang: "en", Terms: []Entry{{English: "A", Local: "B"}}})
	assert.Error(t, err)

	_, err = New(File{Lang: "vi", Terms: []Entry{{English: "A"}}})
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`lang: vi
sections:
  - name: site
    terms:
      - {en: "Retaining Wall", local: "Tường chắn"}
`), 0o644))

	tomlPath := filepath.Join(dir, "site.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`lang = "ja"

[[terms]]
en = "Retaining Wall"
local = "擁壁"
aliases = ["土留め壁"]
`), 0o644))

	vi, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "vi", vi.Lang)
	assert.Equal(t, []Entry{{English: "Retaining Wall", Local: "Tường chắn"}}, vi.Entries())

	ja, err := LoadFile(tomlPath)
	require.NoError(t, err)
	require.Len(t, ja.Entries(), 1)
	assert.Equal(t, []string{"土留め壁"}, ja.Entries()[0].Aliases)

	g, err := Default().With(vi, ja)
	require.NoError(t, err)
	assert.Equal(t, "Tường chắn", g.Apply("土留め壁", "ja", "vi"))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	badPath := filepath.Join(dir, "site.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{}`), 0o644))
	_, err = LoadFile(badPath)
	assert.Error(t, err)
}

func TestLoadDefault(t *testing.T) {
	g, err := LoadDefault()
	require.NoError(t, err)
	assert.Same(t, Default(), g)

	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lang: vi\nterms:\n  - {en: \"Kitchen\", local: \"Nhà bếp\"}\n"), 0o644))

	g, err = LoadDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "Nhà bếp", g.Apply("Kitchen", "en", "vi"))

	_, err = LoadDefault(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
