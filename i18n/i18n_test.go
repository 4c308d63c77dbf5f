package i18n

import "testing"

func clearLocaleEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "")
}

func TestDetectLanguagePriorityAndNormalization(t *testing.T) {
	t.Run("LANGUAGE has highest priority", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "vi_VN.UTF-8:en_US")
		t.Setenv("LC_ALL", "de_DE.UTF-8")

		if got := detectLanguage(); got != "vi_VN" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "vi_VN")
		}
	})

	t.Run("C and POSIX are skipped", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANGUAGE", "C")
		t.Setenv("LC_ALL", "POSIX")
		t.Setenv("LC_MESSAGES", "ja_JP.UTF-8")

		if got := detectLanguage(); got != "ja_JP" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "ja_JP")
		}
	})

	t.Run("falls back to en", func(t *testing.T) {
		clearLocaleEnv(t)
		if got := detectLanguage(); got != "en" {
			t.Fatalf("detectLanguage() = %q, want %q", got, "en")
		}
	})
}

func TestLocaleName(t *testing.T) {
	cases := map[string]string{
		"vi_VN.UTF-8":      "vi_VN",
		"vi_VN.UTF-8@euro": "vi_VN",
		"ja@latin":         "ja",
		"C":                "",
		"POSIX":            "",
		"":                 "",
	}
	for in, want := range cases {
		if got := localeName(in); got != want {
			t.Errorf("localeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTAndNFallbackWhenUninitialized(t *testing.T) {
	old := po
	po = nil
	t.Cleanup(func() { po = old })

	if got := T("Detected encoding:"); got != "Detected encoding:" {
		t.Fatalf("T fallback = %q, want %q", got, "Detected encoding:")
	}

	if got := N("item", "items", 1); got != "item" {
		t.Fatalf("N singular fallback = %q, want %q", got, "item")
	}

	if got := N("item", "items", 2); got != "items" {
		t.Fatalf("N plural fallback = %q, want %q", got, "items")
	}
}

func TestVietnameseCatalog(t *testing.T) {
	old := po
	t.Cleanup(func() { po = old })

	Init("vi_VN")
	if got := T("Detected encoding:"); got != "Bảng mã phát hiện:" {
		t.Fatalf("T = %q", got)
	}
	if got := N("%d of %d item changed", "%d of %d items changed", 3); got != "%d/%d mục đã thay đổi" {
		t.Fatalf("N = %q", got)
	}
	if got := T("no such message"); got != "no such message" {
		t.Fatalf("T passthrough = %q", got)
	}
}
