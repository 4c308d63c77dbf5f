// Package i18n translates the messages cadtext prints.
//
// The catalogs are gettext .po files under locales/<lang>/LC_MESSAGES,
// compiled into the binary. Only Vietnamese ships today; drafters who run
// the tool in an English locale see the msgids as written.
//
//	i18n.Init("")
//	fmt.Println(i18n.T("Detected encoding:"))
//	fmt.Printf(i18n.N("%d of %d item changed", "%d of %d items changed", n)+"\n", n, total)
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "cadtext"

// localeEnv lists the variables consulted for the message language, in
// gettext precedence.
var localeEnv = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

var po *gotext.Locale

// Init loads the catalog for lang ("vi", "vi_VN"). An empty lang is taken
// from the environment. Call it before the command tree is built, since
// flag help is translated when commands are created.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T returns the translation of msgid, or msgid itself.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N picks the plural form of a message for n. Vietnamese has a single form,
// so the catalog carries one msgstr per plural message.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

// detectLanguage returns the first usable locale from the environment, "en"
// when none is set.
func detectLanguage() string {
	for _, env := range localeEnv {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			// colon separated preference list
			val, _, _ = strings.Cut(val, ":")
		}
		if val = localeName(val); val != "" {
			return val
		}
	}
	return "en"
}

// localeName strips the codeset and modifier ("vi_VN.UTF-8@euro" is
// "vi_VN"). The C and POSIX locales mean untranslated and yield "".
func localeName(val string) string {
	if i := strings.IndexAny(val, ".@"); i >= 0 {
		val = val[:i]
	}
	if val == "C" || val == "POSIX" {
		return ""
	}
	return val
}
