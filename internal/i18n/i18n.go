package i18n

import (
	"strings"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/nb"
	ut "github.com/go-playground/universal-translator"
)

// HeaderAcceptLanguage is the request header the catalog resolves locales from.
const HeaderAcceptLanguage = "Accept-Language"

// Catalog holds the user-facing messages. Norwegian Bokmål is the fallback.
type Catalog struct {
	uni *ut.UniversalTranslator
}

func New() (*Catalog, error) {
	nbLoc := nb.New()
	uni := ut.New(nbLoc, nbLoc, en.New())
	for locale, msgs := range catalogs {
		tr, _ := uni.GetTranslator(locale)
		for key, text := range msgs {
			if err := tr.Add(key, text, false); err != nil {
				return nil, err
			}
		}
	}
	return &Catalog{uni: uni}, nil
}

// For picks a translator from an Accept-Language header value.
func (c *Catalog) For(acceptLanguage string) ut.Translator {
	tr, _ := c.uni.FindTranslator(parseAcceptLanguage(acceptLanguage)...)
	return tr
}

func (c *Catalog) Get(locale string) ut.Translator {
	tr, _ := c.uni.GetTranslator(locale)
	return tr
}

// T translates key, falling back to the key itself.
func T(tr ut.Translator, key string, params ...string) string {
	if tr == nil {
		return key
	}
	s, err := tr.T(key, params...)
	if err != nil {
		return key
	}
	return s
}

// "nb-NO,nb;q=0.9,en;q=0.8" -> [nb_NO nb en]
func parseAcceptLanguage(h string) []string {
	var out []string
	for _, part := range strings.Split(h, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" || tag == "*" {
			continue
		}
		tag = strings.ReplaceAll(tag, "-", "_")
		out = append(out, tag)
		if base, _, ok := strings.Cut(tag, "_"); ok {
			out = append(out, base)
		}
	}
	// Norwegian without a written standard maps to Bokmål.
	for i, t := range out {
		if t == "no" {
			out[i] = "nb"
		}
	}
	return out
}
