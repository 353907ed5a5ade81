package report

import (
	"embed"
	"sync"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.I18n
	bundleErr  error
)

// Bundle lazily loads and caches the embedded error-message catalog: an
// embed.FS of locale JSON files loaded into an *i18n.I18n bundle.
func Bundle() (*i18n.I18n, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(
			i18n.WithDefaultLocale("en"),
			i18n.WithLocales("en", "fr"),
		)
		bundleErr = b.LoadFS(localesFS, "locales/*.json")
		bundle = b
	})
	return bundle, bundleErr
}

// Localize renders a report error's Kind in the given locale ("en", "fr"),
// falling back to the kind string itself if the bundle failed to load or
// the locale has no entry for this kind.
func Localize(locale string, kind string) string {
	b, err := Bundle()
	if err != nil || b == nil {
		return kind
	}
	localizer := b.NewLocalizer(locale)
	if localizer == nil {
		return kind
	}
	return localizer.Get(kind)
}
