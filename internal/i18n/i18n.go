// Package i18n holds the localization service: the active language, the
// key→template tables for each supported language, and locale-aware number
// formatting for the UI-facing strings the API returns.
//
// Template strings use named placeholders in braces: "between {min} and
// {max}". Missing keys fall back to English, then to the key itself, so a
// table gap never breaks a response.
package i18n

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/mvbarbosa/fuellog/internal/domain"
	"github.com/mvbarbosa/fuellog/internal/event"
	"github.com/mvbarbosa/fuellog/internal/repo"
)

// supported lists the languages with a translation table. The first entry is
// the matcher fallback when nothing better fits.
var supported = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Service holds the active language and applies translations. Language
// changes are persisted through the settings repo and broadcast on the bus so
// other managers can refresh language-dependent state.
type Service struct {
	settings repo.SettingsRepo
	bus      *event.Bus

	mu  sync.RWMutex
	tag language.Tag
}

// New constructs the Service with defaultLang active, then overrides it with
// the persisted setting when one exists and resolves to a supported language.
func New(ctx context.Context, settings repo.SettingsRepo, bus *event.Bus, defaultLang string) *Service {
	s := &Service{settings: settings, bus: bus, tag: match(defaultLang)}

	stored, found, err := settings.Get(ctx)
	if err == nil && found && stored.Language != "" {
		s.tag = match(stored.Language)
	}

	// A language change can also arrive via import, which writes settings
	// directly; re-read the persisted choice whenever the event fires.
	bus.Subscribe(event.LanguageChanged, s.reload)
	return s
}

// reload re-reads the persisted language. Used after imports.
func (s *Service) reload() {
	stored, found, err := s.settings.Get(context.Background())
	if err != nil || !found || stored.Language == "" {
		return
	}
	tag := match(stored.Language)
	s.mu.Lock()
	s.tag = tag
	s.mu.Unlock()
}

// Language returns the canonical code of the active language ("pt-BR", "en").
func (s *Service) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tag.String()
}

// SetLanguage resolves code against the supported languages, persists the
// choice, and broadcasts the change. An unparseable code is a validation
// error; a parseable but unsupported one resolves to the closest supported
// language rather than failing.
func (s *Service) SetLanguage(ctx context.Context, code string) (string, error) {
	parsed, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("i18n.Service.SetLanguage: %w: unknown language %q", domain.ErrValidation, code)
	}
	_, idx := language.MatchStrings(matcher, parsed.String())
	tag := supported[idx]

	if err := s.settings.Save(ctx, domain.Settings{Language: tag.String()}); err != nil {
		return "", fmt.Errorf("i18n.Service.SetLanguage: %w", err)
	}

	s.mu.Lock()
	s.tag = tag
	s.mu.Unlock()

	s.bus.Publish(event.LanguageChanged)
	return tag.String(), nil
}

// T renders the template for key in the active language, substituting
// {name}-style placeholders from args.
func (s *Service) T(key string, args map[string]string) string {
	s.mu.RLock()
	tag := s.tag
	s.mu.RUnlock()

	tmpl, ok := tables[tag.String()][key]
	if !ok {
		tmpl, ok = tables["en"][key]
	}
	if !ok {
		return key
	}
	for name, value := range args {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", value)
	}
	return tmpl
}

// FormatCurrency renders v as money in the active locale, rounded to two
// decimals at render time only ("R$ 56,79" vs "$56.79").
func (s *Service) FormatCurrency(v float64) string {
	s.mu.RLock()
	tag := s.tag
	s.mu.RUnlock()

	p := message.NewPrinter(tag)
	amount := p.Sprint(number.Decimal(v, number.Scale(2)))
	if tag.String() == "pt-BR" {
		return "R$ " + amount
	}
	return "$" + amount
}

// FormatQuantity renders a distance or volume with one decimal in the active
// locale ("120,5" vs "120.5").
func (s *Service) FormatQuantity(v float64) string {
	s.mu.RLock()
	tag := s.tag
	s.mu.RUnlock()

	return message.NewPrinter(tag).Sprint(number.Decimal(v, number.Scale(1)))
}

// Resolve maps code to the canonical tag of a supported language. ok is
// false when code does not parse or matches no supported language at all —
// the matcher's zero-confidence fallback does not count as a match.
func Resolve(code string) (canonical string, ok bool) {
	parsed, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return "", false
	}
	return supported[idx].String(), true
}

// match resolves any language code to a supported tag, defaulting to the
// first supported language when nothing fits.
func match(code string) language.Tag {
	_, idx := language.MatchStrings(matcher, code)
	return supported[idx]
}
