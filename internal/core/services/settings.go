package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/ocrhl/internal/core/domain"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driven"
	"github.com/custodia-labs/ocrhl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySolrURL      = "solr.url"
	KeySolrRate     = "solr.rate"
	KeySolrTimeout  = "solr.timeout"
	KeyImageAPIBase = "iiif.image_api_base"
	KeyAppBase      = "app.base_url"
	KeySnippets     = "search.snippets"
	KeySources      = "search.sources"
)

var settingKeys = []string{
	KeySolrURL,
	KeySolrRate,
	KeySolrTimeout,
	KeyImageAPIBase,
	KeyAppBase,
	KeySnippets,
	KeySources,
}

// SettingsService reads and writes application settings through a
// ConfigStore. Missing or invalid stored values fall back to defaults.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	return &domain.Settings{
		SolrURL:      s.getURL(KeySolrURL, defaults.SolrURL),
		SolrRate:     s.getRate(defaults.SolrRate),
		SolrTimeout:  s.getTimeout(defaults.SolrTimeout),
		ImageAPIBase: s.getURL(KeyImageAPIBase, defaults.ImageAPIBase),
		AppBase:      s.getURL(KeyAppBase, defaults.AppBase),
		Snippets:     s.getSnippets(defaults.Snippets),
		Sources:      s.getSources(defaults.Sources),
	}, nil
}

// Set validates a setting given in string form and stores it with its
// native type.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any
	switch key {
	case KeySolrURL, KeyImageAPIBase, KeyAppBase:
		if err := validateURL(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		stored = strings.TrimRight(value, "/")

	case KeySolrRate:
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate <= 0 {
			return fmt.Errorf("%w: %s must be a positive number, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = rate

	case KeySolrTimeout:
		secs, err := strconv.Atoi(value)
		if err != nil || secs <= 0 {
			return fmt.Errorf("%w: %s must be a positive number of seconds, got %q", domain.ErrInvalidInput, key, value)
		}
		stored = secs

	case KeySnippets:
		n, err := strconv.Atoi(value)
		if err != nil || n < domain.MinSnippets || n > domain.MaxSnippets {
			return fmt.Errorf("%w: %s must be between %d and %d, got %q",
				domain.ErrInvalidInput, key, domain.MinSnippets, domain.MaxSnippets, value)
		}
		stored = n

	case KeySources:
		sources, err := parseSources(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		tags := make([]string, len(sources))
		for i, src := range sources {
			tags[i] = src.String()
		}
		stored = tags

	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Value returns the effective value of a setting in the string form
// accepted by Set.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case KeySolrURL:
		return settings.SolrURL, nil
	case KeySolrRate:
		return strconv.FormatFloat(settings.SolrRate, 'f', -1, 64), nil
	case KeySolrTimeout:
		return strconv.Itoa(int(settings.SolrTimeout / time.Second)), nil
	case KeyImageAPIBase:
		return settings.ImageAPIBase, nil
	case KeyAppBase:
		return settings.AppBase, nil
	case KeySnippets:
		return strconv.Itoa(settings.Snippets), nil
	case KeySources:
		tags := make([]string, len(settings.Sources))
		for i, src := range settings.Sources {
			tags[i] = src.String()
		}
		return strings.Join(tags, ","), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// Keys returns the supported setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func (s *SettingsService) getURL(key, fallback string) string {
	val := s.configStore.GetString(key)
	if validateURL(val) != nil {
		return fallback
	}
	return strings.TrimRight(val, "/")
}

func (s *SettingsService) getRate(fallback float64) float64 {
	if rate := s.configStore.GetFloat(KeySolrRate); rate > 0 {
		return rate
	}
	return fallback
}

func (s *SettingsService) getTimeout(fallback time.Duration) time.Duration {
	if secs := s.configStore.GetInt(KeySolrTimeout); secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func (s *SettingsService) getSnippets(fallback int) int {
	n := s.configStore.GetInt(KeySnippets)
	if n < domain.MinSnippets || n > domain.MaxSnippets {
		return fallback
	}
	return n
}

func (s *SettingsService) getSources(fallback []domain.SourceKind) []domain.SourceKind {
	tags := s.configStore.GetStringSlice(KeySources)
	if len(tags) == 0 {
		return fallback
	}
	sources, err := parseSources(strings.Join(tags, ","))
	if err != nil {
		return fallback
	}
	return sources
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) URL", domain.ErrInvalidInput, raw)
	}
	return nil
}

// parseSources parses a comma-separated corpus list, ignoring duplicates.
func parseSources(value string) ([]domain.SourceKind, error) {
	var sources []domain.SourceKind
	seen := make(map[domain.SourceKind]bool)
	for _, tag := range strings.Split(value, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		kind, err := domain.ParseSourceKind(tag)
		if err != nil {
			return nil, err
		}
		if !seen[kind] {
			seen[kind] = true
			sources = append(sources, kind)
		}
	}
	if len(sources) == 0 {
		return nil, domain.ErrNoSourcesSelected
	}
	return sources, nil
}
