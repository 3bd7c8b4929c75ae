package service

import (
	"context"

	"github.com/Yassen717/ModBlog/internal/domain"
	"github.com/Yassen717/ModBlog/internal/logger"
	"github.com/Yassen717/ModBlog/internal/metrics"
	"github.com/Yassen717/ModBlog/internal/repository"
	"github.com/Yassen717/ModBlog/internal/validator"
)

// PublicSettings is the subset of settings the reader site needs.
type PublicSettings struct {
	General    domain.GeneralSettings    `json:"general"`
	Appearance domain.AppearanceSettings `json:"appearance"`
	SEO        domain.SEOSettings        `json:"seo"`
	Content    PublicContentSettings     `json:"content"`
}

type PublicContentSettings struct {
	PostsPerPage        int  `json:"postsPerPage"`
	EnableComments      bool `json:"enableComments"`
	ShowAuthorBio       bool `json:"showAuthorBio"`
	ShowReadingTime     bool `json:"showReadingTime"`
	EnableSocialSharing bool `json:"enableSocialSharing"`
}

// SettingsService reads and writes the settings singleton.
type SettingsService struct {
	settings  repository.SettingsRepository
	validator *validator.Validator
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settings repository.SettingsRepository, v *validator.Validator) *SettingsService {
	return &SettingsService{settings: settings, validator: v}
}

// Get returns the stored settings. When none exist the defaults are
// persisted and returned.
func (s *SettingsService) Get(ctx context.Context) domain.BlogSettings {
	if settings, ok := s.settings.Get(ctx); ok {
		return settings
	}
	defaults := domain.DefaultSettings()
	s.settings.Save(ctx, defaults)
	logger.InfoContext(ctx, "Stored default settings")
	return defaults
}

// Save validates and replaces the settings.
func (s *SettingsService) Save(ctx context.Context, settings domain.BlogSettings) (domain.BlogSettings, error) {
	if err := s.validator.ValidateSettings(&settings); err != nil {
		return domain.BlogSettings{}, newValidationError(err)
	}
	s.settings.Save(ctx, settings)
	metrics.RecordMutation("settings", "update")
	logger.InfoContext(ctx, "Settings saved")
	return settings, nil
}

// Reset restores the default settings.
func (s *SettingsService) Reset(ctx context.Context) domain.BlogSettings {
	defaults := domain.DefaultSettings()
	s.settings.Save(ctx, defaults)
	metrics.RecordMutation("settings", "reset")
	logger.InfoContext(ctx, "Settings reset to defaults")
	return defaults
}

// Public returns the reader-facing subset of the settings.
func (s *SettingsService) Public(ctx context.Context) PublicSettings {
	settings := s.Get(ctx)
	return PublicSettings{
		General:    settings.General,
		Appearance: settings.Appearance,
		SEO:        settings.SEO,
		Content: PublicContentSettings{
			PostsPerPage:        settings.Content.PostsPerPage,
			EnableComments:      settings.Content.EnableComments,
			ShowAuthorBio:       settings.Content.ShowAuthorBio,
			ShowReadingTime:     settings.Content.ShowReadingTime,
			EnableSocialSharing: settings.Content.EnableSocialSharing,
		},
	}
}
