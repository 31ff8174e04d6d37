package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripcraft/internal/allocation"
	"tripcraft/internal/catalog"
	"tripcraft/internal/extraction"
	"tripcraft/internal/models/response_models"
	"tripcraft/internal/models/trip_models"
	mem "tripcraft/pkg/memcache"
	"tripcraft/pkg/utils"
)

const (
	maxPromptLength = 4000
	seedStream      = 0x5851f42d4c957f2d
)

const (
	WarningNoActivities       = "no matching activities for the selected interests; the itinerary uses generic suggestions"
	warningAutoSelectedFormat = "destination auto-selected: %s"
	warningClampedFormat      = "duration clamped: %d days requested, planning %d"
	warningUnresolved         = "no destination could be resolved from the catalog"
)

type TripServiceInterface interface {
	ExtractPreferences(ctx context.Context, text string) (response_models.ExtractionResponse, error)
	GetDraft(ctx context.Context, id string) (response_models.DraftResponse, error)
	ReplaceDraft(ctx context.Context, id string, prefs trip_models.TripPreferences) (response_models.DraftResponse, error)
	DeleteDraft(ctx context.Context, id string) error
	PlanDraft(ctx context.Context, id string, opts PlanOptions) (response_models.ItineraryResponse, error)
	Plan(ctx context.Context, prefs trip_models.TripPreferences, opts PlanOptions) (response_models.ItineraryResponse, error)
}

type PlanOptions struct {
	// Seed makes the itinerary reproducible. A nil seed is generated and echoed back.
	Seed *uint64
	// Activities, when set, are the only catalog activities the itinerary may use. Each must be a
	// candidate for the destination and interests.
	Activities []string
}

type TripServiceConfig struct {
	DraftTTL time.Duration
	MaxDays  int
	// Now anchors flexible trips. Defaults to time.Now.
	Now func() time.Time
	// NewSeed picks a seed when the caller gives none. Defaults to rand.Uint64.
	NewSeed func() uint64
}

type TripService struct {
	catalog   *catalog.Catalog
	extractor *extraction.Extractor
	drafts    mem.DraftStore
	logger    *zap.Logger
	cfg       TripServiceConfig
}

func NewTripService(
	cat *catalog.Catalog,
	extractor *extraction.Extractor,
	drafts mem.DraftStore,
	logger *zap.Logger,
	cfg TripServiceConfig,
) TripServiceInterface {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewSeed == nil {
		cfg.NewSeed = rand.Uint64
	}
	if cfg.MaxDays < 1 {
		cfg.MaxDays = allocation.MaxDays
	}
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = 30 * time.Minute
	}
	return &TripService{
		catalog:   cat,
		extractor: extractor,
		drafts:    drafts,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *TripService) ExtractPreferences(ctx context.Context, text string) (response_models.ExtractionResponse, error) {
	if n := utf8.RuneCountInString(text); n > maxPromptLength {
		return response_models.ExtractionResponse{}, fmt.Errorf("%w: text is %d characters, limit is %d", utils.ErrInvalidInput, n, maxPromptLength)
	}

	result := s.extractor.Analyze(text)
	prefs := result.Preferences

	id := uuid.NewString()
	s.drafts.Set(id, prefs, s.cfg.DraftTTL)

	defaulted := make([]string, 0, len(result.Defaulted))
	for _, f := range result.Defaulted {
		defaulted = append(defaulted, string(f))
	}

	warnings := s.preferenceWarnings(prefs)
	if prefs.Destination == trip_models.UnresolvedDestination {
		warnings = append(warnings, warningUnresolved)
	}

	s.logger.Info("preferences extracted",
		zap.String("draft_id", id),
		zap.String("destination", prefs.Destination),
		zap.Int("duration_days", prefs.DurationDays()),
		zap.Strings("defaulted", defaulted),
	)

	return response_models.ExtractionResponse{
		DraftID:     id,
		ExpiresAt:   s.cfg.Now().Add(s.cfg.DraftTTL).Unix(),
		Preferences: prefs,
		Defaulted:   defaulted,
		Questions:   nonNil(extraction.FollowUpQuestions(result)),
		Warnings:    nonNil(warnings),
	}, nil
}

func (s *TripService) GetDraft(ctx context.Context, id string) (response_models.DraftResponse, error) {
	prefs, err := s.draft(id)
	if err != nil {
		return response_models.DraftResponse{}, err
	}
	return response_models.DraftResponse{DraftID: id, Preferences: prefs}, nil
}

// ReplaceDraft swaps the whole preference value after validating it. Partial edits are not merged.
func (s *TripService) ReplaceDraft(ctx context.Context, id string, prefs trip_models.TripPreferences) (response_models.DraftResponse, error) {
	normalized, _, err := s.validate(prefs)
	if err != nil {
		return response_models.DraftResponse{}, err
	}
	if !s.drafts.Replace(id, normalized, s.cfg.DraftTTL) {
		return response_models.DraftResponse{}, utils.ErrDraftNotFound
	}
	s.logger.Info("draft replaced", zap.String("draft_id", id), zap.String("destination", normalized.Destination))
	return response_models.DraftResponse{DraftID: id, Preferences: normalized}, nil
}

func (s *TripService) DeleteDraft(ctx context.Context, id string) error {
	if !s.drafts.Delete(id) {
		return utils.ErrDraftNotFound
	}
	return nil
}

func (s *TripService) PlanDraft(ctx context.Context, id string, opts PlanOptions) (response_models.ItineraryResponse, error) {
	prefs, err := s.draft(id)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}
	return s.Plan(ctx, prefs, opts)
}

func (s *TripService) Plan(ctx context.Context, prefs trip_models.TripPreferences, opts PlanOptions) (response_models.ItineraryResponse, error) {
	if err := ctx.Err(); err != nil {
		return response_models.ItineraryResponse{}, err
	}

	normalized, dest, err := s.validate(prefs)
	if err != nil {
		return response_models.ItineraryResponse{}, err
	}

	candidates, categoryOf := s.catalog.Candidates(dest.Key, normalized.Interests)
	if len(opts.Activities) > 0 {
		if candidates, err = approved(opts.Activities, candidates, dest); err != nil {
			return response_models.ItineraryResponse{}, err
		}
	}

	chosen := s.cfg.NewSeed()
	if opts.Seed != nil {
		chosen = *opts.Seed
	}

	days, err := allocation.Allocate(normalized, candidates, categoryOf, allocation.Options{
		Rand:    rand.New(rand.NewPCG(chosen, chosen^seedStream)),
		Now:     s.cfg.Now,
		MaxDays: s.cfg.MaxDays,
	})
	if err != nil {
		if errors.Is(err, allocation.ErrNonPositiveDuration) {
			return response_models.ItineraryResponse{}, fmt.Errorf("%w: %v", utils.ErrInvalidDuration, err)
		}
		return response_models.ItineraryResponse{}, err
	}

	warnings := s.preferenceWarnings(normalized)
	if len(candidates) == 0 {
		warnings = append(warnings, WarningNoActivities)
	}

	s.logger.Info("itinerary planned",
		zap.String("destination", dest.Key),
		zap.Uint64("seed", chosen),
		zap.Int("days", len(days)),
		zap.Int("candidates", len(candidates)),
	)

	return response_models.ItineraryResponse{
		Destination:     dest.Key,
		DestinationName: dest.Name,
		Country:         dest.Country,
		CatalogVersion:  s.catalog.Version(),
		Seed:            chosen,
		DurationDays:    len(days),
		Days:            days,
		Warnings:        nonNil(warnings),
	}, nil
}

// approved keeps the candidates the caller picked, in the caller's order. Names match
// case-insensitively and repeats are dropped.
func approved(picked, candidates []string, dest catalog.Destination) ([]string, error) {
	byName := make(map[string]string, len(candidates))
	for _, name := range candidates {
		byName[strings.ToLower(name)] = name
	}

	out := make([]string, 0, len(picked))
	seen := make(map[string]bool, len(picked))
	for _, raw := range picked {
		name, ok := byName[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			return nil, fmt.Errorf("%w: activity %q is not offered in %s for the selected interests", utils.ErrInvalidPreferences, raw, dest.Name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

func (s *TripService) draft(id string) (trip_models.TripPreferences, error) {
	if _, err := uuid.Parse(id); err != nil {
		return trip_models.TripPreferences{}, utils.ErrDraftNotFound
	}
	prefs, ok := s.drafts.Get(id)
	if !ok {
		return trip_models.TripPreferences{}, utils.ErrDraftNotFound
	}
	return prefs, nil
}

// validate checks preferences against the catalog and vocabularies and fills blank free-text fields
// with their sentinels.
func (s *TripService) validate(prefs trip_models.TripPreferences) (trip_models.TripPreferences, catalog.Destination, error) {
	dest, ok := s.catalog.Resolve(prefs.Destination)
	if !ok {
		return prefs, catalog.Destination{}, fmt.Errorf("%w: %q", utils.ErrUnknownDestination, prefs.Destination)
	}
	prefs.Destination = dest.Key

	prefs.Budget = trip_models.BudgetTier(strings.ToLower(strings.TrimSpace(string(prefs.Budget))))
	if !prefs.Budget.Valid() {
		return prefs, dest, fmt.Errorf("%w: budget_tier %q", utils.ErrInvalidPreferences, prefs.Budget)
	}

	for _, i := range prefs.Interests {
		if !trip_models.Interest(strings.ToLower(strings.TrimSpace(string(i)))).Valid() {
			return prefs, dest, fmt.Errorf("%w: unknown interest %q", utils.ErrInvalidPreferences, i)
		}
	}
	prefs.Interests = trip_models.NormalizeInterests(prefs.Interests)
	if len(prefs.Interests) == 0 {
		return prefs, dest, fmt.Errorf("%w: at least one interest is required", utils.ErrInvalidPreferences)
	}

	if prefs.DurationDays() < 1 {
		return prefs, dest, utils.ErrInvalidDuration
	}

	prefs.Pace = trip_models.Pace(strings.ToLower(strings.TrimSpace(string(prefs.Pace))))
	if prefs.Pace == "" {
		prefs.Pace = trip_models.PaceModerate
	}
	if !prefs.Pace.Valid() {
		return prefs, dest, fmt.Errorf("%w: pace %q", utils.ErrInvalidPreferences, prefs.Pace)
	}

	prefs.Origin = orSentinel(prefs.Origin, trip_models.UnspecifiedOrigin)
	prefs.Dietary = orSentinel(prefs.Dietary, trip_models.NoDietaryRestriction)
	prefs.Accommodation = orSentinel(prefs.Accommodation, trip_models.UnspecifiedLodging)

	return prefs, dest, nil
}

func (s *TripService) preferenceWarnings(prefs trip_models.TripPreferences) []string {
	var warnings []string
	if prefs.DestinationAutoSelected {
		warnings = append(warnings, fmt.Sprintf(warningAutoSelectedFormat, prefs.Destination))
	}
	if days := prefs.DurationDays(); days > s.cfg.MaxDays {
		warnings = append(warnings, fmt.Sprintf(warningClampedFormat, days, s.cfg.MaxDays))
	}
	return warnings
}

func orSentinel(v, sentinel string) string {
	if v = strings.TrimSpace(v); v == "" {
		return sentinel
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
