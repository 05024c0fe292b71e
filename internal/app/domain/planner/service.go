// Package planner owns plan generation: destination search enrichment,
// the LLM call and plan history.
package planner

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/WUZhiyun112/travelplanner/internal/app/models"
)

// DestinationSearcher supplies background material for a destination.
type DestinationSearcher interface {
	DestinationInfo(ctx context.Context, destination, preferences string) []models.SearchResult
}

// Repository persists generated plans. Implementations must tolerate
// being nil-checked by the service: history is best effort.
type Repository interface {
	SavePlan(ctx context.Context, rec models.PlanRecord) error
	RecentPlans(ctx context.Context, limit int) ([]models.PlanRecord, error)
}

// Service generates travel plans.
type Service struct {
	llm        Generator
	search     DestinationSearcher
	repo       Repository
	llmTimeout time.Duration
	log        *zap.Logger
}

// NewService wires the planner. search and repo may be nil; generation
// then runs without enrichment or history.
func NewService(llm Generator, search DestinationSearcher, repo Repository, llmTimeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &Service{
		llm:        llm,
		search:     search,
		repo:       repo,
		llmTimeout: llmTimeout,
		log:        log,
	}
}

// GeneratePlan builds the prompt, calls the model and returns the plan
// text plus the references backing it.
func (s *Service) GeneratePlan(ctx context.Context, req models.ItineraryRequest) (string, []models.Reference, error) {
	var material []models.SearchResult
	if s.search != nil {
		s.log.Info("Searching destination info", zap.String("destination", req.Destination))
		material = s.search.DestinationInfo(ctx, req.Destination, req.Preferences)
	}

	prompt := BuildPrompt(req, material)

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	s.log.Info("Calling plan generator",
		zap.String("destination", req.Destination),
		zap.String("days", req.Days.String()),
		zap.Int("sources", len(material)),
	)
	plan, err := s.llm.Generate(llmCtx, prompt)
	if err != nil {
		return "", nil, err
	}

	refs := referencesFrom(material)
	s.savePlan(ctx, req, plan)
	return plan, refs, nil
}

// RecentPlans returns the newest persisted plans, or nothing when history
// is disabled.
func (s *Service) RecentPlans(ctx context.Context, limit int) ([]models.PlanRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.RecentPlans(ctx, limit)
}

// savePlan records history. Failures are logged, never returned: a plan
// the user already has must not be reported as an error.
func (s *Service) savePlan(ctx context.Context, req models.ItineraryRequest, plan string) {
	if s.repo == nil {
		return
	}
	rec := models.PlanRecord{
		ID:          uuid.New(),
		Days:        req.Days.String(),
		Destination: req.Destination,
		Budget:      req.Budget,
		Preferences: req.Preferences,
		Plan:        plan,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.SavePlan(ctx, rec); err != nil {
		s.log.Warn("Failed to save plan history", zap.Error(err))
	}
}

// referencesFrom converts live search material into plan references.
// Link-only fallback entries are not real sources and are skipped.
func referencesFrom(results []models.SearchResult) []models.Reference {
	var refs []models.Reference
	for _, r := range results {
		if r.IsLinkOnly {
			continue
		}
		if strings.TrimSpace(r.Title) == "" && r.Link == "" {
			continue
		}
		refs = append(refs, models.Reference{Title: r.Title, Link: r.Link})
	}
	return refs
}
