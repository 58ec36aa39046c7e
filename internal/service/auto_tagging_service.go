package service

import (
	"context"
	"eventhub_backend/internal/repository"
	"eventhub_backend/pkg/logger"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
)

const taggingBatchSize = 500

// categoryKeywords maps each category tag to words that suggest it.
var categoryKeywords = map[string][]string{
	"party":         {"party", "rave", "birthday", "club", "dj"},
	"convention":    {"convention", "con", "comic", "expo"},
	"trade":         {"trade", "b2b", "wholesale", "supplier"},
	"seminar":       {"seminar", "workshop", "lecture", "talk", "webinar"},
	"meeting":       {"meeting", "meetup", "gathering", "assembly"},
	"business":      {"business", "startup", "networking", "summit", "pitch"},
	"wedding":       {"wedding", "bridal", "marriage", "reception"},
	"corporation":   {"corporate", "company", "offsite", "retreat", "agm"},
	"exhibition":    {"exhibition", "gallery", "showcase", "art", "museum"},
	"festival":      {"festival", "fest", "carnival", "celebration"},
	"fair":          {"fair", "bazaar", "market", "career"},
	"parade":        {"parade", "march", "procession", "pride"},
	"food_festival": {"food", "taste", "culinary", "wine", "beer", "bbq"},
}

// SuggestTags returns the category tags whose keywords appear in text, sorted.
func SuggestTags(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[w] = true
	}

	var tags []string
	for tag, keywords := range categoryKeywords {
		for _, k := range keywords {
			if seen[k] {
				tags = append(tags, tag)
				break
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// AutoTaggingService fills in event_category rows for events created without
// tags, guessing categories from the event name and location.
type AutoTaggingService struct {
	CategoryRepo *repository.EventCategoryRepository
}

func NewAutoTaggingService(categoryRepo *repository.EventCategoryRepository) *AutoTaggingService {
	return &AutoTaggingService{CategoryRepo: categoryRepo}
}

// RunAutoTagging tags one batch of uncategorized events and reports how many
// were tagged.
func (s *AutoTaggingService) RunAutoTagging(ctx context.Context) (int, error) {
	events, err := s.CategoryRepo.UncategorizedEvents(ctx, taggingBatchSize)
	if err != nil {
		logger.Log.Error("Failed to load uncategorized events", zap.Error(err))
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	logger.Log.Info("Auto-tagging events", zap.Int("count", len(events)))

	tagged := 0
	for _, ev := range events {
		tags := SuggestTags(ev.Name + " " + ev.Location)
		// an empty row still marks the event as processed
		if _, err := s.CategoryRepo.Upsert(ctx, ev.ID, tags); err != nil {
			logger.Log.Warn("Failed to tag event", zap.String("event_id", ev.ID), zap.Error(err))
			continue
		}
		if len(tags) == 0 {
			continue
		}
		tagged++
		logger.Log.Debug("Event tagged", zap.String("event_id", ev.ID), zap.Strings("tags", tags))
	}

	logger.Log.Info("Auto-tagging completed", zap.Int("tagged", tagged), zap.Int("total", len(events)))
	return tagged, nil
}

// Start runs RunAutoTagging every interval until ctx is done.
func (s *AutoTaggingService) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.RunAutoTagging(ctx)
		}
	}
}

