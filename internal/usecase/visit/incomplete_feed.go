package visit

import (
	"context"
	"time"

	"github.com/alphaclinic/clinic-manager/internal/cache"
	domain "github.com/alphaclinic/clinic-manager/internal/domain/visit"
	"github.com/alphaclinic/clinic-manager/internal/models"
)

const (
	feedScanLimit    = 50
	feedDisplayLimit = 10
)

// ======================================================
// FEED ENTRY
// ======================================================

type FeedEntry struct {
	VisitID       uint     `json:"visit_id"`
	ClientName    string   `json:"client_name"`
	ServiceName   string   `json:"service_name"`
	Area          string   `json:"area"`
	MissingFields []string `json:"missing_fields"`
	TimeSince     string   `json:"time_since"`
}

type FeedResult struct {
	Count  int         `json:"count"`
	Visits []FeedEntry `json:"visits"`
}

// ======================================================
// USE CASE
// ======================================================

// IncompleteFeed backs the needs-attention notification bell: scan the
// newest visits, keep the ones still missing clinical or payment data.
type IncompleteFeed struct {
	repo  domain.Repository
	cache *cache.IncompleteFeedCache

	now func() time.Time
}

func NewIncompleteFeed(repo domain.Repository, feedCache *cache.IncompleteFeedCache) *IncompleteFeed {
	return &IncompleteFeed{
		repo:  repo,
		cache: feedCache,
		now:   time.Now,
	}
}

func (uc *IncompleteFeed) Execute(ctx context.Context) (*FeedResult, error) {
	recent, err := uc.repo.ListRecent(ctx, feedScanLimit)
	if err != nil {
		return nil, err
	}

	incomplete := make([]models.Visit, 0, len(recent))
	for i := range recent {
		if !domain.IsComplete(&recent[i]) {
			incomplete = append(incomplete, recent[i])
		}
	}

	if len(incomplete) > feedDisplayLimit {
		incomplete = incomplete[:feedDisplayLimit]
	}

	if uc.cache != nil {
		uc.cache.SetCount(ctx, len(incomplete))
	}

	now := uc.now()
	entries := make([]FeedEntry, 0, len(incomplete))
	for i := range incomplete {
		v := &incomplete[i]
		entries = append(entries, FeedEntry{
			VisitID:       v.ID,
			ClientName:    v.Appointment.Client.FullName,
			ServiceName:   v.Appointment.Service.Name,
			Area:          v.Area,
			MissingFields: domain.MissingFields(v),
			TimeSince:     domain.TimeSince(v.CreatedAt, now),
		})
	}

	return &FeedResult{
		Count:  len(entries),
		Visits: entries,
	}, nil
}

// Count returns only the incomplete count, served from Redis when warm.
func (uc *IncompleteFeed) Count(ctx context.Context) (int, error) {
	if uc.cache != nil {
		if n, ok := uc.cache.GetCount(ctx); ok {
			return n, nil
		}
	}

	recent, err := uc.repo.ListRecent(ctx, feedScanLimit)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range recent {
		if !domain.IsComplete(&recent[i]) {
			count++
		}
	}
	if count > feedDisplayLimit {
		count = feedDisplayLimit
	}

	if uc.cache != nil {
		uc.cache.SetCount(ctx, count)
	}
	return count, nil
}
