package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/born05/schematic/internal/core/domain"
	"github.com/born05/schematic/internal/core/ports/driven"
)

// SiteMapper maps sites. The fragment is a sequence whose order is the
// site sort order. Forced imports delete sites missing from the
// document, except the primary site.
type SiteMapper struct {
	store driven.RecordStore[domain.Site]
}

var _ Mapper = (*SiteMapper)(nil)

// NewSiteMapper creates a site mapper.
func NewSiteMapper(store driven.RecordStore[domain.Site]) *SiteMapper {
	return &SiteMapper{store: store}
}

// Handle returns the mapper handle.
func (m *SiteMapper) Handle() string { return MapperSites }

// Export converts sites into [{handle, name, language, ...}] in sort order.
func (m *SiteMapper) Export(_ context.Context, records []domain.Record, _ *References) (any, *domain.MapperResult) {
	res := domain.NewMapperResult(domain.DataTypeSites)
	fragment := make([]any, 0, len(records))

	sites, err := castRecords[domain.Site](records)
	if err != nil {
		res.Fail(err)
		return fragment, res
	}
	for _, s := range sites {
		entry := map[string]any{
			"handle":   s.Handle,
			"name":     s.Name,
			"language": s.Language,
			"hasUrls":  s.HasURLs,
			"primary":  s.Primary,
		}
		if s.BaseURL != "" {
			entry["baseUrl"] = s.BaseURL
		}
		fragment = append(fragment, entry)
	}
	return fragment, res
}

// Import reconciles sites. The list order is the site order: when it
// matches the live order, live sort orders are kept and new sites sort
// after them; otherwise sort orders are renumbered from list positions.
func (m *SiteMapper) Import(ctx context.Context, fragment any, force bool, _ *References) *domain.MapperResult {
	res := domain.NewMapperResult(domain.DataTypeSites)
	entries, err := listEntries(fragment, "handle")
	if err != nil {
		return fragmentError(res, err)
	}

	primaries := 0
	for _, e := range entries {
		if e.values.Bool("primary") {
			primaries++
		}
	}
	if primaries > 1 {
		return fragmentError(res, fmt.Errorf("%w: %d sites marked primary", domain.ErrInvalidFragment, primaries))
	}

	live, err := m.store.List(ctx)
	if err != nil {
		res.Fail(fmt.Errorf("list sites: %w", err))
		return res
	}
	sortOrders := siteSortOrders(live, entries)

	im := importer[domain.Site]{
		noun:   "site",
		store:  m.store,
		withID: domain.Site.WithID,
		decode: func(_ context.Context, e entry, _ *domain.MapperResult) (domain.Site, error) {
			return domain.Site{
				Handle:    e.key,
				Name:      e.values.String("name"),
				Language:  e.values.String("language"),
				BaseURL:   e.values.String("baseUrl"),
				HasURLs:   e.values.Bool("hasUrls"),
				Primary:   e.values.Bool("primary"),
				SortOrder: sortOrders[e.key],
			}, nil
		},
		prunable: func(s domain.Site) bool { return !s.Primary },
	}
	im.run(ctx, entries, force, res)
	return res
}

// siteSortOrders picks the sort order of every site in entries. Live
// sort orders are kept when the document lists the live sites in their
// current order and new sites only after them.
func siteSortOrders(live []domain.Site, entries []entry) map[string]int {
	sort.SliceStable(live, func(i, j int) bool { return bySortOrder(live[i], live[j]) })

	current := make(map[string]domain.Site, len(live))
	last := 0
	for _, s := range live {
		current[s.Handle] = s
		last = max(last, s.SortOrder)
	}

	orders := make(map[string]int, len(entries))
	kept, rank, appending := true, 0, false
	for _, e := range entries {
		if _, dup := orders[e.key]; dup {
			continue
		}
		s, exists := current[e.key]
		if !exists {
			appending = true
			last++
			orders[e.key] = last
			continue
		}
		if appending || !liveRankMatches(live, &rank, e.key) {
			kept = false
			break
		}
		orders[e.key] = s.SortOrder
	}
	if kept {
		return orders
	}

	orders = make(map[string]int, len(entries))
	for _, e := range entries {
		if _, dup := orders[e.key]; !dup {
			orders[e.key] = e.index + 1
		}
	}
	return orders
}

// liveRankMatches advances rank past live sites missing from the
// document and reports whether key is the next live site.
func liveRankMatches(live []domain.Site, rank *int, key string) bool {
	for *rank < len(live) {
		handle := live[*rank].Handle
		*rank++
		if handle == key {
			return true
		}
	}
	return false
}
