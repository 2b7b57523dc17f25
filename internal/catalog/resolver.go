package catalog

import (
	"context"
	"fmt"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/pkg/hostify"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// listingAPI is the slice of the Hostify client the resolver needs.
type listingAPI interface {
	ListListings(ctx context.Context, page int) (*hostify.ListingsPage, error)
	ListChannelListings(ctx context.Context, parentID int64, page int) (*hostify.ChannelListingsPage, error)
}

// Resolver expands the account's primary listings into the complete
// addressable catalog: every primary immediately followed by its
// channel-derived secondaries, in discovery order, each id exactly once.
type Resolver struct {
	api             listingAPI
	maxChannelPages int
}

func NewResolver(api listingAPI, maxChannelPages int) *Resolver {
	if maxChannelPages <= 0 {
		maxChannelPages = 20
	}
	return &Resolver{api: api, maxChannelPages: maxChannelPages}
}

func (r *Resolver) Resolve(ctx context.Context) (*domain.Catalog, error) {
	primaries, err := r.fetchPrimaries(ctx)
	if err != nil {
		return nil, err
	}

	catalog := &domain.Catalog{}
	seen := make(map[int64]bool)

	for _, p := range primaries {
		id := p.EffectiveID()
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true

		catalog.PrimaryIDs = append(catalog.PrimaryIDs, id)
		catalog.Listings = append(catalog.Listings, domain.Listing{
			ID:   id,
			Name: p.DisplayName(),
			Role: domain.RolePrimary,
		})

		for _, ch := range r.fetchChannelListings(ctx, id) {
			chID := ch.EffectiveID()
			if chID == 0 || seen[chID] {
				continue
			}
			seen[chID] = true

			catalog.Listings = append(catalog.Listings, domain.Listing{
				ID:       chID,
				Name:     ch.DisplayName(),
				Role:     domain.RoleSecondary,
				ParentID: id,
			})
		}
	}

	logger.Infof("Catalog resolved: %d primaries, %d listings total", len(catalog.PrimaryIDs), len(catalog.Listings))

	return catalog, nil
}

func (r *Resolver) fetchPrimaries(ctx context.Context) ([]hostify.Listing, error) {
	var all []hostify.Listing

	for page := 1; ; page++ {
		resp, err := r.api.ListListings(ctx, page)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("listing discovery failed: %w", err)
			}
			// Later pages: keep what we have rather than aborting the
			// whole campaign.
			logger.Warnf("Listing discovery stopped at page %d: %v", page, err)
			break
		}

		all = append(all, resp.Listings...)
		logger.Debugf("Listings page %d: %d records", page, len(resp.Listings))

		if resp.NextPage == nil || (resp.Total > 0 && len(all) >= resp.Total) || len(resp.Listings) == 0 {
			break
		}
	}

	return all, nil
}

// fetchChannelListings pulls one primary's channel projections. Errors
// yield zero secondaries for that primary; the page cap guards against
// runaway pagination and reaching it means "no more data", not a failure.
func (r *Resolver) fetchChannelListings(ctx context.Context, parentID int64) []hostify.Listing {
	var all []hostify.Listing

	for page := 1; page <= r.maxChannelPages; page++ {
		resp, err := r.api.ListChannelListings(ctx, parentID, page)
		if err != nil {
			logger.Warnf("Channel listing discovery failed for listing %d (page %d): %v", parentID, page, err)
			break
		}

		all = append(all, resp.ChannelListings...)

		if resp.NextPage == nil || (resp.Total > 0 && len(all) >= resp.Total) || len(resp.ChannelListings) == 0 {
			break
		}
	}

	return all
}
