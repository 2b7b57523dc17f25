package service

import (
	"context"
	"strings"

	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// checkinAPI is the slice of the Chekin client the resolver needs.
type checkinAPI interface {
	SignupLink(ctx context.Context, reservationID int64) (string, bool)
	Available() bool
}

// linkCache is the optional Redis cache in front of Chekin.
type linkCache interface {
	GetCheckinLink(ctx context.Context, reservationID int64) (string, bool, error)
	CacheCheckinLink(ctx context.Context, reservationID int64, link string) error
}

// LinkResolver resolves check-in links cache-first. The cache is
// best-effort on both paths: a cache failure only means an extra Chekin
// round trip.
type LinkResolver struct {
	chekin checkinAPI
	cache  linkCache
}

func NewLinkResolver(chekin checkinAPI, cache linkCache) *LinkResolver {
	return &LinkResolver{chekin: chekin, cache: cache}
}

func (l *LinkResolver) Available() bool {
	return l.chekin.Available()
}

func (l *LinkResolver) SignupLink(ctx context.Context, reservationID int64) (string, bool) {
	if l.cache != nil {
		link, ok, err := l.cache.GetCheckinLink(ctx, reservationID)
		if err != nil {
			logger.Warnf("Link cache read failed for reservation %d: %v", reservationID, err)
		} else if ok && strings.HasPrefix(link, "http") {
			return link, true
		}
	}

	link, ok := l.chekin.SignupLink(ctx, reservationID)
	if !ok {
		return "", false
	}

	if l.cache != nil {
		if err := l.cache.CacheCheckinLink(ctx, reservationID, link); err != nil {
			logger.Warnf("Link cache write failed for reservation %d: %v", reservationID, err)
		}
	}

	return link, true
}
