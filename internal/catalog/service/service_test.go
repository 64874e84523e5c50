package service

import (
	"strings"
	"testing"

	"autocenter_backend/internal/catalog/repository"
)

func TestSlugFor(t *testing.T) {
	s := &Service{}

	slug := s.slugFor("BMW", "3-Series Touring", 2018)
	if !strings.HasPrefix(slug, "bmw-3-series-touring-2018-") {
		t.Fatalf("unexpected slug %q", slug)
	}
	if strings.ContainsAny(slug, " ÄÖå") {
		t.Fatalf("slug must be lowercase ascii, got %q", slug)
	}

	// The random suffix keeps repeated listings distinct.
	if slug == s.slugFor("BMW", "3-Series Touring", 2018) {
		t.Fatal("expected distinct slugs for identical vehicles")
	}
}

func TestCacheable(t *testing.T) {
	// The shape ListVehicles builds for a plain GET /cars: the status
	// filter defaults to AVAILABLE and must stay on the cached path.
	if !cacheable(repository.ListFilter{Status: repository.StatusAvailable, Page: 1, Limit: 10}) {
		t.Fatal("expected handler-default first page to be cacheable")
	}
	if !cacheable(repository.ListFilter{Page: 1, Limit: 10}) {
		t.Fatal("expected unfiltered first page to be cacheable")
	}
	if !cacheable(repository.ListFilter{Page: 3}) {
		t.Fatal("expected default limit to be cacheable")
	}
	if cacheable(repository.ListFilter{Status: repository.StatusSold, Page: 1, Limit: 10}) {
		t.Fatal("non-default statuses are not cacheable")
	}
	if cacheable(repository.ListFilter{Page: 4, Limit: 10}) {
		t.Fatal("deep pages are not cacheable")
	}
	if cacheable(repository.ListFilter{Status: repository.StatusAvailable, Page: 1, Limit: 10, Make: "BMW"}) {
		t.Fatal("filtered queries are not cacheable")
	}
	if cacheable(repository.ListFilter{Page: 1, Limit: 50}) {
		t.Fatal("non-default page sizes are not cacheable")
	}
}

func TestListCacheKeySeparatesStatuses(t *testing.T) {
	available := listCacheKey(repository.ListFilter{Status: repository.StatusAvailable, Page: 1, Limit: 10})
	unfiltered := listCacheKey(repository.ListFilter{Page: 1, Limit: 10})

	if available == unfiltered {
		t.Fatalf("status variants must not share a cache key: %q", available)
	}
	if available != "catalog:list:available:p1:l10" {
		t.Fatalf("unexpected key %q", available)
	}
	if unfiltered != "catalog:list:all:p1:l10" {
		t.Fatalf("unexpected key %q", unfiltered)
	}
}
