package service

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/agrisense/agrisense/internal/database/repository"
	"github.com/agrisense/agrisense/internal/zone"
)

// typoRatio allows one edit per this many query characters.
const typoRatio = 4

// ZoneService serves zone lookups for the map.
type ZoneService struct {
	Zones *repository.ZoneRepo
}

func (s *ZoneService) List(ctx context.Context) ([]zone.Zone, error) {
	return s.Zones.List(ctx)
}

func (s *ZoneService) Get(ctx context.Context, id string) (zone.Zone, error) {
	return s.Zones.Get(ctx, id)
}

// Search filters zones by id, name or crop. Exact id matches rank first,
// then id prefixes, substrings and finally words of the name or crop within
// a small edit distance. An empty query returns zones unchanged.
func Search(zones []zone.Zone, query string) []zone.Zone {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return zones
	}
	type hit struct {
		z     zone.Zone
		score int
		order int
	}
	var hits []hit
	for i, z := range zones {
		if score, ok := matchScore(z, q); ok {
			hits = append(hits, hit{z: z, score: score, order: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score < hits[j].score
		}
		return hits[i].order < hits[j].order
	})
	out := make([]zone.Zone, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.z)
	}
	return out
}

func matchScore(z zone.Zone, q string) (int, bool) {
	id := strings.ToUpper(z.ID)
	switch {
	case id == q:
		return 0, true
	case strings.HasPrefix(id, q):
		return 1, true
	}
	fields := []string{id, strings.ToUpper(z.Name), strings.ToUpper(z.CropType)}
	for _, f := range fields {
		if strings.Contains(f, q) {
			return 2, true
		}
	}
	allowed := len(q) / typoRatio
	if allowed == 0 {
		return 0, false
	}
	best := -1
	for _, tok := range strings.Fields(fields[1] + " " + fields[2]) {
		if strings.ContainsAny(tok, "0123456789") {
			continue
		}
		d := levenshtein.ComputeDistance(tok, q)
		if best < 0 || d < best {
			best = d
		}
	}
	if best >= 0 && best <= allowed {
		return 3 + best, true
	}
	return 0, false
}
