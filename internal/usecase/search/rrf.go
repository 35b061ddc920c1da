package search

import "sort"

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// fuseRRF merges two consultant ID rankings via Reciprocal Rank Fusion.
// score(c) = sum of 1/(k + rank_i(c)) for each ranking where c appears.
// Ties break on ID so the fused order is deterministic for identical inputs.
func fuseRRF(structured, semantic []string, topK int) []string {
	type scored struct {
		id    string
		score float64
	}

	merged := make(map[string]float64, len(structured)+len(semantic))

	for rank, id := range structured {
		merged[id] += 1.0 / float64(rrfK+rank+1)
	}
	for rank, id := range semantic {
		merged[id] += 1.0 / float64(rrfK+rank+1)
	}

	fused := make([]scored, 0, len(merged))
	for id, s := range merged {
		fused = append(fused, scored{id: id, score: s})
	}

	sort.Slice(fused, func(i, j int) bool {
		if fused[i].score != fused[j].score {
			return fused[i].score > fused[j].score
		}
		return fused[i].id < fused[j].id
	})

	if len(fused) > topK {
		fused = fused[:topK]
	}

	ids := make([]string, len(fused))
	for i, s := range fused {
		ids[i] = s.id
	}
	return ids
}
