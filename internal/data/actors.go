package data

// DiffActors reconciles the actor set of a movie. removed holds the ids in current that are not
// requested, added holds the requested ids that are not already current. Both keep the order of
// their source slice and never contain duplicates.
func DiffActors(current, requested []int64) (removed, added []int64) {
	want := make(map[int64]bool, len(requested))
	for _, id := range requested {
		want[id] = true
	}

	have := make(map[int64]bool, len(current))
	for _, id := range current {
		if !want[id] && !have[id] {
			removed = append(removed, id)
		}
		have[id] = true
	}

	for _, id := range requested {
		if !have[id] {
			added = append(added, id)
			have[id] = true
		}
	}

	return removed, added
}

// ActorIDs returns the ids of the movie's current actor set.
func (m *Movie) ActorIDs() []int64 {
	ids := make([]int64, 0, len(m.Actors))
	for _, p := range m.Actors {
		ids = append(ids, p.ID)
	}
	return ids
}
