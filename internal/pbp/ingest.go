package pbp

// Ingest returns the actions of snapshot that have not been processed yet,
// in snapshot order, together with the new high-water mark.
//
// An action is new when its id is above every id accepted so far, including
// earlier ones in the same snapshot. Replayed or out-of-order ids are
// dropped, so feeding the same snapshot twice yields nothing the second time.
func Ingest(snapshot []Action, lastSeenID int) ([]Action, int) {
	maxID := lastSeenID

	var fresh []Action
	for _, action := range snapshot {
		if action.ID <= maxID {
			continue
		}
		fresh = append(fresh, action)
		maxID = action.ID
	}

	return fresh, maxID
}
