package indexdb

// Read helpers for ops tooling. These run against the same single
// connection; callers should Sync first if they need the latest writes.

func (s *SQLiteIndex) AuditCountFor(actorID string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM craft_audit WHERE actor = ?`, actorID).Scan(&n)
	return n, err
}

func (s *SQLiteIndex) CraftCompletions(craftID string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM craft_audit WHERE craft_id = ? AND action IN ('CRAFT_DONE','BUILD_DONE')`,
		craftID,
	).Scan(&n)
	return n, err
}

func (s *SQLiteIndex) LatestSnapshot() (tick uint64, path string, err error) {
	err = s.db.QueryRow(
		`SELECT tick, path FROM snapshots ORDER BY tick DESC LIMIT 1`,
	).Scan(&tick, &path)
	return
}

func (s *SQLiteIndex) TickCount() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM ticks`).Scan(&n)
	return n, err
}
