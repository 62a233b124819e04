// Package testdb provides connections for the storage integration tests.
//
// PostgreSQL tests share one migrated connection pool per test binary. Tests
// that need isolation without truncating can run inside WithTx, whose
// transaction is always rolled back:
//
//	db := testdb.GetTestDBWithT(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	    tasks := postgres.NewPostgresTaskStore(tx, nil)
//	    // ...
//	})
//
// MongoDB tests get a database of their own that is dropped on cleanup.
//
// When no backend is configured the tests skip, except under CI where a
// missing backend fails the test.
package testdb
