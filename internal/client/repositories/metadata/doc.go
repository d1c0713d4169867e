// Package metadata persists named client state slots (the session
// credential among them) in the local SQLite "metadata" table.
//
// SQLiteRepository works over dbx.DBTX, so several slots can be written in
// one transaction by binding a repository to the *sql.Tx handed out by
// dbx.WithTx.
package metadata
