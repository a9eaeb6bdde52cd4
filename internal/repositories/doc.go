// Package repositories implements [models.SessionStore] backends.
//
// Key Implementations:
//   - [MemorySessionStore] : process-local map, the default backend
//   - [SQLiteSessionStore] : sessions table created by the shared migrations
//   - [RedisSessionStore] : JSON values with the idle window as key TTL
//
// Every backend copies records on the way in and out, treats expired sessions as missing,
// and is safe for concurrent use. Writes to one session are last-writer-wins.
package repositories
