// Package journal is the domain model shared by the client and the server:
// daily entries, to-do items, media, quotes and calendar events, plus the
// pure rules that operate on them (featured-image policy, todo completion,
// canonical snapshots).
package journal
