// Package frontier provides the scheduling and policy core of a web
// crawler: a FIFO crawl frontier with depth and page bounds, a
// politeness/scope policy engine (domain allow-lists, robots.txt rules,
// per-host rate limits), and idempotent URL/content deduplication.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, http/). The engine itself lives in crawl/.
package frontier
