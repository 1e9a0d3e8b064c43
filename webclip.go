// Package webclip captures web page content and converts it to Markdown
// for storage in an external note-taking service. A registry of per-site
// extractors handles sites with known DOM idioms (video platforms, Q&A
// sites, encyclopedias, marketplaces, discussion forums); a readability
// fallback handles everything else. Both paths emit a normalized
// {title, content, metadata} record.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, readability/, http/),
// with clip/ providing orchestration.
package webclip
