// Package changelog turns commit history into a release-grouped document tree.
//
// This package implements:
//   - Commit resolution: normalizing raw commits (author, subject, UTC date, link)
//   - Classification: matching subjects against "kind(scope): text" and
//     filtering by the configured kinds and scopes
//   - Bucket assembly: grouping accepted commits by kind label and closing a
//     release group whenever the walk reaches an annotated tag
//   - Assembly of all configured repositories into one Changelog, failing the
//     whole run on the first repository error
//
// The resulting tree is ordered deterministically: releases newest first,
// kind groups in first-seen order, commits oldest first.
package changelog
