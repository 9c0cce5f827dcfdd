// Package fileregistry resolves versioned prompt records from a directory
// tree laid out as {root}/{domain}/{use_case}_v{major}.{minor}.md.
//
// Every operation scans the tree fresh, so results always reflect the files
// currently on disk. Wrap the registry with watchregistry when call volume
// makes per-call scanning too expensive.
package fileregistry
