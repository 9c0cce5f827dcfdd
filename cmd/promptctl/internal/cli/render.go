package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/skosovsky/promptvault"
)

// writeJSON emits v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderVersions prints a version table, newest first.
func renderVersions(w io.Writer, infos []promptvault.VersionInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "no versions found")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATUS\tFILE\tSIZE\tMODIFIED")
	for i, info := range infos {
		status := "Archived"
		if i == 0 {
			status = "Active (Recommended)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			info.Version, status, filepath.Base(info.Path), info.Size,
			info.ModTime.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

// renderRecord prints the record header, its metadata fields, the placeholder
// names found in the body, and the body itself.
func renderRecord(w io.Writer, rec *promptvault.Record) {
	fmt.Fprintf(w, "%s/%s v%s (%s)\n\n", rec.Domain, rec.UseCase, rec.Version, filepath.Base(rec.Path))
	for _, field := range rec.Metadata.Fields() {
		switch v := rec.Metadata[field].(type) {
		case promptvault.StringValue:
			fmt.Fprintf(w, "%s: %s\n", field, string(v))
		case promptvault.ListValue:
			fmt.Fprintf(w, "%s: %s\n", field, strings.Join(v, ", "))
		}
	}
	if names := promptvault.Placeholders(rec.Body); len(names) > 0 {
		quoted := make([]string, len(names))
		for i, name := range names {
			quoted[i] = "{" + name + "}"
		}
		fmt.Fprintf(w, "Placeholders: %s\n", strings.Join(quoted, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", rec.Body)
}
