package promptvault

import "testing"

func BenchmarkParseFilename(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = ParseFilename("email_response_v2.1.md", DefaultExt)
	}
}

func BenchmarkParseVersion(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseVersion("2.1")
	}
}

func BenchmarkPlaceholders(b *testing.B) {
	body := "You are a technical writer for {company_name}. Document the {equipment_type} " +
		"installed at {site_name}. File the report under {site_name}."
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Placeholders(body)
	}
}

func BenchmarkCloneRecord(b *testing.B) {
	rec := &Record{
		Domain:  "energy_systems",
		UseCase: "technical_doc",
		Version: Version{Major: 2, Minor: 1},
		Metadata: Metadata{
			"Title": StringValue("Technical Documentation Generator"),
			"Tags":  ListValue{"documentation", "energy", "field-ops"},
		},
		Body: "Document the {equipment_type} at {site_name}.",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = CloneRecord(rec)
	}
}
