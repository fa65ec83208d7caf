package database

import "embed"

//go:embed schemas/*.sql
var schemaFS embed.FS

// schemaFiles maps database names to their embedded schema files
var schemaFiles = map[string]string{
	"analytics": "schemas/analytics_schema.sql",
	"portfolio": "schemas/portfolio_schema.sql",
}

// schemaFor returns the embedded schema SQL for a database name
func schemaFor(name string) (string, bool) {
	file, ok := schemaFiles[name]
	if !ok {
		return "", false
	}

	content, err := schemaFS.ReadFile(file)
	if err != nil {
		return "", false
	}

	return string(content), true
}
