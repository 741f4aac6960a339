// Package schemas ships the JSON Schemas for the documents the service
// exchanges with the LLM and with clients.
package schemas

import _ "embed"

// Analysis is the schema for a raw, pre-normalisation analysis document.
//
//go:embed analysis.schema.json
var Analysis string

// Answers is the schema for questionnaire answers.
//
//go:embed answers.schema.json
var Answers string
