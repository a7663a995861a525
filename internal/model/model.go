// Package model contains the statute domain types shared by every layer.
// Types here carry no persistence concerns.
package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// JurisdictionLabel turns a stored jurisdiction code such as "new_york"
// into its display form "New York".
func JurisdictionLabel(code string) string {
	// Casers are stateful; one per call.
	return cases.Title(language.English).String(strings.ReplaceAll(code, "_", " "))
}

// Jurisdiction is a catalog entry: the stored code and its display label.
type Jurisdiction struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// NewJurisdiction labels code.
func NewJurisdiction(code string) Jurisdiction {
	return Jurisdiction{Code: code, Label: JurisdictionLabel(code)}
}
