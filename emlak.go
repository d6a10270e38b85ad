// Package emlak extracts structured real-estate listing records from HTML
// pages of uncertain structure and persists them to tabular stores.
//
// Extraction is a cascade: embedded structured state first, then CSS
// selection and attribute tables, then regular expressions over the page
// text, then a default chosen by a DefaultPolicy. Every field of a Listing
// is always populated.
//
// This package contains domain types, pure normalizers and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package emlak
