// Package ingest implements bulk message intake from CSV: a
// quote-aware tokenizer, fuzzy header-to-role column mapping, and the
// import orchestrator that resolves customers and creates classified
// messages row by row.
package ingest
