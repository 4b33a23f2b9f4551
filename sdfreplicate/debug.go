// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package sdfreplicate

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/brinewave/sdfworld/sdfhost"
)

// json is configured the same way server/jsoniter.go configures its own
// API instance: deterministic key order and no HTML-escaping, since this
// output is for developer logs, not a browser.
var json = jsoniter.Config{
	EscapeHTML:   false,
	SortMapKeys:  true,
	TagKey:       "json",
	CaseSensitive: true,
}.Froze()

type cursorDump struct {
	Observer sdfhost.ObserverID `json:"observer"`
	Cursor   Cursor             `json:"cursor"`
}

// DebugJSON dumps every observer's cursor as JSON, a supplemented
// developer aid (SPEC_FULL.md §12) wiring json-iterator the way
// server/jsoniter.go does for its own debug/status endpoints.
func (s *Server) DebugJSON() (string, error) {
	dump := make([]cursorDump, 0, len(s.cursors))
	for id, cursor := range s.cursors {
		dump = append(dump, cursorDump{Observer: id, Cursor: *cursor})
	}
	b, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
