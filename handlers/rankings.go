// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"slices"

	"github.com/danielhkuo/dateadvisor/models"
	"github.com/danielhkuo/dateadvisor/ranking"
)

// snapshotPayload is the JSON document stored in result_snapshot.payload.
type snapshotPayload struct {
	Rankings   []models.OptionResult `json:"rankings"`
	InputsHash string                `json:"inputs_hash"`
}

// ComputeEventRankings loads an event's options and responses, runs the
// ranking engine, and returns per-option results ordered best first
// (overall rank ascending, date ascending within ties). The second return
// is the number of responses that went into the computation.
func ComputeEventRankings(db *sql.DB, eventID string) ([]models.OptionResult, int, error) {
	options, err := loadEventOptions(db, eventID)
	if err != nil {
		return nil, 0, err
	}

	responses, err := loadEventResponses(db, eventID)
	if err != nil {
		return nil, 0, err
	}

	engineOptions := make([]ranking.Option, len(options))
	for i, opt := range options {
		engineOptions[i] = ranking.Option{ID: opt.ID, Date: opt.Date}
	}

	ranks := ranking.ComputeRankings(engineOptions, responses)

	results := make([]models.OptionResult, 0, len(options))
	for _, opt := range options {
		tuple := ranks[opt.ID]
		label := ranking.LabelFor(tuple, len(options))

		result := models.OptionResult{
			OptionID: opt.ID,
			Date:     opt.Date,
			Ranks:    tuple,
			Label:    label,
		}
		if badge, ok := label.Badge(); ok {
			result.Badge = &badge
		}
		results = append(results, result)
	}

	slices.SortStableFunc(results, func(a, b models.OptionResult) int {
		if a.Ranks.Overall != b.Ranks.Overall {
			return a.Ranks.Overall - b.Ranks.Overall
		}
		if a.Date < b.Date {
			return -1
		}
		if a.Date > b.Date {
			return 1
		}
		return 0
	})

	return results, len(responses), nil
}

// loadEventResponses reconstructs every response for an event, each with its
// full set of preference entries.
func loadEventResponses(db *sql.DB, eventID string) ([]ranking.Response, error) {
	rows, err := db.Query(`
		SELECT r.id, p.name
		FROM response r
		JOIN respondent p ON r.respondent_id = p.id
		WHERE r.event_id = $1
		ORDER BY r.submitted_at
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := []ranking.Response{}
	index := make(map[string]int)
	for rows.Next() {
		var responseID string
		var name *string
		if err := rows.Scan(&responseID, &name); err != nil {
			return nil, err
		}
		index[responseID] = len(responses)
		responses = append(responses, ranking.Response{Name: name})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	selectionRows, err := db.Query(`
		SELECT s.response_id, s.option_id, s.preference, s.uncertain
		FROM selected_option s
		JOIN response r ON s.response_id = r.id
		WHERE r.event_id = $1
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer selectionRows.Close()

	for selectionRows.Next() {
		var responseID, optionID string
		var preference, uncertain int
		if err := selectionRows.Scan(&responseID, &optionID, &preference, &uncertain); err != nil {
			return nil, err
		}

		i, ok := index[responseID]
		if !ok {
			continue
		}
		responses[i].SelectedOptions = append(responses[i].SelectedOptions, ranking.SelectedOption{
			OptionID:   optionID,
			Preference: preference,
			Uncertain:  uncertain != 0,
		})
	}

	return responses, selectionRows.Err()
}
