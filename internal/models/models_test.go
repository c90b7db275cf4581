// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/staygraph/internal/recommend"
)

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{4.444, 4.44},
		{1.236, 1.24},
		{7.999, 8},
		{-2.346, -2.35},
		{12, 12},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func sampleRecommendation() recommend.Recommendation {
	return recommend.Recommendation{
		NodeID:      1,
		HotelID:     12,
		Name:        "Lagoon",
		Location:    "Bodrum",
		HotelRating: 8.666,
		SelectedRatings: []recommend.SelectedRating{
			{Rating: 9.123, Importance: 5},
			{Rating: 7, Importance: 2},
		},
		OtherExperiences:    []recommend.ExperienceRating{{Name: "Spa", Rating: 6.789}},
		ExperienceCount:     3,
		AvgExperienceRating: 7.63733,
		IsInLocation:        true,
		FinalScore:          9.87654,
		Scores: recommend.Scores{
			PageRank:           0.0012345,
			NormalizedPageRank: 4.5678,
			Final:              9.87654,
		},
	}
}

func TestNewHotelRecommendation(t *testing.T) {
	t.Parallel()

	got := NewHotelRecommendation(sampleRecommendation())
	if got.HotelID != 12 || got.Name != "Lagoon" || got.Location != "Bodrum" || !got.IsInLocation {
		t.Errorf("identity fields = %+v", got)
	}
	if got.HotelRating != 8.67 || got.AvgExperienceRating != 7.64 || got.FinalScore != 9.88 {
		t.Errorf("rounded values = %v %v %v", got.HotelRating, got.AvgExperienceRating, got.FinalScore)
	}
	want := [][2]float64{{9.12, 5}, {7, 2}}
	if len(got.SelectedExperiencesRatings) != 2 || got.SelectedExperiencesRatings[0] != want[0] || got.SelectedExperiencesRatings[1] != want[1] {
		t.Errorf("SelectedExperiencesRatings = %v, want %v", got.SelectedExperiencesRatings, want)
	}
	if got.OtherExperiences[0].Rating != 6.79 {
		t.Errorf("OtherExperiences = %+v", got.OtherExperiences)
	}
}

func TestHotelRecommendation_JSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewHotelRecommendation(sampleRecommendation()))
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, key := range []string{
		`"hotel_id":12`, `"hotel_rating":8.67`, `"location":"Bodrum"`,
		`"selected_experiences_ratings":[[9.12,5],[7,2]]`, `"experience_count":3`,
		`"avg_experience_rating":7.64`, `"other_experiences":[{"name":"Spa","rating":6.79}]`,
		`"is_in_location":true`, `"final_score":9.88`,
	} {
		if !strings.Contains(s, key) {
			t.Errorf("JSON %s missing %s", s, key)
		}
	}
}

func TestNewExplainedRecommendation(t *testing.T) {
	t.Parallel()

	got := NewExplainedRecommendation(sampleRecommendation())
	if got.Scores.PageRank != 0.0012345 {
		t.Errorf("raw PageRank should not be rounded, got %v", got.Scores.PageRank)
	}
	if got.Scores.NormalizedPageRank != 4.57 || got.Scores.Final != 9.88 {
		t.Errorf("Scores = %+v", got.Scores)
	}
	if got.FinalScore != got.Scores.Final {
		t.Error("embedded final score and breakdown disagree")
	}
}

func TestEnvelopes(t *testing.T) {
	t.Parallel()

	ok := NewSuccess([]int{1}, Metadata{RequestID: "r1"})
	if ok.Status != StatusSuccess || ok.Error != nil || ok.Metadata.Timestamp.IsZero() {
		t.Errorf("NewSuccess() = %+v", ok)
	}

	failed := NewError("HOTEL_NOT_FOUND", "hotel not found", nil)
	data, err := json.Marshal(failed)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	if !strings.Contains(s, `"status":"error"`) || !strings.Contains(s, `"data":null`) ||
		!strings.Contains(s, `"code":"HOTEL_NOT_FOUND"`) || strings.Contains(s, "details") {
		t.Errorf("error envelope = %s", s)
	}
}
