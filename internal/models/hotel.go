// StayGraph - Personalized Hotel Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staygraph

package models

import (
	"math"

	"github.com/tomtom215/staygraph/internal/recommend"
)

// HotelRecommendation is one ranked hotel as returned by the API.
type HotelRecommendation struct {
	HotelID     int64   `json:"hotel_id"`
	Name        string  `json:"name"`
	HotelRating float64 `json:"hotel_rating"`
	Location    string  `json:"location"`

	// SelectedExperiencesRatings pairs the hotel's rating of each requested
	// experience with the requested importance: [[rating, importance], ...].
	SelectedExperiencesRatings [][2]float64 `json:"selected_experiences_ratings"`

	ExperienceCount     int                          `json:"experience_count"`
	AvgExperienceRating float64                      `json:"avg_experience_rating"`
	OtherExperiences    []recommend.ExperienceRating `json:"other_experiences"`
	IsInLocation        bool                         `json:"is_in_location"`
	FinalScore          float64                      `json:"final_score"`
}

// ExplainedRecommendation adds the score breakdown.
type ExplainedRecommendation struct {
	HotelRecommendation
	Scores recommend.Scores `json:"scores"`
}

// NewHotelRecommendation converts an engine result for display.
//
//nolint:gocritic // Recommendation is passed by value to mirror the engine's slice element
func NewHotelRecommendation(rec recommend.Recommendation) HotelRecommendation {
	selected := make([][2]float64, len(rec.SelectedRatings))
	for i, s := range rec.SelectedRatings {
		selected[i] = [2]float64{Round2(s.Rating), float64(s.Importance)}
	}
	others := make([]recommend.ExperienceRating, len(rec.OtherExperiences))
	for i, o := range rec.OtherExperiences {
		others[i] = recommend.ExperienceRating{Name: o.Name, Rating: Round2(o.Rating)}
	}
	return HotelRecommendation{
		HotelID:                    rec.HotelID,
		Name:                       rec.Name,
		HotelRating:                Round2(rec.HotelRating),
		Location:                   rec.Location,
		SelectedExperiencesRatings: selected,
		ExperienceCount:            rec.ExperienceCount,
		AvgExperienceRating:        Round2(rec.AvgExperienceRating),
		OtherExperiences:           others,
		IsInLocation:               rec.IsInLocation,
		FinalScore:                 Round2(rec.FinalScore),
	}
}

// NewExplainedRecommendation converts an engine result with its breakdown.
//
//nolint:gocritic // see NewHotelRecommendation
func NewExplainedRecommendation(rec recommend.Recommendation) ExplainedRecommendation {
	s := rec.Scores
	return ExplainedRecommendation{
		HotelRecommendation: NewHotelRecommendation(rec),
		Scores: recommend.Scores{
			AvgExperience:      Round2(s.AvgExperience),
			SelectedExperience: Round2(s.SelectedExperience),
			PageRank:           s.PageRank, // raw probabilities are too small for 2 decimals
			NormalizedPageRank: Round2(s.NormalizedPageRank),
			HotelRating:        Round2(s.HotelRating),
			Collaborative:      Round2(s.Collaborative),
			History:            Round2(s.History),
			LocationBonus:      Round2(s.LocationBonus),
			Base:               Round2(s.Base),
			Final:              Round2(s.Final),
		},
	}
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
