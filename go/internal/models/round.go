package models

import "fmt"

// Round is one stage of a game. Rounds double as question difficulty tiers:
// a question tagged Easy is only drawn while the Easy round is active.
type Round string

const (
	RoundEasy       Round = "Easy"
	RoundModerate   Round = "Moderate"
	RoundHard       Round = "Hard"
	RoundStarReveal Round = "Star Reveal"
)

// Rounds returns every round in play order.
func Rounds() []Round {
	return []Round{RoundEasy, RoundModerate, RoundHard, RoundStarReveal}
}

// ParseRound validates a round name.
func ParseRound(s string) (Round, error) {
	switch Round(s) {
	case RoundEasy, RoundModerate, RoundHard, RoundStarReveal:
		return Round(s), nil
	}
	return "", fmt.Errorf("unknown round %q", s)
}

// Next returns the round that follows r. ok is false when r is the final
// round or unknown.
func (r Round) Next() (next Round, ok bool) {
	rounds := Rounds()
	for i, cur := range rounds {
		if cur == r && i+1 < len(rounds) {
			return rounds[i+1], true
		}
	}
	return "", false
}

// PointsTable maps each round to the points a correct answer awards.
type PointsTable map[Round]int

// DefaultPointsTable returns the standard scoring.
func DefaultPointsTable() PointsTable {
	return PointsTable{
		RoundEasy:       100,
		RoundModerate:   150,
		RoundHard:       200,
		RoundStarReveal: 300,
	}
}

// Points returns the award for a round, zero for unknown rounds.
func (p PointsTable) Points(r Round) int {
	return p[r]
}
