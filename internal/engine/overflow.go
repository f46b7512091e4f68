package engine

import (
	"fmt"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// OverflowGroup is a run of identical overflow units sharing a reason.
type OverflowGroup struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	Reason string  `json:"reason"`
	Count  int     `json:"count"`
}

// GroupOverflow collapses overflow records with the same name, dimensions and
// reason. Groups appear in the order their first record was seen.
func GroupOverflow(records []model.OverflowRecord) []OverflowGroup {
	index := make(map[string]int)
	var groups []OverflowGroup
	for _, r := range records {
		reason := r.Reason
		if reason == "" {
			reason = "Unknown"
		}
		u := r.Unit
		key := fmt.Sprintf("%s-%g-%g-%g-%s", u.Name, u.Length, u.Width, u.Height, reason)
		if i, ok := index[key]; ok {
			groups[i].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, OverflowGroup{
			Name:   u.Name,
			Length: u.Length,
			Width:  u.Width,
			Height: u.Height,
			Weight: u.Weight,
			Reason: reason,
			Count:  1,
		})
	}
	return groups
}
