package api

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

// ParseTarget parses "item[:recipe]=rate", e.g. "gear=30" or "gear:r_gear_alt=12.5"
func ParseTarget(raw string) (TargetView, error) {
	lhs, rateText, ok := strings.Cut(strings.TrimSpace(raw), "=")
	if !ok {
		return TargetView{}, shared.NewValidationError("target", fmt.Sprintf("expected item[:recipe]=rate, got %q", raw))
	}

	itemID, recipeID, _ := strings.Cut(lhs, ":")
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return TargetView{}, shared.NewValidationError("target", fmt.Sprintf("missing item id in %q", raw))
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateText), 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return TargetView{}, shared.NewValidationError("target", fmt.Sprintf("invalid rate in %q", raw))
	}

	return TargetView{ItemID: itemID, RecipeID: strings.TrimSpace(recipeID), RatePerMin: rate}, nil
}

// ParseTargets parses each target flag value in order
func ParseTargets(raw []string) ([]TargetView, error) {
	targets := make([]TargetView, 0, len(raw))
	for _, r := range raw {
		t, err := ParseTarget(r)
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// ParseSelections parses "item:idx,item:idx". Later entries win.
func ParseSelections(raw string) (map[string]int, error) {
	selections := make(map[string]int)
	for _, part := range splitList(raw) {
		itemID, idxText, ok := strings.Cut(part, ":")
		if !ok || strings.TrimSpace(itemID) == "" {
			return nil, shared.NewValidationError("select", fmt.Sprintf("expected item:index, got %q", part))
		}
		idx, err := strconv.Atoi(strings.TrimSpace(idxText))
		if err != nil || idx < 0 {
			return nil, shared.NewValidationError("select", fmt.Sprintf("invalid recipe index in %q", part))
		}
		selections[strings.TrimSpace(itemID)] = idx
	}
	return selections, nil
}

// ParseCollapse parses a comma separated list of node ids
func ParseCollapse(raw string) []string {
	return splitList(raw)
}

// ParseDepth parses an optional depth limit. Blank means unlimited.
func ParseDepth(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return nil, shared.NewValidationError("maxDepth", fmt.Sprintf("not an integer: %q", raw))
	}
	return &depth, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
