package layout

import (
	"strings"

	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// MergeImpactsByType collapses impacts of the same type (compared
// case-insensitively) into one badge per type. Groups appear in the order
// their type is first seen. A merged badge joins member ids with "+" and
// member labels with "; ", dropping case-insensitive repeats of labels and
// metrics. Single-member groups are returned as they are.
func MergeImpactsByType(impacts []LaneImpact) []LaneImpact {
	var order []string
	groups := make(map[string][]LaneImpact)
	for _, imp := range impacts {
		key := strings.ToLower(string(imp.Type))
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], imp)
	}

	out := make([]LaneImpact, 0, len(order))
	for _, key := range order {
		members := groups[key]
		if len(members) == 1 {
			out = append(out, members[0])
			continue
		}
		out = append(out, mergeGroup(members))
	}
	return out
}

func mergeGroup(members []LaneImpact) LaneImpact {
	ids := make([]string, 0, len(members))
	var labels, metrics []string
	seenLabels := make(map[string]bool)
	seenMetrics := make(map[string]bool)
	for _, m := range members {
		ids = append(ids, m.ID)
		if k := strings.ToLower(m.Label); !seenLabels[k] {
			seenLabels[k] = true
			labels = append(labels, m.Label)
		}
		for _, metric := range m.Metrics {
			if k := strings.ToLower(metric); !seenMetrics[k] {
				seenMetrics[k] = true
				metrics = append(metrics, metric)
			}
		}
	}
	if metrics == nil {
		metrics = []string{}
	}
	return LaneImpact{
		ID:      strings.Join(ids, "+"),
		Label:   strings.Join(labels, "; "),
		Type:    members[0].Type,
		Metrics: metrics,
	}
}

// ImpactGroup is a run of impacts sharing one type.
type ImpactGroup struct {
	Type    portfolio.ImpactType `json:"type"`
	Impacts []LaneImpact         `json:"impacts"`
}

// ImpactTypeOrder is the fixed display order of impact types.
func ImpactTypeOrder() []portfolio.ImpactType {
	return []portfolio.ImpactType{
		portfolio.ImpactReliability,
		portfolio.ImpactObservability,
		portfolio.ImpactScalability,
		portfolio.ImpactSecurity,
	}
}

// GroupImpactsByType buckets impacts by type in ImpactTypeOrder, omitting
// empty buckets. Within a bucket the input order is kept. Impacts of a type
// outside the fixed order are dropped.
func GroupImpactsByType(impacts []LaneImpact) []ImpactGroup {
	byType := make(map[portfolio.ImpactType][]LaneImpact)
	for _, imp := range impacts {
		t := portfolio.ImpactType(strings.ToLower(string(imp.Type)))
		byType[t] = append(byType[t], imp)
	}

	var groups []ImpactGroup
	for _, t := range ImpactTypeOrder() {
		if members, ok := byType[t]; ok {
			groups = append(groups, ImpactGroup{Type: t, Impacts: members})
		}
	}
	return groups
}
