package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// DefaultRewardKey is the fallback entry of a reward table.
const DefaultRewardKey = "default"

type DescriptorKind int

const (
	KindInvalid DescriptorKind = iota
	KindMultiplier
	KindDetailed
	KindRotating
)

func (k DescriptorKind) String() string {
	switch k {
	case KindMultiplier:
		return "multiplier"
	case KindDetailed:
		return "detailed"
	case KindRotating:
		return "rotating"
	case KindInvalid:
		return "invalid"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// RewardDescriptor is one entry of a reward table. Kind selects which fields
// are meaningful:
//
//	KindMultiplier  bare number            -> Value
//	KindDetailed    {value, subcategories?, note?}
//	KindRotating    {active_categories, value, max_per_period?}
//	KindInvalid     anything else, Raw keeps the original JSON
type RewardDescriptor struct {
	Kind             DescriptorKind
	Value            float64
	Subcategories    []string
	Note             string
	ActiveCategories []string
	MaxPerPeriod     *float64
	Raw              json.RawMessage
}

func Multiplier(v float64) RewardDescriptor {
	return RewardDescriptor{Kind: KindMultiplier, Value: v}
}

func Detailed(v float64, subcategories ...string) RewardDescriptor {
	return RewardDescriptor{Kind: KindDetailed, Value: v, Subcategories: subcategories}
}

func Rotating(v float64, active ...string) RewardDescriptor {
	return RewardDescriptor{Kind: KindRotating, Value: v, ActiveCategories: active}
}

// Multiplier extracts the reward percentage. Every kind is handled here; a kind
// without a branch is an error rather than a silent zero.
func (d RewardDescriptor) Multiplier() (float64, error) {
	switch d.Kind {
	case KindMultiplier, KindDetailed, KindRotating:
		return d.Value, nil
	case KindInvalid:
		return 0, fmt.Errorf("malformed reward descriptor %s", rawOrEmpty(d.Raw))
	default:
		return 0, fmt.Errorf("unknown reward descriptor kind %s", d.Kind)
	}
}

// IsActiveFor reports whether a rotating descriptor currently covers categoryID.
func (d RewardDescriptor) IsActiveFor(categoryID string) bool {
	if d.Kind != KindRotating {
		return false
	}
	for _, c := range d.ActiveCategories {
		if c == categoryID {
			return true
		}
	}
	return false
}

type detailedJSON struct {
	Value         *float64 `json:"value"`
	Subcategories []string `json:"subcategories,omitempty"`
	Note          string   `json:"note,omitempty"`
}

type rotatingJSON struct {
	ActiveCategories []string `json:"active_categories"`
	Value            *float64 `json:"value"`
	MaxPerPeriod     *float64 `json:"max_per_period,omitempty"`
}

func (d *RewardDescriptor) UnmarshalJSON(data []byte) error {
	*d = parseDescriptor(data)
	return nil
}

func parseDescriptor(data []byte) RewardDescriptor {
	raw := append(json.RawMessage(nil), data...)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return RewardDescriptor{Kind: KindInvalid, Raw: raw}
	}

	switch trimmed[0] {
	case '{':
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return RewardDescriptor{Kind: KindInvalid, Raw: raw}
		}
		if _, ok := probe["active_categories"]; ok {
			var r rotatingJSON
			if err := json.Unmarshal(trimmed, &r); err != nil || r.Value == nil {
				return RewardDescriptor{Kind: KindInvalid, Raw: raw}
			}
			return RewardDescriptor{
				Kind:             KindRotating,
				Value:            *r.Value,
				ActiveCategories: r.ActiveCategories,
				MaxPerPeriod:     r.MaxPerPeriod,
			}
		}
		var o detailedJSON
		if err := json.Unmarshal(trimmed, &o); err != nil || o.Value == nil {
			return RewardDescriptor{Kind: KindInvalid, Raw: raw}
		}
		return RewardDescriptor{Kind: KindDetailed, Value: *o.Value, Subcategories: o.Subcategories, Note: o.Note}
	default:
		var v float64
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return RewardDescriptor{Kind: KindInvalid, Raw: raw}
		}
		return RewardDescriptor{Kind: KindMultiplier, Value: v}
	}
}

func (d RewardDescriptor) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case KindMultiplier:
		return json.Marshal(d.Value)
	case KindDetailed:
		v := d.Value
		return json.Marshal(detailedJSON{Value: &v, Subcategories: d.Subcategories, Note: d.Note})
	case KindRotating:
		v := d.Value
		active := d.ActiveCategories
		if active == nil {
			active = []string{}
		}
		return json.Marshal(rotatingJSON{ActiveCategories: active, Value: &v, MaxPerPeriod: d.MaxPerPeriod})
	case KindInvalid:
		if len(d.Raw) > 0 && json.Valid(d.Raw) {
			return d.Raw, nil
		}
		return []byte("null"), nil
	default:
		return nil, fmt.Errorf("marshal reward descriptor: unknown kind %s", d.Kind)
	}
}

// RewardTable maps a category id (or alias, or subcategory id) to its reward.
type RewardTable map[string]RewardDescriptor

// InvalidRewardTable stands in for a table whose JSON was not an object at all.
func InvalidRewardTable(raw []byte) RewardTable {
	return RewardTable{DefaultRewardKey: {Kind: KindInvalid, Raw: append(json.RawMessage(nil), raw...)}}
}

// Keys returns table keys in sorted order so lookups are deterministic.
func (t RewardTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func rawOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "<empty>"
	}
	if len(raw) > 64 {
		return string(raw[:64]) + "..."
	}
	return string(raw)
}
