package listing

import (
	"vanguard/core"
)

// ApplyPatch optimistic view of items with patch applied to targetID.
// The target is copied before merging, every other item keeps its pointer,
// and Previous is items itself so the caller can restore it on failure.
func ApplyPatch(items []*core.UnifiedItem, targetID string, patch core.Patch) (core.Mutation, error) {
	idx := IndexOf(items, targetID)
	if idx < 0 {
		return core.Mutation{}, &core.Error{Code: core.ErrListingNotFound, Op: "apply patch", Msg: targetID}
	}

	target := items[idx]

	if patch.Remove {
		applied := make([]*core.UnifiedItem, 0, len(items)-1)
		applied = append(applied, items[:idx]...)
		applied = append(applied, items[idx+1:]...)
		return core.Mutation{Applied: applied, Previous: items}, nil
	}

	next, err := merge(target, patch)
	if err != nil {
		return core.Mutation{}, err
	}

	applied := make([]*core.UnifiedItem, len(items))
	copy(applied, items)
	applied[idx] = next

	return core.Mutation{Applied: applied, Previous: items}, nil
}

// IndexOf position of the item with id, -1 if absent
func IndexOf(items []*core.UnifiedItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}

	return -1
}

// Find item with id
func Find(items []*core.UnifiedItem, id string) (*core.UnifiedItem, bool) {
	if idx := IndexOf(items, id); idx >= 0 {
		return items[idx], true
	}

	return nil, false
}

func merge(target *core.UnifiedItem, patch core.Patch) (*core.UnifiedItem, error) {
	if r := patch.Replace; r != nil {
		if r.ID != target.ID || r.Kind != target.Kind || !payloadMatches(r) {
			return nil, &core.Error{Code: core.ErrInvalidPatch, Op: "replace", Msg: target.ID}
		}

		next := *r
		if next.Raw == nil {
			next.Raw = target.Raw
		}
		return &next, nil
	}

	if (patch.Asset != nil && target.Kind != core.KindAsset) || (patch.Coin != nil && target.Kind != core.KindCoin) {
		return nil, &core.Error{Code: core.ErrInvalidPatch, Op: "patch payload", Msg: target.ID}
	}

	next := *target

	if patch.Name != nil {
		next.Name = *patch.Name
	}

	if patch.Category != nil {
		next.Category = *patch.Category
	}

	if patch.Overview != nil {
		next.Overview = *patch.Overview
	}

	if patch.Risk != nil {
		next.Risk = *patch.Risk
	}

	if patch.IsActive != nil {
		next.IsActive = *patch.IsActive
	}

	if patch.IsFeatured != nil {
		next.IsFeatured = *patch.IsFeatured
	}

	if patch.Asset != nil {
		asset := *patch.Asset
		next.Asset = &asset
	}

	if patch.Coin != nil {
		coin := *patch.Coin
		next.Coin = &coin
	}

	return &next, nil
}

func payloadMatches(item *core.UnifiedItem) bool {
	switch item.Kind {
	case core.KindAsset:
		return item.Asset != nil && item.Coin == nil
	case core.KindCoin:
		return item.Coin != nil && item.Asset == nil
	default:
		return false
	}
}

// Restore put the item with id back to its state in previous, leaving every
// other item of items as it is. A removed item is re-inserted after its
// nearest surviving predecessor in previous. An item absent from previous is
// dropped from items.
func Restore(items, previous []*core.UnifiedItem, id string) []*core.UnifiedItem {
	prevIdx := IndexOf(previous, id)
	idx := IndexOf(items, id)

	if prevIdx < 0 {
		if idx < 0 {
			return items
		}

		out := make([]*core.UnifiedItem, 0, len(items)-1)
		out = append(out, items[:idx]...)
		return append(out, items[idx+1:]...)
	}

	old := previous[prevIdx]

	if idx >= 0 {
		out := make([]*core.UnifiedItem, len(items))
		copy(out, items)
		out[idx] = old
		return out
	}

	at := 0
	for i := prevIdx - 1; i >= 0; i-- {
		if j := IndexOf(items, previous[i].ID); j >= 0 {
			at = j + 1
			break
		}
	}

	out := make([]*core.UnifiedItem, 0, len(items)+1)
	out = append(out, items[:at]...)
	out = append(out, old)
	return append(out, items[at:]...)
}
