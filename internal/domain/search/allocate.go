package search

// AllocateBudget splits a page-size budget across result sets in proportion
// to each set's share of total matches. Every non-empty set receives at
// least one slot; allocations are capped at the set's size; leftover slots
// from rounding are handed to the largest sets first. The minimum-one-slot
// rule may push the combined allocation slightly past the budget.
func AllocateBudget(budget int, counts []int) []int {
	allocations := make([]int, len(counts))
	if budget <= 0 {
		return allocations
	}

	total := 0
	nonEmpty := 0
	for _, c := range counts {
		if c > 0 {
			total += c
			nonEmpty++
		}
	}
	if total == 0 {
		return allocations
	}

	used := 0
	for idx, c := range counts {
		if c == 0 {
			continue
		}
		share := budget * c / total
		if share < 1 {
			share = 1
		}
		if share > c {
			share = c
		}
		allocations[idx] = share
		used += share
	}

	// Distribute rounding leftovers to the sets with the most remaining matches.
	for used < budget {
		best := -1
		bestRemaining := 0
		for idx, c := range counts {
			remaining := c - allocations[idx]
			if remaining > bestRemaining {
				bestRemaining = remaining
				best = idx
			}
		}
		if best == -1 {
			break
		}
		allocations[best]++
		used++
	}

	return allocations
}
