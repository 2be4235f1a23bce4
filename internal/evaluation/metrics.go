package evaluation

// RecallAtK computes Recall@K: the fraction of relevant items found in the top-K retrieved results.
// Returns 0.0 if relevant is empty.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	total := len(relevantSet)
	found := 0
	for _, r := range topK(retrieved, k) {
		if _, ok := relevantSet[r]; ok {
			found++
			delete(relevantSet, r)
		}
	}

	return float64(found) / float64(total)
}

// MRRAtK computes Mean Reciprocal Rank at K: the reciprocal of the rank of the first relevant item
// in the top-K retrieved results. Returns 0.0 if no relevant item is found in top-K.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	for i, r := range topK(retrieved, k) {
		if _, ok := relevantSet[r]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}

// Precision is correct/predicted, 0 when nothing was predicted.
func Precision(correct, predicted int) float64 {
	if predicted == 0 {
		return 0.0
	}
	return float64(correct) / float64(predicted)
}

// Recall is correct/support, 0 when the class has no golden examples.
func Recall(correct, support int) float64 {
	if support == 0 {
		return 0.0
	}
	return float64(correct) / float64(support)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func topK(items []string, k int) []string {
	if k < 0 {
		return nil
	}
	if k < len(items) {
		return items[:k]
	}
	return items
}
