package mcts

// BatchBackpropagate expands every batch element's leaf with the model's
// output for this simulation and then walks its search path from leaf to
// root, updating visit counts, value sums, and per-root MinMaxStats. It
// covers both halves of "Expansion + Backpropagation" as one batched pass,
// since a leaf's own expansion and its path's backprop always happen
// together for a given simulation.
func BatchBackpropagate(depth int32, gamma float32, valuePrefixes, values []float32, policies [][]float32, mmList *MinMaxStatsList, results *SearchResults, isResetList []bool, toPlayBatch []int8) error {
	n := len(results.LeafHandles)
	if err := checkBatchSizes(n, map[string]int{
		"valuePrefixes":   len(valuePrefixes),
		"values":          len(values),
		"policies":        len(policies),
		"isResetList":     len(isResetList),
		"toPlayBatch":     len(toPlayBatch),
		"minMaxStatsList": mmList.Len(),
	}); err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		// Resolve fresh off the handle rather than reusing a *Node cached
		// during BatchTraverse: expanding an earlier batch element in this
		// same loop can grow the arena's backing storage (arena.alloc),
		// which would leave any such cached pointer dangling.
		leaf := results.arena.node(results.LeafHandles[i])
		if err := leaf.Expand(results.VirtualToPlay[i], depth, int32(i), valuePrefixes[i], isResetList[i], policies[i]); err != nil {
			return err
		}

		if err := backpropagatePath(results.arena, results.SearchPaths[i], mmList.At(i), results.VirtualToPlay[i], values[i], gamma); err != nil {
			return err
		}
	}
	return nil
}

// backpropagatePath implements the single- and two-player backprop
// recurrences of the batch driver for one root's search path. An empty
// path is a silent no-op.
func backpropagatePath(a *arena, path []handle, mm *MinMaxStats, toPlay int8, value float32, gamma float32) error {
	if len(path) == 0 {
		return nil
	}
	if toPlay != -1 && toPlay != 1 && toPlay != 2 {
		return toPlayError(toPlay)
	}

	bv := value
	for idx := len(path) - 1; idx >= 0; idx-- {
		node := a.node(path[idx])

		var parentValuePrefix float32
		var parentIsReset bool
		if idx > 0 {
			parent := a.node(path[idx-1])
			parentValuePrefix = parent.valuePrefix
			parentIsReset = parent.isReset
		}
		node.SetParentValuePrefix(parentValuePrefix)

		if toPlay == -1 {
			node.visitCount++
			node.valueSum += float64(bv)
		} else if node.toPlay == toPlay {
			node.visitCount++
			node.valueSum += float64(bv)
		} else {
			node.visitCount++
			node.valueSum -= float64(bv)
		}

		r := trueReward(parentValuePrefix, parentIsReset, node.valuePrefix)
		mm.Update(r + gamma*float32(node.Value()))

		if toPlay == -1 {
			bv = r + gamma*bv
		} else if node.toPlay == toPlay {
			bv = -r + gamma*bv
		} else {
			bv = r + gamma*bv
		}
	}
	return nil
}
