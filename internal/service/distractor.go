package service

import "duovocab/internal/models"

// BuildDistractorPools collects every distinct source and target string in the dataset.
// First occurrence wins and order follows the dataset. Strings are compared exactly.
func BuildDistractorPools(ds models.Dataset) models.DistractorPools {
	pools := models.DistractorPools{
		SourceStrings: []string{},
		TargetStrings: []string{},
	}
	seenSource := make(map[string]struct{})
	seenTarget := make(map[string]struct{})

	for _, lesson := range ds {
		for _, word := range lesson.Words {
			if _, ok := seenSource[word.SourceText]; !ok {
				seenSource[word.SourceText] = struct{}{}
				pools.SourceStrings = append(pools.SourceStrings, word.SourceText)
			}
			if _, ok := seenTarget[word.TargetText]; !ok {
				seenTarget[word.TargetText] = struct{}{}
				pools.TargetStrings = append(pools.TargetStrings, word.TargetText)
			}
		}
	}
	return pools
}
