package eval

// DefaultOverlapThreshold is the minimum overlap for a retrieved source to
// count as a hit against a ground-truth citation.
const DefaultOverlapThreshold = 0.05

// Overlap computes intersection-over-union between the character ranges of
// two sources. Sources on different files never overlap. Symmetric, and
// 1.0 for any non-degenerate source against itself.
func Overlap(a, b Source) float64 {
	if a.FilePath != b.FilePath {
		return 0
	}

	low := max(a.FirstCharacterIndex, b.FirstCharacterIndex)
	high := min(a.LastCharacterIndex, b.LastCharacterIndex)

	intersection := max(0, high-low)
	union := (a.LastCharacterIndex - a.FirstCharacterIndex) +
		(b.LastCharacterIndex - b.FirstCharacterIndex) - intersection

	if union <= 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// RecallAtK returns the fraction of ground-truth sources matched by at
// least one retrieved source with Overlap >= threshold. Empty ground truth
// recalls 1.0: there was nothing to find.
func RecallAtK(retrieved, truth []Source, threshold float64) float64 {
	if len(truth) == 0 {
		return 1.0
	}

	found := 0
	for _, want := range truth {
		for _, got := range retrieved {
			if Overlap(got, want) >= threshold {
				found++
				break
			}
		}
	}

	return float64(found) / float64(len(truth))
}

// Report aggregates dataset-level recall.
type Report struct {
	MeanRecall float64
	// Evaluated counts questions with ground truth that were matched to a
	// result record; Skipped counts result records with no ground truth.
	Evaluated int
	Skipped   int
}

// EvaluateDataset computes mean recall@k over all result records whose
// question has ground-truth sources. Unmatched question ids are counted,
// not fatal.
func EvaluateDataset(results *Results, truth *Dataset, threshold float64) Report {
	truthByID := make(map[string][]Source)
	for _, q := range truth.Questions {
		if len(q.Sources) > 0 {
			truthByID[q.QuestionID] = q.Sources
		}
	}

	var report Report
	total := 0.0
	for _, result := range results.SearchResults {
		want, ok := truthByID[result.QuestionID]
		if !ok {
			report.Skipped++
			continue
		}
		total += RecallAtK(result.RetrievedSources, want, threshold)
		report.Evaluated++
	}

	if report.Evaluated > 0 {
		report.MeanRecall = total / float64(report.Evaluated)
	}
	return report
}
