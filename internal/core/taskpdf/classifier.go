package taskpdf

import "github.com/joseph-ayodele/freight-orders/internal/core/lines"

var taskSheetLabels = []string{
	LabelTourNumber,
	LabelLoad,
	LabelLoadingSequence,
	LabelUnloadingSequence,
}

// minTaskSheetLabels tolerates one label lost to text extraction noise.
const minTaskSheetLabels = 3

// IsTaskSheet reports whether at least three of the four task-sheet labels occur
// as whole lines.
func IsTaskSheet(seq []string) bool {
	return isTaskSheet(lines.New(seq))
}

func isTaskSheet(x *lines.Index) bool {
	found := 0
	for _, label := range taskSheetLabels {
		if _, ok := x.FindFirstEqual(label); ok {
			found++
		}
	}
	return found >= minTaskSheetLabels
}
