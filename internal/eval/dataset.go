package eval

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrDataset means the ground-truth file is empty or malformed. A corrupt
// dataset aborts the whole run before any sample is scored, since the
// aggregate metrics assume a complete, valid sample set.
var ErrDataset = errors.New("invalid ground truth dataset")

// Sample is one labeled question from the ground-truth file.
type Sample struct {
	Question    string `json:"question"`
	GroundTruth string `json:"ground_truth"`
}

// LoadDataset reads and validates the ground-truth JSON file. Every sample
// must carry both fields; a missing field fails the load rather than
// skipping the sample.
func LoadDataset(path string) ([]Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file failed: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataset, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrDataset)
	}
	for i, s := range samples {
		if strings.TrimSpace(s.Question) == "" {
			return nil, fmt.Errorf("%w: sample %d has no question", ErrDataset, i)
		}
		if strings.TrimSpace(s.GroundTruth) == "" {
			return nil, fmt.Errorf("%w: sample %d has no ground_truth", ErrDataset, i)
		}
	}
	return samples, nil
}
