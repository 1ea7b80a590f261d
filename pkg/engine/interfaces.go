package engine

import (
	"context"

	"github.com/lurelight/lurelight/pkg/urlfeat"
)

// Label is the output of an external classifier: a class index, its
// human-readable name, the probability of the predicted class, and the full
// per-class distribution.
type Label struct {
	Label         int                `json:"label"`
	LabelName     string             `json:"label_name"`
	Confidence    float64            `json:"confidence"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
}

// TextClassifier is the external e-mail text scoring collaborator. The
// engine prepares its input and consumes its output; the model itself lives
// elsewhere.
type TextClassifier interface {
	ClassifyText(ctx context.Context, text string) (Label, error)
}

// URLClassifier is the external URL scoring collaborator. It consumes the
// fixed 49-element feature vector in the contractual column order.
type URLClassifier interface {
	ClassifyURL(ctx context.Context, features [urlfeat.NumFeatures]float64) (Label, error)
}
