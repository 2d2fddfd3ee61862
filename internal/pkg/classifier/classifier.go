package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/unfake-app/unfake/internal/pkg/env"
)

// ErrNoTrainingData is returned when training is requested with an empty
// corpus. The classifier never falls back to a silent default score.
var ErrNoTrainingData = errors.New("classifier: no training data")

const (
	learningRate = 0.5
	iterations   = 2000

	// A probability of 1.0 for the "real" class maps to the top score.
	maxScore = 5.0
)

// Sample is one labeled training sentence. Label 1 means real, 0 means fake.
type Sample struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

// DefaultCorpus is the built-in training set used when no persisted model
// artifact exists yet.
var DefaultCorpus = []Sample{
	{Text: "Breaking news about economy stocks soared", Label: 1},
	{Text: "Click here for cheap pills guaranteed miracle", Label: 0},
	{Text: "Local election updates show new policies", Label: 1},
	{Text: "Win big money with one trick", Label: 0},
	{Text: "Technology advances with new AI model", Label: 1},
	{Text: "Gossip about celebrities unbelievable secret", Label: 0},
}

// Model is the persisted artifact: a TF-IDF vocabulary and the weights of a
// logistic regression over it. A loaded model is deterministic for a fixed
// input.
type Model struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	Weights    []float64      `json:"weights"`
	Bias       float64        `json:"bias"`
}

func (m *Model) valid() bool {
	return len(m.Vocabulary) > 0 &&
		len(m.IDF) == len(m.Vocabulary) &&
		len(m.Weights) == len(m.Vocabulary)
}

// Classifier scores article text with a trained model.
type Classifier struct {
	model Model
}

// Train fits a TF-IDF logistic regression on the given corpus. Training is
// deterministic: vocabulary order follows first occurrence and gradient
// descent runs a fixed number of full passes without shuffling.
func Train(corpus []Sample) (*Classifier, error) {
	if len(corpus) == 0 {
		return nil, ErrNoTrainingData
	}

	vocabulary := make(map[string]int)
	docs := make([][]string, len(corpus))
	for i, sample := range corpus {
		docs[i] = tokenize(sample.Text)
		for _, token := range docs[i] {
			if _, ok := vocabulary[token]; !ok {
				vocabulary[token] = len(vocabulary)
			}
		}
	}
	if len(vocabulary) == 0 {
		return nil, ErrNoTrainingData
	}

	// Smoothed document frequencies, sklearn style.
	df := make([]float64, len(vocabulary))
	for _, doc := range docs {
		seen := make(map[int]bool)
		for _, token := range doc {
			idx := vocabulary[token]
			if !seen[idx] {
				df[idx]++
				seen[idx] = true
			}
		}
	}
	n := float64(len(docs))
	idf := make([]float64, len(vocabulary))
	for i := range idf {
		idf[i] = math.Log((1+n)/(1+df[i])) + 1
	}

	model := Model{
		Vocabulary: vocabulary,
		IDF:        idf,
		Weights:    make([]float64, len(vocabulary)),
	}

	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vectors[i] = model.vectorize(doc)
	}

	for it := 0; it < iterations; it++ {
		for i, vec := range vectors {
			p := sigmoid(dot(model.Weights, vec) + model.Bias)
			g := p - float64(corpus[i].Label)
			for j, v := range vec {
				if v != 0 {
					model.Weights[j] -= learningRate * g * v
				}
			}
			model.Bias -= learningRate * g
		}
	}

	return &Classifier{model: model}, nil
}

// Load reads a persisted model artifact. A missing or malformed artifact is
// an error; callers decide whether to retrain.
func Load(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model Model
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("classifier: corrupt model artifact %s: %w", path, err)
	}
	if !model.valid() {
		return nil, fmt.Errorf("classifier: incomplete model artifact %s", path)
	}
	return &Classifier{model: model}, nil
}

// LoadOrTrain loads the artifact at path, or trains a fresh model from the
// default corpus and persists it there.
func LoadOrTrain(path string) (*Classifier, error) {
	if c, err := Load(path); err == nil {
		return c, nil
	}
	c, err := Train(DefaultCorpus)
	if err != nil {
		return nil, err
	}
	if err := c.Save(path); err != nil {
		return nil, fmt.Errorf("classifier: failed to persist model: %w", err)
	}
	return c, nil
}

// Save writes the model artifact as JSON.
func (c *Classifier) Save(path string) error {
	data, err := json.MarshalIndent(&c.model, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Probability returns the model's probability that the text is real.
func (c *Classifier) Probability(text string) float64 {
	vec := c.model.vectorize(tokenize(text))
	return sigmoid(dot(c.model.Weights, vec) + c.model.Bias)
}

// Score classifies an article's contents and source link concatenated as
// one string and maps the real-class probability linearly onto [0, 5],
// rounded to two decimal places.
func (c *Classifier) Score(text, link string) (float64, error) {
	if c == nil || !c.model.valid() {
		return 0, errors.New("classifier: model not initialized")
	}
	p := c.Probability(text + " " + link)
	return math.Round(p*maxScore*100) / 100, nil
}

// vectorize builds the l2-normalized TF-IDF vector of a token list.
// Unknown tokens are ignored.
func (m *Model) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(m.Vocabulary))
	for _, token := range tokens {
		if idx, ok := m.Vocabulary[token]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= m.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

var (
	defaultMu         sync.Mutex
	defaultClassifier *Classifier
)

// Default returns the process-wide classifier, loading or training it on
// first use. A failed initialization is reported and retried on the next
// call, so a model artifact appearing after startup gets picked up.
func Default() (*Classifier, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClassifier != nil {
		return defaultClassifier, nil
	}
	c, err := LoadOrTrain(env.GetEnv("ML_MODEL_PATH", "ml_model.json"))
	if err != nil {
		return nil, err
	}
	defaultClassifier = c
	return c, nil
}

// ResetDefault drops the process-wide classifier so the next Default call
// reinitializes it (used by tests).
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultClassifier = nil
}
