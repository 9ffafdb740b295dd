package services

import (
	"context"
	"fmt"
	"math"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/metrics"
	"github.com/li812/face-bank/internal/models"
)

//go:generate mockgen -source=biometric.go -destination=mock_biometric_test.go -package=services

// DefaultSimilarityThreshold is the minimum 1-distance accepted as a match.
const DefaultSimilarityThreshold = 0.75

// FaceComparator is the external biometric capability.
type FaceComparator interface {
	// Extract returns ErrNoFaceDetected when the image holds no usable face.
	Extract(ctx context.Context, image []byte) (models.FeatureVector, error)
	// Compare returns the distance between two embeddings.
	Compare(ctx context.Context, a, b models.FeatureVector) (float64, error)
}

// FaceVerifier compares a fresh image against a stored embedding.
type FaceVerifier struct {
	comparator FaceComparator
	threshold  float64
}

// NewFaceVerifier creates a FaceVerifier accepting similarity strictly above threshold.
func NewFaceVerifier(comparator FaceComparator, threshold float64) *FaceVerifier {
	return &FaceVerifier{comparator: comparator, threshold: threshold}
}

// Threshold returns the configured similarity threshold.
func (v *FaceVerifier) Threshold() float64 {
	return v.threshold
}

// Extract derives an embedding from image.
func (v *FaceVerifier) Extract(ctx context.Context, image []byte) (models.FeatureVector, error) {
	vec, err := v.comparator.Extract(ctx, image)
	if err != nil {
		logger.Log.Warnw("face extraction failed", "error", err)
		return nil, asDependencyError(err)
	}
	if len(vec) == 0 {
		return nil, ErrNoFaceDetected
	}
	return vec, nil
}

// Verify returns the similarity of image to stored. A similarity at or below
// the threshold yields a *MismatchError carrying the score.
func (v *FaceVerifier) Verify(ctx context.Context, stored models.FeatureVector, image []byte) (float64, error) {
	if len(stored) == 0 {
		return 0, fmt.Errorf("stored embedding: %w", models.ErrInvalidEmbedding)
	}

	fresh, err := v.Extract(ctx, image)
	if err != nil {
		metrics.FaceVerifications.WithLabelValues("error").Inc()
		return 0, err
	}

	distance, err := v.comparator.Compare(ctx, stored, fresh)
	if err != nil {
		logger.Log.Errorw("face comparison failed", "error", err)
		metrics.FaceVerifications.WithLabelValues("error").Inc()
		return 0, asDependencyError(err)
	}

	if math.IsNaN(distance) || math.IsInf(distance, 0) || distance < 0 {
		metrics.FaceVerifications.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("%w: invalid distance %v", ErrDependencyUnavailable, distance)
	}

	similarity := 1 - distance
	if similarity > v.threshold {
		metrics.FaceVerifications.WithLabelValues("accepted").Inc()
		return similarity, nil
	}

	logger.Log.Infow("face rejected", "similarity", similarity, "threshold", v.threshold)
	metrics.FaceVerifications.WithLabelValues("rejected").Inc()
	return similarity, &MismatchError{Similarity: similarity}
}
