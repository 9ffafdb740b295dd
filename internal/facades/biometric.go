package facades

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"time"

	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/models"
	"github.com/li812/face-bank/internal/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Methods of the biometric service. Requests and replies are google.protobuf.Struct.
const (
	extractMethod = "/facebank.biometric.v1.FaceService/Extract"
	compareMethod = "/facebank.biometric.v1.FaceService/Compare"
)

// FaceServiceGRPCFacade implements services.FaceComparator over gRPC.
type FaceServiceGRPCFacade struct {
	conn    grpc.ClientConnInterface
	timeout time.Duration
}

// NewFaceServiceGRPCFacade creates a new facade. A non-positive timeout leaves
// calls bounded only by the caller's context.
func NewFaceServiceGRPCFacade(conn grpc.ClientConnInterface, timeout time.Duration) *FaceServiceGRPCFacade {
	return &FaceServiceGRPCFacade{conn: conn, timeout: timeout}
}

// Extract sends image to the biometric service and returns the embedding of the face in it.
func (f *FaceServiceGRPCFacade) Extract(ctx context.Context, image []byte) (models.FeatureVector, error) {
	if len(image) == 0 {
		return nil, services.ErrNoFaceDetected
	}

	req, err := structpb.NewStruct(map[string]any{
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, err
	}

	resp := &structpb.Struct{}
	if err := f.invoke(ctx, extractMethod, req, resp); err != nil {
		logger.Log.Errorw("failed to extract face via gRPC", "error", err)
		return nil, mapStatus(err)
	}

	values := resp.GetFields()["embedding"].GetListValue().GetValues()
	if len(values) == 0 {
		return nil, services.ErrNoFaceDetected
	}

	vec := make(models.FeatureVector, len(values))
	for i, v := range values {
		if _, ok := v.GetKind().(*structpb.Value_NumberValue); !ok {
			return nil, fmt.Errorf("%w: embedding element %d is not a number", services.ErrDependencyUnavailable, i)
		}
		vec[i] = float32(v.GetNumberValue())
	}
	return vec, nil
}

// Compare returns the distance between two embeddings as reported by the biometric service.
func (f *FaceServiceGRPCFacade) Compare(ctx context.Context, a, b models.FeatureVector) (float64, error) {
	la, err := structpb.NewList(toAny(a))
	if err != nil {
		return 0, err
	}
	lb, err := structpb.NewList(toAny(b))
	if err != nil {
		return 0, err
	}
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		"a": structpb.NewListValue(la),
		"b": structpb.NewListValue(lb),
	}}

	resp := &structpb.Struct{}
	if err := f.invoke(ctx, compareMethod, req, resp); err != nil {
		logger.Log.Errorw("failed to compare faces via gRPC", "error", err)
		return 0, mapStatus(err)
	}

	distance, ok := resp.GetFields()["distance"].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: compare reply has no numeric distance", services.ErrDependencyUnavailable)
	}
	d := distance.NumberValue
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("%w: compare reply has invalid distance %v", services.ErrDependencyUnavailable, d)
	}
	return d, nil
}

func (f *FaceServiceGRPCFacade) invoke(ctx context.Context, method string, req, resp *structpb.Struct) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return f.conn.Invoke(ctx, method, req, resp)
}

func toAny(v models.FeatureVector) []any {
	out := make([]any, len(v))
	for i, x := range v.Float64s() {
		out[i] = x
	}
	return out
}

// mapStatus turns "no usable face" replies into ErrNoFaceDetected and
// everything else into ErrDependencyUnavailable.
func mapStatus(err error) error {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", services.ErrNoFaceDetected, status.Convert(err).Message())
	default:
		return fmt.Errorf("%w: %v", services.ErrDependencyUnavailable, err)
	}
}
